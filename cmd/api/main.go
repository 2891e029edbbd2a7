package main

import (
	"context"
	"net/http"

	"github.com/libooktrac/libooktrac/pkg/config"
	"github.com/libooktrac/libooktrac/pkg/database"
	"github.com/libooktrac/libooktrac/pkg/server"
	"github.com/libooktrac/libooktrac/pkg/version"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/robinjoseph08/golib/signals"
)

func main() {
	ctx := context.Background()
	log := logger.New()

	log.Info("starting libooktrac", logger.Data{"version": version.Version})

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	// The datastore must be Ready before any traffic is accepted. Exhausting
	// the retry budget is fatal.
	boot := database.NewBootstrapper(
		database.MongoDialer(cfg),
		cfg.Collections(),
		cfg.DatabaseConnectRetryCount,
		cfg.DatabaseConnectRetryDelay,
	)

	store, err := boot.Run(ctx)
	if err != nil {
		log.Err(err).Fatal("datastore startup failure")
	}
	log.Info("datastore ready", logger.Data{"database": cfg.DatabaseName})

	srv, err := server.New(ctx, cfg, store, boot)
	if err != nil {
		log.Err(err).Fatal("server error")
	}

	graceful := signals.Setup()

	go func() {
		log.Info("server started", logger.Data{"addr": srv.Addr})
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Err(err).Fatal("server stopped")
		}
		log.Info("server stopped")
	}()

	<-graceful
	log.Info("starting graceful shutdown")

	err = srv.Shutdown(ctx)
	if err != nil {
		log.Err(err).Error("server shutdown error")
	}
	log.Info("server shutdown")

	err = boot.Close(ctx)
	if err != nil {
		log.Err(err).Error("datastore close error")
	}
	log.Info("datastore closed")
}
