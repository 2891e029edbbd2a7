package config

func loadProductionConfig(cfg *Config) {
	loadEnvOverrides(cfg)

	if cfg.ServerHost == "" {
		cfg.ServerHost = "0.0.0.0"
	}
}
