package database

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// ErrStartupFailure is returned once the bootstrapper exhausts its connection
// attempts. It is fatal: the process must not serve traffic.
var ErrStartupFailure = errors.New("could not connect to datastore after exhausting retries")

// State is where the bootstrapper sits in its startup lifecycle.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Conn is an established datastore connection. The mongo implementation lives
// in mongo.go; tests inject fakes.
type Conn interface {
	Ping(ctx context.Context) error
	CollectionExists(ctx context.Context, name string) (bool, error)
	CreateCollection(ctx context.Context, name string) error
	Store() Store
	Close(ctx context.Context) error
}

// Dialer opens a datastore connection. It is called once per attempt.
type Dialer func(ctx context.Context) (Conn, error)

// Bootstrapper establishes datastore readiness before any record-handling
// traffic is admitted: it dials with a bounded retry loop, then idempotently
// ensures every required collection exists. No partial ready state is ever
// observable; Run either returns a working Store or a fatal error.
type Bootstrapper struct {
	dial        Dialer
	collections []string
	maxAttempts int
	interval    time.Duration

	// sleep is swapped out in tests so the retry loop doesn't actually wait.
	sleep func(ctx context.Context, d time.Duration) error

	mu     sync.Mutex
	state  State
	conn   Conn
	closed bool
}

func NewBootstrapper(dial Dialer, collections []string, maxAttempts int, interval time.Duration) *Bootstrapper {
	return &Bootstrapper{
		dial:        dial,
		collections: collections,
		maxAttempts: maxAttempts,
		interval:    interval,
		sleep:       sleepContext,
		state:       StateDisconnected,
	}
}

// Run drives the startup state machine: Disconnected -> Connecting ->
// Connected -> Ready, or Failed once maxAttempts connection attempts are
// exhausted. The fixed interval between attempts is interruptible; a
// cancelled context stops retrying immediately.
func (b *Bootstrapper) Run(ctx context.Context) (Store, error) {
	var lastErr error

	for attempt := 1; attempt <= b.maxAttempts; attempt++ {
		b.setState(StateConnecting)

		conn, err := b.connect(ctx)
		if err == nil {
			b.mu.Lock()
			b.conn = conn
			b.state = StateConnected
			b.mu.Unlock()

			if err := b.ensureCollections(ctx, conn); err != nil {
				b.setState(StateFailed)
				return nil, err
			}

			b.setState(StateReady)
			return conn.Store(), nil
		}
		lastErr = err

		if attempt < b.maxAttempts {
			if err := b.sleep(ctx, b.interval); err != nil {
				b.setState(StateFailed)
				return nil, errors.WithStack(err)
			}
		}
	}

	b.setState(StateFailed)
	return nil, errors.Wrapf(ErrStartupFailure, "%d attempts, last error: %s", b.maxAttempts, lastErr)
}

func (b *Bootstrapper) connect(ctx context.Context) (Conn, error) {
	conn, err := b.dial(ctx)
	if err != nil {
		return nil, err
	}

	// A connection that cannot answer a liveness probe counts as a failed
	// attempt.
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(ctx)
		return nil, err
	}

	return conn, nil
}

// ensureCollections creates each required collection if it is absent.
// Creation never fails for a collection that already exists.
func (b *Bootstrapper) ensureCollections(ctx context.Context, conn Conn) error {
	for _, name := range b.collections {
		exists, err := conn.CollectionExists(ctx, name)
		if err != nil {
			return errors.WithStack(err)
		}
		if exists {
			continue
		}
		if err := conn.CreateCollection(ctx, name); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

// State returns the current lifecycle state.
func (b *Bootstrapper) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Ready reports whether the datastore finished bootstrapping.
func (b *Bootstrapper) Ready() bool {
	return b.State() == StateReady
}

// Close closes the underlying connection exactly once. It is safe to call
// even if startup never completed.
func (b *Bootstrapper) Close(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed || b.conn == nil {
		b.closed = true
		return nil
	}
	b.closed = true
	return b.conn.Close(ctx)
}

func (b *Bootstrapper) setState(s State) {
	b.mu.Lock()
	b.state = s
	b.mu.Unlock()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
