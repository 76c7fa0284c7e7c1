package cli

import (
	"context"
	"fmt"

	"github.com/LeenJaber1/automata-builder/internal/config"
	"github.com/LeenJaber1/automata-builder/pkg/adapters/file"
	"github.com/LeenJaber1/automata-builder/pkg/adapters/memory"
	"github.com/LeenJaber1/automata-builder/pkg/adapters/redis"
	"github.com/LeenJaber1/automata-builder/pkg/adapters/sqlite"
	"github.com/LeenJaber1/automata-builder/pkg/session"
)

// Persistence bundles the session backend selected by the configuration.
type Persistence struct {
	Manager *session.Manager
	close   func() error
}

// Close releases backend connections.
func (p *Persistence) Close() error {
	if p.close == nil {
		return nil
	}
	return p.close()
}

// OpenPersistence builds the session store (memory, file or redis) and its manager.
// With redis, a distributed locker shares the store connection.
func (a *App) OpenPersistence(ctx context.Context) (*Persistence, error) {
	cfg := a.Config.Sessions
	managerOpts := []session.Option{session.WithLogger(a.Logger)}

	switch cfg.Backend {
	case config.BackendMemory:
		return &Persistence{Manager: session.NewManager(memory.NewStore(), managerOpts...)}, nil
	case config.BackendFile:
		return &Persistence{Manager: session.NewManager(file.New(cfg.Dir), managerOpts...)}, nil
	case config.BackendRedis:
		var storeOpts []redis.Option
		if cfg.TTL > 0 {
			storeOpts = append(storeOpts, redis.WithTTL(cfg.TTL))
		}
		prefix := redis.DefaultPrefix
		if cfg.Redis.Prefix != "" {
			prefix = cfg.Redis.Prefix
			storeOpts = append(storeOpts, redis.WithPrefix(prefix))
		}
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, storeOpts...)
		if err := store.Client().Ping(ctx).Err(); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		a.Logger.Debug("redis session store connected", "redis", cfg.Redis.String())

		managerOpts = append(managerOpts, session.WithLocker(redis.NewLocker(store.Client(), prefix)))
		return &Persistence{
			Manager: session.NewManager(store, managerOpts...),
			close:   store.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
}

// OpenHistory opens the run history database at the configured path, or sqlite.DefaultPath.
func (a *App) OpenHistory() (*sqlite.History, error) {
	h, err := sqlite.Open(a.Config.History.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open run history: %w", err)
	}
	return h, nil
}
