package server

import (
	"context"
	"fmt"
	"net"

	"playground/config"
	"playground/internal/database"
	"playground/internal/storage"
)

// OpenStorage opens the storage driver named in cfg and applies the quota.
func OpenStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	var (
		s   storage.Storage
		err error
	)
	switch cfg.Storage.Driver {
	case "sqlite":
		s, err = database.InitDB(cfg.DSN())
	case "redis":
		addr := net.JoinHostPort(cfg.Redis.Host, cfg.Redis.Port)
		s, err = storage.NewRedis(ctx, addr, cfg.Redis.Password, cfg.Redis.DB)
	case "memory":
		s = storage.NewMemory()
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	if err != nil {
		return nil, err
	}
	return storage.WithQuota(s, cfg.Storage.QuotaBytes), nil
}
