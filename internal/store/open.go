package store

import (
	"context"
	"fmt"

	"backend-greentransit/internal/config"
	"backend-greentransit/internal/db"
	"backend-greentransit/internal/logging"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Open picks the authoritative store (Postgres when connected, memory
// otherwise) and puts the Redis cache in front of it when available.
func Open(ctx context.Context, cfg config.Config, pg *pgxpool.Pool, rdb *redis.Client, log *zap.Logger) (Store, error) {
	log = logging.OrNop(log)

	var base Store
	if pg != nil {
		if cfg.AutoMigrate {
			if err := db.Migrate(ctx, pg); err != nil {
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}
		base = NewPostgres(pg)
		log.Info("using postgres store")
	} else {
		base = NewMemory()
		log.Warn("no postgres configured, using in-memory store")
	}

	if rdb == nil {
		return base, nil
	}
	log.Info("using redis read-through cache", zap.Duration("ttl", cfg.CacheTTL))
	return NewCache(base, rdb, cfg.CacheTTL, log), nil
}
