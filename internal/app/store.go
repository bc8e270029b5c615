package app

import (
	"context"
	"fmt"

	"github.com/riskibarqy/weekendbets/internal/config"
	"github.com/riskibarqy/weekendbets/internal/domain/partition"
	"github.com/riskibarqy/weekendbets/internal/infrastructure/repository/filesystem"
	"github.com/riskibarqy/weekendbets/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/weekendbets/internal/infrastructure/repository/redisstore"
	"github.com/riskibarqy/weekendbets/internal/infrastructure/repository/sqlstore"
	qb "github.com/riskibarqy/weekendbets/internal/platform/querybuilder"
)

func (a *App) openStore(ctx context.Context) (partition.Store, error) {
	cfg := a.Config
	switch cfg.StoreBackend {
	case config.StoreFile:
		return filesystem.NewPartitionStore(cfg.StoreDir)
	case config.StoreMemory:
		return memory.NewPartitionStore(), nil
	case config.StoreSQLite:
		db, err := sqlstore.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		return sqlstore.NewPartitionStore(db, qb.SQLite), nil
	case config.StorePostgres:
		db, err := a.postgres()
		if err != nil {
			return nil, err
		}
		return sqlstore.NewPartitionStore(db, qb.Postgres), nil
	case config.StoreRedis:
		client, err := redisstore.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		return redisstore.NewPartitionStore(client, cfg.RedisKeyPrefix), nil
	default:
		return nil, fmt.Errorf("unsupported STORE_BACKEND %q", cfg.StoreBackend)
	}
}
