// Package storage abre el backend configurado (memory, postgres o redis) detrás de los puertos de dominio.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/memory"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Estoque-api/internal/infrastructure/redis"
	"github.com/jhoicas/Estoque-api/pkg/config"
	"github.com/jhoicas/Estoque-api/pkg/logger"
)

// Backend agrupa los repositorios y el TxRunner de un mismo almacenamiento.
type Backend struct {
	Driver    string
	Products  repository.ProductRepository
	Movements repository.MovementRepository
	TxRunner  inventory.TxRunner
	// Ping verifica la conexión; nil en memoria.
	Ping  func(ctx context.Context) error
	close func()
}

// Close libera conexiones. Seguro de llamar varias veces.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
		b.close = nil
	}
}

// Open construye el backend de cfg.Storage.Driver. Con postgres aplica el esquema antes de devolver.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Backend, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory, "":
		store := memory.NewStore()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return &Backend{
			Driver:    config.StorageMemory,
			Products:  store.Products(),
			Movements: store.Movements(),
			TxRunner:  store.TxRunner(),
		}, nil

	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migración: %w", err)
		}
		log.Info().Str("driver", config.StoragePostgres).Msg("esquema aplicado")
		return &Backend{
			Driver:    config.StoragePostgres,
			Products:  postgres.NewProductRepository(pool),
			Movements: postgres.NewMovementRepository(pool),
			TxRunner:  postgres.NewTxRunner(pool),
			Ping:      pool.Ping,
			close:     pool.Close,
		}, nil

	case config.StorageRedis:
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("conexión a Redis: %w", err)
		}
		store := infraredis.NewStore(client, infraredis.DefaultPrefix)
		return &Backend{
			Driver:    config.StorageRedis,
			Products:  store.Products(),
			Movements: store.Movements(),
			TxRunner:  store.TxRunner(),
			Ping: func(ctx context.Context) error {
				return client.Ping(ctx).Err()
			},
			close: func() { _ = client.Close() },
		}, nil
	}
	return nil, fmt.Errorf("driver de almacenamiento desconocido: %q", cfg.Storage.Driver)
}
