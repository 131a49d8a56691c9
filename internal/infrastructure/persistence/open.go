// Package persistence elige el adaptador de base de datos según DB_DRIVER.
package persistence

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/application/ordering"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/infrastructure/mongodb"
	"github.com/jhoicas/tienda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-api/pkg/config"
)

// Repositories adaptadores listos para inyectar en los casos de uso.
type Repositories struct {
	Users    repository.UserRepository
	Products repository.ProductRepository
	Orders   repository.OrderRepository
	Tx       ordering.TxRunner

	close func()
}

// Close libera el pool o el cliente.
func (r *Repositories) Close() {
	if r.close != nil {
		r.close()
	}
}

// Open conecta con PostgreSQL (aplicando migraciones) o con MongoDB (creando índices).
func Open(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	if cfg.DB.Driver == config.DriverMongo {
		client, db, err := mongodb.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Users:    mongodb.NewUserRepository(db),
			Products: mongodb.NewProductRepository(db),
			Orders:   mongodb.NewOrderRepository(db),
			Tx:       mongodb.NewTxRunner(db),
			close:    func() { _ = client.Disconnect(context.Background()) },
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &Repositories{
		Users:    postgres.NewUserRepository(pool),
		Products: postgres.NewProductRepository(pool),
		Orders:   postgres.NewOrderRepository(pool),
		Tx:       postgres.NewTxRunner(pool),
		close:    pool.Close,
	}, nil
}
