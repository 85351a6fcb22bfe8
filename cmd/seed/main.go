// seed aplica el DDL del catálogo y carga los datos de referencia:
// categorías y productos iniciales más el usuario administrador.
//
// Uso: go run ./cmd/seed
// Configuración vía env (DATABASE_URL o DB_*, SEED_ADMIN_EMAIL, SEED_ADMIN_PASSWORD).
package main

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/catalogo-api/internal/domain/change"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/catalogo-api/pkg/config"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

type seedProduct struct {
	name, description, sku string
	price                  string
	stock                  int
}

type seedCategory struct {
	name, description, icon string
	order                   int
	products                []seedProduct
}

// Catálogo de referencia. Los SKU son únicos en todo el seed.
var seedData = []seedCategory{
	{
		name: "Electrónica", description: "Dispositivos y accesorios electrónicos", icon: "bi-cpu", order: 1,
		products: []seedProduct{
			{"Portátil 14\"", "Portátil liviano para oficina", "ELEC-0001", "899.99", 15},
			{"Auriculares inalámbricos", "Cancelación de ruido activa", "ELEC-0002", "149.50", 40},
			{"Monitor 27\"", "Panel IPS 2K", "ELEC-0003", "259.00", 8},
		},
	},
	{
		name: "Libros", description: "Libros físicos y de colección", icon: "bi-book", order: 2,
		products: []seedProduct{
			{"Cien años de soledad", "Edición conmemorativa", "BOOK-0001", "25.90", 30},
			{"El libro de Go", "Programación en Go desde cero", "BOOK-0002", "39.90", 12},
		},
	},
	{
		name: "Hogar", description: "Artículos para el hogar", icon: "bi-house", order: 3,
		products: []seedProduct{
			{"Cafetera de goteo", "Jarra de vidrio de 1.2 L", "HOME-0001", "45.00", 20},
			{"Juego de sábanas", "Algodón 300 hilos, queen", "HOME-0002", "59.99", 0},
		},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar schema")
	}
	log.Info().Msg("schema aplicado")

	uow, err := postgres.NewUnitOfWork(ctx, pool, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir unit of work")
	}
	defer uow.Close()

	// Todo el seed en una transacción: o queda completo o no queda nada.
	err = uow.ExecuteInTransaction(ctx, repository.IsoDefault, func(ctx context.Context) error {
		for _, sc := range seedData {
			existing, err := uow.Categories().GetByName(ctx, sc.name)
			if err != nil {
				return err
			}
			if existing != nil {
				log.Info().Str("categoria", sc.name).Msg("ya existe, se salta")
				continue
			}
			cat := &entity.Category{
				Name:         sc.name,
				Description:  sc.description,
				Icon:         sc.icon,
				DisplayOrder: sc.order,
			}
			if err := uow.Categories().Add(ctx, cat); err != nil {
				return err
			}
			for _, sp := range sc.products {
				price, err := decimal.NewFromString(sp.price)
				if err != nil {
					return err
				}
				catID := cat.ID
				uow.Register(&entity.Product{
					Name:        sp.name,
					Description: sp.description,
					Price:       price,
					Stock:       sp.stock,
					SKU:         sp.sku,
					CategoryID:  &catID,
				}, change.Added)
			}
		}
		n, err := uow.SaveChanges(ctx)
		if err != nil {
			return err
		}
		log.Info().Int64("productos", n).Msg("productos sembrados")
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed del catálogo")
	}

	if err := seedAdmin(ctx, pool, cfg.Seed, log); err != nil {
		log.Fatal().Err(err).Msg("seed del administrador")
	}
	log.Info().Msg("seed completo")
}

// seedAdmin crea (o conserva) el usuario administrador con hash bcrypt.
func seedAdmin(ctx context.Context, q postgres.Querier, cfg config.SeedConfig, log *logger.Logger) error {
	if cfg.AdminPassword == "" {
		log.Warn().Msg("SEED_ADMIN_PASSWORD vacío: no se crea administrador")
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	cmd, err := q.Exec(ctx,
		`INSERT INTO admin_users (email, password_hash) VALUES ($1, $2) ON CONFLICT (email) DO NOTHING`,
		cfg.AdminEmail, string(hash),
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		log.Info().Str("email", cfg.AdminEmail).Msg("administrador ya existía")
	} else {
		log.Info().Str("email", cfg.AdminEmail).Msg("administrador creado")
	}
	return nil
}
