// catalogo raíz de composición del catálogo: arma config → logger → pool →
// unit of work → casos de uso, y al arrancar imprime un resumen del estado
// del catálogo (agregados y productos con stock bajo).
package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/catalogo-api/pkg/config"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	pool, err := postgres.NewPool(connectCtx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Un unit of work por flujo lógico; acá el flujo es el resumen de arranque.
	uow, err := postgres.NewUnitOfWork(ctx, pool, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir unit of work")
	}
	defer uow.Close()

	productUC := usecase.NewProductUseCase(uow.Products(), uow.Categories())
	categoryUC := usecase.NewCategoryUseCase(uow.Categories())

	pstats, err := productUC.Statistics(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("estadísticas de productos")
	}
	cstats, err := categoryUC.Statistics(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("estadísticas de categorías")
	}
	log.Info().
		Int64("productos", pstats.Total).
		Int64("productos_activos", pstats.Active).
		Int64("sin_stock", pstats.OutOfStock).
		Str("precio_promedio", pstats.AveragePrice.StringFixed(2)).
		Int64("categorias", cstats.Total).
		Int64("categorias_con_productos", cstats.WithProducts).
		Msg("estado del catálogo")

	low, err := productUC.LowStock(ctx, entity.DefaultLowStockThreshold)
	if err != nil {
		log.Fatal().Err(err).Msg("stock bajo")
	}
	for _, p := range low {
		log.Warn().Str("sku", p.SKU).Str("nombre", p.Name).Int("stock", p.Stock).Msg("stock bajo")
	}

	log.Info().Msg("listo")
}
