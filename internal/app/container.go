package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"motorental/internal/config"
	"motorental/internal/costcalc"
	"motorental/internal/http/handlers"
	"motorental/internal/http/router"
	"motorental/internal/logx"
	"motorental/internal/plancatalog"
	"motorental/internal/ports/rentaltx"
	"motorental/internal/repository"
	"motorental/internal/service/budget"
	"motorental/internal/service/rental"
	"motorental/internal/transport/kafka"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// build builds and returns a new dig container
func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildWorker builds and returns a dig container for the worker binary
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds and returns a new dig container for the worker
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		NewLogger,
		config.Load,
		func(cfg *config.Config) (*time.Location, error) {
			return cfg.Rental.Location()
		},
		func(cfg *config.Config) time.Duration {
			return cfg.Rental.OperationTimeout
		},
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container, providerDB)
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		repository.NewRentalRepo,
		repository.NewDelivererRepo,
		repository.NewMotorcycleRepo,
		plancatalog.Default,
		costcalc.NewCalculator,
		func(cfg *config.Config, logger logx.Logger) (*kafka.Producer, error) {
			return kafka.NewProducer(
				cfg.Kafka.Brokers,
				cfg.Kafka.CreatedTopic,
				cfg.Kafka.UpdatedTopic,
				logger,
			)
		},
		func(
			repo *repository.RentalRepo,
			deliverers *repository.DelivererRepo,
			plans *plancatalog.Catalog,
			producer *kafka.Producer,
			loc *time.Location,
			timeout time.Duration,
			logger logx.Logger,
		) *rental.Service {
			return rental.NewService(repo, deliverers, plans, producer, loc, timeout, logger)
		},
		func(
			repo *repository.RentalRepo,
			fleet *repository.MotorcycleRepo,
			calc *costcalc.Calculator,
			timeout time.Duration,
			logger logx.Logger,
		) *budget.Service {
			return budget.NewService(repo, fleet, calc, timeout, logger)
		},
	)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewRentalUsecase,
		handlers.NewBudgetUsecase,
		handlers.NewRentalHandler,
		router.New,
		serverProvider,
	)
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		newWorkerMetrics,
		func(repo *repository.RentalRepo) rentaltx.Runner { return repo },
		rental.NewTxClaimer,
		newClaimer,
		newProcessor,
		makeRentalKafka,
		func(cfg *config.Config, logger logx.Logger, handle kafka.HandleFunc) (*kafka.Consumer, error) {
			return kafka.NewConsumer(
				logger,
				cfg.Kafka.Brokers,
				cfg.Kafka.GroupID,
				cfg.Kafka.CreatedTopic,
				handle,
			)
		},
	)
}
