package app

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"motorental/internal/config"
	"motorental/internal/logx"
	"motorental/internal/repository"
	"motorental/internal/service/rental"
	"motorental/internal/transport/kafka"

	prometrics "motorental/internal/metrics"
)

type workerMetrics struct {
	dig.Out

	ClaimRetries   prometheus.Counter `name:"rental_claim_retries_total"`
	EventsConsumed prometheus.Counter `name:"rental_events_consumed_total"`
	Resolutions    *prometheus.CounterVec
}

func newWorkerMetrics() (workerMetrics, error) {
	retries, err := registerCounter(prometrics.NewClaimRetriesTotal())
	if err != nil {
		return workerMetrics{}, err
	}
	consumed, err := registerCounter(prometrics.NewEventsConsumedTotal())
	if err != nil {
		return workerMetrics{}, err
	}

	resolutions := prometrics.NewResolutionsTotal()
	if err := prometheus.DefaultRegisterer.Register(resolutions); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return workerMetrics{}, err
		}
		resolutions = are.ExistingCollector.(*prometheus.CounterVec)
	}

	return workerMetrics{
		ClaimRetries:   retries,
		EventsConsumed: consumed,
		Resolutions:    resolutions,
	}, nil
}

func registerCounter(c prometheus.Counter) (prometheus.Counter, error) {
	if err := prometheus.DefaultRegisterer.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		return are.ExistingCollector.(prometheus.Counter), nil
	}
	return c, nil
}

type claimerIn struct {
	dig.In

	Tx      *rental.TxClaimer
	Logger  logx.Logger
	Config  *config.Config
	Retries prometheus.Counter `name:"rental_claim_retries_total"`
}

func newClaimer(in claimerIn) rental.Claimer {
	return rental.NewRetryingClaimer(in.Tx, in.Logger, in.Retries, rental.RetryConfig{
		MaxAttempts: in.Config.Rental.ClaimAttempts,
		BaseDelay:   in.Config.Rental.ClaimBackoffBase,
		MaxDelay:    in.Config.Rental.ClaimBackoffMax,
	})
}

func newProcessor(
	repo *repository.RentalRepo,
	claimer rental.Claimer,
	producer *kafka.Producer,
	timeout time.Duration,
	logger logx.Logger,
	resolutions *prometheus.CounterVec,
) *rental.Processor {
	return rental.NewProcessor(
		repo,
		claimer,
		producer,
		timeout,
		logger,
		resolutions.WithLabelValues("rented"),
		resolutions.WithLabelValues("rejected"),
	)
}

type kafkaHandleIn struct {
	dig.In

	Processor *rental.Processor
	Consumed  prometheus.Counter `name:"rental_events_consumed_total"`
}

func makeRentalKafka(in kafkaHandleIn) kafka.HandleFunc {
	return func(ctx context.Context, event rental.Event) error {
		in.Consumed.Inc()
		return in.Processor.Handle(ctx, event)
	}
}
