package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-RentalService/pkg/metrics"
)

const reconcileJobName = "reconcile_extensions"

// errPanic ошибка для восстановленной паники в job
var errPanic = errors.New("jobs: job panicked")

// Scheduler запускает фоновые job по расписанию cron
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
	metrics *metrics.Metrics
	logger  Logger
}

// NewScheduler создает планировщик (UTC, расписание с секундами). m может быть nil
func NewScheduler(timeout time.Duration, m *metrics.Metrics, logger Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithSeconds(),
		),
		timeout: timeout,
		metrics: m,
		logger:  logger,
	}
}

// RegisterReconcile добавляет сверку продлений по расписанию
func (s *Scheduler) RegisterReconcile(schedule string, r *Reconciler) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.run(reconcileJobName, func(ctx context.Context) error {
			_, err := r.ReconcileExtensions(ctx)
			return err
		})
	})
	if err != nil {
		return fmt.Errorf("failed to register %s job with schedule %q: %w", reconcileJobName, schedule, err)
	}

	s.logger.Info("Jobs: %s registered with schedule %q", reconcileJobName, schedule)
	return nil
}

// Start запускает планировщик
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Jobs: scheduler started")
}

// Stop останавливает планировщик и дожидается завершения запущенных job
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Jobs: scheduler stopped")
}

// run выполняет job с таймаутом, восстановлением после паники и метрикой результата
func (s *Scheduler) run(name string, job func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	err := runWithRecovery(ctx, job)

	result := "success"
	if err != nil {
		result = "error"
		s.logger.Error("Jobs: %s failed: %v", name, err)
	}

	if s.metrics != nil {
		s.metrics.JobRunsTotal.WithLabelValues(name, result).Inc()
	}
}

func runWithRecovery(ctx context.Context, job func(ctx context.Context) error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", errPanic, rec)
		}
	}()
	return job(ctx)
}
