package worker

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Refresher reloads a reference table.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// CurrencyWorker refreshes the currency table on a fixed schedule.
type CurrencyWorker struct {
	refresher Refresher
	interval  time.Duration
	timeout   time.Duration
	scheduler *gocron.Scheduler
	logger    *zap.Logger
}

// NewCurrencyWorker creates the worker; the first run happens on Start.
func NewCurrencyWorker(refresher Refresher, interval, timeout time.Duration, logger *zap.Logger) *CurrencyWorker {
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &CurrencyWorker{
		refresher: refresher,
		interval:  interval,
		timeout:   timeout,
		scheduler: gocron.NewScheduler(time.UTC),
		logger:    logger,
	}
}

// Start schedules the refresh job and runs it immediately.
func (w *CurrencyWorker) Start() error {
	if _, err := w.scheduler.Every(w.interval).StartImmediately().Do(w.run); err != nil {
		return err
	}
	w.scheduler.StartAsync()
	w.logger.Info("currency refresh scheduled", zap.Duration("interval", w.interval))
	return nil
}

// Stop halts the scheduler.
func (w *CurrencyWorker) Stop() {
	w.scheduler.Stop()
}

func (w *CurrencyWorker) run() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()
	if err := w.refresher.Refresh(ctx); err != nil {
		w.logger.Warn("scheduled currency refresh failed", zap.Error(err))
	}
}
