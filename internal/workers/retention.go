package workers

//go:generate mockgen -source=retention.go -destination=mocks/mock.go

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/nikicasio/traffic-alert-app/internal/config"
)

type Purger interface {
	PurgeExpired(ctx context.Context, keep time.Duration) (int64, error)
}

// Retention periodically removes alerts whose expiry passed more than keep ago.
type Retention struct {
	logger  *slog.Logger
	purger  Purger
	keep    time.Duration
	timeout time.Duration
	cron    *cron.Cron
}

func NewRetention(logger *slog.Logger, purger Purger, cfg config.RetentionConfig) (*Retention, error) {
	const op = "workers.NewRetention"

	r := &Retention{
		logger:  logger,
		purger:  purger,
		keep:    cfg.Keep,
		timeout: time.Minute,
	}
	r.cron = cron.New(cron.WithChain(cron.Recover(cronLogger{logger})))

	if _, err := r.cron.AddFunc(cfg.Schedule, r.runOnce); err != nil {
		return nil, fmt.Errorf("%s: schedule %q: %w", op, cfg.Schedule, err)
	}
	return r, nil
}

// Run blocks until ctx is done, then waits for a running purge to finish.
func (r *Retention) Run(ctx context.Context) {
	r.cron.Start()
	r.logger.Info("retention worker started", slog.Duration("keep", r.keep))

	<-ctx.Done()

	<-r.cron.Stop().Done()
	r.logger.Info("retention worker stopped")
}

func (r *Retention) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if _, err := r.Purge(ctx); err != nil {
		r.logger.Error("retention purge failed", slog.Any("error", err))
	}
}

func (r *Retention) Purge(ctx context.Context) (int64, error) {
	start := time.Now()
	n, err := r.purger.PurgeExpired(ctx, r.keep)
	if err != nil {
		return 0, err
	}
	r.logger.Info("expired alerts purged",
		slog.Int64("deleted", n),
		slog.Duration("latency", time.Since(start)),
	)
	return n, nil
}

// cronLogger routes cron's own messages into slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
