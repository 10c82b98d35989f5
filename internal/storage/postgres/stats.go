package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nikicasio/traffic-alert-app/internal/domain"
	"github.com/nikicasio/traffic-alert-app/pkg/e"
)

type StatsRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewStats(pool *pgxpool.Pool, logger *slog.Logger) *StatsRepo {
	return &StatsRepo{pool: pool, logger: logger}
}

// AlertStats counts alerts and confirmations. since marks the start of "today".
func (p *StatsRepo) AlertStats(ctx context.Context, now, since time.Time) (domain.AlertStats, error) {
	const op = "postgres.Stats.AlertStats"

	const query = `
		SELECT
			(SELECT COUNT(*) FROM alerts),
			(SELECT COUNT(*) FROM alerts WHERE is_active AND (expires_at IS NULL OR expires_at > $1)),
			(SELECT COUNT(*) FROM alerts WHERE created_at >= $2),
			(SELECT COUNT(*) FROM alert_confirmations WHERE created_at >= $2)
	`

	var st domain.AlertStats
	if err := p.pool.QueryRow(ctx, query, now, since).Scan(
		&st.TotalAlerts,
		&st.ActiveAlerts,
		&st.AlertsToday,
		&st.ConfirmationsToday,
	); err != nil {
		p.logger.Error("db queryrow scan failed",
			slog.String("op", op),
			slog.Any("error", err),
		)
		return domain.AlertStats{}, e.WrapError(ctx, op, err)
	}

	return st, nil
}
