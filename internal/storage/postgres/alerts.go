package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nikicasio/traffic-alert-app/internal/domain"
	"github.com/nikicasio/traffic-alert-app/pkg/e"
)

const alertColumns = `id, user_id, type, lat, lng, severity, description,
	confirmed_count, dismissed_count, is_active, created_at, updated_at, expires_at`

type AlertRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewAlertRepo(pool *pgxpool.Pool, logger *slog.Logger) *AlertRepo {
	return &AlertRepo{pool: pool, logger: logger}
}

func scanAlert(row pgx.Row, a *domain.Alert) error {
	var typ string
	if err := row.Scan(
		&a.ID,
		&a.UserID,
		&typ,
		&a.Lat,
		&a.Lng,
		&a.Severity,
		&a.Description,
		&a.ConfirmedCount,
		&a.DismissedCount,
		&a.IsActive,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.ExpiresAt,
	); err != nil {
		return err
	}
	a.Type = domain.AlertType(typ)
	return nil
}

func (p *AlertRepo) Create(ctx context.Context, alert *domain.Alert) error {
	const op = "postgres.Alert.Create"

	query := `
		INSERT INTO alerts (` + alertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	if alert.ID == uuid.Nil {
		alert.ID = uuid.New()
	}
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now().UTC()
	}
	if alert.UpdatedAt.IsZero() {
		alert.UpdatedAt = alert.CreatedAt
	}
	if alert.Severity == 0 {
		alert.Severity = domain.DefaultSeverity
	}

	_, err := p.pool.Exec(ctx, query,
		alert.ID,
		alert.UserID,
		string(alert.Type),
		alert.Lat,
		alert.Lng,
		alert.Severity,
		alert.Description,
		alert.ConfirmedCount,
		alert.DismissedCount,
		alert.IsActive,
		alert.CreatedAt,
		alert.UpdatedAt,
		alert.ExpiresAt,
	)
	if err != nil {
		p.logger.Error("db exec failed",
			slog.String("op", op),
			slog.Any("error", err),
		)
		return e.WrapError(ctx, op, err)
	}

	return nil
}

func (p *AlertRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	const op = "postgres.Alert.Get"

	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1`

	var a domain.Alert
	if err := scanAlert(p.pool.QueryRow(ctx, query, id), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}

	return &a, nil
}

// Update writes the mutable fields of an alert.
func (p *AlertRepo) Update(ctx context.Context, alert *domain.Alert) error {
	const op = "postgres.Alert.Update"

	const query = `
		UPDATE alerts
		SET type        = $2,
			severity    = $3,
			description = $4,
			is_active   = $5,
			updated_at  = $6
		WHERE id = $1
	`

	alert.UpdatedAt = time.Now().UTC()

	cmd, err := p.pool.Exec(ctx, query,
		alert.ID,
		string(alert.Type),
		alert.Severity,
		alert.Description,
		alert.IsActive,
		alert.UpdatedAt,
	)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("id", alert.ID.String()))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}

	return nil
}

// Delete removes the alert; confirmations go with it through the foreign key.
func (p *AlertRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "postgres.Alert.Delete"

	cmd, err := p.pool.Exec(ctx, `DELETE FROM alerts WHERE id = $1`, id)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}

	return nil
}

// ListCandidates returns effectively active alerts inside the filter box.
func (p *AlertRepo) ListCandidates(ctx context.Context, f domain.AlertFilter) ([]domain.Alert, error) {
	const op = "postgres.Alert.ListCandidates"

	where, args := alertPredicate(f)
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE ` + where

	return p.list(ctx, op, query, args...)
}

// ListByUser returns every alert the user reported, newest first.
func (p *AlertRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Alert, error) {
	const op = "postgres.Alert.ListByUser"

	query := `SELECT ` + alertColumns + ` FROM alerts WHERE user_id = $1 ORDER BY created_at DESC`

	return p.list(ctx, op, query, userID)
}

// PurgeExpired deletes alerts that expired before the cutoff.
func (p *AlertRepo) PurgeExpired(ctx context.Context, before time.Time) (int64, error) {
	const op = "postgres.Alert.PurgeExpired"

	cmd, err := p.pool.Exec(ctx, `DELETE FROM alerts WHERE expires_at IS NOT NULL AND expires_at < $1`, before)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return 0, e.WrapError(ctx, op, err)
	}

	return cmd.RowsAffected(), nil
}

func (p *AlertRepo) list(ctx context.Context, op, query string, args ...any) ([]domain.Alert, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	alerts := make([]domain.Alert, 0, 16)
	for rows.Next() {
		var a domain.Alert
		if err := scanAlert(rows, &a); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return alerts, nil
}
