package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nikicasio/traffic-alert-app/internal/domain"
	"github.com/nikicasio/traffic-alert-app/pkg/e"
)

// Confirm records c and applies it to the alert counters in one transaction.
// The alert row is locked so concurrent confirmations on it serialize.
func (p *AlertRepo) Confirm(ctx context.Context, c *domain.Confirmation) (*domain.Alert, error) {
	const op = "postgres.Alert.Confirm"

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		p.logger.Error("begin tx failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			p.logger.Error("rollback failed", slog.String("op", op), slog.Any("error", err))
		}
	}()

	var a domain.Alert
	lockQuery := `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1 FOR UPDATE`
	if err := scanAlert(tx.QueryRow(ctx, lockQuery, c.AlertID), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		p.logger.Error("lock alert failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	var exists bool
	const existsQuery = `SELECT EXISTS (SELECT 1 FROM alert_confirmations WHERE alert_id = $1 AND user_id = $2)`
	if err := tx.QueryRow(ctx, existsQuery, c.AlertID, c.UserID).Scan(&exists); err != nil {
		p.logger.Error("exists check failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	if exists {
		return nil, fmt.Errorf("%s: %w", op, e.ErrDuplicateConfirmation)
	}

	const insertQuery = `
		INSERT INTO alert_confirmations (id, alert_id, user_id, confirmation_type, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := tx.Exec(ctx, insertQuery, c.ID, c.AlertID, c.UserID, string(c.Type), c.Comment, c.CreatedAt); err != nil {
		wrapped := e.WrapError(ctx, op, err)
		if errors.Is(wrapped, e.ErrUniqueViolation) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrDuplicateConfirmation)
		}
		p.logger.Error("insert confirmation failed", slog.String("op", op), slog.Any("error", err))
		return nil, wrapped
	}

	a.ApplyConfirmation(c.Type)
	a.UpdatedAt = c.CreatedAt

	const updateQuery = `
		UPDATE alerts
		SET confirmed_count = $2,
			dismissed_count = $3,
			is_active       = $4,
			updated_at      = $5
		WHERE id = $1
	`
	if _, err := tx.Exec(ctx, updateQuery, a.ID, a.ConfirmedCount, a.DismissedCount, a.IsActive, a.UpdatedAt); err != nil {
		p.logger.Error("update counters failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		p.logger.Error("commit failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return &a, nil
}

// LoadConfirmationsFor fetches the confirmations of all given alerts in one query.
func (p *AlertRepo) LoadConfirmationsFor(ctx context.Context, alertIDs []uuid.UUID) (map[uuid.UUID][]domain.Confirmation, error) {
	const op = "postgres.Alert.LoadConfirmationsFor"

	out := make(map[uuid.UUID][]domain.Confirmation, len(alertIDs))
	if len(alertIDs) == 0 {
		return out, nil
	}

	const query = `
		SELECT id, alert_id, user_id, confirmation_type, comment, created_at
		FROM alert_confirmations
		WHERE alert_id = ANY($1)
		ORDER BY created_at ASC
	`

	rows, err := p.pool.Query(ctx, query, alertIDs)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			c   domain.Confirmation
			typ string
		)
		if err := rows.Scan(&c.ID, &c.AlertID, &c.UserID, &typ, &c.Comment, &c.CreatedAt); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		c.Type = domain.ConfirmationType(typ)
		out[c.AlertID] = append(out[c.AlertID], c)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return out, nil
}
