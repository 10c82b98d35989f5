package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// users is owned by the account service; it is created here only so a fresh
// database can run the alert tables.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         uuid PRIMARY KEY,
	username   text NOT NULL UNIQUE,
	created_at timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS alerts (
	id              uuid PRIMARY KEY,
	user_id         uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	type            text NOT NULL CHECK (type IN ('police','roadwork','obstacle','accident','fire','traffic','blocked_road')),
	lat             double precision NOT NULL CHECK (lat BETWEEN -90 AND 90),
	lng             double precision NOT NULL CHECK (lng BETWEEN -180 AND 180),
	severity        integer NOT NULL DEFAULT 1 CHECK (severity BETWEEN 1 AND 5),
	description     text,
	confirmed_count integer NOT NULL DEFAULT 0 CHECK (confirmed_count >= 0),
	dismissed_count integer NOT NULL DEFAULT 0 CHECK (dismissed_count >= 0),
	is_active       boolean NOT NULL DEFAULT true,
	created_at      timestamptz NOT NULL,
	updated_at      timestamptz NOT NULL,
	expires_at      timestamptz
);

CREATE INDEX IF NOT EXISTS alerts_lat_lng_idx ON alerts (lat, lng);
CREATE INDEX IF NOT EXISTS alerts_active_idx ON alerts (is_active, expires_at);
CREATE INDEX IF NOT EXISTS alerts_user_created_idx ON alerts (user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS alert_confirmations (
	id                uuid PRIMARY KEY,
	alert_id          uuid NOT NULL REFERENCES alerts(id) ON DELETE CASCADE,
	user_id           uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	confirmation_type text NOT NULL CHECK (confirmation_type IN ('confirmed','dismissed','not_there')),
	comment           text,
	created_at        timestamptz NOT NULL,
	UNIQUE (alert_id, user_id)
);

CREATE INDEX IF NOT EXISTS alert_confirmations_alert_idx ON alert_confirmations (alert_id, created_at);
`

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
