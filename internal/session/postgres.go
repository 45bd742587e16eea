package session

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// PostgresKV stores sessions in the sessions table created by the embedded migrations.
type PostgresKV struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewPostgresKV wraps an open pool.
func NewPostgresKV(db *sqlx.DB) *PostgresKV {
	return &PostgresKV{db: db, now: time.Now}
}

func (p *PostgresKV) Get(ctx context.Context, id string) ([]byte, error) {
	var data []byte
	err := p.db.GetContext(ctx, &data, `SELECT data FROM sessions WHERE id = $1 AND expires_at > $2`, id, p.now().UTC())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return data, err
}

func (p *PostgresKV) Set(ctx context.Context, id string, value []byte, ttl time.Duration) error {
	_, err := p.db.ExecContext(ctx, `INSERT INTO sessions (id, data, expires_at) VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, expires_at = EXCLUDED.expires_at`, id, value, p.now().UTC().Add(ttl))
	return err
}

func (p *PostgresKV) Delete(ctx context.Context, id string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

func (p *PostgresKV) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// PurgeExpired deletes rows past their expiry and returns how many were removed.
func (p *PostgresKV) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := p.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, p.now().UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
