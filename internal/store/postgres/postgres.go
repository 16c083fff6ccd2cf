package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/loykin/hypnoctl/internal/store"
)

// DB implements store.Store for PostgreSQL via the pgx stdlib driver.

type DB struct {
	db *sql.DB
}

func New(dsn string) (*DB, error) {
	d, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	return &DB{db: d}, nil
}

func (p *DB) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS lifecycle_journal(
			id BIGSERIAL PRIMARY KEY,
			service TEXT NOT NULL,
			op TEXT NOT NULL,
			state TEXT NOT NULL,
			pid INTEGER NOT NULL,
			msg TEXT NOT NULL,
			occurred_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_lifecycle_journal_service ON lifecycle_journal(service);`,
		`CREATE INDEX IF NOT EXISTS idx_lifecycle_journal_occurred ON lifecycle_journal(occurred_at);`,
	}
	for _, q := range stmts {
		if _, err := p.db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (p *DB) Close() error { return p.db.Close() }

func (p *DB) Append(ctx context.Context, rec store.Record) error {
	if rec.OccurredAt.IsZero() {
		rec.OccurredAt = time.Now().UTC()
	}
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO lifecycle_journal(service, op, state, pid, msg, occurred_at)
		VALUES($1, $2, $3, $4, $5, $6);`,
		rec.Service, rec.Op, rec.State, rec.PID, rec.Msg, rec.OccurredAt.UTC())
	return err
}

func (p *DB) Recent(ctx context.Context, service string, limit int) ([]store.Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, service, op, state, pid, msg, occurred_at
		FROM lifecycle_journal
		WHERE service=$1
		ORDER BY occurred_at DESC, id DESC
		LIMIT $2;`, service, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	out := make([]store.Record, 0)
	for rows.Next() {
		var r store.Record
		if err := rows.Scan(&r.ID, &r.Service, &r.Op, &r.State, &r.PID, &r.Msg, &r.OccurredAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (p *DB) PurgeOlderThan(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := p.db.ExecContext(ctx, `DELETE FROM lifecycle_journal WHERE occurred_at < $1;`, olderThan.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
