package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pulsewatch/internal/apperrors"
	"pulsewatch/internal/model"
)

type PostgresStorage struct {
	db *pgxpool.Pool
}

// NewPostgresStorage wraps pool and ensures the schema exists.
func NewPostgresStorage(ctx context.Context, pool *pgxpool.Pool) (*PostgresStorage, error) {
	ps := &PostgresStorage{db: pool}
	if err := ps.migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return ps, nil
}

// migrate ensures the database schema is created. The unique index on
// validators(ip) is what makes concurrent find-or-create converge on a
// single row.
func (ps *PostgresStorage) migrate(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS websites (
		id       TEXT PRIMARY KEY,
		url      TEXT NOT NULL,
		user_id  TEXT NOT NULL,
		disabled BOOLEAN NOT NULL DEFAULT FALSE
	);
	CREATE INDEX IF NOT EXISTS idx_websites_user_id ON websites (user_id);

	CREATE TABLE IF NOT EXISTS validators (
		id         TEXT PRIMARY KEY,
		public_key TEXT NOT NULL,
		location   TEXT NOT NULL,
		ip         TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS website_ticks (
		id           TEXT PRIMARY KEY,
		website_id   TEXT NOT NULL REFERENCES websites(id),
		validator_id TEXT NOT NULL REFERENCES validators(id),
		status       TEXT NOT NULL,
		latency      DOUBLE PRECISION NOT NULL CHECK (latency >= 0),
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_website_ticks_website_created
		ON website_ticks (website_id, created_at DESC);
	`
	_, err := ps.db.Exec(ctx, schema)
	return err
}

func (ps *PostgresStorage) Ping(ctx context.Context) error {
	return ps.db.Ping(ctx)
}

func (ps *PostgresStorage) CreateWebsite(ctx context.Context, w model.Website) error {
	const query = `
		INSERT INTO websites (id, url, user_id, disabled)
		VALUES ($1, $2, $3, $4)
	`

	_, err := ps.db.Exec(ctx, query, w.ID, w.URL, w.UserID, w.Disabled)
	if err != nil {
		return fmt.Errorf("failed to save website: %w", err)
	}
	return nil
}

func (ps *PostgresStorage) FindWebsite(ctx context.Context, websiteID, userID string) (model.Website, error) {
	const query = `
		SELECT id, url, user_id, disabled
		FROM websites
		WHERE id = $1 AND user_id = $2 AND disabled = FALSE
	`

	var w model.Website
	err := ps.db.QueryRow(ctx, query, websiteID, userID).Scan(
		&w.ID, &w.URL, &w.UserID, &w.Disabled,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Website{}, apperrors.ErrWebsiteNotFound
		}
		return model.Website{}, fmt.Errorf("find website failed: %w", err)
	}
	return w, nil
}

func (ps *PostgresStorage) ListWebsites(ctx context.Context, userID string) ([]model.Website, error) {
	const query = `
		SELECT id, url, user_id, disabled
		FROM websites
		WHERE user_id = $1 AND disabled = FALSE
	`

	rows, err := ps.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var websites []model.Website
	for rows.Next() {
		var w model.Website
		if err := rows.Scan(&w.ID, &w.URL, &w.UserID, &w.Disabled); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		websites = append(websites, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}
	return websites, nil
}

func (ps *PostgresStorage) DisableWebsite(ctx context.Context, websiteID, userID string) error {
	const query = `
		UPDATE websites
		SET disabled = TRUE
		WHERE id = $1 AND user_id = $2
	`

	cmdTag, err := ps.db.Exec(ctx, query, websiteID, userID)
	if err != nil {
		return fmt.Errorf("failed to disable website: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrWebsiteNotFound
	}
	return nil
}

func (ps *PostgresStorage) FindOrCreateValidator(ctx context.Context, v model.Validator) (model.Validator, error) {
	const sel = `
		SELECT id, public_key, location, ip
		FROM validators
		WHERE ip = $1
	`

	var out model.Validator
	err := ps.db.QueryRow(ctx, sel, v.IP).Scan(&out.ID, &out.PublicKey, &out.Location, &out.IP)
	if err == nil {
		return out, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return model.Validator{}, fmt.Errorf("find validator failed: %w", err)
	}

	// A concurrent insert on the same ip loses the conflict and reads the
	// winner back below.
	const ins = `
		INSERT INTO validators (id, public_key, location, ip)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (ip) DO NOTHING
	`
	if _, err := ps.db.Exec(ctx, ins, v.ID, v.PublicKey, v.Location, v.IP); err != nil {
		return model.Validator{}, fmt.Errorf("failed to create validator: %w", err)
	}

	err = ps.db.QueryRow(ctx, sel, v.IP).Scan(&out.ID, &out.PublicKey, &out.Location, &out.IP)
	if err != nil {
		return model.Validator{}, fmt.Errorf("find validator after insert failed: %w", err)
	}
	return out, nil
}

func (ps *PostgresStorage) CreateTick(ctx context.Context, t model.WebsiteTick) error {
	const query = `
		INSERT INTO website_ticks (id, website_id, validator_id, status, latency, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := ps.db.Exec(ctx, query, t.ID, t.WebsiteID, t.ValidatorID, t.Status, t.Latency, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save tick: %w", err)
	}
	return nil
}

func (ps *PostgresStorage) ListRecentTicks(ctx context.Context, websiteID string, limit int) ([]model.WebsiteTick, error) {
	const query = `
		SELECT id, website_id, validator_id, status, latency, created_at
		FROM website_ticks
		WHERE website_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := ps.db.Query(ctx, query, websiteID, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var ticks []model.WebsiteTick
	for rows.Next() {
		var t model.WebsiteTick
		if err := rows.Scan(&t.ID, &t.WebsiteID, &t.ValidatorID, &t.Status, &t.Latency, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		ticks = append(ticks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}
	return ticks, nil
}
