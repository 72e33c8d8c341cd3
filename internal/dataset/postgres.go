package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Skufu/GoSymptom/internal/lexicon"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS symptom_conditions (
	symptom        TEXT NOT NULL,
	condition      TEXT NOT NULL,
	risk_level     TEXT NOT NULL,
	recommendation TEXT NOT NULL,
	PRIMARY KEY (symptom, condition)
)`

const upsertRowSQL = `
INSERT INTO symptom_conditions (symptom, condition, risk_level, recommendation)
VALUES ($1, $2, $3, $4)
ON CONFLICT (symptom, condition)
DO UPDATE SET risk_level = EXCLUDED.risk_level, recommendation = EXCLUDED.recommendation`

const selectRowsSQL = `
SELECT symptom, condition, risk_level, recommendation
FROM symptom_conditions
ORDER BY condition, symptom`

// PostgresStore reads dataset rows from the symptom_conditions table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// Connect opens and pings a pool for url and creates the table if missing.
func Connect(ctx context.Context, url string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Ping reports database reachability.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Seed creates the table if needed and upserts rows in one transaction.
func (s *PostgresStore) Seed(ctx context.Context, rows []Row) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, createTableSQL); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
		batch := &pgx.Batch{}
		for _, r := range rows {
			batch.Queue(upsertRowSQL, string(r.Symptom), string(r.Condition), r.RiskLevel, r.Recommendation)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("upsert rows: %w", err)
		}
		return nil
	})
}

// Rows implements Store.
func (s *PostgresStore) Rows(ctx context.Context) ([]Row, error) {
	rows, err := s.pool.Query(ctx, selectRowsSQL)
	if err != nil {
		return nil, fmt.Errorf("query rows: %w", err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Row, error) {
		var r Row
		var symptom, cond string
		if err := row.Scan(&symptom, &cond, &r.RiskLevel, &r.Recommendation); err != nil {
			return Row{}, err
		}
		r.Symptom = lexicon.Symptom(symptom)
		r.Condition = lexicon.Condition(cond)
		return r, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan rows: %w", err)
	}
	return out, nil
}
