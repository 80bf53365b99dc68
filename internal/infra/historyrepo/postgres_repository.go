package historyrepo

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/shelter-console/internal/domain/submission"
)

const schema = `
	CREATE TABLE IF NOT EXISTS prediction_submissions (
		id               UUID PRIMARY KEY,
		submitted_at     TIMESTAMPTZ NOT NULL,
		date             TEXT NOT NULL,
		sector           TEXT NOT NULL,
		min_temp_celsius DOUBLE PRECISION NOT NULL,
		outcome          TEXT NOT NULL,
		demand           BIGINT,
		message          TEXT NOT NULL DEFAULT '',
		latency_ms       BIGINT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS prediction_submissions_submitted_at_idx
		ON prediction_submissions (submitted_at DESC);
`

// PostgresRepository implements submission.HistoryRepository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the history table when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, schema)
	return err
}

const insertSubmission = `
	INSERT INTO prediction_submissions
		(id, submitted_at, date, sector, min_temp_celsius, outcome, demand, message, latency_ms)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

// Save inserts one submission row.
func (r *PostgresRepository) Save(ctx context.Context, record submission.Record) error {
	_, err := r.pool.Exec(ctx, insertSubmission, insertArgs(record)...)
	return err
}

// insertArgs lines record up with insertSubmission's placeholders. A missing
// demand is stored as NULL.
func insertArgs(record submission.Record) []any {
	var demand sql.NullInt64
	if record.Demand != nil {
		demand = sql.NullInt64{Int64: int64(*record.Demand), Valid: true}
	}
	return []any{
		record.ID,
		record.SubmittedAt,
		record.Request.Date,
		record.Request.Sector,
		record.Request.MinTempCelsius,
		string(record.Outcome),
		demand,
		record.Message,
		record.LatencyMs,
	}
}

// Recent returns up to limit rows, newest first.
func (r *PostgresRepository) Recent(ctx context.Context, limit int) ([]submission.Record, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, submitted_at, date, sector, min_temp_celsius, outcome, demand, message, latency_ms
		FROM prediction_submissions
		ORDER BY submitted_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []submission.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (submission.Record, error) {
	var (
		record  submission.Record
		outcome string
		demand  sql.NullInt64
	)
	if err := row.Scan(
		&record.ID,
		&record.SubmittedAt,
		&record.Request.Date,
		&record.Request.Sector,
		&record.Request.MinTempCelsius,
		&outcome,
		&demand,
		&record.Message,
		&record.LatencyMs,
	); err != nil {
		return submission.Record{}, err
	}
	record.Outcome = submission.Status(outcome)
	if demand.Valid {
		value := int(demand.Int64)
		record.Demand = &value
	}
	return record, nil
}

var _ submission.HistoryRepository = (*PostgresRepository)(nil)
