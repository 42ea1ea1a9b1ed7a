package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/LouisDeconinck/ai-real-estate-agent/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresRepository persists pipeline runs and their artifacts
type PostgresRepository struct {
	db *sqlx.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS agent_runs (
	id              BIGSERIAL PRIMARY KEY,
	search          TEXT NOT NULL,
	parameters      JSONB,
	search_url      TEXT NOT NULL DEFAULT '',
	properties      JSONB,
	recommendations JSONB,
	summary         TEXT NOT NULL DEFAULT '',
	report          TEXT NOT NULL DEFAULT '',
	total_tokens    INTEGER NOT NULL DEFAULT 0,
	took_ms         BIGINT NOT NULL DEFAULT 0,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// NewPostgresRepository creates a new PostgreSQL repository and ensures
// the run table exists
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// SaveRun stores a completed pipeline run and returns its assigned ID
func (r *PostgresRepository) SaveRun(ctx context.Context, result *model.RunResult) (int64, error) {
	parameters, err := model.MarshalDocument(result.Parameters)
	if err != nil {
		return 0, fmt.Errorf("failed to encode parameters: %w", err)
	}
	properties, err := model.MarshalDocument(result.Properties)
	if err != nil {
		return 0, fmt.Errorf("failed to encode properties: %w", err)
	}
	recommendations, err := model.MarshalDocument(result.Recommendations)
	if err != nil {
		return 0, fmt.Errorf("failed to encode recommendations: %w", err)
	}

	record := model.RunRecord{
		Search:          result.Search,
		Parameters:      parameters,
		SearchURL:       result.SearchURL,
		Properties:      properties,
		Recommendations: recommendations,
		Summary:         result.Summary,
		Report:          result.Report,
		TotalTokens:     result.TotalTokens,
		Took:            result.Took,
	}

	query := `
		INSERT INTO agent_runs
			(search, parameters, search_url, properties, recommendations, summary, report, total_tokens, took_ms)
		VALUES
			(:search, :parameters, :search_url, :properties, :recommendations, :summary, :report, :total_tokens, :took_ms)
		RETURNING id`

	rows, err := r.db.NamedQueryContext(ctx, query, record)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	defer rows.Close()

	var id int64
	if rows.Next() {
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to read run id: %w", err)
		}
	}

	return id, nil
}

// GetRun retrieves one persisted run by ID, or nil when it does not exist
func (r *PostgresRepository) GetRun(ctx context.Context, id int64) (*model.RunRecord, error) {
	var record model.RunRecord
	err := r.db.GetContext(ctx, &record, `SELECT * FROM agent_runs WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &record, nil
}

// ListRuns returns the most recent runs without their bulky artifacts
func (r *PostgresRepository) ListRuns(ctx context.Context, limit int) ([]model.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	records := []model.RunRecord{}
	err := r.db.SelectContext(ctx, &records, `
		SELECT id, search, parameters, search_url, summary, '' AS report,
		       NULL AS properties, NULL AS recommendations,
		       total_tokens, took_ms, created_at
		FROM agent_runs
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return records, nil
}
