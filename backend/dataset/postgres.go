// ABOUTME: Postgres rainfall source backed by sqlx
// ABOUTME: Reads the rainfall_observations table, deriving the year from obs_date

package dataset

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/Eswari2225/DropSaviors/backend/models"
)

const observationsQuery = `
	SELECT
		dist AS district,
		station,
		EXTRACT(YEAR FROM obs_date)::int AS year,
		value
	FROM rainfall_observations
	WHERE value IS NOT NULL
	AND value NOT IN ('NaN', 'Infinity', '-Infinity')
	AND obs_date IS NOT NULL
	ORDER BY dist, station, obs_date`

type PostgresSource struct {
	db *sqlx.DB
}

// NewPostgresSource prepares a connection pool. No connection is made
// until the first Load, so a database that is still starting is retried by
// the loader rather than failing here.
func NewPostgresSource(dsn string) (*PostgresSource, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	return &PostgresSource{db: db}, nil
}

func (s *PostgresSource) Name() string { return "postgres" }

func (s *PostgresSource) Load(ctx context.Context) ([]models.Observation, error) {
	var rows []models.Observation
	if err := s.db.SelectContext(ctx, &rows, observationsQuery); err != nil {
		return nil, fmt.Errorf("failed to query rainfall observations: %w", err)
	}
	return rows, nil
}

func (s *PostgresSource) Close() error {
	return s.db.Close()
}
