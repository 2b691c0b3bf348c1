package dataset

import (
	"context"
	"fmt"
	"io"
	"regexp"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// PostgresSource reads records from a table with the columns sector, region,
// impact, latitude and longitude. Values are selected as text and go through
// the same coercion as file rows.
type PostgresSource struct {
	db    *sqlx.DB
	table string
}

type postgresRow struct {
	Sector    string `db:"sector"`
	Region    string `db:"region"`
	Impact    string `db:"impact"`
	Latitude  string `db:"latitude"`
	Longitude string `db:"longitude"`
}

func NewPostgresSource(db *sqlx.DB, table string) (*PostgresSource, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &PostgresSource{db: db, table: table}, nil
}

// OpenPostgresSource connects with the lib/pq driver.
func OpenPostgresSource(ctx context.Context, dsn, table string) (*PostgresSource, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	src, err := NewPostgresSource(db, table)
	if err != nil {
		db.Close()
		return nil, err
	}
	return src, nil
}

func (s *PostgresSource) Name() string {
	return "postgres:" + s.table
}

func (s *PostgresSource) Close() error {
	return s.db.Close()
}

func (s *PostgresSource) Fingerprint(ctx context.Context) (string, error) {
	query := fmt.Sprintf(
		`SELECT md5(COALESCE(string_agg(t::text, '|' ORDER BY t::text), '')) FROM %s t`, s.table)

	var digest string
	if err := s.db.GetContext(ctx, &digest, query); err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", s.table, err)
	}
	return s.Name() + ":" + digest, nil
}

func (s *PostgresSource) Load(ctx context.Context) (*Snapshot, error) {
	fingerprint, err := s.Fingerprint(ctx)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT
			COALESCE(sector::text, '')    AS sector,
			COALESCE(region::text, '')    AS region,
			COALESCE(impact::text, '')    AS impact,
			COALESCE(latitude::text, '')  AS latitude,
			COALESCE(longitude::text, '') AS longitude
		FROM %s`, s.table)

	var rows []postgresRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}

	header := []string{"sector", "region", "impact", "latitude", "longitude"}
	i := 0
	res, err := parseRows(header, func() ([]string, error) {
		if i >= len(rows) {
			return nil, io.EOF
		}
		r := rows[i]
		i++
		return []string{r.Sector, r.Region, r.Impact, r.Latitude, r.Longitude}, nil
	})
	if err != nil {
		return nil, err
	}
	return newSnapshot(s.Name(), fingerprint, res), nil
}
