package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"texas-market-sim/models"
	"texas-market-sim/utils"
)

const seriesTable = "region_series"

// PostgresWriter mirrors exported series into PostgreSQL, one row per
// (region, year).
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, waits for it to accept
// pings using retry, runs the schema migration and returns a ready writer.
func NewPostgresWriter(ctx context.Context, dsn string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.DoContext(ctx, "postgres ping", db.PingContext); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

// columnName maps an indicator header to its SQL column.
func columnName(ind models.Indicator) string {
	return strings.ToLower(ind.String())
}

func indicatorColumns() []string {
	inds := models.Indicators()
	cols := make([]string, len(inds))
	for i, ind := range inds {
		cols[i] = columnName(ind)
	}
	return cols
}

func createTableSQL() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", seriesTable)
	b.WriteString("\tregion VARCHAR(100) NOT NULL,\n")
	b.WriteString("\tyear   INTEGER      NOT NULL,\n")
	for _, c := range indicatorColumns() {
		fmt.Fprintf(&b, "\t%s DOUBLE PRECISION NOT NULL DEFAULT 0,\n", c)
	}
	b.WriteString("\tcreated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),\n")
	b.WriteString("\tPRIMARY KEY (region, year)\n);\n")
	fmt.Fprintf(&b, "CREATE INDEX IF NOT EXISTS idx_%s_year ON %s(year);", seriesTable, seriesTable)
	return b.String()
}

func (pw *PostgresWriter) migrate(ctx context.Context) error {
	_, err := pw.db.ExecContext(ctx, createTableSQL())
	return err
}

// Write replaces the stored rows of region with s in one transaction.
func (pw *PostgresWriter) Write(region string, s models.Series) error {
	tx, err := pw.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM "+seriesTable+" WHERE region = $1", region); err != nil {
		return fmt.Errorf("postgres: clear %q: %w", region, err)
	}

	const batchSize = 50
	for i := 0; i < len(s); i += batchSize {
		end := min(i+batchSize, len(s))
		query, args := insertBatch(region, s[i:end])
		if _, err := tx.Exec(query, args...); err != nil {
			return fmt.Errorf("postgres: insert batch: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

// insertBatch builds one multi-row INSERT for batch with $n placeholders.
func insertBatch(region string, batch models.Series) (string, []any) {
	cols := indicatorColumns()
	width := len(cols) + 2

	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*width)

	for idx, r := range batch {
		base := idx * width
		ph := make([]string, width)
		for j := range ph {
			ph[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")

		valueArgs = append(valueArgs, region, r.Year)
		for _, v := range r.Values() {
			valueArgs = append(valueArgs, v)
		}
	}

	query := fmt.Sprintf("INSERT INTO %s (region, year, %s) VALUES %s",
		seriesTable, strings.Join(cols, ", "), strings.Join(valueStrings, ","))
	return query, valueArgs
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchSeries retrieves the stored rows of region ordered by year.
func (pw *PostgresWriter) FetchSeries(region string) (models.Series, error) {
	query := fmt.Sprintf("SELECT year, %s FROM %s WHERE region = $1 ORDER BY year",
		strings.Join(indicatorColumns(), ", "), seriesTable)

	rows, err := pw.db.Query(query, region)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch %q: %w", region, err)
	}
	defer rows.Close()

	inds := models.Indicators()
	var s models.Series
	for rows.Next() {
		var year int
		vals := make([]float64, len(inds))
		dest := make([]any, 0, len(inds)+1)
		dest = append(dest, &year)
		for i := range vals {
			dest = append(dest, &vals[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}

		r := models.NewYearRow(year)
		for i, ind := range inds {
			r.Set(ind, vals[i])
		}
		s = append(s, r)
	}
	return s, rows.Err()
}
