package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/rewired-gh/launchdash/internal/models"

	_ "modernc.org/sqlite"
)

// loadSQLite reads launch records from table in the SQLite database at path.
// The table must carry columns named exactly like the delimited header.
func loadSQLite(ctx context.Context, path, table string) ([]models.LaunchRecord, error) {
	if strings.TrimSpace(table) == "" {
		return nil, fmt.Errorf("sqlite table name is required")
	}
	// sql.Open would silently create a missing database
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=query_only(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	columns, err := tableColumns(ctx, db, table)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %q not found", table)
	}
	for _, col := range RequiredColumns {
		if !columns[col] {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	query := fmt.Sprintf("SELECT %s, %s, %s, %s FROM %s ORDER BY rowid",
		quoteIdent(ColumnLaunchSite),
		quoteIdent(ColumnPayloadMass),
		quoteIdent(ColumnClass),
		quoteIdent(ColumnBoosterCategory),
		quoteIdent(table),
	)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query launches: %w", err)
	}
	defer rows.Close()

	var records []models.LaunchRecord
	for rows.Next() {
		var (
			site    string
			mass    float64
			class   float64
			booster sql.NullString
		)
		if err := rows.Scan(&site, &mass, &class, &booster); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", len(records)+1, err)
		}
		if class != float64(int(class)) {
			return nil, fmt.Errorf("row %d: invalid %s %v: not an integer", len(records)+1, ColumnClass, class)
		}
		records = append(records, models.LaunchRecord{
			LaunchSite:             strings.TrimSpace(site),
			PayloadMassKg:          mass,
			OutcomeClass:           int(class),
			BoosterVersionCategory: strings.TrimSpace(booster.String),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return records, nil
}

func tableColumns(ctx context.Context, db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect table %q: %w", table, err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column name: %w", err)
		}
		columns[name] = true
	}
	return columns, rows.Err()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
