// Package warehouse loads finished price tables into SQLite using a
// staging-table swap so readers never see a half-written table.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/andresgonzalez1997/pricefeed/internal/models"
)

// SQLiteWarehouse implements table uploads against a SQLite database.
type SQLiteWarehouse struct {
	db    *sql.DB
	table string
}

// NewSQLiteWarehouse opens or creates a SQLite database at dbPath.
// Parent directories are created if they do not exist. table is the
// live table name every upload replaces.
func NewSQLiteWarehouse(dbPath, table string) (*SQLiteWarehouse, error) {
	if table == "" {
		return nil, fmt.Errorf("warehouse table name is required")
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	return &SQLiteWarehouse{db: db, table: table}, nil
}

// Table returns the live table name.
func (w *SQLiteWarehouse) Table() string {
	return w.table
}

// Upload creates a staging table shaped like tbl, loads every row into
// it inside a transaction, then swaps it in as the live table. The live
// table is replaced even when tbl has zero rows. On any failure the
// staging table is dropped and the live table is left untouched.
func (w *SQLiteWarehouse) Upload(ctx context.Context, tbl *models.Table) (int64, error) {
	staging := stagingName(w.table)

	if err := w.createStaging(ctx, staging, tbl.Columns); err != nil {
		return 0, err
	}

	count, err := w.loadStaging(ctx, staging, tbl)
	if err != nil {
		w.dropTable(staging)
		return 0, err
	}

	if err := w.swap(ctx, staging); err != nil {
		w.dropTable(staging)
		return 0, err
	}
	return count, nil
}

// Count returns the number of rows in the live table, or zero when no
// upload has happened yet.
func (w *SQLiteWarehouse) Count(ctx context.Context) (int64, error) {
	var count int64
	err := w.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM %s`, quoteIdent(w.table)),
	).Scan(&count)
	if err != nil {
		if strings.Contains(err.Error(), "no such table") {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}

// Close closes the database connection.
func (w *SQLiteWarehouse) Close() error {
	return w.db.Close()
}

func (w *SQLiteWarehouse) createStaging(ctx context.Context, staging string, columns models.Schema) error {
	defs := make([]string, len(columns))
	for i, col := range columns {
		sqlType := "TEXT"
		if col.Kind == models.KindNumeric {
			sqlType = "REAL"
		}
		defs[i] = fmt.Sprintf("%s %s", quoteIdent(col.Name), sqlType)
	}
	stmt := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(staging), strings.Join(defs, ", "))
	if _, err := w.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("failed to create staging table: %w", err)
	}
	return nil
}

func (w *SQLiteWarehouse) loadStaging(ctx context.Context, staging string, tbl *models.Table) (int64, error) {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(tbl.Columns)), ", ")
	stmt, err := tx.PrepareContext(ctx,
		fmt.Sprintf("INSERT INTO %s VALUES (%s)", quoteIdent(staging), placeholders),
	)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, rec := range tbl.Rows {
		args := make([]interface{}, len(rec))
		for j, v := range rec {
			args[j] = driverValue(v)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int64(len(tbl.Rows)), nil
}

// swap replaces the live table with staging in one transaction.
func (w *SQLiteWarehouse) swap(ctx context.Context, staging string) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdent(w.table)),
	); err != nil {
		return fmt.Errorf("failed to drop live table: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf("ALTER TABLE %s RENAME TO %s", quoteIdent(staging), quoteIdent(w.table)),
	); err != nil {
		return fmt.Errorf("failed to swap staging table: %w", err)
	}
	return tx.Commit()
}

func (w *SQLiteWarehouse) dropTable(name string) {
	_, _ = w.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdent(name)))
}

func driverValue(v models.Value) interface{} {
	if v.Null {
		return nil
	}
	if v.Kind == models.KindNumeric {
		return v.Number
	}
	return v.Text
}

func stagingName(table string) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("%s_staging_%s_%d", table, suffix[:12], time.Now().Unix())
}

// quoteIdent quotes a SQL identifier. Column and table names come from
// layout config, not user input, but quoting keeps spaces and keywords
// harmless.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
