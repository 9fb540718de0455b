package refdata

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
)

// Migration is a schema change applied once, in ID order
type Migration struct {
	ID int
	Up func(ctx context.Context, tx *sql.Tx) error
}

func execMigration(query string) func(ctx context.Context, tx *sql.Tx) error {
	return func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query)
		return err
	}
}

var migrations = []Migration{
	{
		ID: 1,
		Up: execMigration(`
			CREATE TABLE banks (
				country TEXT NOT NULL,
				code INTEGER NOT NULL,
				bic TEXT NOT NULL DEFAULT '',
				name TEXT NOT NULL DEFAULT '',
				address TEXT NOT NULL DEFAULT '',
				PRIMARY KEY (country, code)
			)
		`),
	},
	{
		ID: 2,
		Up: execMigration(`
			CREATE TABLE rates (
				currency TEXT PRIMARY KEY,
				to_base TEXT NOT NULL,
				from_base TEXT NOT NULL
			)
		`),
	},
	{
		ID: 3,
		Up: execMigration(`
			CREATE TABLE patterns (
				country TEXT PRIMARY KEY,
				label TEXT NOT NULL,
				pattern TEXT NOT NULL
			)
		`),
	},
}

// ApplyMigrations applies every migration not yet recorded in the migrations table
func ApplyMigrations(ctx context.Context, db *sql.DB, logger *log.Logger) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	rows, err := db.QueryContext(ctx, `SELECT id FROM migrations`)
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}
	applied := make(map[int]bool)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		applied[id] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.ID] {
			continue
		}
		logger.Debug("Applying migration", "id", m.ID)

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if err := m.Up(ctx, tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", m.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO migrations (id) VALUES (?)`, m.ID); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.ID, err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}

	return nil
}
