package refdata

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/lox/bank-accounts/internal/iban"
	"github.com/lox/bank-accounts/internal/money"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// SQLiteSource stores reference data in a SQLite database
type SQLiteSource struct {
	db     *sql.DB
	logger *log.Logger
}

// OpenSQLite opens or creates the database at path and brings its schema up to date
func OpenSQLite(ctx context.Context, path string, logger *log.Logger) (*SQLiteSource, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ApplyMigrations(ctx, db, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteSource{db: db, logger: logger}, nil
}

// Close closes the database connection
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

// Store upserts the given data in a single transaction. Patterns are keyed
// by country, so a later pattern for the same country replaces an earlier one.
func (s *SQLiteSource) Store(ctx context.Context, data *Data) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, b := range data.Banks {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO banks (country, code, bic, name, address) VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (country, code) DO UPDATE SET
				bic = excluded.bic,
				name = excluded.name,
				address = excluded.address
		`, b.Country, b.Code, b.BIC, b.Name, b.Address)
		if err != nil {
			return fmt.Errorf("failed to store bank %s-%d: %w", b.Country, b.Code, err)
		}
	}

	for _, r := range data.Rates {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO rates (currency, to_base, from_base) VALUES (?, ?, ?)
			ON CONFLICT (currency) DO UPDATE SET
				to_base = excluded.to_base,
				from_base = excluded.from_base
		`, string(r.Currency), r.ToBase.String(), r.FromBase.String())
		if err != nil {
			return fmt.Errorf("failed to store rate %s: %w", r.Currency, err)
		}
	}

	for _, p := range data.Patterns {
		country, err := patternCountry(p.Pattern)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO patterns (country, label, pattern) VALUES (?, ?, ?)
			ON CONFLICT (country) DO UPDATE SET
				label = excluded.label,
				pattern = excluded.pattern
		`, country, p.Label, p.Pattern)
		if err != nil {
			return fmt.Errorf("failed to store pattern %s: %w", p.Label, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reference data: %w", err)
	}

	s.logger.Debug("Stored reference data", "banks", len(data.Banks), "rates", len(data.Rates), "patterns", len(data.Patterns))
	return nil
}

// Banks implements Source
func (s *SQLiteSource) Banks(ctx context.Context) ([]BankRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT country, code, bic, name, address FROM banks ORDER BY country, code`)
	if err != nil {
		return nil, fmt.Errorf("failed to query banks: %w", err)
	}
	defer rows.Close()

	var banks []BankRecord
	for rows.Next() {
		var b BankRecord
		if err := rows.Scan(&b.Country, &b.Code, &b.BIC, &b.Name, &b.Address); err != nil {
			return nil, fmt.Errorf("failed to scan bank: %w", err)
		}
		banks = append(banks, b)
	}
	return banks, rows.Err()
}

// Rates implements Source
func (s *SQLiteSource) Rates(ctx context.Context) ([]RateRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT currency, to_base, from_base FROM rates ORDER BY currency`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rates: %w", err)
	}
	defer rows.Close()

	var rates []RateRecord
	for rows.Next() {
		var r RateRecord
		var code string
		if err := rows.Scan(&code, &r.ToBase, &r.FromBase); err != nil {
			return nil, fmt.Errorf("failed to scan rate: %w", err)
		}
		r.Currency = money.Currency(code)
		rates = append(rates, r)
	}
	return rates, rows.Err()
}

// Patterns implements Source
func (s *SQLiteSource) Patterns(ctx context.Context) ([]PatternRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT label, pattern FROM patterns ORDER BY country`)
	if err != nil {
		return nil, fmt.Errorf("failed to query patterns: %w", err)
	}
	defer rows.Close()

	var patterns []PatternRecord
	for rows.Next() {
		var p PatternRecord
		if err := rows.Scan(&p.Label, &p.Pattern); err != nil {
			return nil, fmt.Errorf("failed to scan pattern: %w", err)
		}
		patterns = append(patterns, p)
	}
	return patterns, rows.Err()
}

func patternCountry(pattern string) (string, error) {
	p, err := iban.NewParser("", pattern)
	if err != nil {
		return "", err
	}
	return p.Country(), nil
}
