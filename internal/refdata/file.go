package refdata

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/bank-accounts/internal/money"
	"github.com/shopspring/decimal"
)

// File names read by FileSource
const (
	BanksFile    = "banks.txt"
	PatternsFile = "iban.txt"
	RatesFile    = "rates.txt"
)

// FileSource reads colon separated reference files from a directory:
//
//	banks.txt  name:address:bic:code
//	iban.txt   label:pattern
//	rates.txt  currency:toBase:fromBase
//
// Bank files carry no country, so every bank is assigned Country.
type FileSource struct {
	Dir     string
	Country string
	logger  *log.Logger
}

// NewFileSource creates a source reading from dir
func NewFileSource(dir, country string, logger *log.Logger) *FileSource {
	return &FileSource{
		Dir:     dir,
		Country: country,
		logger:  logger,
	}
}

// scanFile calls fn with the colon separated fields of every non-blank,
// non-comment line of name.
func (s *FileSource) scanFile(ctx context.Context, name string, fn func(line int, fields []string) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(s.Dir, name)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanLines)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if len(text) == 0 || strings.HasPrefix(text, "#") {
			continue
		}
		if err := fn(line, strings.Split(text, ":")); err != nil {
			return fmt.Errorf("%s:%d: %w", name, line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	return nil
}

// Banks implements Source
func (s *FileSource) Banks(ctx context.Context) ([]BankRecord, error) {
	var banks []BankRecord
	err := s.scanFile(ctx, BanksFile, func(line int, fields []string) error {
		if len(fields) != 4 {
			return fmt.Errorf("expected 4 fields, got %d", len(fields))
		}
		code, err := strconv.Atoi(strings.TrimSpace(fields[3]))
		if err != nil {
			return fmt.Errorf("invalid bank code %q", fields[3])
		}
		banks = append(banks, BankRecord{
			Country: s.Country,
			Code:    code,
			BIC:     strings.TrimSpace(fields[2]),
			Name:    strings.TrimSpace(fields[0]),
			Address: strings.TrimSpace(fields[1]),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return banks, nil
}

// Patterns implements Source
func (s *FileSource) Patterns(ctx context.Context) ([]PatternRecord, error) {
	var patterns []PatternRecord
	err := s.scanFile(ctx, PatternsFile, func(line int, fields []string) error {
		if len(fields) != 2 {
			return fmt.Errorf("expected 2 fields, got %d", len(fields))
		}
		pattern := strings.TrimSpace(fields[1])
		if len(pattern) < 2 {
			return fmt.Errorf("pattern %q is too short", pattern)
		}
		patterns = append(patterns, PatternRecord{
			Label:   strings.TrimSpace(fields[0]),
			Pattern: pattern,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return patterns, nil
}

// Rates implements Source. Lines with an invalid currency code or
// multiplier are skipped with a warning.
func (s *FileSource) Rates(ctx context.Context) ([]RateRecord, error) {
	var rates []RateRecord
	err := s.scanFile(ctx, RatesFile, func(line int, fields []string) error {
		if len(fields) != 3 {
			return fmt.Errorf("expected 3 fields, got %d", len(fields))
		}
		code, err := money.ParseCurrency(fields[0])
		if err != nil {
			s.logger.Warn("Skipping rate with invalid currency", "file", RatesFile, "line", line, "currency", fields[0])
			return nil
		}
		toBase, err := decimal.NewFromString(strings.TrimSpace(fields[1]))
		if err != nil {
			s.logger.Warn("Skipping rate with invalid multiplier", "file", RatesFile, "line", line, "to_base", fields[1])
			return nil
		}
		fromBase, err := decimal.NewFromString(strings.TrimSpace(fields[2]))
		if err != nil {
			s.logger.Warn("Skipping rate with invalid multiplier", "file", RatesFile, "line", line, "from_base", fields[2])
			return nil
		}
		rates = append(rates, RateRecord{Currency: code, ToBase: toBase, FromBase: fromBase})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rates, nil
}
