package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lox/bank-accounts/internal/account"
	"github.com/lox/bank-accounts/internal/money"
	"github.com/shopspring/decimal"
)

// Op names an operation in a script
type Op string

const (
	OpOpen     Op = "open"
	OpCredit   Op = "credit"
	OpDebit    Op = "debit"
	OpTransfer Op = "transfer"
	OpConvert  Op = "convert"
)

// Operation is one parsed script line. Currency is the operation currency,
// or the source currency of a conversion.
type Operation struct {
	Line       int
	Op         Op
	Code       string
	Kind       account.Kind
	Amount     decimal.Decimal
	Currency   money.Currency
	To         money.Currency
	TargetCode string
	TargetKind account.Kind
}

var fieldCounts = map[Op]int{
	OpOpen:     3,
	OpCredit:   5,
	OpDebit:    5,
	OpTransfer: 7,
	OpConvert:  6,
}

// Parse reads a comma separated script. Lines starting with # are comments.
//
//	open,CODE,KIND
//	credit,CODE,KIND,AMOUNT,CURRENCY
//	debit,CODE,KIND,AMOUNT,CURRENCY
//	transfer,CODE,KIND,AMOUNT,CURRENCY,TARGET_CODE,TARGET_KIND
//	convert,CODE,KIND,AMOUNT,FROM,TO
//
// Amounts are only parsed here; range checks happen when the operation is applied.
func Parse(r io.Reader) ([]Operation, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var ops []Operation
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read script: %w", err)
		}
		line, _ := reader.FieldPos(0)

		op, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		op.Line = line
		ops = append(ops, op)
	}
	return ops, nil
}

func parseRecord(record []string) (Operation, error) {
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}

	name := Op(strings.ToLower(record[0]))
	want, ok := fieldCounts[name]
	if !ok {
		return Operation{}, fmt.Errorf("unknown operation %q", record[0])
	}
	if len(record) != want {
		return Operation{}, fmt.Errorf("%s expects %d fields, got %d", name, want, len(record))
	}

	kind, err := account.ParseKind(record[2])
	if err != nil {
		return Operation{}, err
	}
	op := Operation{Op: name, Code: record[1], Kind: kind}
	if name == OpOpen {
		return op, nil
	}

	op.Amount, err = decimal.NewFromString(record[3])
	if err != nil {
		return Operation{}, fmt.Errorf("invalid amount %q", record[3])
	}
	op.Currency, err = money.ParseCurrency(record[4])
	if err != nil {
		return Operation{}, err
	}

	switch name {
	case OpTransfer:
		op.TargetCode = record[5]
		op.TargetKind, err = account.ParseKind(record[6])
		if err != nil {
			return Operation{}, err
		}
	case OpConvert:
		op.To, err = money.ParseCurrency(record[5])
		if err != nil {
			return Operation{}, err
		}
	}
	return op, nil
}
