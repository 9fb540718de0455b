package batch

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/lox/bank-accounts/internal/account"
)

// Config controls how a script is applied
type Config struct {
	// StopOnError aborts the run at the first failed operation
	StopOnError bool
	// Progress draws a progress bar while applying
	Progress bool
	// ProgressWriter receives the progress bar, stderr when nil
	ProgressWriter io.Writer
}

// Failure records an operation that was rejected
type Failure struct {
	Line  int    `json:"line"`
	Op    Op     `json:"op"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

// Report summarizes a run
type Report struct {
	RunID    string    `json:"run_id"`
	Total    int       `json:"total"`
	Applied  int       `json:"applied"`
	Failures []Failure `json:"failures,omitempty"`
}

// Runner applies operations to an account registry
type Runner struct {
	reg    *account.Registry
	logger *log.Logger
	config Config
}

// NewRunner creates a runner for reg
func NewRunner(reg *account.Registry, logger *log.Logger, config Config) *Runner {
	return &Runner{
		reg:    reg,
		logger: logger,
		config: config,
	}
}

// Run applies ops in order. Rejected operations are recorded in the report
// and the run continues unless StopOnError is set, in which case the
// partial report is returned with the error.
func (r *Runner) Run(ctx context.Context, ops []Operation) (*Report, error) {
	report := &Report{
		RunID: uuid.NewString(),
		Total: len(ops),
	}
	logger := r.logger.With("run_id", report.RunID)
	logger.Info("Applying operations", "count", len(ops))

	var progress Progress = NewNoopProgress()
	if r.config.Progress {
		w := r.config.ProgressWriter
		if w == nil {
			w = os.Stderr
		}
		progress = NewBarProgress(len(ops), w)
	}
	defer progress.Close()

	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if err := r.apply(op); err != nil {
			logger.Warn("Operation failed", "line", op.Line, "op", op.Op, "code", op.Code, "error", err)
			report.Failures = append(report.Failures, Failure{
				Line:  op.Line,
				Op:    op.Op,
				Code:  op.Code,
				Error: err.Error(),
			})
			if r.config.StopOnError {
				return report, fmt.Errorf("line %d: %w", op.Line, err)
			}
		} else {
			report.Applied++
		}

		if err := progress.Add(1); err != nil {
			logger.Debug("Failed to update progress", "error", err)
		}
	}

	logger.Info("Finished applying operations", "applied", report.Applied, "failed", len(report.Failures))
	return report, nil
}

func (r *Runner) apply(op Operation) error {
	acc, err := r.reg.Account(op.Code, op.Kind)
	if err != nil {
		return err
	}

	switch op.Op {
	case OpOpen:
		return nil
	case OpCredit:
		return acc.Credit(op.Amount, op.Currency)
	case OpDebit:
		return acc.Debit(op.Amount, op.Currency)
	case OpTransfer:
		target, err := r.reg.Account(op.TargetCode, op.TargetKind)
		if err != nil {
			return err
		}
		return acc.Transfer(op.Amount, op.Currency, target)
	case OpConvert:
		return acc.ConvertBalance(op.Amount, op.Currency, op.To)
	default:
		return fmt.Errorf("unknown operation %q", op.Op)
	}
}
