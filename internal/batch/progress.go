package batch

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// Progress tracks how many operations have been applied
type Progress interface {
	// Add advances the progress by n operations
	Add(n int) error
	// Close finishes the progress display
	Close()
}

// NoopProgress is a progress tracker that does nothing
type NoopProgress struct{}

func (p *NoopProgress) Add(int) error { return nil }
func (p *NoopProgress) Close()        {}

// NewNoopProgress creates a new no-op progress tracker
func NewNoopProgress() *NoopProgress {
	return &NoopProgress{}
}

// BarProgress renders a progress bar of applied operations
type BarProgress struct {
	bar *progressbar.ProgressBar
}

func (p *BarProgress) Add(n int) error {
	return p.bar.Add(n)
}

// Close completes the bar and clears it from the terminal
func (p *BarProgress) Close() {
	_ = p.bar.Finish()
}

// NewBarProgress creates a progress bar over total operations written to w
func NewBarProgress(total int, w io.Writer) *BarProgress {
	return &BarProgress{
		bar: progressbar.NewOptions(total,
			progressbar.OptionSetDescription("Applying operations"),
			progressbar.OptionSetWriter(w),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "#",
				SaucerPadding: ".",
				BarStart:      "|",
				BarEnd:        "|",
			})),
	}
}
