package cli

import (
	"context"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

var (
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

// withSpinner renders an indeterminate spinner until the returned stop
// function runs or ctx is cancelled. It draws on stderr so piped stdout
// stays clean.
func withSpinner(ctx context.Context, desc string) (stop func()) {
	spinner := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSpinnerType(11),
		progressbar.OptionClearOnFinish(),
	)
	done := make(chan struct{})
	ticker := time.NewTicker(120 * time.Millisecond)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				spinner.Finish()
				return
			case <-ticker.C:
				spinner.Add(1)
			}
		}
	}()
	return func() {
		close(done)
		spinner.Finish()
	}
}
