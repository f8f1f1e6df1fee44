package report

import (
	"context"
	"fmt"
	"sync"

	"github.com/pterm/pterm"
	"github.com/walteh/waclone/pkg/rules"
	"github.com/walteh/waclone/pkg/runner"
)

// 📢 PtermSink renders a live progress bar per category. It is picked when
// stdout is a terminal; plain output falls back to ConsoleSink.
type PtermSink struct {
	mu  sync.Mutex
	bar *pterm.ProgressbarPrinter
}

// 🏭 NewPtermSink creates a terminal progress sink.
func NewPtermSink() *PtermSink {
	return &PtermSink{}
}

// 📝 CategoryStarted starts a fresh progress bar for the category.
func (s *PtermSink) CategoryStarted(ctx context.Context, category rules.Category, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if total == 0 {
		pterm.Info.Printfln("no .%s files found to process", category)
		return
	}
	bar, err := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle(fmt.Sprintf("Processing .%s files", category)).
		Start()
	if err != nil {
		// Progress display is cosmetic; the run itself must not care.
		return
	}
	s.bar = bar
}

// 📝 FileProcessed advances the bar and surfaces failures above it.
func (s *PtermSink) FileProcessed(ctx context.Context, outcome runner.FileOutcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !outcome.Success() {
		pterm.Error.Printfln("error processing %s: %v", outcome.Path, outcome.Err)
	}
	if s.bar != nil {
		s.bar.Increment()
	}
}

// 📝 CategoryFinished stops the bar and prints the category summary.
func (s *PtermSink) CategoryFinished(ctx context.Context, category rules.Category, result runner.CategoryResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bar != nil {
		s.bar.Stop()
		s.bar = nil
	}
	msg := fmt.Sprintf("processed %d/%d .%s files", result.Succeeded, result.Found, category)
	if result.Failed > 0 {
		pterm.Warning.Printfln("%s (%d failed)", msg, result.Failed)
		return
	}
	if result.Found > 0 {
		pterm.Success.Printfln("%s", msg)
	}
}
