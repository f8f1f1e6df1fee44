package runner

import (
	"context"

	"github.com/walteh/waclone/pkg/rules"
)

// 📈 ProgressSink receives structured progress events during a run. The core
// has no notion of display; rendering is entirely the implementer's concern.
// FileProcessed is called from the runner's single aggregator goroutine, so
// implementations need no locking of their own against the runner.
type ProgressSink interface {
	// CategoryStarted is called once per category, before any file of that
	// category is touched. total may be zero.
	CategoryStarted(ctx context.Context, category rules.Category, total int)

	// FileProcessed is called after each file, success or failure.
	FileProcessed(ctx context.Context, outcome FileOutcome)

	// CategoryFinished is called once per category with its frozen counts.
	CategoryFinished(ctx context.Context, category rules.Category, result CategoryResult)
}

// 🔇 NopSink discards all progress events.
type NopSink struct{}

func (NopSink) CategoryStarted(context.Context, rules.Category, int)             {}
func (NopSink) FileProcessed(context.Context, FileOutcome)                       {}
func (NopSink) CategoryFinished(context.Context, rules.Category, CategoryResult) {}
