// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package report

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/waclone/pkg/rules"
	"github.com/walteh/waclone/pkg/runner"
)

// 🎨 Display configuration
const (
	fileIndent = 4  // spaces to indent file entries
	nameWidth  = 45 // base width for file paths
)

// 🖥️ ConsoleSink renders progress as one plain colored line per file, with
// a structured log mirror. It is the fallback for non-terminal output.
type ConsoleSink struct {
	console io.Writer
	verbose bool

	mu        sync.Mutex
	processed int
	total     int
}

// 🏭 NewConsoleSink creates a console sink. With verbose false only
// failures get their own line; successes are summarized per category.
func NewConsoleSink(console io.Writer, verbose bool) *ConsoleSink {
	return &ConsoleSink{console: console, verbose: verbose}
}

// 📝 CategoryStarted prints the category header.
func (s *ConsoleSink) CategoryStarted(ctx context.Context, category rules.Category, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processed = 0
	s.total = total

	fmt.Fprintf(s.console, "%s %s (%d files)\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprintf("processing .%s files", category),
		total)
}

// 📝 FileProcessed prints one line per outcome.
func (s *ConsoleSink) FileProcessed(ctx context.Context, outcome runner.FileOutcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processed++

	if outcome.Success() {
		if s.verbose {
			fmt.Fprintf(s.console, "%*s%s %-*s\n", fileIndent, "",
				color.New(color.FgGreen).Sprint("✓"),
				nameWidth, outcome.Path)
		}
		return
	}

	fmt.Fprintf(s.console, "%*s%s %-*s %s\n", fileIndent, "",
		color.New(color.FgRed).Sprint("✗"),
		nameWidth, outcome.Path,
		color.New(color.FgRed).Sprint(outcome.Err))
	zerolog.Ctx(ctx).Error().Str("file", outcome.Path).Err(outcome.Err).Msg("file failed")
}

// 📝 CategoryFinished prints the category summary line.
func (s *ConsoleSink) CategoryFinished(ctx context.Context, category rules.Category, result runner.CategoryResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := fmt.Sprintf("processed %d/%d .%s files", result.Succeeded, result.Found, category)
	if result.Failed > 0 {
		fmt.Fprintf(s.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(line))
		return
	}
	fmt.Fprintf(s.console, "✅ %s\n", color.New(color.FgGreen).Sprint(line))
}
