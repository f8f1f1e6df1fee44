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

package runner

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/waclone/pkg/config"
	"github.com/walteh/waclone/pkg/rules"
	"github.com/walteh/waclone/pkg/walker"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏃 Runner orchestrates read → rewrite → write across a tree with a
// bounded worker pool. Categories run sequentially: structural files are
// fully drained before markup files begin.
type Runner struct {
	job  *config.Job
	sink ProgressSink
}

// 🏗️ New creates a runner for a job. A nil sink means no progress events.
func New(job *config.Job, sink ProgressSink) *Runner {
	if sink == nil {
		sink = NopSink{}
	}
	return &Runner{job: job, sink: sink}
}

// 🏃 Run executes the job and returns the aggregated result. Only a
// configuration problem is fatal before any file is touched; per-file
// failures are recorded and never abort the run. On cancellation the run
// stops dispatching new files, lets in-flight writes finish, and returns
// the partial result together with the wrapped cancellation error.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	if err := r.job.Validate(); err != nil {
		return nil, err
	}

	logger.Info().
		Str("root", r.job.RootPath).
		Str("target", r.job.TargetPackage).
		Int("workers", r.job.WorkerCount).
		Msg("starting rewrite run")

	result := newResult()
	for _, category := range rules.Categories() {
		set, err := rules.Compile(r.job, category)
		if err != nil {
			return nil, err
		}
		logger.Debug().
			Stringer("category", category).
			Strs("rules", set.Describe()).
			Msg("compiled pattern set")

		categoryResult, err := r.runCategory(ctx, set)
		result.Categories[category] = categoryResult
		if err != nil {
			return result, err
		}
	}
	return result, nil
}

// runCategory drains one category: enumerate, dispatch to workers,
// aggregate. The aggregator is this goroutine itself, reading the outcome
// channel, so counter updates never race.
func (r *Runner) runCategory(ctx context.Context, set *rules.PatternSet) (CategoryResult, error) {
	logger := zerolog.Ctx(ctx)
	category := set.Category()

	var paths []string
	for path := range walker.New(r.job.RootPath, category.Glob()).Walk(ctx) {
		paths = append(paths, path)
	}

	res := CategoryResult{Found: len(paths)}
	r.sink.CategoryStarted(ctx, category, len(paths))
	if len(paths) == 0 {
		logger.Info().Stringer("category", category).Msg("no files found to process")
		r.sink.CategoryFinished(ctx, category, res)
		if err := ctx.Err(); err != nil {
			return res, errors.Errorf("run interrupted: %w", err)
		}
		return res, nil
	}

	pathCh := make(chan string)
	outcomes := make(chan FileOutcome)

	g, gctx := errgroup.WithContext(ctx)

	// Feeder: stops submitting promptly on cancellation. Workers finish
	// whatever they already picked up, so no file is left half written.
	g.Go(func() error {
		defer close(pathCh)
		for _, path := range paths {
			select {
			case pathCh <- path:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < r.job.WorkerCount; i++ {
		g.Go(func() error {
			for path := range pathCh {
				outcome := FileOutcome{Path: path, Category: category}
				outcome.Err = rewriteFile(path, set)
				outcomes <- outcome
			}
			return nil
		})
	}

	var runErr error
	go func() {
		runErr = g.Wait()
		close(outcomes)
	}()

	for outcome := range outcomes {
		if outcome.Success() {
			res.Succeeded++
		} else {
			res.Failed++
			logger.Error().Str("path", outcome.Path).Err(outcome.Err).Msg("failed to process file")
		}
		r.sink.FileProcessed(ctx, outcome)
	}

	r.sink.CategoryFinished(ctx, category, res)
	logger.Info().
		Stringer("category", category).
		Int("found", res.Found).
		Int("succeeded", res.Succeeded).
		Int("failed", res.Failed).
		Msg("category complete")

	if runErr != nil {
		return res, errors.Errorf("run interrupted: %w", runErr)
	}
	return res, nil
}

// rewriteFile reads one file, applies the pattern set, and writes the
// result back to the same path. The write goes through a temp file in the
// same directory plus a rename, so a single file is never left half
// written; cross-file transactionality is out of scope.
func rewriteFile(path string, set *rules.PatternSet) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Errorf("reading file: %w", err)
	}

	rewritten := set.Apply(content)

	if err := writeFileAtomic(path, rewritten); err != nil {
		return errors.Errorf("writing file: %w", err)
	}
	return nil
}

func writeFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("setting temp file mode: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("renaming temp file: %w", err)
	}
	return nil
}
