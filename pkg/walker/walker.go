package walker

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// Walker lazily enumerates the files under a root whose path, relative to
// that root, matches a doublestar pattern. The produced sequence is finite,
// non-restartable, and unordered: walk order may differ across runs and
// platforms, and callers must not rely on it.
type Walker struct {
	root    string
	pattern string
}

// New creates a walker for the given root and pattern (e.g. "**/*.smali").
func New(root, pattern string) *Walker {
	return &Walker{root: root, pattern: pattern}
}

// Walk starts the traversal and returns the channel of absolute file paths.
// The channel is closed when the walk finishes or the context is cancelled.
// A directory that cannot be listed is skipped with a logged warning; it
// never aborts the walk.
func (w *Walker) Walk(ctx context.Context) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		logger := zerolog.Ctx(ctx)

		_ = filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				logger.Warn().Str("path", path).Err(err).Msg("skipping unreadable path")
				return nil
			}
			if d.IsDir() {
				if ctx.Err() != nil {
					return fs.SkipAll
				}
				return nil
			}

			rel, relErr := filepath.Rel(w.root, path)
			if relErr != nil {
				rel = path
			}
			matched, matchErr := doublestar.Match(w.pattern, filepath.ToSlash(rel))
			if matchErr != nil {
				logger.Warn().Str("pattern", w.pattern).Err(matchErr).Msg("bad walk pattern")
				return fs.SkipAll
			}
			if !matched {
				return nil
			}

			abs, absErr := filepath.Abs(path)
			if absErr != nil {
				abs = path
			}
			select {
			case out <- abs:
				return nil
			case <-ctx.Done():
				return fs.SkipAll
			}
		})
	}()
	return out
}
