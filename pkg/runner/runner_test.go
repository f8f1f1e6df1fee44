package runner_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/waclone/pkg/config"
	"github.com/walteh/waclone/pkg/rules"
	"github.com/walteh/waclone/pkg/runner"
)

func testJob(t *testing.T) *config.Job {
	t.Helper()
	return &config.Job{
		RootPath:         t.TempDir(),
		Source:           config.SourcePrimary,
		TargetPackage:    "myapp",
		TargetFolderName: "MyApp",
		WorkerCount:      8,
		ProtectedModules: []string{"util"},
	}
}

func writeTree(t *testing.T, root string, rel string, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// recordingSink captures every progress event. The runner delivers all
// events from a single goroutine, so no locking is needed here.
type recordingSink struct {
	started   []rules.Category
	processed []runner.FileOutcome
	finished  map[rules.Category]runner.CategoryResult
}

func newRecordingSink() *recordingSink {
	return &recordingSink{finished: make(map[rules.Category]runner.CategoryResult)}
}

func (s *recordingSink) CategoryStarted(ctx context.Context, category rules.Category, total int) {
	s.started = append(s.started, category)
}

func (s *recordingSink) FileProcessed(ctx context.Context, outcome runner.FileOutcome) {
	s.processed = append(s.processed, outcome)
}

func (s *recordingSink) CategoryFinished(ctx context.Context, category rules.Category, result runner.CategoryResult) {
	s.finished[category] = result
}

func TestRun(t *testing.T) {
	t.Run("rewrites_every_matching_file", func(t *testing.T) {
		job := testJob(t)
		const total = 1000
		var paths []string
		for i := 0; i < total; i++ {
			rel := fmt.Sprintf("smali/com/whatsapp/f%03d.smali", i)
			paths = append(paths, writeTree(t, job.RootPath, rel, "Lcom/whatsapp/Main;"))
		}
		xmlPath := writeTree(t, job.RootPath, "AndroidManifest.xml", `<manifest package="com.whatsapp">`)

		result, err := runner.New(job, nil).Run(context.Background())
		require.NoError(t, err)

		structural := result.Category(rules.CategoryStructural)
		assert.Equal(t, total, structural.Found)
		assert.Equal(t, total, structural.Succeeded)
		assert.Zero(t, structural.Failed)

		markup := result.Category(rules.CategoryMarkup)
		assert.Equal(t, 1, markup.Found)
		assert.Equal(t, 1, markup.Succeeded)

		for _, path := range paths {
			content, readErr := os.ReadFile(path)
			require.NoError(t, readErr)
			assert.Equal(t, "Lcom/myapp/Main;", string(content))
		}
		content, readErr := os.ReadFile(xmlPath)
		require.NoError(t, readErr)
		assert.Equal(t, `<manifest package="com.myapp">`, string(content))
	})

	t.Run("unreadable_file_does_not_abort_the_run", func(t *testing.T) {
		job := testJob(t)
		for i := 0; i < 9; i++ {
			writeTree(t, job.RootPath, fmt.Sprintf("smali/f%d.smali", i), "Lcom/whatsapp/Foo;")
		}
		// A dangling symlink enumerates like a file but fails on read.
		broken := filepath.Join(job.RootPath, "smali", "broken.smali")
		require.NoError(t, os.Symlink(filepath.Join(job.RootPath, "gone"), broken))

		sink := newRecordingSink()
		result, err := runner.New(job, sink).Run(context.Background())
		require.NoError(t, err)

		structural := result.Category(rules.CategoryStructural)
		assert.Equal(t, 10, structural.Found)
		assert.Equal(t, 9, structural.Succeeded)
		assert.Equal(t, 1, structural.Failed)

		var failed []string
		for _, outcome := range sink.processed {
			if !outcome.Success() {
				failed = append(failed, outcome.Path)
			}
		}
		assert.Equal(t, []string{broken}, failed)
	})

	t.Run("empty_tree_reports_zero_counts", func(t *testing.T) {
		job := testJob(t)

		sink := newRecordingSink()
		result, err := runner.New(job, sink).Run(context.Background())
		require.NoError(t, err)

		for _, category := range rules.Categories() {
			res := result.Category(category)
			assert.Zero(t, res.Found)
			assert.Zero(t, res.Succeeded)
			assert.Zero(t, res.Failed)
		}
		assert.Equal(t, rules.Categories(), sink.started)
		assert.Empty(t, sink.processed)
	})

	t.Run("invalid_job_is_fatal_before_any_file", func(t *testing.T) {
		job := testJob(t)
		path := writeTree(t, job.RootPath, "smali/f.smali", "Lcom/whatsapp/Foo;")
		job.TargetPackage = ""

		result, err := runner.New(job, nil).Run(context.Background())
		require.Error(t, err)
		assert.Nil(t, result)

		content, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, "Lcom/whatsapp/Foo;", string(content), "no file is touched on a fatal config error")
	})

	t.Run("cancellation_returns_partial_result", func(t *testing.T) {
		job := testJob(t)
		writeTree(t, job.RootPath, "smali/f.smali", "Lcom/whatsapp/Foo;")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := runner.New(job, nil).Run(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		require.NotNil(t, result, "a partial result accompanies the cancellation error")
	})

	t.Run("variant_auto_defaults_leave_a_suffixed_tree_untouched", func(t *testing.T) {
		// Auto mode for the Variant targets the suffixed package itself, so
		// structural files must come out byte-identical.
		job := testJob(t)
		job.Source = config.SourceVariant
		job.TargetPackage = "whatsapp.w4b"
		job.TargetFolderName = "WhatsApp Business"
		job.ProtectedModules = nil

		suffixed := writeTree(t, job.RootPath, "smali/com/whatsapp/w4b/Main.smali",
			"Lcom/whatsapp/w4b/Main;\nconst-string v0, \"com.whatsapp.w4b\"\n")
		bare := writeTree(t, job.RootPath, "smali/com/whatsapp/util/Log.smali",
			"Lcom/whatsapp/util/Log;\n")

		result, err := runner.New(job, nil).Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, result.Category(rules.CategoryStructural).Succeeded)

		content, readErr := os.ReadFile(suffixed)
		require.NoError(t, readErr)
		assert.Equal(t, "Lcom/whatsapp/w4b/Main;\nconst-string v0, \"com.whatsapp.w4b\"\n", string(content))

		content, readErr = os.ReadFile(bare)
		require.NoError(t, readErr)
		assert.Equal(t, "Lcom/whatsapp/util/Log;\n", string(content))
	})

	t.Run("second_run_is_a_no_op", func(t *testing.T) {
		job := testJob(t)
		path := writeTree(t, job.RootPath, "smali/f.smali", "Lcom/whatsapp/util/Foo; Lcom/whatsapp/Main;")

		_, err := runner.New(job, nil).Run(context.Background())
		require.NoError(t, err)
		first, readErr := os.ReadFile(path)
		require.NoError(t, readErr)

		_, err = runner.New(job, nil).Run(context.Background())
		require.NoError(t, err)
		second, readErr := os.ReadFile(path)
		require.NoError(t, readErr)

		assert.Equal(t, "Lcom/whatsapp/util/Foo; Lcom/myapp/Main;", string(first))
		assert.Equal(t, string(first), string(second))
	})
}

func TestResult(t *testing.T) {
	t.Run("total_sums_categories", func(t *testing.T) {
		job := testJob(t)
		writeTree(t, job.RootPath, "smali/a.smali", "Lcom/whatsapp/A;")
		writeTree(t, job.RootPath, "smali/b.smali", "Lcom/whatsapp/B;")
		writeTree(t, job.RootPath, "res/strings.xml", "<resources/>")

		result, err := runner.New(job, nil).Run(context.Background())
		require.NoError(t, err)

		total := result.Total()
		assert.Equal(t, 3, total.Found)
		assert.Equal(t, 3, total.Succeeded)
		assert.Zero(t, total.Failed)
	})
}
