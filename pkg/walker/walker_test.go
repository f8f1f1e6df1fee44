package walker_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/waclone/pkg/walker"
)

func writeFile(t *testing.T, root string, rel string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	return path
}

func collect(t *testing.T, ch <-chan string) []string {
	t.Helper()
	var out []string
	for path := range ch {
		out = append(out, path)
	}
	return out
}

func TestWalk(t *testing.T) {
	t.Run("matches_only_the_pattern", func(t *testing.T) {
		root := t.TempDir()
		want := []string{
			writeFile(t, root, "Main.smali"),
			writeFile(t, root, "smali/com/app/Foo.smali"),
			writeFile(t, root, "smali_classes2/deep/nested/dir/Bar.smali"),
		}
		writeFile(t, root, "res/values/strings.xml")
		writeFile(t, root, "assets/notes.txt")
		writeFile(t, root, "smali/com/app/Foo.smali.bak")

		got := collect(t, walker.New(root, "**/*.smali").Walk(context.Background()))
		assert.ElementsMatch(t, want, got)
	})

	t.Run("each_file_reported_once", func(t *testing.T) {
		root := t.TempDir()
		for i := 0; i < 50; i++ {
			writeFile(t, root, filepath.Join("smali", "com", "app", string(rune('a'+i%26))+".smali"))
		}

		got := collect(t, walker.New(root, "**/*.smali").Walk(context.Background()))
		seen := make(map[string]int)
		for _, path := range got {
			seen[path]++
		}
		for path, n := range seen {
			assert.Equal(t, 1, n, "path %s reported %d times", path, n)
		}
		assert.Len(t, seen, 26)
	})

	t.Run("empty_root_closes_immediately", func(t *testing.T) {
		got := collect(t, walker.New(t.TempDir(), "**/*.smali").Walk(context.Background()))
		assert.Empty(t, got)
	})

	t.Run("paths_are_absolute", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "res/strings.xml")

		got := collect(t, walker.New(root, "**/*.xml").Walk(context.Background()))
		require.Len(t, got, 1)
		assert.True(t, filepath.IsAbs(got[0]))
	})

	t.Run("cancellation_stops_and_closes", func(t *testing.T) {
		root := t.TempDir()
		for i := 0; i < 100; i++ {
			writeFile(t, root, filepath.Join("smali", "dir", string(rune('a'+i%26)), "F.smali"))
		}

		ctx, cancel := context.WithCancel(context.Background())
		ch := walker.New(root, "**/*.smali").Walk(ctx)

		// Take one path, then cancel without draining the rest.
		<-ch
		cancel()

		deadline := time.After(5 * time.Second)
		for {
			select {
			case _, ok := <-ch:
				if !ok {
					return
				}
			case <-deadline:
				t.Fatal("walk did not stop after cancellation")
			}
		}
	})
}
