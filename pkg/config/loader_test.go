package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/waclone/pkg/config"
)

func writeJobFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadYAML(t *testing.T) {
	t.Run("full_job", func(t *testing.T) {
		path := writeJobFile(t, "job.yaml", `
root: /tmp/decompiled
source: business
package: myapp
folder_name: MyApp
search_pattern: com.oldclone
workers: 8
protected_modules:
  - util
  - jid
`)

		job, err := config.Load(context.Background(), path)
		require.NoError(t, err)

		assert.Equal(t, "/tmp/decompiled", job.RootPath)
		assert.Equal(t, config.SourceVariant, job.Source)
		assert.Equal(t, "myapp", job.TargetPackage)
		assert.Equal(t, "MyApp", job.TargetFolderName)
		assert.Equal(t, "com.oldclone", job.CustomSearchToken)
		assert.Equal(t, 8, job.WorkerCount)
		assert.Equal(t, []string{"util", "jid"}, job.ProtectedModules)
	})

	t.Run("minimal_job", func(t *testing.T) {
		path := writeJobFile(t, "job.yml", `
source: whatsapp
package: myapp
folder_name: MyApp
`)

		job, err := config.Load(context.Background(), path)
		require.NoError(t, err)

		assert.Equal(t, config.SourcePrimary, job.Source)
		assert.Empty(t, job.RootPath)
		assert.Zero(t, job.WorkerCount)
		assert.Nil(t, job.ProtectedModules)
	})

	t.Run("unknown_field_is_rejected", func(t *testing.T) {
		path := writeJobFile(t, "job.yaml", `
source: whatsapp
package: myapp
folder_name: MyApp
worker_count: 8
`)

		_, err := config.Load(context.Background(), path)
		require.Error(t, err)
	})

	t.Run("bad_source_label", func(t *testing.T) {
		path := writeJobFile(t, "job.yaml", `
source: telegram
package: myapp
folder_name: MyApp
`)

		_, err := config.Load(context.Background(), path)
		require.Error(t, err)
	})
}

func TestLoadHCL(t *testing.T) {
	t.Run("full_job", func(t *testing.T) {
		path := writeJobFile(t, "job.hcl", `
root              = "/tmp/decompiled"
source            = "business"
package           = "myapp"
folder_name       = "MyApp"
search_pattern    = "com.oldclone"
workers           = 8
protected_modules = ["util", "jid"]
`)

		job, err := config.Load(context.Background(), path)
		require.NoError(t, err)

		assert.Equal(t, "/tmp/decompiled", job.RootPath)
		assert.Equal(t, config.SourceVariant, job.Source)
		assert.Equal(t, "myapp", job.TargetPackage)
		assert.Equal(t, "com.oldclone", job.CustomSearchToken)
		assert.Equal(t, 8, job.WorkerCount)
		assert.Equal(t, []string{"util", "jid"}, job.ProtectedModules)
	})

	t.Run("invalid_syntax", func(t *testing.T) {
		path := writeJobFile(t, "job.hcl", `source = `)

		_, err := config.Load(context.Background(), path)
		require.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	t.Run("unknown_extension", func(t *testing.T) {
		path := writeJobFile(t, "job.toml", `source = "whatsapp"`)

		_, err := config.Load(context.Background(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no parser found")
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := config.Load(context.Background(), filepath.Join(t.TempDir(), "gone.yaml"))
		require.Error(t, err)
	})
}
