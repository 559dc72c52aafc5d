package storage

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/gh-comments/internal/errors"
	"github.com/thomas-vilte/gh-comments/internal/models"
)

func TestFileStore_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("should return an empty mapping when the file is missing", func(t *testing.T) {
		store := NewFileStore(filepath.Join(t.TempDir(), "gh-comments.json"))

		mapping, err := store.Load(ctx)

		require.NoError(t, err)
		assert.NotNil(t, mapping)
		assert.Empty(t, mapping)
	})

	t.Run("should decode the stored mapping", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gh-comments.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
  "1": {"issueId": 101},
  "hello-world": {"issueId": 7}
}`), 0o644))

		mapping, err := NewFileStore(path).Load(ctx)

		require.NoError(t, err)
		assert.Equal(t, models.Mapping{
			"1":           {IssueID: 101},
			"hello-world": {IssueID: 7},
		}, mapping)
	})

	t.Run("should treat null as an empty mapping", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gh-comments.json")
		require.NoError(t, os.WriteFile(path, []byte("null"), 0o644))

		mapping, err := NewFileStore(path).Load(ctx)

		require.NoError(t, err)
		assert.Empty(t, mapping)
	})

	malformed := map[string]string{
		"truncated":      `{"1": {"issueId": 101}`,
		"empty file":     ``,
		"array":          `[1, 2]`,
		"wrong field":    `{"1": {"number": 101}}`,
		"string issue":   `{"1": {"issueId": "101"}}`,
		"trailing value": `{} {}`,
	}
	for name, content := range malformed {
		t.Run("should fail to decode "+name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "gh-comments.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			_, err := NewFileStore(path).Load(ctx)

			assert.ErrorIs(t, err, domainErrors.ErrDecode)
		})
	}

	t.Run("should fail to read a directory", func(t *testing.T) {
		_, err := NewFileStore(t.TempDir()).Load(ctx)

		assert.ErrorIs(t, err, domainErrors.ErrStorageRead)
	})
}

func TestFileStore_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("should round trip a mapping", func(t *testing.T) {
		store := NewFileStore(filepath.Join(t.TempDir(), "gh-comments.json"))
		mapping := models.Mapping{
			"1": {IssueID: 101},
			"2": {IssueID: 102},
		}

		require.NoError(t, store.Save(ctx, mapping))
		loaded, err := store.Load(ctx)

		require.NoError(t, err)
		assert.Equal(t, mapping, loaded)
	})

	t.Run("should write deterministic indented JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gh-comments.json")
		store := NewFileStore(path)

		require.NoError(t, store.Save(ctx, models.Mapping{
			"b": {IssueID: 2},
			"a": {IssueID: 1},
		}))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"a\": {\n    \"issueId\": 1\n  },\n  \"b\": {\n    \"issueId\": 2\n  }\n}\n", string(content))
	})

	t.Run("should replace previous contents and leave no temp file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "gh-comments.json")
		store := NewFileStore(path)

		require.NoError(t, store.Save(ctx, models.Mapping{"1": {IssueID: 1}}))
		require.NoError(t, store.Save(ctx, models.Mapping{"2": {IssueID: 2}}))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.Mapping{"2": {IssueID: 2}}, loaded)

		_, err = os.Stat(path + ".tmp")
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("should create missing parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data", "comments", "gh-comments.json")

		require.NoError(t, NewFileStore(path).Save(ctx, models.Mapping{}))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "{}\n", string(content))
	})

	t.Run("should fail when the directory is not writable", func(t *testing.T) {
		if runtime.GOOS == "windows" || os.Geteuid() == 0 {
			t.Skip("permissions are not enforced")
		}
		dir := t.TempDir()
		require.NoError(t, os.Chmod(dir, 0o500))
		t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

		err := NewFileStore(filepath.Join(dir, "gh-comments.json")).Save(ctx, models.Mapping{})

		assert.ErrorIs(t, err, domainErrors.ErrStorageWrite)
	})

	t.Run("should fail when the target is a directory", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "gh-comments.json")
		require.NoError(t, os.Mkdir(target, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(target, "keep"), nil, 0o644))

		err := NewFileStore(target).Save(ctx, models.Mapping{"1": {IssueID: 1}})

		assert.ErrorIs(t, err, domainErrors.ErrStorageWrite)
		_, statErr := os.Stat(target + ".tmp")
		assert.True(t, os.IsNotExist(statErr))
	})
}
