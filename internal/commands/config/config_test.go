package config

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/gh-comments/internal/config"
	domainErrors "github.com/thomas-vilte/gh-comments/internal/errors"
	"github.com/thomas-vilte/gh-comments/internal/i18n"
	"github.com/thomas-vilte/gh-comments/internal/ui"
	"github.com/urfave/cli/v3"
)

func setupConfigTest(t *testing.T) (*config.Config, *i18n.Translations, string, *bytes.Buffer) {
	t.Helper()
	tmpConfigPath := filepath.Join(t.TempDir(), ".gh-comments", "config.json")

	cfg, err := config.LoadConfig(tmpConfigPath)
	require.NoError(t, err)

	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	color.NoColor = true
	out := &bytes.Buffer{}
	previous := ui.Output
	ui.Output = out
	t.Cleanup(func() { ui.Output = previous })

	return cfg, translations, tmpConfigPath, out
}

func runConfig(t *testing.T, translations *i18n.Translations, cfg *config.Config, args ...string) error {
	t.Helper()
	app := &cli.Command{
		Name:     "gh-comments",
		Writer:   &bytes.Buffer{},
		Commands: []*cli.Command{NewConfigCommandFactory().CreateCommand(translations, cfg)},
	}
	return app.Run(context.Background(), append([]string{"gh-comments", "config"}, args...))
}

func TestShowCommand(t *testing.T) {
	t.Run("should display the configuration with defaults", func(t *testing.T) {
		cfg, translations, path, out := setupConfigTest(t)

		err := runConfig(t, translations, cfg, "show")

		require.NoError(t, err)
		assert.Contains(t, out.String(), "Config file: "+path)
		assert.Contains(t, out.String(), "username: (not set)")
		assert.Contains(t, out.String(), "storage_path: gh-comments.json")
		assert.Contains(t, out.String(), "failure_policy: persist-successes")
		assert.Contains(t, out.String(), "labels: comments")
	})

	t.Run("should display templates when configured", func(t *testing.T) {
		cfg, translations, _, out := setupConfigTest(t)
		cfg.Username = "alice"
		cfg.TitleTemplate = "Discuss {{.title}}"

		require.NoError(t, runConfig(t, translations, cfg, "show"))

		assert.Contains(t, out.String(), "username: alice")
		assert.Contains(t, out.String(), "title_template: Discuss {{.title}}")
	})
}

func TestInitCommand(t *testing.T) {
	t.Run("should write the flags to the config file", func(t *testing.T) {
		cfg, translations, path, out := setupConfigTest(t)

		err := runConfig(t, translations, cfg, "init",
			"--username", "alice", "--repo", "blog",
			"--storage", "data/issues.json", "--failure-policy", "fail-fast",
			"--label", "comments", "--label", "blog")

		require.NoError(t, err)
		assert.Contains(t, out.String(), "Configuration saved to "+path)

		saved, err := config.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "alice", saved.Username)
		assert.Equal(t, "blog", saved.Repo)
		assert.Equal(t, "data/issues.json", saved.StoragePath)
		assert.Equal(t, "fail-fast", saved.FailurePolicy)
		assert.Equal(t, []string{"comments", "blog"}, saved.Labels)
		assert.Equal(t, "id", saved.IdentityField)
	})

	t.Run("should reject an unknown failure policy without writing", func(t *testing.T) {
		cfg, translations, path, _ := setupConfigTest(t)

		err := runConfig(t, translations, cfg, "init", "--failure-policy", "retry")

		assert.ErrorIs(t, err, domainErrors.ErrInvalidFailurePolicy)
		assert.NoFileExists(t, path)
		assert.NotEqual(t, "retry", cfg.FailurePolicy)
	})

	t.Run("should reject a broken title template", func(t *testing.T) {
		cfg, translations, _, _ := setupConfigTest(t)

		err := runConfig(t, translations, cfg, "init", "--title-template", "{{.title")

		assert.ErrorIs(t, err, domainErrors.ErrInvalidTemplate)
	})
}

func TestSetCommand(t *testing.T) {
	t.Run("should update a single key", func(t *testing.T) {
		cfg, translations, path, out := setupConfigTest(t)

		require.NoError(t, runConfig(t, translations, cfg, "set", "repo", "blog"))
		require.NoError(t, runConfig(t, translations, cfg, "set", "labels", "comments, blog ,"))

		assert.Contains(t, out.String(), "repo set to blog")
		saved, err := config.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "blog", saved.Repo)
		assert.Equal(t, []string{"comments", "blog"}, saved.Labels)
	})

	t.Run("should fail on unknown keys", func(t *testing.T) {
		cfg, translations, _, _ := setupConfigTest(t)

		err := runConfig(t, translations, cfg, "set", "emoji", "true")

		assert.EqualError(t, err, "unknown configuration key: emoji")
	})

	t.Run("should fail without a value", func(t *testing.T) {
		cfg, translations, _, out := setupConfigTest(t)

		err := runConfig(t, translations, cfg, "set", "repo")

		assert.Error(t, err)
		assert.Contains(t, out.String(), "Usage: gh-comments config set <key> <value>")
	})
}

func TestEditCommand(t *testing.T) {
	t.Run("should create the file and run the editor", func(t *testing.T) {
		cfg, translations, path, _ := setupConfigTest(t)
		t.Setenv("EDITOR", "true")

		err := runConfig(t, translations, cfg, "edit")

		require.NoError(t, err)
		assert.FileExists(t, path)
	})
}
