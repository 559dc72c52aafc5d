package flags

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/gh-comments/internal/config"
	domainErrors "github.com/thomas-vilte/gh-comments/internal/errors"
	"github.com/thomas-vilte/gh-comments/internal/i18n"
	"github.com/urfave/cli/v3"
)

func resolveWith(t *testing.T, cfg *config.Config, extra []cli.Flag, args ...string) (config.Options, error) {
	t.Helper()
	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	var opts config.Options
	var resolveErr error
	cmd := &cli.Command{
		Name:   "probe",
		Writer: &bytes.Buffer{},
		Flags:  append([]cli.Flag{ArticlesFlag(translations), StorageFlag(translations), IDFieldFlag(translations)}, extra...),
		Action: func(ctx context.Context, command *cli.Command) error {
			opts, resolveErr = ResolveOptions(cfg, command)
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"probe", "--articles", "a.json"}, args...)))
	return opts, resolveErr
}

func TestResolveOptions(t *testing.T) {
	t.Run("should fall back to the config file and defaults", func(t *testing.T) {
		cfg := &config.Config{Username: "alice", Repo: "blog", IdentityField: "slug"}

		opts, err := resolveWith(t, cfg, nil)

		require.NoError(t, err)
		assert.Equal(t, "alice", opts.Username)
		assert.Equal(t, "slug", opts.IdentityField)
		assert.Equal(t, config.DefaultStoragePath, opts.StoragePath)
		assert.Equal(t, config.PersistSuccesses, opts.FailurePolicy)
		assert.NotNil(t, opts.Identity)
	})

	t.Run("should let flags win over the config file", func(t *testing.T) {
		cfg := &config.Config{Username: "alice", StoragePath: "from-config.json"}
		extra := []cli.Flag{
			&cli.StringFlag{Name: "username"},
			&cli.BoolFlag{Name: "fail-fast"},
			&cli.BoolFlag{Name: "dry-run"},
		}

		opts, err := resolveWith(t, cfg, extra, "--storage", "flag.json", "--username", "bob", "--fail-fast", "--dry-run")

		require.NoError(t, err)
		assert.Equal(t, "flag.json", opts.StoragePath)
		assert.Equal(t, "bob", opts.Username)
		assert.Equal(t, config.FailFast, opts.FailurePolicy)
		assert.True(t, opts.DryRun)
	})

	t.Run("should surface invalid templates from the config file", func(t *testing.T) {
		cfg := &config.Config{TitleTemplate: "{{.title"}

		_, err := resolveWith(t, cfg, nil)

		assert.ErrorIs(t, err, domainErrors.ErrInvalidTemplate)
	})
}
