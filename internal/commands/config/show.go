package config

import (
	"context"
	"strings"

	"github.com/thomas-vilte/gh-comments/internal/config"
	"github.com/thomas-vilte/gh-comments/internal/i18n"
	"github.com/thomas-vilte/gh-comments/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config.show_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			ui.PrintSectionBanner(t.GetMessage("config.current", 0, nil))

			ui.PrintKeyValue(t.GetMessage("config.path", 0, nil), cfg.PathFile)
			ui.PrintKeyValue("username", orUnset(t, cfg.Username))
			ui.PrintKeyValue("repo", orUnset(t, cfg.Repo))
			ui.PrintKeyValue("storage_path", cfg.StoragePath)
			ui.PrintKeyValue("identity_field", cfg.IdentityField)
			ui.PrintKeyValue("failure_policy", orDefault(cfg.FailurePolicy, string(config.PersistSuccesses)))
			ui.PrintKeyValue("language", cfg.Language)
			ui.PrintKeyValue("base_url", orDefault(cfg.BaseURL, config.DefaultBaseURL))
			ui.PrintKeyValue("labels", orDefault(strings.Join(cfg.Labels, ", "), "comments"))
			if cfg.TitleTemplate != "" {
				ui.PrintKeyValue("title_template", cfg.TitleTemplate)
			}
			if cfg.BodyTemplate != "" {
				ui.PrintKeyValue("body_template", cfg.BodyTemplate)
			}

			return nil
		},
	}
}

func orUnset(t *i18n.Translations, value string) string {
	if value == "" {
		return t.GetMessage("config.unset", 0, nil)
	}
	return value
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
