package config

import (
	"context"

	"github.com/thomas-vilte/gh-comments/internal/commands/completion_helper"
	"github.com/thomas-vilte/gh-comments/internal/config"
	"github.com/thomas-vilte/gh-comments/internal/i18n"
	"github.com/thomas-vilte/gh-comments/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newInitCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: t.GetMessage("config.init_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: t.GetMessage("sync.flag_username", 0, nil)},
			&cli.StringFlag{Name: "repo", Aliases: []string{"r"}, Usage: t.GetMessage("sync.flag_repo", 0, nil)},
			&cli.StringFlag{Name: "storage", Aliases: []string{"s"}, Usage: t.GetMessage("sync.flag_storage", 0, nil)},
			&cli.StringFlag{Name: "id-field", Usage: t.GetMessage("sync.flag_id_field", 0, nil)},
			&cli.StringFlag{Name: "failure-policy", Usage: t.GetMessage("config.flag_failure_policy", 0, nil)},
			&cli.StringFlag{Name: "lang", Usage: t.GetMessage("global.flag_lang", 0, nil)},
			&cli.StringFlag{Name: "base-url", Usage: t.GetMessage("sync.flag_base_url", 0, nil)},
			&cli.StringSliceFlag{Name: "label", Usage: t.GetMessage("config.flag_label", 0, nil)},
			&cli.StringFlag{Name: "title-template", Usage: t.GetMessage("config.flag_title_template", 0, nil)},
			&cli.StringFlag{Name: "body-template", Usage: t.GetMessage("config.flag_body_template", 0, nil)},
		},
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action:        initConfigAction(cfg, t),
	}
}

func initConfigAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		updated := *cfg

		setString := func(flag string, target *string) {
			if command.IsSet(flag) {
				*target = command.String(flag)
			}
		}
		setString("username", &updated.Username)
		setString("repo", &updated.Repo)
		setString("storage", &updated.StoragePath)
		setString("id-field", &updated.IdentityField)
		setString("failure-policy", &updated.FailurePolicy)
		setString("lang", &updated.Language)
		setString("base-url", &updated.BaseURL)
		setString("title-template", &updated.TitleTemplate)
		setString("body-template", &updated.BodyTemplate)
		if command.IsSet("label") {
			updated.Labels = command.StringSlice("label")
		}

		if err := config.SaveConfig(&updated); err != nil {
			return err
		}
		*cfg = updated

		ui.PrintSuccess(ui.Output, t.GetMessage("config.saved", 0, map[string]interface{}{
			"Path": cfg.PathFile,
		}))
		return nil
	}
}
