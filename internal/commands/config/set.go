package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/thomas-vilte/gh-comments/internal/config"
	"github.com/thomas-vilte/gh-comments/internal/i18n"
	"github.com/thomas-vilte/gh-comments/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newSetCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     t.GetMessage("config.set_usage", 0, nil),
		ArgsUsage: "<key> <value>",
		Action: func(ctx context.Context, command *cli.Command) error {
			if command.Args().Len() < 2 {
				ui.PrintError(ui.Output, t.GetMessage("config.set_error_args", 0, nil))
				return fmt.Errorf("missing arguments")
			}

			key := strings.ToLower(command.Args().Get(0))
			value := command.Args().Get(1)

			updated := *cfg
			switch key {
			case "username", "user":
				updated.Username = value
			case "repo", "repository":
				updated.Repo = value
			case "storage", "storage_path":
				updated.StoragePath = value
			case "id-field", "identity_field":
				updated.IdentityField = value
			case "failure-policy", "failure_policy":
				updated.FailurePolicy = value
			case "lang", "language":
				updated.Language = value
			case "base-url", "base_url":
				updated.BaseURL = value
			case "labels":
				updated.Labels = splitLabels(value)
			case "title-template", "title_template":
				updated.TitleTemplate = value
			case "body-template", "body_template":
				updated.BodyTemplate = value
			default:
				return fmt.Errorf("unknown configuration key: %s", key)
			}

			if err := config.SaveConfig(&updated); err != nil {
				return err
			}
			*cfg = updated

			ui.PrintSuccess(ui.Output, t.GetMessage("config.set_success", 0, map[string]interface{}{
				"Key":   key,
				"Value": value,
			}))
			return nil
		},
	}
}

func splitLabels(value string) []string {
	var labels []string
	for _, label := range strings.Split(value, ",") {
		if label = strings.TrimSpace(label); label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}
