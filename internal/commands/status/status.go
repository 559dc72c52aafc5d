package status

import (
	"context"

	"github.com/thomas-vilte/gh-comments/internal/articles"
	"github.com/thomas-vilte/gh-comments/internal/commands/completion_helper"
	"github.com/thomas-vilte/gh-comments/internal/commands/flags"
	"github.com/thomas-vilte/gh-comments/internal/config"
	"github.com/thomas-vilte/gh-comments/internal/delta"
	"github.com/thomas-vilte/gh-comments/internal/i18n"
	"github.com/thomas-vilte/gh-comments/internal/storage"
	"github.com/thomas-vilte/gh-comments/internal/ui"
	"github.com/urfave/cli/v3"
)

type StatusCommand struct{}

func NewStatusCommand() *StatusCommand {
	return &StatusCommand{}
}

func (s *StatusCommand) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: t.GetMessage("status.usage", 0, nil),
		Flags: []cli.Flag{
			flags.ArticlesFlag(t),
			flags.StorageFlag(t),
			flags.IDFieldFlag(t),
		},
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action: func(ctx context.Context, command *cli.Command) error {
			opts, err := flags.ResolveOptions(cfg, command)
			if err != nil {
				return err
			}

			list, err := articles.Load(ctx, command.String("articles"))
			if err != nil {
				return err
			}

			mapping, err := storage.NewFileStore(opts.StoragePath).Load(ctx)
			if err != nil {
				return err
			}

			pending, err := delta.ComputeMissing(list, mapping, opts.Identity)
			if err != nil {
				return err
			}
			missing := make(map[string]bool, len(pending))
			for _, p := range pending {
				missing[p.ID] = true
			}

			ui.PrintSectionBanner(t.GetMessage("status.banner", 0, nil))

			mapped := 0
			printed := make(map[string]bool, len(list))
			for _, article := range list {
				id, err := opts.Identity(article)
				if err != nil {
					return err
				}
				if printed[id] {
					continue
				}
				printed[id] = true

				if missing[id] {
					ui.PrintWarning(t.GetMessage("status.pending", 0, map[string]interface{}{
						"ArticleID": id,
					}))
					continue
				}
				mapped++
				ui.PrintSuccess(ui.Output, t.GetMessage("status.mapped", 0, map[string]interface{}{
					"ArticleID": id,
					"IssueID":   mapping[id].IssueID,
				}))
			}

			ui.PrintInfo(t.GetMessage("status.summary", 0, map[string]interface{}{
				"Mapped":  mapped,
				"Pending": len(pending),
			}))
			return nil
		},
	}
}
