package sync_issues

import (
	"context"

	"github.com/thomas-vilte/gh-comments/internal/articles"
	"github.com/thomas-vilte/gh-comments/internal/commands/completion_helper"
	"github.com/thomas-vilte/gh-comments/internal/commands/flags"
	"github.com/thomas-vilte/gh-comments/internal/config"
	"github.com/thomas-vilte/gh-comments/internal/i18n"
	"github.com/thomas-vilte/gh-comments/internal/logger"
	"github.com/thomas-vilte/gh-comments/internal/models"
	"github.com/thomas-vilte/gh-comments/internal/services"
	"github.com/thomas-vilte/gh-comments/internal/storage"
	"github.com/thomas-vilte/gh-comments/internal/ui"
	"github.com/thomas-vilte/gh-comments/internal/vcs"
	"github.com/thomas-vilte/gh-comments/internal/vcs/github"
	"github.com/urfave/cli/v3"
)

var _ services.Notifier = (*ui.Notifier)(nil)

// TrackerFactory builds the issue tracker for resolved options.
type TrackerFactory func(opts config.Options) (vcs.IssueTracker, error)

type SyncCommandFactory struct {
	newTracker TrackerFactory
}

// NewSyncCommandFactory uses the GitHub client when newTracker is nil.
func NewSyncCommandFactory(newTracker TrackerFactory) *SyncCommandFactory {
	if newTracker == nil {
		newTracker = gitHubTracker
	}
	return &SyncCommandFactory{newTracker: newTracker}
}

func gitHubTracker(opts config.Options) (vcs.IssueTracker, error) {
	return github.NewGitHubClient(opts.Username, opts.Repo, opts.Token, github.ClientOptions{
		BaseURL: opts.BaseURL,
		Timeout: opts.HTTPTimeout,
	})
}

func (f *SyncCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: t.GetMessage("sync.usage", 0, nil),
		Flags: []cli.Flag{
			flags.ArticlesFlag(t),
			flags.StorageFlag(t),
			flags.IDFieldFlag(t),
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   t.GetMessage("sync.flag_username", 0, nil),
			},
			&cli.StringFlag{
				Name:    "repo",
				Aliases: []string{"r"},
				Usage:   t.GetMessage("sync.flag_repo", 0, nil),
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   t.GetMessage("sync.flag_token", 0, nil),
				Sources: cli.EnvVars("GITHUB_TOKEN"),
			},
			&cli.StringFlag{
				Name:  "base-url",
				Usage: t.GetMessage("sync.flag_base_url", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "fail-fast",
				Usage: t.GetMessage("sync.flag_fail_fast", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: t.GetMessage("sync.flag_dry_run", 0, nil),
			},
		},
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action:        f.syncAction(t, cfg),
	}
}

func (f *SyncCommandFactory) syncAction(t *i18n.Translations, cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		opts, err := flags.ResolveOptions(cfg, command)
		if err != nil {
			return err
		}
		if err := opts.Validate(); err != nil {
			return err
		}

		list, err := articles.Load(ctx, command.String("articles"))
		if err != nil {
			return err
		}

		var tracker vcs.IssueTracker
		if !opts.DryRun {
			tracker, err = f.newTracker(opts)
			if err != nil {
				return err
			}
		}

		ctx = logger.With(ctx, "repo", opts.Username+"/"+opts.Repo)
		synchronizer := services.NewSynchronizer(opts, tracker, storage.NewFileStore(opts.StoragePath), ui.NewNotifier(t))

		ui.PrintSectionBanner(t.GetMessage("sync.banner", 0, nil))

		var result *models.SyncResult
		if opts.DryRun {
			result, err = synchronizer.Synchronize(ctx, list)
		} else {
			message := t.GetMessage("sync.creating", 0, map[string]interface{}{
				"Count": len(list),
			})
			err = ui.WithSpinnerAndDuration(message, func() error {
				var syncErr error
				result, syncErr = synchronizer.Synchronize(ctx, list)
				return syncErr
			})
		}
		if result == nil {
			return err
		}

		if result.DryRun {
			printDryRun(t, opts, list, result)
			return nil
		}

		ui.PrintInfo(t.GetMessage("sync.summary", 0, map[string]interface{}{
			"Created": len(result.Created),
			"Failed":  len(result.Failed),
			"Total":   len(result.Mapping),
		}))
		return err
	}
}

func printDryRun(t *i18n.Translations, opts config.Options, list []models.Article, result *models.SyncResult) {
	titles := make(map[string]string, len(list))
	for _, article := range list {
		if id, err := opts.Identity(article); err == nil {
			if _, seen := titles[id]; !seen {
				titles[id] = article.Title()
			}
		}
	}

	for _, id := range result.Pending {
		ui.PrintWarning(t.GetMessage("sync.dry_run_pending", 0, map[string]interface{}{
			"ArticleID": id,
			"Title":     titles[id],
		}))
	}
	ui.PrintInfo(t.GetMessage("sync.dry_run_summary", 0, map[string]interface{}{
		"Count": len(result.Pending),
	}))
}
