package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/thomas-vilte/gh-comments/internal/cli/registry"
	configcmd "github.com/thomas-vilte/gh-comments/internal/commands/config"
	"github.com/thomas-vilte/gh-comments/internal/commands/status"
	"github.com/thomas-vilte/gh-comments/internal/commands/sync_issues"
	cfg "github.com/thomas-vilte/gh-comments/internal/config"
	"github.com/thomas-vilte/gh-comments/internal/i18n"
	"github.com/thomas-vilte/gh-comments/internal/logger"
	"github.com/thomas-vilte/gh-comments/internal/ui"
	"github.com/thomas-vilte/gh-comments/internal/version"
	"github.com/urfave/cli/v3"
)

// configEnv points to an explicit config.json instead of ~/.gh-comments/config.json.
const configEnv = "GH_COMMENTS_CONFIG"

func main() {
	app, translations, err := initializeApp()
	if err != nil {
		log.Fatalf("Error starting the cli: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		ui.HandleAppError(err, translations)
		os.Exit(1)
	}
}

func initializeApp() (*cli.Command, *i18n.Translations, error) {
	configPath := os.Getenv(configEnv)
	if configPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("could not get the user home directory: %w", err)
		}
		configPath = homeDir
	}

	cfgApp, err := cfg.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	translations, err := i18n.NewTranslations(cfgApp.Language, "")
	if err != nil {
		return nil, nil, fmt.Errorf("error loading translations: %w", err)
	}

	registerCommand := registry.NewRegistry(cfgApp, translations)

	if err := registerCommand.Register("sync", sync_issues.NewSyncCommandFactory(nil)); err != nil {
		return nil, nil, err
	}
	if err := registerCommand.Register("status", status.NewStatusCommand()); err != nil {
		return nil, nil, err
	}
	if err := registerCommand.Register("config", configcmd.NewConfigCommandFactory()); err != nil {
		return nil, nil, err
	}

	return &cli.Command{
		Name:        "gh-comments",
		Usage:       translations.GetMessage("app_usage", 0, nil),
		Version:     version.Version,
		Description: translations.GetMessage("app_description", 0, nil),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: translations.GetMessage("global.flag_debug", 0, nil),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   translations.GetMessage("global.flag_verbose", 0, nil),
			},
			&cli.StringFlag{
				Name:  "lang",
				Usage: translations.GetMessage("global.flag_lang", 0, nil),
			},
		},
		Before: func(ctx context.Context, command *cli.Command) (context.Context, error) {
			logger.Initialize(command.Bool("debug"), command.Bool("verbose"))
			logger.Debug(ctx, "starting gh-comments", "version", version.FullVersion(), "config", cfgApp.PathFile)
			if lang := command.String("lang"); lang != "" {
				if err := translations.SetLanguage(lang); err != nil {
					return ctx, err
				}
			}
			return ctx, nil
		},
		Commands:              registerCommand.CreateCommands(),
		EnableShellCompletion: true,
	}, translations, nil
}
