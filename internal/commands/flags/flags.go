package flags

import (
	"github.com/thomas-vilte/gh-comments/internal/config"
	"github.com/thomas-vilte/gh-comments/internal/i18n"
	"github.com/urfave/cli/v3"
)

func ArticlesFlag(t *i18n.Translations) cli.Flag {
	return &cli.StringFlag{
		Name:     "articles",
		Aliases:  []string{"a"},
		Usage:    t.GetMessage("sync.flag_articles", 0, nil),
		Required: true,
	}
}

func StorageFlag(t *i18n.Translations) cli.Flag {
	return &cli.StringFlag{
		Name:    "storage",
		Aliases: []string{"s"},
		Usage:   t.GetMessage("sync.flag_storage", 0, nil),
	}
}

func IDFieldFlag(t *i18n.Translations) cli.Flag {
	return &cli.StringFlag{
		Name:  "id-field",
		Usage: t.GetMessage("sync.flag_id_field", 0, nil),
	}
}

// ResolveOptions layers the flags a command defines over the config file
// and the defaults. Flags the command does not define are ignored.
func ResolveOptions(cfg *config.Config, command *cli.Command) (config.Options, error) {
	opts, err := cfg.Options()
	if err != nil {
		return config.Options{}, err
	}

	setString := func(name string, target *string) {
		if hasFlag(command, name) {
			if v := command.String(name); v != "" {
				*target = v
			}
		}
	}

	setString("storage", &opts.StoragePath)
	setString("id-field", &opts.IdentityField)
	setString("username", &opts.Username)
	setString("repo", &opts.Repo)
	setString("token", &opts.Token)
	setString("base-url", &opts.BaseURL)

	if hasFlag(command, "fail-fast") && command.Bool("fail-fast") {
		opts.FailurePolicy = config.FailFast
	}
	if hasFlag(command, "dry-run") {
		opts.DryRun = command.Bool("dry-run")
	}

	return config.Resolve(opts), nil
}

func hasFlag(command *cli.Command, name string) bool {
	for _, f := range command.Flags {
		for _, n := range f.Names() {
			if n == name {
				return true
			}
		}
	}
	return false
}
