package config

import (
	"time"

	domainErrors "github.com/thomas-vilte/gh-comments/internal/errors"
	"github.com/thomas-vilte/gh-comments/internal/models"
)

// FailurePolicy decides what happens to a batch where some creations fail.
type FailurePolicy string

const (
	// PersistSuccesses records every issue that was created and reports the rest.
	PersistSuccesses FailurePolicy = "persist-successes"
	// FailFast records nothing when any creation fails.
	FailFast FailurePolicy = "fail-fast"
)

const (
	DefaultStoragePath = "gh-comments.json"
	DefaultBaseURL     = "https://api.github.com/"
	DefaultHTTPTimeout = 30 * time.Second
)

// Options is the resolved configuration of one synchronization run.
// Build it with Resolve and treat it as read-only afterwards.
type Options struct {
	StoragePath   string
	IdentityField string
	// Identity overrides IdentityField when set.
	Identity      models.IdentityFunc
	IssueBuilder  models.IssueBuilder
	Username      string
	Repo          string
	Token         string
	BaseURL       string
	FailurePolicy FailurePolicy
	HTTPTimeout   time.Duration
	DryRun        bool
}

// Defaults returns the options used for every field a caller leaves empty.
func Defaults() Options {
	return Options{
		StoragePath:   DefaultStoragePath,
		IdentityField: models.DefaultIdentityField,
		IssueBuilder:  models.DefaultIssueBuilder,
		BaseURL:       DefaultBaseURL,
		FailurePolicy: PersistSuccesses,
		HTTPTimeout:   DefaultHTTPTimeout,
	}
}

// Resolve merges the non-zero fields of overrides over Defaults.
func Resolve(overrides Options) Options {
	opts := Defaults()

	if overrides.StoragePath != "" {
		opts.StoragePath = overrides.StoragePath
	}
	if overrides.IdentityField != "" {
		opts.IdentityField = overrides.IdentityField
	}
	if overrides.IssueBuilder != nil {
		opts.IssueBuilder = overrides.IssueBuilder
	}
	if overrides.BaseURL != "" {
		opts.BaseURL = overrides.BaseURL
	}
	if overrides.FailurePolicy != "" {
		opts.FailurePolicy = overrides.FailurePolicy
	}
	if overrides.HTTPTimeout > 0 {
		opts.HTTPTimeout = overrides.HTTPTimeout
	}

	opts.Identity = overrides.Identity
	if opts.Identity == nil {
		opts.Identity = models.FieldIdentity(opts.IdentityField)
	}

	opts.Username = overrides.Username
	opts.Repo = overrides.Repo
	opts.Token = overrides.Token
	opts.DryRun = overrides.DryRun

	return opts
}

// Validate checks the fields required to talk to GitHub. Dry runs never
// reach GitHub and only need a known failure policy.
func (o Options) Validate() error {
	switch o.FailurePolicy {
	case PersistSuccesses, FailFast:
	default:
		return domainErrors.ErrInvalidFailurePolicy.WithContext("policy", string(o.FailurePolicy))
	}

	if o.DryRun {
		return nil
	}
	if o.Username == "" {
		return domainErrors.ErrUsernameMissing
	}
	if o.Repo == "" {
		return domainErrors.ErrRepoMissing
	}
	if o.Token == "" {
		return domainErrors.ErrTokenMissing
	}
	return nil
}
