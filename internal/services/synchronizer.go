package services

import (
	"context"
	"time"

	"github.com/thomas-vilte/gh-comments/internal/config"
	"github.com/thomas-vilte/gh-comments/internal/delta"
	domainErrors "github.com/thomas-vilte/gh-comments/internal/errors"
	"github.com/thomas-vilte/gh-comments/internal/logger"
	"github.com/thomas-vilte/gh-comments/internal/models"
	"github.com/thomas-vilte/gh-comments/internal/storage"
	"github.com/thomas-vilte/gh-comments/internal/vcs"
	"github.com/thomas-vilte/gh-comments/internal/vcs/github"
)

// Synchronizer makes sure every article has exactly one comments issue.
type Synchronizer struct {
	opts     config.Options
	store    storage.Store
	creator  *IssueCreator
	notifier Notifier
}

// NewSynchronizer expects opts to come from config.Resolve.
func NewSynchronizer(opts config.Options, tracker vcs.IssueTracker, store storage.Store, notifier Notifier) *Synchronizer {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	identity := opts.Identity
	if identity == nil {
		identity = models.FieldIdentity(opts.IdentityField)
	}
	opts.Identity = identity

	return &Synchronizer{
		opts:     opts,
		store:    store,
		creator:  NewIssueCreator(tracker, opts.IssueBuilder),
		notifier: notifier,
	}
}

// Synchronize loads the mapping, creates the missing issues and persists
// the grown mapping.
//
// With the persist-successes policy every created issue is recorded even
// when some requests fail; the failures come back as a *errors.BatchError
// together with the result. With fail-fast a single failure discards the
// whole batch and nothing is written; the error is returned only after
// every in-flight request has settled.
func (s *Synchronizer) Synchronize(ctx context.Context, articles []models.Article) (*models.SyncResult, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	mapping, err := s.store.Load(ctx)
	if err != nil {
		log.Error("failed to load issue mapping", "error", err)
		return nil, err
	}

	pending, err := delta.ComputeMissing(articles, mapping, s.opts.Identity)
	if err != nil {
		return nil, err
	}

	result := &models.SyncResult{
		Mapping: mapping,
		Pending: delta.IDs(pending),
		DryRun:  s.opts.DryRun,
	}

	log.Info("computed missing issues",
		"total", len(articles),
		"pending", len(pending),
		"dry_run", s.opts.DryRun)

	if s.opts.DryRun {
		return result, nil
	}

	if len(pending) == 0 {
		s.notifier.AllCovered(ctx)
		if err := s.store.Save(ctx, mapping); err != nil {
			return nil, err
		}
		return result, nil
	}

	outcomes, firstErr := s.creator.CreateAll(ctx, pending)

	if firstErr != nil && s.opts.FailurePolicy == config.FailFast {
		log.Error("issue creation failed, discarding batch",
			"error", firstErr,
			"pending", len(pending),
			"duration_ms", time.Since(start).Milliseconds())
		return nil, firstErr
	}

	merged := mapping.Clone()
	for _, outcome := range outcomes {
		if !outcome.Succeeded() {
			result.Failed = append(result.Failed, outcome)
			continue
		}
		merged[outcome.ArticleID] = models.IssueRecord{IssueID: outcome.IssueID}
		result.Created = append(result.Created, outcome)
		s.notifier.IssueCreated(ctx, outcome.IssueID, outcome.ArticleID)
	}
	result.Mapping = merged

	if err := s.store.Save(ctx, merged); err != nil {
		log.Error("failed to save issue mapping",
			"error", err,
			"created", len(result.Created))
		return nil, err
	}

	log.Info("synchronization finished",
		"created", len(result.Created),
		"failed", len(result.Failed),
		"duration_ms", time.Since(start).Milliseconds())

	if len(result.Failed) > 0 {
		batchErr := &domainErrors.BatchError{Created: len(result.Created)}
		for _, f := range result.Failed {
			batchErr.Failures = append(batchErr.Failures, domainErrors.Failure{
				ArticleID: f.ArticleID,
				Err:       f.Err,
			})
		}
		return result, batchErr
	}

	return result, nil
}

// Synchronize resolves overrides over the defaults, talks to GitHub and keeps
// the mapping in the configured JSON file. It returns the final mapping,
// previously existing entries included.
func Synchronize(ctx context.Context, articles []models.Article, overrides config.Options) (models.Mapping, error) {
	opts := config.Resolve(overrides)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	client, err := github.NewGitHubClient(opts.Username, opts.Repo, opts.Token, github.ClientOptions{
		BaseURL: opts.BaseURL,
		Timeout: opts.HTTPTimeout,
	})
	if err != nil {
		return nil, err
	}

	result, err := NewSynchronizer(opts, client, storage.NewFileStore(opts.StoragePath), LogNotifier{}).
		Synchronize(ctx, articles)
	if result == nil {
		return nil, err
	}
	return result.Mapping, err
}
