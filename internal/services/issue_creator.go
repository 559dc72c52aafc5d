package services

import (
	"context"
	"time"

	"github.com/thomas-vilte/gh-comments/internal/delta"
	"github.com/thomas-vilte/gh-comments/internal/logger"
	"github.com/thomas-vilte/gh-comments/internal/models"
	"github.com/thomas-vilte/gh-comments/internal/vcs"
	"golang.org/x/sync/errgroup"
)

// IssueCreator opens one issue per pending article, all requests in flight at once.
type IssueCreator struct {
	tracker vcs.IssueTracker
	builder models.IssueBuilder
}

func NewIssueCreator(tracker vcs.IssueTracker, builder models.IssueBuilder) *IssueCreator {
	if builder == nil {
		builder = models.DefaultIssueBuilder
	}
	return &IssueCreator{
		tracker: tracker,
		builder: builder,
	}
}

// CreateAll waits for every request to settle. outcomes[i] always belongs to
// pending[i]; the returned error is the first failure in completion order.
func (c *IssueCreator) CreateAll(ctx context.Context, pending []delta.Pending) ([]models.CreationOutcome, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	outcomes := make([]models.CreationOutcome, len(pending))

	// plain Group: a failure must not cancel sibling requests
	var g errgroup.Group

	for i, p := range pending {
		g.Go(func() error {
			payload := c.builder(p.Article)
			issueID, err := c.tracker.CreateIssue(ctx, payload)

			outcomes[i] = models.CreationOutcome{
				Index:     i,
				ArticleID: p.ID,
				IssueID:   issueID,
				Err:       err,
			}
			if err != nil {
				log.Debug("issue creation failed",
					"article_id", p.ID,
					"error", err)
				return err
			}
			return nil
		})
	}

	err := g.Wait()

	log.Debug("issue creation batch settled",
		"total", len(pending),
		"duration_ms", time.Since(start).Milliseconds())

	return outcomes, err
}
