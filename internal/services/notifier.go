package services

import (
	"context"

	"github.com/thomas-vilte/gh-comments/internal/logger"
)

// Notifier receives the user facing notices of a run.
type Notifier interface {
	// AllCovered is called when no article needs an issue.
	AllCovered(ctx context.Context)
	// IssueCreated is called once per recorded issue.
	IssueCreated(ctx context.Context, issueID int, articleID string)
}

// LogNotifier reports notices through the context logger.
type LogNotifier struct{}

func (LogNotifier) AllCovered(ctx context.Context) {
	logger.Info(ctx, "All articles have a related Github issue for comments.")
}

func (LogNotifier) IssueCreated(ctx context.Context, issueID int, articleID string) {
	logger.Info(ctx, "Created issue for article.",
		"issue_id", issueID,
		"article_id", articleID)
}
