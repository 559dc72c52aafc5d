package vcs

import (
	"context"

	"github.com/thomas-vilte/gh-comments/internal/models"
)

// IssueTracker opens discussion issues on a remote tracker.
type IssueTracker interface {
	// CreateIssue submits payload and returns the number the tracker assigned.
	CreateIssue(ctx context.Context, payload models.IssuePayload) (int, error)
}
