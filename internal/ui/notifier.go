package ui

import (
	"context"

	"github.com/thomas-vilte/gh-comments/internal/i18n"
	"github.com/thomas-vilte/gh-comments/internal/logger"
)

// Notifier prints synchronization notices in the user's language.
type Notifier struct {
	t *i18n.Translations
}

func NewNotifier(t *i18n.Translations) *Notifier {
	return &Notifier{t: t}
}

func (n *Notifier) AllCovered(ctx context.Context) {
	StopActiveSpinner()
	logger.Debug(ctx, "all articles covered")
	PrintSuccess(Output, n.t.GetMessage("sync.all_covered", 0, nil))
}

func (n *Notifier) IssueCreated(ctx context.Context, issueID int, articleID string) {
	StopActiveSpinner()
	logger.Debug(ctx, "issue recorded", "issue_id", issueID, "article_id", articleID)
	PrintIssue(n.t.GetMessage("sync.issue_created", 0, map[string]interface{}{
		"IssueID":   issueID,
		"ArticleID": articleID,
	}))
}
