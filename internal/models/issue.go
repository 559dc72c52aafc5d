package models

import "fmt"

// IssueRecord is the durable result of a successful issue creation.
type IssueRecord struct {
	IssueID int `json:"issueId"`
}

// Mapping correlates article identities with their comment issues.
// Entries are only ever added.
type Mapping map[string]IssueRecord

// Clone returns a copy that can be grown without touching m.
func (m Mapping) Clone() Mapping {
	out := make(Mapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Has reports whether id already has an issue.
func (m Mapping) Has(id string) bool {
	_, ok := m[id]
	return ok
}

// IssuePayload is the content submitted to the tracker for one article.
type IssuePayload struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels"`
}

// IssueBuilder turns an article into the issue that will hold its comments.
type IssueBuilder func(Article) IssuePayload

// DefaultLabel is attached to every issue built by DefaultIssueBuilder.
const DefaultLabel = "comments"

// DefaultIssueBuilder reserves an issue for the comments of a.
func DefaultIssueBuilder(a Article) IssuePayload {
	title := a.Title()
	return IssuePayload{
		Title: "Comments: " + title,
		Body: fmt.Sprintf("This issue is reserved for comments to **%s**. "+
			"Leave a comment below and it will be shown in the blog page.", title),
		Labels: []string{DefaultLabel},
	}
}
