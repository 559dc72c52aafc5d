package models

// CreationOutcome is the settled result of one issue creation request.
// Index is the position of the article in the pending list it came from.
type CreationOutcome struct {
	Index     int
	ArticleID string
	IssueID   int
	Err       error
}

// Succeeded reports whether the tracker assigned an issue.
func (o CreationOutcome) Succeeded() bool {
	return o.Err == nil
}

// SyncResult summarizes a synchronization run.
type SyncResult struct {
	Mapping Mapping
	// Pending lists the identities that lacked an issue when the run started.
	Pending []string
	Created []CreationOutcome
	Failed  []CreationOutcome
	DryRun  bool
}
