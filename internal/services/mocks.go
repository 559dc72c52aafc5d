package services

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/gh-comments/internal/models"
)

type MockIssueTracker struct {
	mock.Mock
}

func (m *MockIssueTracker) CreateIssue(ctx context.Context, payload models.IssuePayload) (int, error) {
	args := m.Called(ctx, payload)
	return args.Int(0), args.Error(1)
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Load(ctx context.Context) (models.Mapping, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.Mapping), args.Error(1)
}

func (m *MockStore) Save(ctx context.Context, mapping models.Mapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

type notice struct {
	AllCovered bool
	IssueID    int
	ArticleID  string
}

// recordingNotifier keeps every notice in call order.
type recordingNotifier struct {
	mu      sync.Mutex
	notices []notice
}

func (n *recordingNotifier) AllCovered(_ context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice{AllCovered: true})
}

func (n *recordingNotifier) IssueCreated(_ context.Context, issueID int, articleID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice{IssueID: issueID, ArticleID: articleID})
}
