package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/gh-comments/internal/delta"
	"github.com/thomas-vilte/gh-comments/internal/models"
)

func payloadTitled(title string) interface{} {
	return mock.MatchedBy(func(p models.IssuePayload) bool {
		return p.Title == title
	})
}

func TestIssueCreator_CreateAll(t *testing.T) {
	pending := []delta.Pending{
		{ID: "1", Article: models.Article{"id": 1, "title": "A"}},
		{ID: "2", Article: models.Article{"id": 2, "title": "B"}},
		{ID: "3", Article: models.Article{"id": 3, "title": "C"}},
	}

	t.Run("should pair every outcome with its article", func(t *testing.T) {
		tracker := &MockIssueTracker{}
		// later articles answer first
		tracker.On("CreateIssue", mock.Anything, payloadTitled("Comments: A")).
			After(30*time.Millisecond).Return(101, nil)
		tracker.On("CreateIssue", mock.Anything, payloadTitled("Comments: B")).
			After(10*time.Millisecond).Return(102, nil)
		tracker.On("CreateIssue", mock.Anything, payloadTitled("Comments: C")).
			Return(103, nil)

		outcomes, err := NewIssueCreator(tracker, nil).CreateAll(context.Background(), pending)

		require.NoError(t, err)
		require.Len(t, outcomes, 3)
		for i, want := range []struct {
			id    string
			issue int
		}{{"1", 101}, {"2", 102}, {"3", 103}} {
			assert.Equal(t, i, outcomes[i].Index)
			assert.Equal(t, want.id, outcomes[i].ArticleID)
			assert.Equal(t, want.issue, outcomes[i].IssueID)
			assert.True(t, outcomes[i].Succeeded())
		}
		tracker.AssertExpectations(t)
	})

	t.Run("should dispatch requests concurrently", func(t *testing.T) {
		var mu sync.Mutex
		inFlight, maxInFlight := 0, 0
		release := make(chan struct{})

		tracker := &MockIssueTracker{}
		tracker.On("CreateIssue", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				mu.Lock()
				inFlight++
				if inFlight > maxInFlight {
					maxInFlight = inFlight
				}
				if inFlight == len(pending) {
					close(release)
				}
				mu.Unlock()

				select {
				case <-release:
				case <-time.After(2 * time.Second):
				}

				mu.Lock()
				inFlight--
				mu.Unlock()
			}).Return(1, nil)

		_, err := NewIssueCreator(tracker, nil).CreateAll(context.Background(), pending)

		require.NoError(t, err)
		assert.Equal(t, len(pending), maxInFlight)
	})

	t.Run("should settle every request when one fails", func(t *testing.T) {
		failure := errors.New("422 Validation Failed")
		tracker := &MockIssueTracker{}
		tracker.On("CreateIssue", mock.Anything, payloadTitled("Comments: A")).Return(101, nil)
		tracker.On("CreateIssue", mock.Anything, payloadTitled("Comments: B")).Return(0, failure)
		tracker.On("CreateIssue", mock.Anything, payloadTitled("Comments: C")).
			After(20*time.Millisecond).Return(103, nil)

		outcomes, err := NewIssueCreator(tracker, nil).CreateAll(context.Background(), pending)

		assert.ErrorIs(t, err, failure)
		require.Len(t, outcomes, 3)
		assert.True(t, outcomes[0].Succeeded())
		assert.ErrorIs(t, outcomes[1].Err, failure)
		assert.Equal(t, "2", outcomes[1].ArticleID)
		assert.True(t, outcomes[2].Succeeded())
		assert.Equal(t, 103, outcomes[2].IssueID)
		tracker.AssertNumberOfCalls(t, "CreateIssue", 3)
	})

	t.Run("should build payloads with the configured builder", func(t *testing.T) {
		builder := func(a models.Article) models.IssuePayload {
			return models.IssuePayload{Title: "Discuss " + a.Title(), Labels: []string{"blog"}}
		}
		tracker := &MockIssueTracker{}
		tracker.On("CreateIssue", mock.Anything, models.IssuePayload{Title: "Discuss A", Labels: []string{"blog"}}).
			Return(7, nil)

		outcomes, err := NewIssueCreator(tracker, builder).CreateAll(context.Background(), pending[:1])

		require.NoError(t, err)
		assert.Equal(t, 7, outcomes[0].IssueID)
		tracker.AssertExpectations(t)
	})

	t.Run("should do nothing for an empty batch", func(t *testing.T) {
		tracker := &MockIssueTracker{}

		outcomes, err := NewIssueCreator(tracker, nil).CreateAll(context.Background(), nil)

		assert.NoError(t, err)
		assert.Empty(t, outcomes)
		tracker.AssertNotCalled(t, "CreateIssue", mock.Anything, mock.Anything)
	})
}
