package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v80/github"
	domainErrors "github.com/thomas-vilte/gh-comments/internal/errors"
	"github.com/thomas-vilte/gh-comments/internal/logger"
	"github.com/thomas-vilte/gh-comments/internal/models"
	"github.com/thomas-vilte/gh-comments/internal/vcs"
	"golang.org/x/oauth2"
)

var _ vcs.IssueTracker = (*GitHubClient)(nil)

type IssuesService interface {
	Create(ctx context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
}

type GitHubClient struct {
	issuesService IssuesService
	owner         string
	repo          string
}

// ClientOptions tunes the HTTP side of the client.
type ClientOptions struct {
	// BaseURL is the REST API root, e.g. https://ghe.example.com/api/v3/.
	// Empty means api.github.com.
	BaseURL string
	Timeout time.Duration
}

// NewGitHubClient authenticates every request with "Authorization: token <token>"
// and identifies itself with the owner name as User-Agent.
func NewGitHubClient(owner, repo, token string, opts ClientOptions) (*GitHubClient, error) {
	httpClient := &http.Client{Timeout: opts.Timeout}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "token"})
		httpClient = &http.Client{
			Timeout:   opts.Timeout,
			Transport: &oauth2.Transport{Source: ts},
		}
	}

	client := github.NewClient(httpClient)
	client.UserAgent = owner

	if opts.BaseURL != "" {
		baseURL := opts.BaseURL
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			if err == nil {
				err = fmt.Errorf("missing scheme or host")
			}
			return nil, domainErrors.NewAppError(domainErrors.TypeConfiguration, "invalid GitHub base URL", err).
				WithContext("base_url", opts.BaseURL)
		}
		client.BaseURL = u
	}

	return NewGitHubClientWithServices(client.Issues, owner, repo), nil
}

func NewGitHubClientWithServices(issuesService IssuesService, owner, repo string) *GitHubClient {
	return &GitHubClient{
		issuesService: issuesService,
		owner:         owner,
		repo:          repo,
	}
}

func (ghc *GitHubClient) CreateIssue(ctx context.Context, payload models.IssuePayload) (int, error) {
	log := logger.FromContext(ctx)

	log.Debug("creating github issue",
		"owner", ghc.owner,
		"repo", ghc.repo,
		"title", payload.Title,
		"labels_count", len(payload.Labels))

	labels := payload.Labels
	if labels == nil {
		labels = []string{}
	}

	issueRequest := &github.IssueRequest{
		Title:  github.Ptr(payload.Title),
		Body:   github.Ptr(payload.Body),
		Labels: &labels,
	}

	ghIssue, resp, err := ghc.issuesService.Create(ctx, ghc.owner, ghc.repo, issueRequest)
	if err != nil {
		if resp == nil || resp.Response == nil {
			log.Debug("github request failed before a response",
				"owner", ghc.owner,
				"repo", ghc.repo,
				"error", err)
			return 0, domainErrors.ErrTransport.
				WithContext("operation", "create issue").
				WithContext("repo", ghc.repoPath()).
				WithError(err)
		}
		if resp.StatusCode < http.StatusBadRequest {
			return 0, domainErrors.ErrInvalidResponse.
				WithContext("operation", "create issue").
				WithContext("repo", ghc.repoPath()).
				WithContext("status", resp.StatusCode).
				WithError(err)
		}
		return 0, ghc.rejection(resp, err)
	}

	if ghIssue == nil || ghIssue.Number == nil {
		return 0, domainErrors.ErrInvalidResponse.
			WithContext("operation", "create issue").
			WithContext("repo", ghc.repoPath())
	}

	log.Debug("github issue created",
		"issue_number", ghIssue.GetNumber(),
		"issue_url", ghIssue.GetHTMLURL())

	return ghIssue.GetNumber(), nil
}

// rejection turns an HTTP error status into ErrRemoteRejection carrying the
// response payload.
func (ghc *GitHubClient) rejection(resp *github.Response, err error) error {
	appErr := domainErrors.ErrRemoteRejection.
		WithContext("operation", "create issue").
		WithContext("repo", ghc.repoPath()).
		WithContext("status", resp.StatusCode).
		WithContext("response", responsePayload(err)).
		WithError(err)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return appErr.WithSuggestion("The token is invalid or expired; generate a new one at https://github.com/settings/tokens")
	case http.StatusForbidden:
		return appErr.WithSuggestion("The token needs the 'repo' scope (or issues: write) on " + ghc.repoPath())
	case http.StatusNotFound:
		return appErr.WithSuggestion("Check that the repository " + ghc.repoPath() + " exists and the token can access it")
	case http.StatusGone:
		return appErr.WithSuggestion("Issues are disabled on " + ghc.repoPath())
	default:
		return appErr
	}
}

// responsePayload renders GitHub's error body: its message plus field errors.
func responsePayload(err error) string {
	var ghErr *github.ErrorResponse
	if !errors.As(err, &ghErr) {
		return err.Error()
	}

	parts := []string{ghErr.Message}
	for _, e := range ghErr.Errors {
		detail := e.Message
		if detail == "" {
			detail = fmt.Sprintf("%s %s %s", e.Resource, e.Field, e.Code)
		}
		parts = append(parts, strings.TrimSpace(detail))
	}
	return strings.Join(parts, "; ")
}

func (ghc *GitHubClient) repoPath() string {
	return ghc.owner + "/" + ghc.repo
}
