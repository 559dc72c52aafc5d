package errors

import (
	"fmt"
	"strings"
)

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeStorage       ErrorType = "STORAGE"
	TypeDecode        ErrorType = "DECODE"
	TypeTransport     ErrorType = "TRANSPORT"
	TypeRemote        ErrorType = "REMOTE"
	TypeArticle       ErrorType = "ARTICLE"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if response, ok := e.Context["response"].(string); ok && response != "" {
			msg += fmt.Sprintf(" - %s", response)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError of the same kind, so that
// errors derived with WithError or WithContext still match their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Storage errors
var (
	ErrStorageRead = NewAppError(TypeStorage, "failed to read issue mapping file", nil).
			WithSuggestion("Check the file permissions of the storage path")

	ErrStorageWrite = NewAppError(TypeStorage, "failed to write issue mapping file", nil).
			WithSuggestion("Check that the storage directory exists and is writable")

	ErrDecode = NewAppError(TypeDecode, "issue mapping file is not valid JSON", nil).
			WithSuggestion("Fix or remove the storage file; it must be an object of {\"issueId\": N} records")
)

// Configuration errors
var (
	ErrUsernameMissing = NewAppError(TypeConfiguration, "GitHub username is missing", nil).
				WithSuggestion("Pass --username or run: gh-comments config init")

	ErrRepoMissing = NewAppError(TypeConfiguration, "GitHub repository is missing", nil).
			WithSuggestion("Pass --repo or run: gh-comments config init")

	ErrTokenMissing = NewAppError(TypeConfiguration, "GitHub token is missing", nil).
			WithSuggestion("Pass --token or export GITHUB_TOKEN")

	ErrInvalidFailurePolicy = NewAppError(TypeConfiguration, "unknown failure policy", nil).
				WithSuggestion("Use one of: persist-successes, fail-fast")

	ErrInvalidTemplate = NewAppError(TypeConfiguration, "invalid issue template", nil)

	ErrConfigRead = NewAppError(TypeConfiguration, "failed to read configuration file", nil)

	ErrConfigWrite = NewAppError(TypeConfiguration, "failed to write configuration file", nil)
)

// Tracker errors
var (
	ErrTransport = NewAppError(TypeTransport, "request to GitHub failed", nil).
			WithSuggestion("Check your network connection")

	ErrRemoteRejection = NewAppError(TypeRemote, "GitHub rejected the issue", nil)

	ErrInvalidResponse = NewAppError(TypeRemote, "GitHub response has no issue number", nil)
)

// Article errors
var (
	ErrMissingIdentity = NewAppError(TypeArticle, "article has no usable identity", nil).
				WithSuggestion("Every article needs a string or numeric value at the identity field")

	ErrArticlesRead = NewAppError(TypeArticle, "failed to read articles file", nil)

	ErrArticlesDecode = NewAppError(TypeArticle, "articles file is not a list of objects", nil).
				WithSuggestion("Use a JSON array or YAML sequence of article objects")
)

// Failure is a single article whose issue could not be created.
type Failure struct {
	ArticleID string
	Err       error
}

// BatchError reports the articles of one run whose issues were not created.
// Issues created by the same run have already been persisted when it is returned.
type BatchError struct {
	Created  int
	Failures []Failure
}

func (e *BatchError) Error() string {
	ids := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		ids = append(ids, f.ArticleID)
	}
	msg := fmt.Sprintf("failed to create %d issue(s) for articles [%s]", len(e.Failures), strings.Join(ids, ", "))
	if len(e.Failures) > 0 {
		msg += fmt.Sprintf(": %v", e.Failures[0].Err)
	}
	return msg
}

func (e *BatchError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}
