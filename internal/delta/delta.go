// Package delta computes which articles still need a comments issue.
package delta

import (
	"errors"

	domainErrors "github.com/thomas-vilte/gh-comments/internal/errors"
	"github.com/thomas-vilte/gh-comments/internal/models"
)

// Pending is an article without an issue, paired with its identity.
type Pending struct {
	Article models.Article
	ID      string
}

// ComputeMissing returns, in input order, the articles whose identity is not
// a key of mapping. Repeated identities are reported once, at their first
// position. It fails on the first article without a usable identity.
func ComputeMissing(articles []models.Article, mapping models.Mapping, identity models.IdentityFunc) ([]Pending, error) {
	if identity == nil {
		identity = models.FieldIdentity(models.DefaultIdentityField)
	}

	missing := make([]Pending, 0, len(articles))
	seen := make(map[string]struct{}, len(articles))

	for i, article := range articles {
		id, err := identity(article)
		if err != nil {
			var appErr *domainErrors.AppError
			if errors.As(err, &appErr) {
				return nil, appErr.WithContext("index", i)
			}
			return nil, domainErrors.ErrMissingIdentity.
				WithContext("index", i).
				WithError(err)
		}
		if mapping.Has(id) {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		missing = append(missing, Pending{Article: article, ID: id})
	}

	return missing, nil
}

// IDs returns the identities of pending in order.
func IDs(pending []Pending) []string {
	ids := make([]string, len(pending))
	for i, p := range pending {
		ids[i] = p.ID
	}
	return ids
}
