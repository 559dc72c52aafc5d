package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	domainErrors "github.com/thomas-vilte/gh-comments/internal/errors"
)

// DefaultIdentityField is the article property used as identity when none is configured.
const DefaultIdentityField = "id"

// Article is a caller supplied content record. Only its identity and
// title are read; every other field is passed through to issue templates.
type Article map[string]any

// Title returns the article title, or an empty string when absent.
func (a Article) Title() string {
	v, ok := a["title"]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// IdentityFunc extracts the key correlating an article with its issue.
type IdentityFunc func(Article) (string, error)

// FieldIdentity reads the identity from a single article field.
func FieldIdentity(field string) IdentityFunc {
	if field == "" {
		field = DefaultIdentityField
	}
	return func(a Article) (string, error) {
		v, ok := a[field]
		if !ok || v == nil {
			return "", domainErrors.ErrMissingIdentity.WithContext("field", field)
		}
		id, err := FormatIdentity(v)
		if err != nil {
			return "", domainErrors.ErrMissingIdentity.
				WithContext("field", field).
				WithError(err)
		}
		return id, nil
	}
}

// FormatIdentity renders an identity value as a mapping key. Integral
// numbers lose their decimal point so that 1 and 1.0 both become "1".
func FormatIdentity(v any) (string, error) {
	switch id := v.(type) {
	case string:
		if id == "" {
			return "", fmt.Errorf("empty string identity")
		}
		return id, nil
	case json.Number:
		return formatNumber(id)
	case int:
		return strconv.Itoa(id), nil
	case int32:
		return strconv.FormatInt(int64(id), 10), nil
	case int64:
		return strconv.FormatInt(id, 10), nil
	case uint:
		return strconv.FormatUint(uint64(id), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(id), 10), nil
	case uint64:
		return strconv.FormatUint(id, 10), nil
	case float32:
		return formatFloat(float64(id))
	case float64:
		return formatFloat(id)
	default:
		return "", fmt.Errorf("unsupported identity type %T", v)
	}
}

// formatNumber keys JSON numbers like their float64 counterparts, so 1.0
// and 1e0 become "1". Integer literals too large for int64 stay verbatim.
func formatNumber(n json.Number) (string, error) {
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	if !strings.ContainsAny(n.String(), ".eE") {
		return n.String(), nil
	}
	f, err := n.Float64()
	if err != nil {
		return n.String(), nil
	}
	return formatFloat(f)
}

func formatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("identity %v is not a finite number", f)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10), nil
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}
