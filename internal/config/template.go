package config

import (
	"context"
	"strings"
	"text/template"

	domainErrors "github.com/thomas-vilte/gh-comments/internal/errors"
	"github.com/thomas-vilte/gh-comments/internal/logger"
	"github.com/thomas-vilte/gh-comments/internal/models"
)

// TemplateIssueBuilder renders issue titles and bodies from text/template
// sources executed against the article fields, e.g. "Comments: {{.title}}".
// An empty source keeps the default title or body. A template that fails
// to execute for an article, for instance on a missing field, falls back
// to the default content with a warning naming the article read from
// identityField.
func TemplateIssueBuilder(titleTmpl, bodyTmpl string, labels []string, identityField string) (models.IssueBuilder, error) {
	title, err := parseTemplate("title", titleTmpl)
	if err != nil {
		return nil, err
	}
	body, err := parseTemplate("body", bodyTmpl)
	if err != nil {
		return nil, err
	}

	if len(labels) == 0 {
		labels = []string{models.DefaultLabel}
	}
	labels = append([]string(nil), labels...)
	identity := models.FieldIdentity(identityField)

	return func(a models.Article) models.IssuePayload {
		payload := models.DefaultIssueBuilder(a)
		if s, ok := render(title, a, identity); ok {
			payload.Title = s
		}
		if s, ok := render(body, a, identity); ok {
			payload.Body = s
		}
		payload.Labels = append([]string(nil), labels...)
		return payload
	}, nil
}

func parseTemplate(name, src string) (*template.Template, error) {
	if strings.TrimSpace(src) == "" {
		return nil, nil
	}
	tmpl, err := template.New(name).Option("missingkey=error").Parse(src)
	if err != nil {
		return nil, domainErrors.ErrInvalidTemplate.
			WithContext("template", name).
			WithError(err)
	}
	return tmpl, nil
}

func render(tmpl *template.Template, a models.Article, identity models.IdentityFunc) (string, bool) {
	if tmpl == nil {
		return "", false
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, map[string]any(a)); err != nil {
		id, _ := identity(a)
		logger.Warn(context.Background(), "issue template failed, using default content",
			"template", tmpl.Name(),
			"article_id", id,
			"error", err)
		return "", false
	}
	return sb.String(), true
}
