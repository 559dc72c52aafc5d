package articles

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	domainErrors "github.com/thomas-vilte/gh-comments/internal/errors"
	"github.com/thomas-vilte/gh-comments/internal/logger"
	"github.com/thomas-vilte/gh-comments/internal/models"
	"gopkg.in/yaml.v3"
)

const (
	// ListKey wraps the article list when a file holds an object instead of a list.
	ListKey = "articles"
	// SlugField is filled from the file name for Markdown posts without one.
	SlugField = "slug"
)

// Load reads the articles at path. A directory is read as a set of Markdown
// posts with YAML front matter; a file is decoded by extension (.yaml/.yml
// as YAML, anything else as JSON).
func Load(ctx context.Context, path string) ([]models.Article, error) {
	info, err := os.Stat(path)
	if err != nil {
		logger.Error(ctx, "failed to stat articles path", err, "path", path)
		return nil, domainErrors.ErrArticlesRead.WithContext("path", path).WithError(err)
	}
	if info.IsDir() {
		return LoadMarkdownDir(ctx, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		logger.Error(ctx, "failed to read articles file", err, "path", path)
		return nil, domainErrors.ErrArticlesRead.WithContext("path", path).WithError(err)
	}

	var articles []models.Article
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		articles, err = DecodeYAML(content)
	default:
		articles, err = DecodeJSON(content)
	}
	if err != nil {
		return nil, withPath(err, path)
	}

	logger.Debug(ctx, "loaded articles", "path", path, "count", len(articles))
	return articles, nil
}

// DecodeJSON keeps numbers as json.Number so identities are not rounded.
func DecodeJSON(content []byte) ([]models.Article, error) {
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, domainErrors.ErrArticlesDecode.WithError(err)
	}
	if dec.More() {
		return nil, domainErrors.ErrArticlesDecode.WithError(fmt.Errorf("unexpected data after the article list"))
	}
	return fromRaw(raw)
}

func DecodeYAML(content []byte) ([]models.Article, error) {
	var raw any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, domainErrors.ErrArticlesDecode.WithError(err)
	}
	return fromRaw(raw)
}

// LoadMarkdownDir turns every .md file of dir into an article made of its
// front matter. Files without front matter are skipped.
func LoadMarkdownDir(ctx context.Context, dir string) ([]models.Article, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Error(ctx, "failed to read articles directory", err, "path", dir)
		return nil, domainErrors.ErrArticlesRead.WithContext("path", dir).WithError(err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".md") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	articles := make([]models.Article, 0, len(names))
	for _, name := range names {
		filePath := filepath.Join(dir, name)
		content, err := os.ReadFile(filePath)
		if err != nil {
			return nil, domainErrors.ErrArticlesRead.WithContext("path", filePath).WithError(err)
		}

		article, ok, err := parseFrontMatter(content)
		if err != nil {
			return nil, withPath(err, filePath)
		}
		if !ok {
			logger.Warn(ctx, "skipping post without front matter", "path", filePath)
			continue
		}
		if _, has := article[SlugField]; !has {
			article[SlugField] = strings.TrimSuffix(name, filepath.Ext(name))
		}
		articles = append(articles, article)
	}

	logger.Debug(ctx, "loaded markdown posts", "path", dir, "count", len(articles))
	return articles, nil
}

func parseFrontMatter(content []byte) (models.Article, bool, error) {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	if !strings.HasPrefix(text, "---\n") {
		return nil, false, nil
	}
	parts := strings.SplitN(text, "---\n", 3)
	if len(parts) < 3 {
		return nil, false, nil
	}

	article := models.Article{}
	if err := yaml.Unmarshal([]byte(parts[1]), &article); err != nil {
		return nil, false, domainErrors.ErrArticlesDecode.WithError(err)
	}
	return article, true, nil
}

func fromRaw(raw any) ([]models.Article, error) {
	if obj, ok := raw.(map[string]any); ok {
		list, found := obj[ListKey]
		if !found {
			return nil, domainErrors.ErrArticlesDecode.
				WithError(fmt.Errorf("object has no %q key", ListKey))
		}
		raw = list
	}

	if raw == nil {
		return []models.Article{}, nil
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, domainErrors.ErrArticlesDecode.
			WithError(fmt.Errorf("expected a list, got %T", raw))
	}

	articles := make([]models.Article, 0, len(items))
	for i, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			return nil, domainErrors.ErrArticlesDecode.
				WithContext("index", i).
				WithError(fmt.Errorf("expected an object, got %T", item))
		}
		articles = append(articles, models.Article(fields))
	}
	return articles, nil
}

func withPath(err error, path string) error {
	if appErr, ok := err.(*domainErrors.AppError); ok {
		return appErr.WithContext("path", path)
	}
	return err
}
