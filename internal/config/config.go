package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	domainErrors "github.com/thomas-vilte/gh-comments/internal/errors"
	"github.com/thomas-vilte/gh-comments/internal/models"
)

// Config is the persisted CLI configuration. The token is never stored;
// it comes from --token or GITHUB_TOKEN.
type Config struct {
	Username      string   `json:"username,omitempty"`
	Repo          string   `json:"repo,omitempty"`
	StoragePath   string   `json:"storage_path"`
	IdentityField string   `json:"identity_field"`
	FailurePolicy string   `json:"failure_policy"`
	Language      string   `json:"language"`
	BaseURL       string   `json:"base_url,omitempty"`
	Labels        []string `json:"labels,omitempty"`
	TitleTemplate string   `json:"title_template,omitempty"`
	BodyTemplate  string   `json:"body_template,omitempty"`

	PathFile string `json:"-"`
}

const (
	defaultLang = "en"
	configDir   = ".gh-comments"
	configFile  = "config.json"
)

// LoadConfig reads the configuration at path. A path ending in .json is used
// as is; anything else is treated as a home directory holding .gh-comments/config.json.
// A missing file yields the defaults without writing anything.
func LoadConfig(path string) (*Config, error) {
	configPath := path
	if filepath.Ext(path) != ".json" {
		configPath = filepath.Join(path, configDir, configFile)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(configPath), nil
		}
		return nil, domainErrors.ErrConfigRead.
			WithContext("path", configPath).
			WithError(err)
	}

	config := defaultConfig(configPath)
	if err := json.Unmarshal(data, config); err != nil {
		return nil, domainErrors.ErrConfigRead.
			WithContext("path", configPath).
			WithError(fmt.Errorf("error decoding JSON: %w", err))
	}
	config.PathFile = configPath

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

func defaultConfig(path string) *Config {
	return &Config{
		StoragePath:   DefaultStoragePath,
		IdentityField: models.DefaultIdentityField,
		FailurePolicy: string(PersistSuccesses),
		Language:      defaultLang,
		PathFile:      path,
	}
}

func SaveConfig(config *Config) error {
	if err := validateConfig(config); err != nil {
		return err
	}

	if config.PathFile == "" {
		return domainErrors.ErrConfigWrite.WithError(errors.New("config file path is not set"))
	}

	if err := os.MkdirAll(filepath.Dir(config.PathFile), 0o755); err != nil {
		return domainErrors.ErrConfigWrite.
			WithContext("path", config.PathFile).
			WithError(err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return domainErrors.ErrConfigWrite.WithError(err)
	}

	if err := os.WriteFile(config.PathFile, data, 0o644); err != nil {
		return domainErrors.ErrConfigWrite.
			WithContext("path", config.PathFile).
			WithError(err)
	}

	return nil
}

func validateConfig(config *Config) error {
	if config.Language == "" {
		return domainErrors.NewAppError(domainErrors.TypeConfiguration, "language cannot be empty", nil)
	}
	switch FailurePolicy(config.FailurePolicy) {
	case "", PersistSuccesses, FailFast:
	default:
		return domainErrors.ErrInvalidFailurePolicy.WithContext("policy", config.FailurePolicy)
	}
	if _, err := TemplateIssueBuilder(config.TitleTemplate, config.BodyTemplate, config.Labels, config.IdentityField); err != nil {
		return err
	}
	return nil
}

// Options converts the file configuration into run options. Fields set on
// the returned value still have to go through Resolve.
func (c *Config) Options() (Options, error) {
	opts := Options{
		StoragePath:   c.StoragePath,
		IdentityField: c.IdentityField,
		Username:      c.Username,
		Repo:          c.Repo,
		BaseURL:       c.BaseURL,
		FailurePolicy: FailurePolicy(c.FailurePolicy),
	}

	if c.TitleTemplate != "" || c.BodyTemplate != "" || len(c.Labels) > 0 {
		builder, err := TemplateIssueBuilder(c.TitleTemplate, c.BodyTemplate, c.Labels, c.IdentityField)
		if err != nil {
			return Options{}, err
		}
		opts.IssueBuilder = builder
	}

	return opts, nil
}
