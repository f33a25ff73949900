package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var ErrContentDirRequired = errors.New("blog config: content directory is required for the dir store")
var ErrContentSuffixRequired = errors.New("blog config: content suffix is required")
var ErrContentWorkersInvalid = errors.New("blog config: content workers must be zero or positive")
var ErrStoreProviderUnknown = errors.New("blog config: store provider is invalid")
var ErrObjectStoreInvalid = errors.New("blog config: object store configuration is invalid")
var ErrListingOrderInvalid = errors.New("blog config: listing order is invalid")
var ErrDatePolicyInvalid = errors.New("blog config: date policy is invalid")
var ErrMarkdownExtensionUnknown = errors.New("blog config: markdown extension is unknown")
var ErrLoggingProviderRequired = errors.New("blog config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("blog config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("blog config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("blog config: logging format is invalid")

const (
	StoreProviderDir    = "dir"
	StoreProviderObject = "object"
)

// Config aggregates the settings of the blog content pipeline.
type Config struct {
	Content  ContentConfig  `mapstructure:"content"`
	Store    StoreConfig    `mapstructure:"store"`
	Listing  ListingConfig  `mapstructure:"listing"`
	Markdown MarkdownConfig `mapstructure:"markdown"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ContentConfig locates post documents.
type ContentConfig struct {
	Dir     string `mapstructure:"dir"`
	Suffix  string `mapstructure:"suffix"`
	Workers int    `mapstructure:"workers"`
}

// StoreConfig selects the content store backend.
type StoreConfig struct {
	Provider string            `mapstructure:"provider"`
	Object   ObjectStoreConfig `mapstructure:"object"`
}

// ObjectStoreConfig addresses an S3 compatible bucket.
type ObjectStoreConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// ListingConfig controls post ordering.
type ListingConfig struct {
	Order      string `mapstructure:"order"`
	DatePolicy string `mapstructure:"date_policy"`
}

// MarkdownConfig controls body parsing and HTML presentation.
type MarkdownConfig struct {
	Extensions     []string `mapstructure:"extensions"`
	Highlight      bool     `mapstructure:"highlight"`
	HighlightStyle string   `mapstructure:"highlight_style"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `mapstructure:"provider"`
	Level     string   `mapstructure:"level"`
	Format    string   `mapstructure:"format"`
	AddSource bool     `mapstructure:"add_source"`
	Focus     []string `mapstructure:"focus"`
}

// DefaultConfig reads posts from ./posts, oldest first, with highlighting on.
func DefaultConfig() Config {
	return Config{
		Content: ContentConfig{
			Dir:    "posts",
			Suffix: ".md",
		},
		Store: StoreConfig{
			Provider: StoreProviderDir,
		},
		Listing: ListingConfig{
			Order:      "asc",
			DatePolicy: "last",
		},
		Markdown: MarkdownConfig{
			Highlight:      true,
			HighlightStyle: "monokai",
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "console",
		},
	}
}

// Validate performs high-level consistency checks. knownExtension reports
// whether a markdown extension name is registered; nil skips that check.
func (cfg Config) Validate(knownExtension func(string) bool) error {
	if strings.TrimSpace(cfg.Content.Suffix) == "" {
		return ErrContentSuffixRequired
	}
	if cfg.Content.Workers < 0 {
		return ErrContentWorkersInvalid
	}

	switch normalize(cfg.Store.Provider) {
	case "", StoreProviderDir:
		if strings.TrimSpace(cfg.Content.Dir) == "" {
			return ErrContentDirRequired
		}
	case StoreProviderObject:
		if err := cfg.Store.Object.validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrObjectStoreInvalid, err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrStoreProviderUnknown, cfg.Store.Provider)
	}

	if order := normalize(cfg.Listing.Order); !isSupportedOrder(order) {
		return fmt.Errorf("%w: %s", ErrListingOrderInvalid, cfg.Listing.Order)
	}
	if policy := normalize(cfg.Listing.DatePolicy); !isSupportedDatePolicy(policy) {
		return fmt.Errorf("%w: %s", ErrDatePolicyInvalid, cfg.Listing.DatePolicy)
	}

	if knownExtension != nil {
		for _, ext := range cfg.Markdown.Extensions {
			if strings.TrimSpace(ext) != "" && !knownExtension(ext) {
				return fmt.Errorf("%w: %s", ErrMarkdownExtensionUnknown, ext)
			}
		}
	}

	provider := normalize(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func (cfg ObjectStoreConfig) validate() error {
	return validation.ValidateStruct(&cfg,
		validation.Field(&cfg.Endpoint, validation.Required),
		validation.Field(&cfg.AccessKey, validation.Required),
		validation.Field(&cfg.SecretKey, validation.Required),
		validation.Field(&cfg.Bucket, validation.Required, validation.Length(3, 63)),
	)
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedOrder(order string) bool {
	switch order {
	case "", "asc", "ascending", "desc", "descending":
		return true
	default:
		return false
	}
}

func isSupportedDatePolicy(policy string) bool {
	switch policy {
	case "", "last", "skip", "fail":
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "gologger", "none":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
