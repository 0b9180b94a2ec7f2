package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrApprovalsRequiredInvalid = errors.New("publisher config: editorial approvals_required must be zero or positive")
var ErrRevisionRetentionInvalid = errors.New("publisher config: revision retention limit must be zero or positive")
var ErrMarkdownFeatureRequired = errors.New("publisher config: markdown feature must be enabled to configure markdown")
var ErrMarkdownContentDirRequired = errors.New("publisher config: markdown content directory is required when markdown is enabled")
var ErrLoggingProviderRequired = errors.New("publisher config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("publisher config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("publisher config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("publisher config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the publisher module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled   bool
	Storage   StorageConfig
	Cache     CacheConfig
	Editorial EditorialConfig
	Retention RetentionConfig
	Features  Features
	Markdown  MarkdownConfig
	Logging   LoggingConfig
	Workflow  WorkflowConfig
}

// StorageConfig lists identifiers for storage-related dependencies.
type StorageConfig struct {
	Provider string
}

// CacheConfig captures repository cache behaviour toggles. DefaultTTL applies
// to the cache service the module builds itself; a host-supplied cache service
// keeps whatever TTL it was constructed with.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// EditorialConfig tunes the review workflow.
type EditorialConfig struct {
	// ApprovalsRequired is the number of distinct approvals needed before a
	// pending post is published. Zero means the default of one.
	ApprovalsRequired int
}

// RetentionConfig captures revision retention limits. Zero keeps everything.
type RetentionConfig struct {
	Revisions int
}

// Features toggles module functionality.
type Features struct {
	Versioning bool
	Markdown   bool
	Logger     bool
}

// MarkdownConfig captures filesystem behaviour for markdown ingestion.
type MarkdownConfig struct {
	Enabled    bool
	ContentDir string
	Pattern    string
	Recursive  bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// WorkflowConfig carries configuration-driven workflow definitions that are
// compiled and registered alongside the built-in post workflow.
type WorkflowConfig struct {
	Definitions []WorkflowDefinitionConfig
}

// WorkflowDefinitionConfig declares a state machine for one entity type.
type WorkflowDefinitionConfig struct {
	Entity      string
	States      []WorkflowStateConfig
	Transitions []WorkflowTransitionConfig
}

// WorkflowStateConfig declares a single workflow state.
type WorkflowStateConfig struct {
	Name        string
	Description string
	Initial     bool
	Terminal    bool
}

// WorkflowTransitionConfig declares an allowed transition between states.
type WorkflowTransitionConfig struct {
	Name        string
	Description string
	From        string
	To          string
}

// DefaultConfig returns opinionated defaults: in-memory storage, a single
// required approval, logging through the console provider.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Storage: StorageConfig{
			Provider: "memory",
		},
		Cache: CacheConfig{
			DefaultTTL: time.Minute,
		},
		Editorial: EditorialConfig{
			ApprovalsRequired: 1,
		},
		Retention: RetentionConfig{},
		Features:  Features{},
		Markdown: MarkdownConfig{
			ContentDir: "content",
			Pattern:    "*.md",
			Recursive:  true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Editorial.ApprovalsRequired < 0 {
		return ErrApprovalsRequiredInvalid
	}
	if cfg.Retention.Revisions < 0 {
		return ErrRevisionRetentionInvalid
	}
	if cfg.Markdown.Enabled {
		if !cfg.Features.Markdown {
			return ErrMarkdownFeatureRequired
		}
		if strings.TrimSpace(cfg.Markdown.ContentDir) == "" {
			return ErrMarkdownContentDirRequired
		}
	}
	if cfg.Features.Logger {
		provider := strings.ToLower(strings.TrimSpace(cfg.Logging.Provider))
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
	}
	return nil
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
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
