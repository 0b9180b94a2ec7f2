package runtimeconfig

import (
	"errors"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.Enabled {
		t.Fatal("expected module enabled by default")
	}
	if cfg.Storage.Provider != "memory" {
		t.Fatalf("expected memory storage provider, got %q", cfg.Storage.Provider)
	}
	if cfg.Editorial.ApprovalsRequired != 1 {
		t.Fatalf("expected one approval by default, got %d", cfg.Editorial.ApprovalsRequired)
	}
	if cfg.Logging.Provider != "console" {
		t.Fatalf("expected console logging provider, got %q", cfg.Logging.Provider)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{
			name:   "zero value passes",
			mutate: func(cfg *Config) { *cfg = Config{} },
		},
		{
			name:   "negative approvals",
			mutate: func(cfg *Config) { cfg.Editorial.ApprovalsRequired = -1 },
			want:   ErrApprovalsRequiredInvalid,
		},
		{
			name:   "negative retention",
			mutate: func(cfg *Config) { cfg.Retention.Revisions = -1 },
			want:   ErrRevisionRetentionInvalid,
		},
		{
			name: "markdown without feature flag",
			mutate: func(cfg *Config) {
				cfg.Markdown.Enabled = true
				cfg.Features.Markdown = false
			},
			want: ErrMarkdownFeatureRequired,
		},
		{
			name: "markdown without content dir",
			mutate: func(cfg *Config) {
				cfg.Markdown.Enabled = true
				cfg.Features.Markdown = true
				cfg.Markdown.ContentDir = "  "
			},
			want: ErrMarkdownContentDirRequired,
		},
		{
			name: "logger feature without provider",
			mutate: func(cfg *Config) {
				cfg.Features.Logger = true
				cfg.Logging.Provider = ""
			},
			want: ErrLoggingProviderRequired,
		},
		{
			name: "unknown logging provider",
			mutate: func(cfg *Config) {
				cfg.Features.Logger = true
				cfg.Logging.Provider = "zap"
			},
			want: ErrLoggingProviderUnknown,
		},
		{
			name: "invalid logging level",
			mutate: func(cfg *Config) {
				cfg.Features.Logger = true
				cfg.Logging.Level = "verbose"
			},
			want: ErrLoggingLevelInvalid,
		},
		{
			name: "invalid gologger format",
			mutate: func(cfg *Config) {
				cfg.Features.Logger = true
				cfg.Logging.Provider = "gologger"
				cfg.Logging.Format = "xml"
			},
			want: ErrLoggingFormatInvalid,
		},
		{
			name: "format ignored for console provider",
			mutate: func(cfg *Config) {
				cfg.Features.Logger = true
				cfg.Logging.Provider = "console"
				cfg.Logging.Format = "xml"
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.want == nil {
				if err != nil {
					t.Fatalf("expected valid config, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
