package publisher

import "github.com/goliatone/go-publisher/internal/runtimeconfig"

// Config aggregates feature flags and adapter bindings for the publisher module.
type Config = runtimeconfig.Config

// StorageConfig lists identifiers for storage-related dependencies.
type StorageConfig = runtimeconfig.StorageConfig

// CacheConfig captures repository cache behaviour toggles.
type CacheConfig = runtimeconfig.CacheConfig

// EditorialConfig tunes the review workflow.
type EditorialConfig = runtimeconfig.EditorialConfig

// RetentionConfig captures revision retention limits.
type RetentionConfig = runtimeconfig.RetentionConfig

// Features toggles module functionality.
type Features = runtimeconfig.Features

// MarkdownConfig captures filesystem behaviour for markdown ingestion.
type MarkdownConfig = runtimeconfig.MarkdownConfig

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig = runtimeconfig.LoggingConfig

// WorkflowConfig carries configuration-driven workflow definitions.
type WorkflowConfig = runtimeconfig.WorkflowConfig

// WorkflowDefinitionConfig declares a state machine for one entity type.
type WorkflowDefinitionConfig = runtimeconfig.WorkflowDefinitionConfig

// WorkflowStateConfig declares a single workflow state.
type WorkflowStateConfig = runtimeconfig.WorkflowStateConfig

// WorkflowTransitionConfig declares an allowed transition between states.
type WorkflowTransitionConfig = runtimeconfig.WorkflowTransitionConfig

// DefaultConfig returns opinionated defaults: in-memory storage, a single
// required approval, logging through the console provider.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// Configuration validation errors re-exported for host applications.
var (
	ErrApprovalsRequiredInvalid   = runtimeconfig.ErrApprovalsRequiredInvalid
	ErrRevisionRetentionInvalid   = runtimeconfig.ErrRevisionRetentionInvalid
	ErrMarkdownFeatureRequired    = runtimeconfig.ErrMarkdownFeatureRequired
	ErrMarkdownContentDirRequired = runtimeconfig.ErrMarkdownContentDirRequired
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
)
