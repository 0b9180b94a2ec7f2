// Package publisher is an embeddable editorial workflow module. Posts move
// through a draft, pending review, published, archived lifecycle; content is
// hidden from readers until a post is approved and published.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-publisher/internal/logging"
	"github.com/goliatone/go-publisher/internal/logging/console"
	"github.com/goliatone/go-publisher/internal/logging/gologger"
	"github.com/goliatone/go-publisher/internal/markdown"
	"github.com/goliatone/go-publisher/internal/runtimeconfig"
	"github.com/goliatone/go-publisher/internal/workflow"
	"github.com/goliatone/go-publisher/pkg/interfaces"
	"github.com/goliatone/go-publisher/posts"
)

// PostService exports the post service contract for consumers of the module.
type PostService = posts.Service

// PostRepository exports the post storage contract.
type PostRepository = posts.Repository

// WorkflowEngine exports the workflow engine contract.
type WorkflowEngine = interfaces.WorkflowEngine

// MarkdownImporter exports the markdown ingestion helper.
type MarkdownImporter = markdown.Importer

// ErrDatabaseRequired indicates bun storage was selected without a database handle.
var ErrDatabaseRequired = errors.New("publisher: bun storage requires a database, use WithDB")

// ErrStorageProviderUnknown indicates the configured storage provider is not supported.
var ErrStorageProviderUnknown = errors.New("publisher: unknown storage provider")

// Module is the top level publisher runtime facade.
type Module struct {
	config   Config
	logger   interfaces.LoggerProvider
	engine   *workflow.Engine
	posts    posts.Service
	markdown *markdown.Importer
}

// Option overrides module wiring during construction.
type Option func(*moduleDeps)

type moduleDeps struct {
	db             *bun.DB
	repo           posts.Repository
	loggerProvider interfaces.LoggerProvider
	cacheService   cache.CacheService
	keySerializer  cache.KeySerializer
	renderer       posts.Renderer
	serviceOpts    []posts.ServiceOption
}

// WithDB supplies the bun database used by the bun storage provider.
func WithDB(db *bun.DB) Option {
	return func(d *moduleDeps) {
		d.db = db
	}
}

// WithPostRepository replaces the storage layer entirely, bypassing the
// configured storage provider.
func WithPostRepository(repo posts.Repository) Option {
	return func(d *moduleDeps) {
		d.repo = repo
	}
}

// WithLoggerProvider replaces the logger provider derived from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(d *moduleDeps) {
		d.loggerProvider = provider
	}
}

// WithRepositoryCache enables read-through caching on the bun repositories.
func WithRepositoryCache(service cache.CacheService, serializer cache.KeySerializer) Option {
	return func(d *moduleDeps) {
		d.cacheService = service
		d.keySerializer = serializer
	}
}

// WithRenderer overrides the markdown renderer used at publish time.
func WithRenderer(renderer posts.Renderer) Option {
	return func(d *moduleDeps) {
		d.renderer = renderer
	}
}

// WithServiceOptions appends raw post service options, applied after the
// configuration-derived ones.
func WithServiceOptions(opts ...posts.ServiceOption) Option {
	return func(d *moduleDeps) {
		d.serviceOpts = append(d.serviceOpts, opts...)
	}
}

// New constructs a publisher module from the provided configuration.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	deps := &moduleDeps{}
	for _, opt := range opts {
		opt(deps)
	}
	configureCacheDefaults(cfg, deps)

	loggerProvider, err := resolveLoggerProvider(cfg, deps)
	if err != nil {
		return nil, err
	}

	repo, err := resolveRepository(cfg, deps)
	if err != nil {
		return nil, err
	}

	engine := workflow.New()
	definitions, err := workflow.CompileDefinitionConfigs(cfg.Workflow.Definitions)
	if err != nil {
		return nil, err
	}
	for _, definition := range definitions {
		if err := engine.RegisterWorkflow(context.Background(), definition); err != nil {
			return nil, err
		}
	}

	renderer := deps.renderer
	if renderer == nil {
		renderer = markdown.NewGoldmarkRenderer(markdown.RenderOptions{})
	}

	approvals := cfg.Editorial.ApprovalsRequired
	if approvals < 1 {
		approvals = 1
	}

	serviceOpts := []posts.ServiceOption{
		posts.WithLogger(logging.PostsLogger(loggerProvider)),
		posts.WithApprovalsRequired(approvals),
		posts.WithRenderer(renderer),
		posts.WithVersioning(cfg.Features.Versioning, cfg.Retention.Revisions),
	}
	serviceOpts = append(serviceOpts, deps.serviceOpts...)

	service := posts.NewService(repo, engine, serviceOpts...)

	module := &Module{
		config: cfg,
		logger: loggerProvider,
		engine: engine,
		posts:  service,
	}

	if cfg.Features.Markdown && cfg.Markdown.Enabled {
		module.markdown = markdown.NewImporter(markdown.ImporterConfig{
			Posts:  service,
			Logger: logging.MarkdownLogger(loggerProvider),
		})
	}

	return module, nil
}

// Posts returns the configured post service.
func (m *Module) Posts() PostService {
	return m.posts
}

// Workflow returns the configured workflow engine.
func (m *Module) Workflow() WorkflowEngine {
	return m.engine
}

// Markdown returns the markdown importer, or nil when the markdown feature is disabled.
func (m *Module) Markdown() *MarkdownImporter {
	return m.markdown
}

// Logger returns the logger provider used by the module.
func (m *Module) Logger() interfaces.LoggerProvider {
	return m.logger
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config {
	return m.config
}

func resolveLoggerProvider(cfg Config, deps *moduleDeps) (interfaces.LoggerProvider, error) {
	if deps.loggerProvider != nil {
		return deps.loggerProvider, nil
	}
	if !cfg.Features.Logger {
		return nil, nil
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Provider)) {
	case "console":
		level := consoleLevel(cfg.Logging.Level)
		return console.NewProvider(console.Options{MinLevel: &level}), nil
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingProviderUnknown, cfg.Logging.Provider)
	}
}

// configureCacheDefaults builds a cache service with the configured TTL when
// caching is enabled and the host did not supply one through
// WithRepositoryCache.
func configureCacheDefaults(cfg Config, deps *moduleDeps) {
	if !cfg.Cache.Enabled {
		return
	}

	if deps.cacheService == nil {
		cacheCfg := cache.DefaultConfig()
		if cfg.Cache.DefaultTTL > 0 {
			cacheCfg.TTL = cfg.Cache.DefaultTTL
		}
		if service, err := cache.NewCacheService(cacheCfg); err == nil {
			deps.cacheService = service
		}
	}

	if deps.cacheService != nil && deps.keySerializer == nil {
		deps.keySerializer = cache.NewDefaultKeySerializer()
	}
}

func resolveRepository(cfg Config, deps *moduleDeps) (posts.Repository, error) {
	if deps.repo != nil {
		return deps.repo, nil
	}

	provider := strings.ToLower(strings.TrimSpace(cfg.Storage.Provider))
	switch provider {
	case "", "memory":
		return posts.NewMemoryRepository(), nil
	case "bun":
		if deps.db == nil {
			return nil, ErrDatabaseRequired
		}
		if cfg.Cache.Enabled && deps.cacheService != nil {
			return posts.NewBunRepositoryWithCache(deps.db, deps.cacheService, deps.keySerializer), nil
		}
		return posts.NewBunRepository(deps.db), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}
}

func consoleLevel(level string) console.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return console.LevelTrace
	case "debug":
		return console.LevelDebug
	case "", "info":
		return console.LevelInfo
	case "warn", "warning":
		return console.LevelWarn
	case "error":
		return console.LevelError
	case "fatal":
		return console.LevelFatal
	default:
		return console.LevelInfo
	}
}
