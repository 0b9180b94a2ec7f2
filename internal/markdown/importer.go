package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-publisher/internal/logging"
	"github.com/goliatone/go-publisher/pkg/interfaces"
	"github.com/goliatone/go-publisher/posts"
)

var (
	ErrPostServiceRequired = errors.New("markdown importer: post service is required")
	ErrActorRequired       = errors.New("markdown importer: actor id is required")
	ErrContentDirRequired  = errors.New("markdown importer: content directory is required")
)

// ImporterConfig encapsulates dependencies required to persist markdown documents.
type ImporterConfig struct {
	Posts  posts.Service
	Logger interfaces.Logger
}

// ImportOptions tunes a single import run.
type ImportOptions struct {
	// ActorID is recorded as the author of imported drafts.
	ActorID uuid.UUID
	// Pattern filters files by base name, e.g. "*.md". Empty matches "*.md".
	Pattern string
	// Recursive walks nested directories.
	Recursive bool
	// DryRun reports what would happen without writing.
	DryRun bool
}

// ImportResult summarises an import run.
type ImportResult struct {
	Created   []uuid.UUID
	Submitted []uuid.UUID
	Skipped   []string
	Errors    []error
}

// Importer turns markdown documents into draft posts. Documents whose
// frontmatter requests review are also submitted to the editorial queue.
type Importer struct {
	posts  posts.Service
	logger interfaces.Logger
}

// NewImporter builds an Importer from the supplied configuration.
func NewImporter(cfg ImporterConfig) *Importer {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Importer{
		posts:  cfg.Posts,
		logger: logger,
	}
}

// ImportDirectory scans dir for markdown files and imports each one.
func (i *Importer) ImportDirectory(ctx context.Context, dir string, opts ImportOptions) (*ImportResult, error) {
	if i.posts == nil {
		return nil, ErrPostServiceRequired
	}
	if strings.TrimSpace(dir) == "" {
		return nil, ErrContentDirRequired
	}

	pattern := opts.Pattern
	if pattern == "" {
		pattern = "*.md"
	}

	result := &ImportResult{}
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if path != dir && !opts.Recursive {
				return fs.SkipDir
			}
			return nil
		}

		matched, err := filepath.Match(pattern, entry.Name())
		if err != nil {
			return err
		}
		if !matched {
			return nil
		}

		doc, err := i.loadDocument(path)
		if err != nil {
			result.Errors = append(result.Errors, err)
			return nil
		}
		i.importDocument(ctx, doc, opts, result)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("markdown importer: walk %s: %w", dir, err)
	}

	if len(result.Errors) > 0 {
		return result, result.Errors[0]
	}
	return result, nil
}

// ImportDocument imports a single parsed document.
func (i *Importer) ImportDocument(ctx context.Context, doc *Document, opts ImportOptions) (*ImportResult, error) {
	if i.posts == nil {
		return nil, ErrPostServiceRequired
	}
	result := &ImportResult{}
	i.importDocument(ctx, doc, opts, result)
	if len(result.Errors) > 0 {
		return result, result.Errors[0]
	}
	return result, nil
}

func (i *Importer) loadDocument(path string) (*Document, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("markdown importer: read %s: %w", path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("markdown importer: stat %s: %w", path, err)
	}
	doc, err := BuildDocument(path, source, info.ModTime())
	if err != nil {
		return nil, fmt.Errorf("markdown importer: %s: %w", path, err)
	}
	return doc, nil
}

func (i *Importer) importDocument(ctx context.Context, doc *Document, opts ImportOptions, result *ImportResult) {
	if opts.ActorID == uuid.Nil {
		result.Errors = append(result.Errors, ErrActorRequired)
		return
	}

	slug := documentSlug(doc)
	title := strings.TrimSpace(doc.FrontMatter.Title)
	if title == "" {
		title = fallbackTitle(slug)
	}

	if existing, err := i.posts.GetBySlug(ctx, slug); err == nil && existing != nil {
		result.Skipped = append(result.Skipped, slug)
		i.logger.Debug("markdown import skipped existing post", "slug", slug, "path", doc.FilePath)
		return
	}

	if opts.DryRun {
		result.Skipped = append(result.Skipped, slug)
		return
	}

	created, err := i.posts.Create(ctx, posts.CreatePostRequest{
		Title:     title,
		Slug:      slug,
		Body:      string(doc.Body),
		Metadata:  documentMetadata(doc),
		CreatedBy: opts.ActorID,
	})
	if err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("markdown importer: create %s: %w", slug, err))
		return
	}
	result.Created = append(result.Created, created.ID)
	i.logger.Info("markdown import created draft", "slug", slug, "post_id", created.ID)

	if doc.FrontMatter.Review && !doc.FrontMatter.Draft {
		if _, err := i.posts.SubmitForReview(ctx, posts.TransitionRequest{
			PostID:  created.ID,
			ActorID: opts.ActorID,
		}); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("markdown importer: submit %s: %w", slug, err))
			return
		}
		result.Submitted = append(result.Submitted, created.ID)
	}
}

func documentSlug(doc *Document) string {
	if slug := strings.TrimSpace(doc.FrontMatter.Slug); slug != "" {
		return slug
	}
	base := filepath.Base(doc.FilePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func documentMetadata(doc *Document) map[string]any {
	meta := map[string]any{}
	for key, value := range doc.FrontMatter.Custom {
		meta[key] = value
	}
	if doc.FrontMatter.Author != "" {
		meta["author"] = doc.FrontMatter.Author
	}
	if doc.FrontMatter.Summary != "" {
		meta["summary"] = doc.FrontMatter.Summary
	}
	if len(doc.FrontMatter.Tags) > 0 {
		meta["tags"] = append([]string(nil), doc.FrontMatter.Tags...)
	}
	if !doc.FrontMatter.Date.IsZero() {
		meta["date"] = doc.FrontMatter.Date.UTC().Format("2006-01-02")
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}

func fallbackTitle(slug string) string {
	cleaned := strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	words := strings.Fields(cleaned)
	for idx, word := range words {
		words[idx] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
