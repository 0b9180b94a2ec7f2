// Package markdown ingests markdown files into the editorial pipeline.
// Files carry optional YAML frontmatter; the body becomes the draft text.
package markdown

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"
)

// FrontMatter is the structured metadata block at the top of a markdown file.
type FrontMatter struct {
	Title   string
	Slug    string
	Author  string
	Tags    []string
	Date    time.Time
	Draft   bool
	Review  bool
	Custom  map[string]any
	Summary string
}

// Document pairs parsed frontmatter with the markdown body of one file.
type Document struct {
	FilePath     string
	FrontMatter  FrontMatter
	Body         []byte
	LastModified time.Time
}

type frontMatterEnvelope struct {
	Title   string         `yaml:"title"`
	Slug    string         `yaml:"slug"`
	Summary string         `yaml:"summary"`
	Author  string         `yaml:"author"`
	Tags    []string       `yaml:"tags"`
	Date    time.Time      `yaml:"date"`
	Draft   bool           `yaml:"draft"`
	Review  bool           `yaml:"review"`
	Custom  map[string]any `yaml:",inline"`
}

// ParseFrontMatter extracts metadata and the markdown body from the provided
// source bytes. The body is returned without the frontmatter delimiters.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return FrontMatter{
		Title:   meta.Title,
		Slug:    meta.Slug,
		Summary: meta.Summary,
		Author:  meta.Author,
		Tags:    append([]string(nil), meta.Tags...),
		Date:    meta.Date,
		Draft:   meta.Draft,
		Review:  meta.Review,
		Custom:  cloneMap(meta.Custom),
	}, body, nil
}

// BuildDocument assembles a Document from the supplied file path, raw content,
// and modification time.
func BuildDocument(path string, source []byte, modified time.Time) (*Document, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	return &Document{
		FilePath:     path,
		FrontMatter:  meta,
		Body:         body,
		LastModified: modified,
	}, nil
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
