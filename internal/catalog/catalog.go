// Package catalog lists and serves the workflow documents of one directory.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	"wfcatalog/internal/safeio"
	"wfcatalog/internal/workflow"
)

// DefaultRoutePrefix is where the HTTP routes are mounted unless configured.
const DefaultRoutePrefix = "/cvb"

type Options struct {
	// RoutePrefix is prepended to the retrieval URLs placed in listing entries.
	RoutePrefix string
	// CacheEntries bounds the parsed-document cache; zero disables it.
	CacheEntries int
}

// Catalog reads workflow files from a single flat directory.
type Catalog struct {
	root   *safeio.SafeFS
	prefix string
	cache  *docCache
}

func New(root *safeio.SafeFS, opts Options) (*Catalog, error) {
	if root == nil {
		return nil, errors.New("catalog: root is required")
	}
	cache, err := newDocCache(opts.CacheEntries)
	if err != nil {
		return nil, fmt.Errorf("init document cache: %w", err)
	}
	prefix := strings.TrimRight(strings.TrimSpace(opts.RoutePrefix), "/")
	if opts.RoutePrefix == "" {
		prefix = DefaultRoutePrefix
	}
	return &Catalog{root: root, prefix: prefix, cache: cache}, nil
}

// Root returns the directory this catalog serves.
func (c *Catalog) Root() string {
	return c.root.Root()
}

// Document is a retrieved workflow file.
type Document struct {
	Name   string
	Format Format
	Body   []byte
}

// Get returns the file name from the catalog root. FormatRaw serves the
// bytes untouched; FormatAPI serves them only when the file is an API graph.
func (c *Catalog) Get(ctx context.Context, name string, format Format) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean, err := c.root.ResolveName(name)
	if err != nil || !workflow.IsJSONName(clean) {
		return nil, ErrNotFound
	}
	info, err := c.root.Stat(clean)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, &ReadError{Name: clean, Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, ErrNotFound
	}
	if !format.Valid() {
		return nil, ErrInvalidFormat
	}

	raw, err := c.root.ReadFile(clean)
	if err != nil {
		return nil, &ReadError{Name: clean, Err: err}
	}
	doc := &Document{Name: clean, Format: format, Body: raw}
	if format == FormatRaw {
		return doc, nil
	}
	parsed, err := workflow.Parse(raw)
	if err != nil {
		return nil, &ReadError{Name: clean, Err: err}
	}
	if !workflow.IsAPIGraph(parsed) {
		return nil, ErrNotAPIGraph
	}
	return doc, nil
}

// Template is the API form of a workflow addressed by name, with or
// without its ".json" suffix.
func (c *Catalog) Template(ctx context.Context, name string) (*Document, error) {
	return c.Get(ctx, workflow.EnsureJSONName(name), FormatAPI)
}

// WorkflowURL is the retrieval URL of name in the given format.
func (c *Catalog) WorkflowURL(name string, format Format) string {
	return c.prefix + "/workflows/" + url.PathEscape(name) + "?format=" + string(format)
}

// load parses name, consulting the cache when it is enabled.
func (c *Catalog) load(name string) (any, error) {
	info, err := c.root.Stat(name)
	if err != nil {
		return nil, err
	}
	if ent, ok := c.cache.get(name, info); ok {
		return ent.doc, ent.err
	}
	raw, err := c.root.ReadFile(name)
	if err != nil {
		return nil, err
	}
	doc, err := workflow.Parse(raw)
	c.cache.put(name, info, doc, err)
	return doc, err
}

func logf(format string, args ...any) {
	log.Printf("catalog: "+format, args...)
}
