// Package diagram implements the diagram rendering pipeline: it
// classifies fenced code blocks as diagram sources, renders them through
// a Kroki-compatible service with a content-addressed artifact cache,
// and rewrites chapter markdown to reference the rendered output.
package diagram

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/bookforge/mdbook-diagrams/pkg/book"
)

// Processor drives the pipeline over a book. It holds the run's single
// HTTP client and cache so connections and artifacts are shared across
// all diagrams. Processing is sequential; the first error anywhere
// aborts the run.
type Processor struct {
	cfg    Config
	cache  *Cache
	client *Client
	logger *log.Logger
}

// NewProcessor wires a Processor from the run configuration. The
// artifact directory is created here, before any document is touched.
func NewProcessor(cfg Config, logger *log.Logger) (*Processor, error) {
	cache, err := NewCache(cfg.FilesPath, cfg.FilenamePrefix)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Processor{
		cfg:    cfg,
		cache:  cache,
		client: NewClient(cfg.KrokiURL, cfg.KrokiTimeout),
		logger: logger,
	}, nil
}

// ProcessBook rewrites every chapter in place, in traversal order.
// Renderer selects the output synthesis branch (inline for "html", image
// references otherwise).
func (p *Processor) ProcessBook(ctx context.Context, b *book.Book, renderer string) error {
	return b.ForEachChapter(func(ch *book.Chapter) error {
		content, err := p.RewriteChapter(ctx, ch.Content, renderer)
		if err != nil {
			return fmt.Errorf("process diagrams in chapter %q: %w", ch.Name, err)
		}
		ch.Content = content
		return nil
	})
}

// render obtains the artifact for one diagram: cache lookup first, then
// a single service render persisted through the cache.
func (p *Processor) render(ctx context.Context, source string, kind Kind, renderer string) (string, []byte, error) {
	if path, data, ok := p.cache.Lookup(source, p.cfg.OutputFormat, kind); ok {
		p.logger.Debug("diagram cache hit", "kind", kind, "path", path)
		return path, data, nil
	}
	p.logger.Debug("diagram cache miss, rendering", "kind", kind, "url", p.cfg.KrokiURL)

	data, err := p.client.Render(ctx, source, kind, p.cfg.OutputFormat, renderer)
	if err != nil {
		return "", nil, err
	}
	path, err := p.cache.Store(source, p.cfg.OutputFormat, kind, data)
	if err != nil {
		return "", nil, err
	}
	return path, data, nil
}
