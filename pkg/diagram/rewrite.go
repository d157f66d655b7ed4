package diagram

import (
	"context"
	"fmt"
	"strings"

	"github.com/bookforge/mdbook-diagrams/pkg/markdown"
)

// RewriteChapter replaces every diagram fence in content with rendered
// output and returns the rewritten markdown. All bytes outside diagram
// fences are preserved exactly; a chapter without diagram fences comes
// back unchanged.
//
// The first failing diagram aborts the rewrite. The error carries the
// offending diagram source for diagnostics; the partially built output
// is discarded.
func (p *Processor) RewriteChapter(ctx context.Context, content, renderer string) (string, error) {
	var out strings.Builder
	out.Grow(len(content))

	last := 0
	for _, fence := range markdown.Fences([]byte(content)) {
		kind, ok := Classify(fence.Language, p.cfg.LanguagePrefix)
		if !ok {
			continue
		}
		source := string(fence.Content)

		path, data, err := p.render(ctx, source, kind, renderer)
		if err != nil {
			return "", fmt.Errorf("render %s diagram:\n%s\n%w", kind, source, err)
		}
		replacement, err := synthesize(p.cfg.OutputFormat, renderer, path, data)
		if err != nil {
			return "", fmt.Errorf("render %s diagram:\n%s\n%w", kind, source, err)
		}

		out.WriteString(content[last:fence.Start])
		out.WriteString(replacement)
		last = fence.End
	}
	out.WriteString(content[last:])
	return out.String(), nil
}
