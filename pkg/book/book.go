// Package book models the mdbook preprocessor protocol: the context and
// book JSON that mdbook pipes to a preprocessor on stdin, and the
// transformed book it expects back on stdout.
//
// The types mirror mdbook's serialization closely enough to round-trip a
// book unchanged; fields this tool never touches are preserved verbatim.
package book

import (
	"encoding/json"
	"fmt"
	"io"
)

// Context is the preprocessor context mdbook sends alongside the book.
type Context struct {
	Root          string `json:"root"`
	Config        Config `json:"config"`
	Renderer      string `json:"renderer"`
	MdbookVersion string `json:"mdbook_version"`
}

// Config is the book configuration relevant to preprocessors. The book
// table is carried opaquely; only preprocessor tables are consulted.
type Config struct {
	Book         map[string]any            `json:"book"`
	Preprocessor map[string]map[string]any `json:"preprocessor,omitempty"`
}

// PreprocessorConfig returns the configuration table for the named
// preprocessor, or nil when the book defines none.
func (c *Context) PreprocessorConfig(name string) map[string]any {
	return c.Config.Preprocessor[name]
}

// Book is the root of the document model.
type Book struct {
	Sections []Item `json:"sections"`
	// NonExhaustive preserves mdbook's __non_exhaustive marker.
	NonExhaustive json.RawMessage `json:"__non_exhaustive"`
}

// Item is one entry in a section list. Exactly one of the fields is
// set: a chapter, a part title, or the separator marker.
type Item struct {
	Chapter   *Chapter
	PartTitle string
	Separator bool
}

// Chapter is a single document unit with markdown content.
type Chapter struct {
	Name        string   `json:"name"`
	Content     string   `json:"content"`
	Number      []int    `json:"number"`
	SubItems    []Item   `json:"sub_items"`
	Path        *string  `json:"path"`
	SourcePath  *string  `json:"source_path"`
	ParentNames []string `json:"parent_names"`
}

// UnmarshalJSON decodes mdbook's externally tagged item representation:
// the string "Separator", or an object keyed by "Chapter" or "PartTitle".
func (i *Item) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "Separator" {
			return fmt.Errorf("unknown book item %q", s)
		}
		*i = Item{Separator: true}
		return nil
	}

	var tagged struct {
		Chapter   *Chapter `json:"Chapter"`
		PartTitle *string  `json:"PartTitle"`
	}
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("decode book item: %w", err)
	}
	switch {
	case tagged.Chapter != nil:
		*i = Item{Chapter: tagged.Chapter}
	case tagged.PartTitle != nil:
		*i = Item{PartTitle: *tagged.PartTitle}
	default:
		return fmt.Errorf("book item is neither Chapter, PartTitle nor Separator")
	}
	return nil
}

// MarshalJSON re-encodes the item in mdbook's representation.
func (i Item) MarshalJSON() ([]byte, error) {
	switch {
	case i.Chapter != nil:
		return json.Marshal(map[string]*Chapter{"Chapter": i.Chapter})
	case i.Separator:
		return json.Marshal("Separator")
	default:
		return json.Marshal(map[string]string{"PartTitle": i.PartTitle})
	}
}

// ParseInput decodes the two-element [context, book] array mdbook writes
// to a preprocessor's stdin.
func ParseInput(r io.Reader) (*Context, *Book, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, nil, fmt.Errorf("decode preprocessor input: %w", err)
	}
	if len(raw) != 2 {
		return nil, nil, fmt.Errorf("preprocessor input has %d elements, expected [context, book]", len(raw))
	}

	var ctx Context
	if err := json.Unmarshal(raw[0], &ctx); err != nil {
		return nil, nil, fmt.Errorf("decode preprocessor context: %w", err)
	}
	var b Book
	if err := json.Unmarshal(raw[1], &b); err != nil {
		return nil, nil, fmt.Errorf("decode book: %w", err)
	}
	return &ctx, &b, nil
}

// Write serializes the transformed book for mdbook to consume.
func Write(w io.Writer, b *Book) error {
	return json.NewEncoder(w).Encode(b)
}

// ForEachChapter visits every chapter in depth-first traversal order,
// stopping at the first error.
func (b *Book) ForEachChapter(fn func(*Chapter) error) error {
	return walkItems(b.Sections, fn)
}

func walkItems(items []Item, fn func(*Chapter) error) error {
	for idx := range items {
		ch := items[idx].Chapter
		if ch == nil {
			continue
		}
		if err := fn(ch); err != nil {
			return err
		}
		if err := walkItems(ch.SubItems, fn); err != nil {
			return err
		}
	}
	return nil
}
