package diagram

import (
	"context"
	"strings"
	"testing"

	"github.com/bookforge/mdbook-diagrams/pkg/book"
)

func chapterItem(name, content string, subItems ...book.Item) book.Item {
	return book.Item{Chapter: &book.Chapter{
		Name:     name,
		Content:  content,
		SubItems: subItems,
	}}
}

func TestProcessBookRewritesAllChapters(t *testing.T) {
	server, calls := fakeKroki(t, "image/svg+xml", []byte("<svg/>"))

	cfg := DefaultConfig()
	cfg.OutputFormat = SVG
	cfg.KrokiURL = server.URL
	cfg.FilesPath = t.TempDir()
	p := newTestProcessor(t, cfg)

	b := &book.Book{Sections: []book.Item{
		chapterItem("Intro", "no diagrams\n"),
		chapterItem("Flow", "```mermaid\nA->B\n```\n",
			chapterItem("Nested", "```plantuml\nA -> B\n```\n")),
		{Separator: true},
	}}

	if err := p.ProcessBook(context.Background(), b, "html"); err != nil {
		t.Fatalf("ProcessBook: %v", err)
	}

	if b.Sections[0].Chapter.Content != "no diagrams\n" {
		t.Errorf("diagram-free chapter changed: %q", b.Sections[0].Chapter.Content)
	}
	if strings.Contains(b.Sections[1].Chapter.Content, "```") {
		t.Errorf("diagram fence not replaced: %q", b.Sections[1].Chapter.Content)
	}
	nested := b.Sections[1].Chapter.SubItems[0].Chapter
	if strings.Contains(nested.Content, "```") {
		t.Errorf("nested chapter fence not replaced: %q", nested.Content)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 renders, got %d", calls.Load())
	}
}

func TestProcessBookFirstErrorAborts(t *testing.T) {
	server, calls := fakeKroki(t, "text/plain", []byte("kaput"))

	cfg := DefaultConfig()
	cfg.KrokiURL = server.URL
	cfg.FilesPath = t.TempDir()
	p := newTestProcessor(t, cfg)

	b := &book.Book{Sections: []book.Item{
		chapterItem("Broken", "```mermaid\nA->B\n```\n"),
		chapterItem("Later", "```mermaid\nC->D\n```\n"),
	}}

	err := p.ProcessBook(context.Background(), b, "html")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), `chapter "Broken"`) {
		t.Errorf("error should name the failing chapter: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("processing must stop at the first failure, got %d requests", calls.Load())
	}
}
