// Package markdown locates fenced code blocks in CommonMark source.
//
// Parsing is delegated to goldmark. Callers receive the byte extents of
// each fence alongside its language tag and raw content, so replacement
// markup can be spliced into the document without disturbing any
// surrounding bytes.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Fence is a fenced code block with its extent in the original source.
// Start and End delimit the whole block including both fence lines, so
// source[Start:End] can be replaced wholesale.
type Fence struct {
	// Language is the first word of the fence's info string.
	Language string
	// Content is the raw text between the fence lines.
	Content []byte
	// Start is the byte offset of the opening fence line.
	Start int
	// End is the byte offset just past the closing fence line (or the
	// end of input for an unterminated fence).
	End int
}

// Fences returns every fenced code block carrying an info string, in
// document order. Plain fences without a language tag are omitted; they
// can never be diagrams.
func Fences(source []byte) []Fence {
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var fences []Fence
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		block, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		if f, ok := fenceExtent(source, block); ok {
			fences = append(fences, f)
		}
		return ast.WalkSkipChildren, nil
	})
	return fences
}

func fenceExtent(source []byte, block *ast.FencedCodeBlock) (Fence, bool) {
	if block.Info == nil {
		return Fence{}, false
	}

	// The opening fence line begins at the newline boundary before the
	// info string.
	start := bytes.LastIndexByte(source[:block.Info.Segment.Start], '\n') + 1

	var content bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		content.Write(seg.Value(source))
	}

	// Content line segments include their trailing newline, so the end
	// of the last one is the start of the closing fence line (when the
	// fence is terminated). An empty block ends with the opening line.
	end := lineEnd(source, block.Info.Segment.Stop)
	if lines.Len() > 0 {
		end = lines.At(lines.Len() - 1).Stop
	}
	if isFenceLine(source, end) {
		end = lineEnd(source, end)
	}

	return Fence{
		Language: string(block.Language(source)),
		Content:  content.Bytes(),
		Start:    start,
		End:      end,
	}, true
}

// lineEnd returns the offset just past the newline terminating the line
// containing pos, or len(source) for the final unterminated line.
func lineEnd(source []byte, pos int) int {
	if i := bytes.IndexByte(source[pos:], '\n'); i >= 0 {
		return pos + i + 1
	}
	return len(source)
}

// isFenceLine reports whether the line starting at pos is a code fence
// delimiter.
func isFenceLine(source []byte, pos int) bool {
	if pos >= len(source) {
		return false
	}
	line := source[pos:lineEnd(source, pos)]
	line = bytes.TrimLeft(line, " \t>")
	return bytes.HasPrefix(line, []byte("```")) || bytes.HasPrefix(line, []byte("~~~"))
}
