package diagram

import "strings"

// Kind identifies the diagram notation of a fenced code block. The name
// is passed verbatim to the rendering service as the diagram_type, so
// arbitrary engines beyond the two well-known ones are supported through
// OtherKind.
type Kind struct {
	name string
}

var (
	// KindMermaid is the Mermaid diagram notation.
	KindMermaid = Kind{"mermaid"}
	// KindPlantUML is the PlantUML diagram notation.
	KindPlantUML = Kind{"plantuml"}
)

// OtherKind wraps an arbitrary engine name as a Kind. The name is
// lowercased to match the rendering service's diagram_type vocabulary.
func OtherKind(name string) Kind {
	return Kind{strings.ToLower(name)}
}

// String returns the diagram_type tag sent to the rendering service.
func (k Kind) String() string { return k.name }

// Classify decides whether a fenced code block's language tag marks a
// diagram, and which kind.
//
// With an empty prefix only the exact tags "mermaid" and "plantuml" are
// diagrams. With a non-empty prefix the tag must start with it; after
// stripping, "mermaid" and "plantuml" map to their kinds and any other
// non-empty remainder passes through as OtherKind, letting authors
// address every engine the service knows (e.g. "diagram-graphviz").
func Classify(tag, prefix string) (Kind, bool) {
	if prefix != "" {
		stripped, ok := strings.CutPrefix(tag, prefix)
		if !ok {
			return Kind{}, false
		}
		tag = stripped
	}

	switch tag {
	case "mermaid":
		return KindMermaid, true
	case "plantuml":
		return KindPlantUML, true
	}
	if prefix != "" && tag != "" {
		return OtherKind(tag), true
	}
	return Kind{}, false
}
