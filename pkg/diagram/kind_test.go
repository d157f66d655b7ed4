package diagram

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		tag    string
		prefix string
		want   string
		ok     bool
	}{
		{"mermaid", "", "mermaid", true},
		{"plantuml", "", "plantuml", true},
		{"diagram-mermaid", "diagram-", "mermaid", true},
		{"diagram-plantuml", "diagram-", "plantuml", true},
		{"diagram-graphviz", "diagram-", "graphviz", true},
		{"diagram-GraphViz", "diagram-", "graphviz", true},
		{"text", "", "", false},
		{"rust", "", "", false},
		{"foo", "diagram-", "", false},
		{"graphviz", "diagram-", "", false},
		{"", "", "", false},
		{"diagram-", "diagram-", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.tag+"/"+tt.prefix, func(t *testing.T) {
			kind, ok := Classify(tt.tag, tt.prefix)
			if ok != tt.ok {
				t.Fatalf("Classify(%q, %q) ok = %v, want %v", tt.tag, tt.prefix, ok, tt.ok)
			}
			if ok && kind.String() != tt.want {
				t.Errorf("Classify(%q, %q) = %q, want %q", tt.tag, tt.prefix, kind, tt.want)
			}
		})
	}
}

func TestClassifyWellKnownKinds(t *testing.T) {
	if kind, _ := Classify("mermaid", ""); kind != KindMermaid {
		t.Errorf("expected KindMermaid, got %v", kind)
	}
	if kind, _ := Classify("plantuml", ""); kind != KindPlantUML {
		t.Errorf("expected KindPlantUML, got %v", kind)
	}
}
