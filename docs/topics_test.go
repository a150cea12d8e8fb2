package docs

import (
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestTopics(t *testing.T) {
	readme, err := Topic("readme")
	if err != nil {
		t.Fatalf("Topic(readme) unexpected error: %v", err)
	}
	for _, topic := range All() {
		t.Run(topic, func(t *testing.T) {
			if !strings.Contains(readme, "* "+topic+":") {
				t.Errorf("readme does not list topic %q", topic)
			}
			content, err := Topic(topic)
			if err != nil {
				t.Fatal(err)
			}
			root := goldmark.New().Parser().Parse(text.NewReader([]byte(content)))
			if h, ok := root.FirstChild().(*ast.Heading); !ok || h.Level != 1 {
				t.Errorf("topic %q does not start with a title", topic)
			}
		})
	}
}

func TestTopics_All(t *testing.T) {
	all, err := Topics("*")
	if err != nil {
		t.Fatalf("Topics(*) unexpected error: %v", err)
	}
	for _, title := range []string{"# Scenarios", "# Overrides", "# Financing", "# Returns", "# Sweep"} {
		if !strings.Contains(all, title) {
			t.Errorf("Topics(*) misses %q", title)
		}
	}
	if _, err := Topics("readme", "unknown"); err == nil {
		t.Error("Topics() must fail on an unknown topic")
	}
}
