package docs

import (
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	got := strings.Join(Topics(), ",")
	if got != "api,tui" {
		t.Fatalf("expected topics api,tui; got %q", got)
	}
}

func TestGet(t *testing.T) {
	md, ok := Get(" API ")
	if !ok {
		t.Fatalf("expected api topic")
	}
	if !strings.Contains(md, "/api/items") {
		t.Fatalf("expected api topic to describe /api/items")
	}
	for _, topic := range []string{"", "missing", "../docs"} {
		if _, ok := Get(topic); ok {
			t.Fatalf("expected %q to be unknown", topic)
		}
	}
}
