package placeholder

import (
	"strings"
	"testing"
)

func TestPlaceholder(t *testing.T) {
	p := New("Logs", "")
	if p.Title() != "Logs" {
		t.Errorf("Title = %q", p.Title())
	}
	if !strings.Contains(p.View(80, 20), "OFFLINE") {
		t.Error("expected default message")
	}
	if !strings.Contains(New("Quiz", "no provider").View(80, 20), "no provider") {
		t.Error("expected custom message")
	}
}
