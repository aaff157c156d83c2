package diag

import (
	"strings"
	"testing"

	"github.com/chazu/tamc/ast"
)

func TestCollectorKeepsOrder(t *testing.T) {
	c := NewCollector()
	c.ReportRestriction(ast.Position{Line: 3, Column: 7}, "can't nest routines more than 7 deep")
	c.ReportRestriction(ast.Position{}, "TAM code store is full")

	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	want := []string{
		"3:7: restriction: can't nest routines more than 7 deep",
		"restriction: TAM code store is full",
	}
	got := c.Messages()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("message %d = %q, want %q", i, got[i], want[i])
		}
	}
	if d := c.Diagnostics()[0]; d.Pos.Line != 3 || d.Message != "can't nest routines more than 7 deep" {
		t.Errorf("first diagnostic = %+v", d)
	}
}

func TestPrint(t *testing.T) {
	c := NewCollector()
	c.ReportRestriction(ast.Position{Line: 1, Column: 1}, "length of operand can't exceed 255 words")

	var sb strings.Builder
	if err := c.Print(&sb); err != nil {
		t.Fatalf("Print failed: %v", err)
	}
	if sb.String() != "1:1: restriction: length of operand can't exceed 255 words\n" {
		t.Errorf("Print wrote %q", sb.String())
	}
}

func TestEmptyCollector(t *testing.T) {
	c := NewCollector()
	if c.Len() != 0 || len(c.Messages()) != 0 {
		t.Errorf("new collector not empty: %v", c.Messages())
	}
}
