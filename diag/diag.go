// Package diag collects restriction diagnostics reported by the code
// generator.
package diag

import (
	"fmt"
	"io"

	"github.com/chazu/tamc/ast"
	"github.com/tliron/commonlog"
)

func log() commonlog.Logger { return commonlog.GetLogger("tamc.diag") }

// Diagnostic is one restriction: a place where the program exceeds a fixed
// capacity of the target machine.
type Diagnostic struct {
	Pos     ast.Position
	Message string
}

func (d Diagnostic) String() string {
	if d.Pos.Line == 0 {
		return "restriction: " + d.Message
	}
	return fmt.Sprintf("%s: restriction: %s", d.Pos, d.Message)
}

// Collector accumulates diagnostics in the order they are reported.
type Collector struct {
	diags []Diagnostic
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// ReportRestriction records a restriction diagnostic.
func (c *Collector) ReportRestriction(pos ast.Position, msg string) {
	d := Diagnostic{Pos: pos, Message: msg}
	log().Warningf("%s", d)
	c.diags = append(c.diags, d)
}

// Diagnostics returns the collected diagnostics.
func (c *Collector) Diagnostics() []Diagnostic {
	return c.diags
}

// Messages returns each diagnostic formatted as a string.
func (c *Collector) Messages() []string {
	msgs := make([]string, len(c.diags))
	for i, d := range c.diags {
		msgs[i] = d.String()
	}
	return msgs
}

// Len returns the number of diagnostics.
func (c *Collector) Len() int { return len(c.diags) }

// Print writes one diagnostic per line to w.
func (c *Collector) Print(w io.Writer) error {
	for _, d := range c.diags {
		if _, err := fmt.Fprintln(w, d); err != nil {
			return err
		}
	}
	return nil
}
