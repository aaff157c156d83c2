// Package codegen translates an annotated Triangle syntax tree into TAM
// instructions in a single recursive pass. Each declaration acquires a
// runtime entity the first time it is elaborated; later references reuse
// it to choose between literal loads, frame addressing, indirection,
// closures and primitive calls.
package codegen

import (
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/chazu/tamc/ast"
	"github.com/chazu/tamc/tam"
)

// log returns the package logger. It is looked up on each use so that a
// backend registered after package initialization takes effect.
func log() commonlog.Logger {
	return commonlog.GetLogger("tamc.codegen")
}

// Reporter receives restriction diagnostics: conditions where the program
// exceeds a fixed capacity of the target machine. Generation continues
// after each report.
type Reporter interface {
	ReportRestriction(pos ast.Position, msg string)
}

// Options configures an Encoder.
type Options struct {
	// CodeLimit is the first address past the code store. Zero means
	// tam.CodeLimit.
	CodeLimit int
	// TableDetails records every entity binding in Program.Table.
	TableDetails bool
}

// Program is the result of code generation.
type Program struct {
	Code  []tam.Instruction
	Table []TableEntry
}

// Encoder generates TAM code for a program.
type Encoder struct {
	env      *ast.StdEnvironment
	reporter Reporter
	opts     Options

	// Per-generation state, reset by Generate.
	emitter  *Emitter
	entities *entityTable
	types    *typeResolver
	vnames   map[ast.Vname]vnameAddress
	pos      ast.Position
}

// NewEncoder creates an encoder for trees built against env. reporter may
// be nil, in which case restrictions are only logged.
func NewEncoder(env *ast.StdEnvironment, reporter Reporter, opts Options) *Encoder {
	if opts.CodeLimit <= 0 {
		opts.CodeLimit = tam.CodeLimit
	}
	return &Encoder{env: env, reporter: reporter, opts: opts}
}

// Generate translates prog. The standard environment is bound afresh on
// every call, so generating the same tree twice yields the same code.
func (c *Encoder) Generate(prog *ast.Program) *Program {
	c.emitter = NewEmitter(c.opts.CodeLimit, c.restrict)
	c.entities = newEntityTable(c.opts.TableDetails)
	c.types = newTypeResolver(c)
	c.vnames = make(map[ast.Vname]vnameAddress)
	c.pos = prog.Pos()

	c.bindStdEnvironment()

	c.encodeCommand(prog.Body, Frame{Level: 0, Size: 0})
	c.emit(tam.HALT, 0, 0, 0)
	c.emitter.Finish()

	out := &Program{Code: c.emitter.Code()}
	if c.opts.TableDetails {
		out.Table = c.entities.entries
	}
	log().Infof("generated %d instructions, %d entities", len(out.Code), len(c.entities.byNode))
	return out
}

// Entity returns the entity bound to n by the last call to Generate.
func (c *Encoder) Entity(n ast.Identified) (Entity, bool) {
	if c.entities == nil {
		return nil, false
	}
	return c.entities.lookup(n.ID())
}

// VnameAddress returns the static offset and indexed flag resolved for v
// by the last call to Generate.
func (c *Encoder) VnameAddress(v ast.Vname) (offset int, indexed bool, ok bool) {
	a, ok := c.vnames[v]
	return a.offset, a.indexed, ok
}

// restrict reports a restriction at the position of the node being
// generated.
func (c *Encoder) restrict(msg string) {
	if c.reporter == nil {
		log().Warningf("%s: %s", c.pos, msg)
		return
	}
	c.reporter.ReportRestriction(c.pos, msg)
}

// at records pos as the position for restriction reports.
func (c *Encoder) at(n ast.Node) {
	if p := n.Pos(); p.Line > 0 {
		c.pos = p
	}
}

func (c *Encoder) emit(op tam.Opcode, n int, r tam.Register, d int) {
	c.emitter.Emit(op, n, r, d)
}

// callPrimitive emits a call to the primitive routine at displacement d.
func (c *Encoder) callPrimitive(d int) {
	c.emit(tam.CALL, int(tam.SB), tam.PB, d)
}

// displayRegister returns the register that reaches level object from
// level current, reporting a restriction when it lies beyond the display.
func (c *Encoder) displayRegister(current, object int) tam.Register {
	r, ok := DisplayRegister(current, object)
	if !ok {
		c.restrict("can't access data more than 6 levels out")
	}
	return r
}

// entityOf returns the entity of decl, elaborating nothing.
func (c *Encoder) entityOf(decl ast.Declaration) Entity {
	if decl == nil {
		panic("codegen: identifier without declaration")
	}
	e, ok := c.entities.lookup(decl.ID())
	if !ok {
		panic(fmt.Sprintf("codegen: %s %q used before it was elaborated", kindName(decl), ast.DeclName(decl)))
	}
	return e
}

func kindName(n ast.Node) string {
	return fmt.Sprintf("%T", n)
}
