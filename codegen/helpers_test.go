package codegen

import (
	"strings"
	"testing"

	"github.com/chazu/tamc/ast"
	"github.com/chazu/tamc/tam"
)

// recorder collects restriction messages.
type recorder struct {
	msgs []string
}

func (r *recorder) ReportRestriction(pos ast.Position, msg string) {
	r.msgs = append(r.msgs, msg)
}

func (r *recorder) count(msg string) int {
	n := 0
	for _, m := range r.msgs {
		if m == msg {
			n++
		}
	}
	return n
}

// fixture builds annotated trees against a standard environment.
type fixture struct {
	b   *ast.Builder
	env *ast.StdEnvironment
}

func newFixture() *fixture {
	b := ast.NewBuilder()
	return &fixture{b: b, env: ast.NewStdEnvironment(b)}
}

func (fx *fixture) num(v int) *ast.IntegerExpression {
	return &ast.IntegerExpression{T: fx.env.IntegerType, Value: v}
}

func (fx *fixture) ident(d ast.Declaration) *ast.Identifier {
	return &ast.Identifier{Spelling: ast.DeclName(d), Decl: d}
}

func (fx *fixture) name(d ast.Declaration, t ast.TypeDenoter) *ast.SimpleVname {
	return &ast.SimpleVname{T: t, Name: fx.ident(d)}
}

func (fx *fixture) read(v ast.Vname) *ast.VnameExpression {
	return &ast.VnameExpression{T: v.Type(), V: v}
}

func (fx *fixture) constDecl(name string, e ast.Expression) *ast.ConstDeclaration {
	return ast.New(fx.b, &ast.ConstDeclaration{Name: name, E: e})
}

func (fx *fixture) varDecl(name string, t ast.TypeDenoter) *ast.VarDeclaration {
	return ast.New(fx.b, &ast.VarDeclaration{Name: name, T: t})
}

func (fx *fixture) seq(ds ...ast.Declaration) *ast.SequentialDeclaration {
	return ast.New(fx.b, &ast.SequentialDeclaration{Decls: ds})
}

func (fx *fixture) let(d ast.Declaration, body ast.Command) *ast.LetCommand {
	return &ast.LetCommand{Decl: d, Body: body}
}

func (fx *fixture) call(d ast.Declaration, args ...ast.ActualParameter) *ast.CallCommand {
	return &ast.CallCommand{Callee: fx.ident(d), Args: args}
}

func (fx *fixture) callExpr(d ast.Declaration, t ast.TypeDenoter, args ...ast.ActualParameter) *ast.CallExpression {
	return &ast.CallExpression{T: t, Callee: fx.ident(d), Args: args}
}

func (fx *fixture) arg(e ast.Expression) *ast.ConstActualParameter {
	return &ast.ConstActualParameter{E: e}
}

func (fx *fixture) binary(l ast.Expression, op *ast.BinaryOperatorDeclaration, r ast.Expression) *ast.BinaryExpression {
	return &ast.BinaryExpression{
		T:     op.Result,
		Left:  l,
		Op:    &ast.Operator{Spelling: op.Spelling, Decl: op},
		Right: r,
	}
}

func (fx *fixture) assign(v ast.Vname, e ast.Expression) *ast.AssignCommand {
	return &ast.AssignCommand{V: v, E: e}
}

func (fx *fixture) seqCmd(cmds ...ast.Command) *ast.SequentialCommand {
	return &ast.SequentialCommand{Commands: cmds}
}

func (fx *fixture) arrayOf(n int, elem ast.TypeDenoter) *ast.ArrayTypeDenoter {
	return ast.New(fx.b, &ast.ArrayTypeDenoter{Length: n, Elem: elem})
}

func (fx *fixture) field(name string, t ast.TypeDenoter) *ast.FieldTypeDenoter {
	return ast.New(fx.b, &ast.FieldTypeDenoter{Name: name, T: t})
}

func (fx *fixture) record(fields ...*ast.FieldTypeDenoter) *ast.RecordTypeDenoter {
	return ast.New(fx.b, &ast.RecordTypeDenoter{Fields: fields})
}

func (fx *fixture) dot(base ast.Vname, f *ast.FieldTypeDenoter) *ast.DotVname {
	return &ast.DotVname{T: f.T, Base: base, Field: &ast.Identifier{Spelling: f.Name, Decl: f}}
}

func (fx *fixture) index(base ast.Vname, i ast.Expression) *ast.SubscriptVname {
	var elem ast.TypeDenoter = fx.env.CharType
	if at, ok := base.Type().(*ast.ArrayTypeDenoter); ok {
		elem = at.Elem
	}
	return &ast.SubscriptVname{T: elem, Base: base, Index: i}
}

func (fx *fixture) proc(name string, body ast.Command, formals ...ast.FormalParameter) *ast.ProcDeclaration {
	return ast.New(fx.b, &ast.ProcDeclaration{Name: name, Formals: formals, Body: body})
}

func (fx *fixture) skip() *ast.EmptyCommand {
	return &ast.EmptyCommand{}
}

func generate(t *testing.T, fx *fixture, body ast.Command, opts Options) (*Encoder, *Program, *recorder) {
	t.Helper()
	rec := &recorder{}
	enc := NewEncoder(fx.env, rec, opts)
	prog := enc.Generate(&ast.Program{Body: body})
	return enc, prog, rec
}

func listing(code []tam.Instruction) []string {
	out := make([]string, len(code))
	for i, in := range code {
		out[i] = in.String()
	}
	return out
}

func assertListing(t *testing.T, code []tam.Instruction, want []string) {
	t.Helper()
	got := listing(code)
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("code mismatch\ngot:\n%s\n\nwant:\n  %s",
			tam.Disassemble(code), strings.Join(want, "\n  "))
	}
}

func countOp(code []tam.Instruction, op tam.Opcode, r tam.Register, d int) int {
	n := 0
	for _, in := range code {
		if in.Op == op && in.R == r && int(in.D) == d {
			n++
		}
	}
	return n
}
