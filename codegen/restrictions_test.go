package codegen

import (
	"fmt"
	"testing"

	"github.com/chazu/tamc/ast"
	"github.com/chazu/tamc/tam"
)

func TestRoutineNestingLimit(t *testing.T) {
	fx := newFixture()
	var decls []*ast.ProcDeclaration
	inner := fx.proc("p8", fx.call(fx.env.PuteolDecl))
	decls = append(decls, inner)
	for depth := 7; depth >= 1; depth-- {
		inner = fx.proc(fmt.Sprintf("p%d", depth), fx.let(inner, fx.skip()))
		decls = append(decls, inner)
	}

	enc, prog, rec := generate(t, fx, fx.let(inner, fx.skip()), Options{})

	if n := rec.count("can't nest routines more than 7 deep"); n != 1 {
		t.Fatalf("nesting restrictions = %d, want 1 (all: %v)", n, rec.msgs)
	}
	deepest, ok := enc.Entity(decls[0])
	if !ok {
		t.Fatal("deepest routine has no entity")
	}
	kr := deepest.(KnownRoutine)
	if kr.Address.Level != tam.MaxRoutineLevel {
		t.Errorf("deepest routine declared at level %d, want %d", kr.Address.Level, tam.MaxRoutineLevel)
	}
	if got := prog.Code[kr.Address.Displacement]; got.Op != tam.RETURN {
		t.Errorf("body of over-nested routine = %v, want bare RETURN", got)
	}
	if n := countOp(prog.Code, tam.CALL, tam.PB, tam.PuteolDisplacement); n != 0 {
		t.Errorf("over-nested body was generated (%d puteol calls)", n)
	}
}

func TestOversizedLoadAndStoreAreClamped(t *testing.T) {
	fx := newFixture()
	big := fx.arrayOf(300, fx.env.IntegerType)
	a := fx.varDecl("a", big)
	b := fx.varDecl("b", big)
	body := fx.let(fx.seq(a, b), fx.assign(fx.name(a, big), fx.read(fx.name(b, big))))

	_, prog, rec := generate(t, fx, body, Options{})

	assertListing(t, prog.Code, []string{
		"PUSH 300",
		"PUSH 300",
		"LOAD(255) 300[SB]",
		"STORE(255) 0[SB]",
		"POP(0) 600",
		"HALT",
	})
	for _, msg := range []string{
		"can't load values larger than 255 words",
		"can't store values larger than 255 words",
	} {
		if rec.count(msg) != 1 {
			t.Errorf("missing restriction %q in %v", msg, rec.msgs)
		}
	}
}

func TestCodeStoreExhaustion(t *testing.T) {
	fx := newFixture()
	loop := &ast.WhileCommand{
		Cond: fx.read(fx.name(fx.env.FalseDecl, fx.env.BooleanType)),
		Body: fx.call(fx.env.PuteolDecl),
	}

	_, prog, rec := generate(t, fx, loop, Options{CodeLimit: 2})

	assertListing(t, prog.Code, []string{
		"JUMP 2[CB]",
		"CALL puteol",
	})
	if len(rec.msgs) != 1 || rec.msgs[0] != "TAM code store is full" {
		t.Errorf("restrictions = %v, want one code store report", rec.msgs)
	}
}
