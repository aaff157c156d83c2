package codegen

import (
	"testing"

	"github.com/chazu/tamc/tam"
)

func TestEmitterAppendsAndPatches(t *testing.T) {
	e := NewEmitter(tam.CodeLimit, nil)
	if e.CurrentAddress() != tam.CodeBase {
		t.Fatalf("initial address = %d", e.CurrentAddress())
	}
	e.Emit(tam.LOADL, 0, 0, 7)
	at := e.CurrentAddress()
	e.Emit(tam.JUMP, 0, tam.CB, 0)
	e.Emit(tam.HALT, 0, 0, 0)
	e.Patch(at, 2)

	code := e.Code()
	if len(code) != 3 {
		t.Fatalf("len(code) = %d, want 3", len(code))
	}
	if code[1].D != 2 || code[1].Op != tam.JUMP || code[1].R != tam.CB {
		t.Errorf("patched jump = %+v", code[1])
	}
	if code[0].D != 7 {
		t.Errorf("patch touched another instruction: %+v", code[0])
	}
}

func TestEmitterClampsOperand(t *testing.T) {
	var msgs []string
	e := NewEmitter(tam.CodeLimit, func(msg string) { msgs = append(msgs, msg) })
	e.Emit(tam.LOAD, 300, tam.SB, 0)

	if got := e.Code()[0].N; got != tam.MaxOperand {
		t.Errorf("n = %d, want %d", got, tam.MaxOperand)
	}
	if len(msgs) != 1 || msgs[0] != "length of operand can't exceed 255 words" {
		t.Errorf("restrictions = %v", msgs)
	}
}

func TestEmitterDropsPastLimit(t *testing.T) {
	var msgs []string
	e := NewEmitter(2, func(msg string) { msgs = append(msgs, msg) })
	for i := 0; i < 5; i++ {
		e.Emit(tam.LOADL, 0, 0, i)
	}
	if len(e.Code()) != 2 {
		t.Errorf("len(code) = %d, want 2", len(e.Code()))
	}
	if !e.Exhausted() {
		t.Error("emitter not marked exhausted")
	}
	if len(msgs) != 1 {
		t.Errorf("restrictions = %v, want exactly one", msgs)
	}
	e.Patch(4, 99) // dropped address: ignored
}

func TestLabels(t *testing.T) {
	e := NewEmitter(tam.CodeLimit, nil)

	fwd := e.NewLabel()
	e.EmitJump(tam.JUMPIF, tam.FalseRep, fwd)
	e.EmitJump(tam.JUMP, 0, fwd)
	back := e.Here()
	e.Emit(tam.LOADL, 0, 0, 1)
	e.Mark(fwd)
	e.EmitJump(tam.JUMP, 0, back)
	e.Finish()

	code := e.Code()
	for _, i := range []int{0, 1} {
		if code[i].D != 3 {
			t.Errorf("forward jump %d -> %d, want 3", i, code[i].D)
		}
	}
	if code[0].N != tam.FalseRep || code[0].Op != tam.JUMPIF {
		t.Errorf("conditional jump = %+v", code[0])
	}
	if code[3].D != 2 {
		t.Errorf("backward jump -> %d, want 2", code[3].D)
	}
}

func TestLabelMarkedTwicePanics(t *testing.T) {
	e := NewEmitter(tam.CodeLimit, nil)
	l := e.NewLabel()
	e.Mark(l)
	defer func() {
		if recover() == nil {
			t.Error("second Mark did not panic")
		}
	}()
	e.Mark(l)
}

func TestFinishPanicsOnUnresolvedLabel(t *testing.T) {
	e := NewEmitter(tam.CodeLimit, nil)
	e.EmitJump(tam.JUMP, 0, e.NewLabel())
	defer func() {
		if recover() == nil {
			t.Error("Finish did not panic")
		}
	}()
	e.Finish()
}

func TestDroppedJumpNeedsNoPatch(t *testing.T) {
	e := NewEmitter(1, nil)
	e.Emit(tam.HALT, 0, 0, 0)
	l := e.NewLabel()
	e.EmitJump(tam.JUMP, 0, l)
	e.Finish() // must not panic: the jump was never emitted
	e.Mark(l)
}
