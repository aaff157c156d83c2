package codegen

import (
	"fmt"

	"github.com/chazu/tamc/tam"
)

// ---------------------------------------------------------------------------
// Instruction emitter
// ---------------------------------------------------------------------------

// Emitter appends instructions to a bounded code store. It never fails:
// oversized operands are clamped and instructions past the end of the code
// store are dropped, each condition being passed to the restriction hook.
type Emitter struct {
	code      []tam.Instruction
	limit     int
	exhausted bool
	pending   int // labels with unpatched references
	restrict  func(msg string)
}

// NewEmitter creates an emitter whose code store ends at limit. restrict
// receives restriction messages and may be nil.
func NewEmitter(limit int, restrict func(msg string)) *Emitter {
	if restrict == nil {
		restrict = func(string) {}
	}
	return &Emitter{
		code:     make([]tam.Instruction, 0, 64),
		limit:    limit,
		restrict: restrict,
	}
}

// Code returns the instructions emitted so far.
func (e *Emitter) Code() []tam.Instruction {
	return e.code
}

// CurrentAddress returns the address the next instruction will occupy.
func (e *Emitter) CurrentAddress() int {
	return tam.CodeBase + len(e.code)
}

// Exhausted reports whether the code store has overflowed.
func (e *Emitter) Exhausted() bool {
	return e.exhausted
}

// Emit appends one instruction.
func (e *Emitter) Emit(op tam.Opcode, n int, r tam.Register, d int) {
	if n > tam.MaxOperand {
		e.restrict("length of operand can't exceed 255 words")
		n = tam.MaxOperand
	}
	if e.CurrentAddress() >= e.limit {
		if !e.exhausted {
			e.exhausted = true
			e.restrict("TAM code store is full")
		}
		return
	}
	e.code = append(e.code, tam.Instruction{Op: op, R: r, N: int32(n), D: int32(d)})
}

// Patch overwrites the displacement of the instruction at addr. Addresses
// of dropped instructions are ignored.
func (e *Emitter) Patch(addr, d int) {
	i := addr - tam.CodeBase
	if i < 0 || i >= len(e.code) {
		return
	}
	e.code[i].D = int32(d)
}

// ---------------------------------------------------------------------------
// Labels
// ---------------------------------------------------------------------------

// Label is a code address that may not be known yet. Jumps to an
// unresolved label are patched when the label is marked.
type Label struct {
	resolved bool
	position int   // target address once resolved
	refs     []int // addresses of jumps waiting for the target
}

// NewLabel creates an unresolved label.
func (e *Emitter) NewLabel() *Label {
	return &Label{refs: make([]int, 0, 2)}
}

// Here creates a label already resolved to the current address, for
// backward jumps.
func (e *Emitter) Here() *Label {
	return &Label{resolved: true, position: e.CurrentAddress()}
}

// Mark resolves label to the current address and patches every jump that
// refers to it.
func (e *Emitter) Mark(label *Label) {
	if label.resolved {
		panic("label already resolved")
	}
	label.resolved = true
	label.position = e.CurrentAddress()
	for _, ref := range label.refs {
		e.Patch(ref, label.position)
	}
	if len(label.refs) > 0 {
		e.pending--
	}
	label.refs = nil
}

// EmitJump emits a JUMP, or a JUMPIF testing n, to label relative to CB.
func (e *Emitter) EmitJump(op tam.Opcode, n int, label *Label) {
	if label.resolved {
		e.Emit(op, n, tam.CB, label.position)
		return
	}
	addr := e.CurrentAddress()
	e.Emit(op, n, tam.CB, 0)
	if e.CurrentAddress() == addr {
		// dropped: nothing to patch
		return
	}
	if len(label.refs) == 0 {
		e.pending++
	}
	label.refs = append(label.refs, addr)
}

// Finish checks that every jump emitted to a label has been patched.
func (e *Emitter) Finish() {
	if e.pending != 0 {
		panic(fmt.Sprintf("codegen: %d labels left unresolved", e.pending))
	}
}
