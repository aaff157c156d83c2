package codegen

import (
	"fmt"

	"github.com/chazu/tamc/tam"
)

// Frame is the compile-time view of the stack at the point where the next
// value will be pushed: the lexical level of the running routine and the
// number of words already on its frame.
type Frame struct {
	Level int
	Size  int
}

// Extend returns the frame after n more words have been pushed.
func (f Frame) Extend(n int) Frame {
	return Frame{Level: f.Level, Size: f.Size + n}
}

// Deeper returns a frame one lexical level in, holding size words.
func (f Frame) Deeper(size int) Frame {
	return Frame{Level: f.Level + 1, Size: size}
}

func (f Frame) String() string {
	return fmt.Sprintf("frame(level=%d, size=%d)", f.Level, f.Size)
}

// ObjectAddress is the static location of a value: a displacement from the
// base of the frame at Level.
type ObjectAddress struct {
	Level        int
	Displacement int
}

func (a ObjectAddress) String() string {
	return fmt.Sprintf("%d@%d", a.Displacement, a.Level)
}

// DisplayRegister returns the register through which code running at level
// current reaches a frame at level object. ok is false when the frame lies
// beyond the display, in which case L6 is returned.
func DisplayRegister(current, object int) (r tam.Register, ok bool) {
	if object == 0 {
		return tam.SB, true
	}
	diff := current - object
	if diff <= tam.DisplayDepth {
		return tam.LB + tam.Register(diff), true
	}
	return tam.L6, false
}
