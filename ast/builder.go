package ast

import "fmt"

// Builder allocates node identifiers. All identified nodes of one tree,
// including its standard environment, must come from the same Builder.
type Builder struct {
	last NodeID
}

// NewBuilder creates a new builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// NextID returns a fresh identifier.
func (b *Builder) NextID() NodeID {
	b.last++
	return b.last
}

// Count returns the number of identifiers allocated so far.
func (b *Builder) Count() int {
	return int(b.last)
}

// New registers n with b and returns it.
func New[T Identified](b *Builder, n T) T {
	if n.ID() != 0 {
		panic(fmt.Sprintf("ast: %T already registered as node %d", n, n.ID()))
	}
	n.setID(b.NextID())
	return n
}
