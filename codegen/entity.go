package codegen

import (
	"fmt"

	"github.com/chazu/tamc/ast"
	"github.com/chazu/tamc/tam"
)

// ---------------------------------------------------------------------------
// Runtime entities
// ---------------------------------------------------------------------------

// Entity describes how a declaration or type is represented at run time.
type Entity interface {
	words() int // marker method; run-time size in words
}

// KnownValue is a compile-time constant.
type KnownValue struct {
	Size  int
	Value int
}

// UnknownValue is a value computed at run time and held in a stack slot.
type UnknownValue struct {
	Size    int
	Address ObjectAddress
}

// KnownAddress is a variable at a fixed place in a frame. ArrayLength is
// the element count of array and fixed-string variables, 0 otherwise.
type KnownAddress struct {
	Size        int
	Address     ObjectAddress
	ArrayLength int
}

// UnknownAddress is a var parameter: the slot at Address holds a pointer
// to the datum.
type UnknownAddress struct {
	Size    int
	Address ObjectAddress
}

// KnownRoutine is a routine compiled in this program. Address holds the
// declaring level and the code address of its entry point.
type KnownRoutine struct {
	Size    int
	Address ObjectAddress
}

// UnknownRoutine is a routine parameter: the slot at Address holds a
// closure.
type UnknownRoutine struct {
	Size    int
	Address ObjectAddress
}

// PrimitiveRoutine is a machine primitive reached through PB. The identity
// primitive emits no code at all.
type PrimitiveRoutine struct {
	Displacement int
}

// EqualityRoutine is the eq or ne primitive, which takes the size of its
// operands as an extra argument.
type EqualityRoutine struct {
	Displacement int
}

// TypeRepresentation is the run-time size of a type. Heap types are held
// as a one-word pointer to Payload words of heap storage.
type TypeRepresentation struct {
	Size    int
	Heap    bool
	Payload int
}

// Field locates a record field within its record.
type Field struct {
	Size   int
	Offset int
}

func (e KnownValue) words() int         { return e.Size }
func (e UnknownValue) words() int       { return e.Size }
func (e KnownAddress) words() int       { return e.Size }
func (e UnknownAddress) words() int     { return e.Size }
func (e KnownRoutine) words() int       { return e.Size }
func (e UnknownRoutine) words() int     { return e.Size }
func (e PrimitiveRoutine) words() int   { return tam.ClosureSize }
func (e EqualityRoutine) words() int    { return tam.ClosureSize }
func (e TypeRepresentation) words() int { return e.Size }
func (e Field) words() int              { return e.Size }

// EntitySize returns the run-time size of e in words.
func EntitySize(e Entity) int {
	if e == nil {
		return 0
	}
	return e.words()
}

// EntityKind returns the variant name of e.
func EntityKind(e Entity) string {
	switch e.(type) {
	case KnownValue:
		return "KnownValue"
	case UnknownValue:
		return "UnknownValue"
	case KnownAddress:
		return "KnownAddress"
	case UnknownAddress:
		return "UnknownAddress"
	case KnownRoutine:
		return "KnownRoutine"
	case UnknownRoutine:
		return "UnknownRoutine"
	case PrimitiveRoutine:
		return "PrimitiveRoutine"
	case EqualityRoutine:
		return "EqualityRoutine"
	case TypeRepresentation:
		return "TypeRepresentation"
	case Field:
		return "Field"
	}
	return fmt.Sprintf("%T", e)
}

// ---------------------------------------------------------------------------
// Entity table
// ---------------------------------------------------------------------------

// TableEntry is one entity binding, recorded when Options.TableDetails is
// set.
type TableEntry struct {
	Node         ast.NodeID `cbor:"1,keyasint"`
	Name         string     `cbor:"2,keyasint,omitempty"`
	Kind         string     `cbor:"3,keyasint"`
	Size         int        `cbor:"4,keyasint"`
	Level        int        `cbor:"5,keyasint,omitempty"`
	Displacement int        `cbor:"6,keyasint,omitempty"`
	Value        int        `cbor:"7,keyasint,omitempty"` // constant or field offset
	ArrayLength  int        `cbor:"8,keyasint,omitempty"`
}

func (t TableEntry) String() string {
	return fmt.Sprintf("%-18s %-12s size=%d level=%d disp=%d value=%d len=%d",
		t.Kind, t.Name, t.Size, t.Level, t.Displacement, t.Value, t.ArrayLength)
}

func newTableEntry(id ast.NodeID, name string, e Entity) TableEntry {
	t := TableEntry{Node: id, Name: name, Kind: EntityKind(e), Size: EntitySize(e)}
	switch e := e.(type) {
	case KnownValue:
		t.Value = e.Value
	case UnknownValue:
		t.Level, t.Displacement = e.Address.Level, e.Address.Displacement
	case KnownAddress:
		t.Level, t.Displacement = e.Address.Level, e.Address.Displacement
		t.ArrayLength = e.ArrayLength
	case UnknownAddress:
		t.Level, t.Displacement = e.Address.Level, e.Address.Displacement
	case KnownRoutine:
		t.Level, t.Displacement = e.Address.Level, e.Address.Displacement
	case UnknownRoutine:
		t.Level, t.Displacement = e.Address.Level, e.Address.Displacement
	case PrimitiveRoutine:
		t.Displacement = e.Displacement
	case EqualityRoutine:
		t.Displacement = e.Displacement
	case TypeRepresentation:
		t.Value = e.Payload
	case Field:
		t.Value = e.Offset
	}
	return t
}

// entityTable is the side table of entities keyed by node identity. Each
// node is bound at most once; only rebind may replace a binding.
type entityTable struct {
	byNode  map[ast.NodeID]Entity
	details bool
	entries []TableEntry
}

func newEntityTable(details bool) *entityTable {
	return &entityTable{byNode: make(map[ast.NodeID]Entity), details: details}
}

func (t *entityTable) lookup(id ast.NodeID) (Entity, bool) {
	e, ok := t.byNode[id]
	return e, ok
}

func (t *entityTable) bind(n ast.Identified, name string, e Entity) {
	id := n.ID()
	if id == 0 {
		panic(fmt.Sprintf("codegen: %T has no node identity", n))
	}
	if _, ok := t.byNode[id]; ok {
		panic(fmt.Sprintf("codegen: node %d (%s) already has an entity", id, name))
	}
	t.record(id, name, e)
}

func (t *entityTable) rebind(n ast.Identified, name string, e Entity) {
	t.record(n.ID(), name, e)
}

func (t *entityTable) record(id ast.NodeID, name string, e Entity) {
	t.byNode[id] = e
	if !t.details {
		return
	}
	entry := newTableEntry(id, name, e)
	t.entries = append(t.entries, entry)
	log().Debugf("entity %d: %s", id, entry)
}
