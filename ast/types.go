package ast

// ---------------------------------------------------------------------------
// Type denoters
// ---------------------------------------------------------------------------

// TypeDenoter is the interface for type denoter nodes. Type identifiers are
// already replaced by the denoters they name, so records that refer to
// themselves form cycles.
type TypeDenoter interface {
	Identified
	typeDenoter() // marker method
}

// AnyTypeDenoter is the type of the standard equality operands.
type AnyTypeDenoter struct {
	identity
	At Position
}

func (n *AnyTypeDenoter) Pos() Position { return n.At }
func (n *AnyTypeDenoter) node()         {}
func (n *AnyTypeDenoter) typeDenoter()  {}

// ErrorTypeDenoter stands for an ill-typed phrase.
type ErrorTypeDenoter struct {
	identity
	At Position
}

func (n *ErrorTypeDenoter) Pos() Position { return n.At }
func (n *ErrorTypeDenoter) node()         {}
func (n *ErrorTypeDenoter) typeDenoter()  {}

// BoolTypeDenoter is the primitive Boolean type.
type BoolTypeDenoter struct {
	identity
	At Position
}

func (n *BoolTypeDenoter) Pos() Position { return n.At }
func (n *BoolTypeDenoter) node()         {}
func (n *BoolTypeDenoter) typeDenoter()  {}

// CharTypeDenoter is the primitive Char type.
type CharTypeDenoter struct {
	identity
	At Position
}

func (n *CharTypeDenoter) Pos() Position { return n.At }
func (n *CharTypeDenoter) node()         {}
func (n *CharTypeDenoter) typeDenoter()  {}

// IntTypeDenoter is the primitive Integer type.
type IntTypeDenoter struct {
	identity
	At Position
}

func (n *IntTypeDenoter) Pos() Position { return n.At }
func (n *IntTypeDenoter) node()         {}
func (n *IntTypeDenoter) typeDenoter()  {}

// NilTypeDenoter is the type of nil.
type NilTypeDenoter struct {
	identity
	At Position
}

func (n *NilTypeDenoter) Pos() Position { return n.At }
func (n *NilTypeDenoter) node()         {}
func (n *NilTypeDenoter) typeDenoter()  {}

// SimpleTypeDenoter is a type identifier left unresolved.
type SimpleTypeDenoter struct {
	identity
	At   Position
	Name string
}

func (n *SimpleTypeDenoter) Pos() Position { return n.At }
func (n *SimpleTypeDenoter) node()         {}
func (n *SimpleTypeDenoter) typeDenoter()  {}

// ArrayTypeDenoter represents array Length of Elem.
type ArrayTypeDenoter struct {
	identity
	At     Position
	Length int
	Elem   TypeDenoter
}

func (n *ArrayTypeDenoter) Pos() Position { return n.At }
func (n *ArrayTypeDenoter) node()         {}
func (n *ArrayTypeDenoter) typeDenoter()  {}

// FixedStringTypeDenoter represents a string of exactly Length characters.
type FixedStringTypeDenoter struct {
	identity
	At     Position
	Length int
}

func (n *FixedStringTypeDenoter) Pos() Position { return n.At }
func (n *FixedStringTypeDenoter) node()         {}
func (n *FixedStringTypeDenoter) typeDenoter()  {}

// RecordTypeDenoter represents record f1 : T1, f2 : T2, ... end.
type RecordTypeDenoter struct {
	identity
	At     Position
	Fields []*FieldTypeDenoter
}

func (n *RecordTypeDenoter) Pos() Position { return n.At }
func (n *RecordTypeDenoter) node()         {}
func (n *RecordTypeDenoter) typeDenoter()  {}

// Field returns the field called name, or nil.
func (n *RecordTypeDenoter) Field(name string) *FieldTypeDenoter {
	for _, f := range n.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// FieldTypeDenoter is one field of a record type. Field selections link
// to it as their declaration.
type FieldTypeDenoter struct {
	identity
	At   Position
	Name string
	T    TypeDenoter
}

func (n *FieldTypeDenoter) Pos() Position { return n.At }
func (n *FieldTypeDenoter) node()         {}
func (n *FieldTypeDenoter) declaration()  {}

// EnumTypeDenoter represents an enumeration with its literals in order.
type EnumTypeDenoter struct {
	identity
	At       Position
	Literals []*EnumLiteral
}

func (n *EnumTypeDenoter) Pos() Position { return n.At }
func (n *EnumTypeDenoter) node()         {}
func (n *EnumTypeDenoter) typeDenoter()  {}
