package ast

// NodeID is the stable identity of a declaration or type denoter. The zero
// value means the node was never registered with a Builder.
type NodeID int

// Identified is implemented by nodes that own a NodeID.
type Identified interface {
	Node
	ID() NodeID
	setID(NodeID)
}

// identity is embedded by every identified node.
type identity struct {
	id NodeID
}

// ID returns the node's arena identifier.
func (i *identity) ID() NodeID       { return i.id }
func (i *identity) setID(id NodeID) { i.id = id }

// ---------------------------------------------------------------------------
// Declarations
// ---------------------------------------------------------------------------

// Declaration is the interface for declaration nodes, including formal
// parameters, record fields and enumeration literals.
type Declaration interface {
	Identified
	declaration() // marker method
}

// ConstDeclaration represents const Name ~ E.
type ConstDeclaration struct {
	identity
	At   Position
	Name string
	E    Expression
}

func (n *ConstDeclaration) Pos() Position { return n.At }
func (n *ConstDeclaration) node()         {}
func (n *ConstDeclaration) declaration()  {}

// VarDeclaration represents var Name : T.
type VarDeclaration struct {
	identity
	At   Position
	Name string
	T    TypeDenoter
}

func (n *VarDeclaration) Pos() Position { return n.At }
func (n *VarDeclaration) node()         {}
func (n *VarDeclaration) declaration()  {}

// VarInitialization represents var Name : T := E.
type VarInitialization struct {
	identity
	At   Position
	Name string
	T    TypeDenoter
	E    Expression
}

func (n *VarInitialization) Pos() Position { return n.At }
func (n *VarInitialization) node()         {}
func (n *VarInitialization) declaration()  {}

// ProcDeclaration represents proc Name (Formals) ~ Body.
type ProcDeclaration struct {
	identity
	At      Position
	Name    string
	Formals []FormalParameter
	Body    Command
}

func (n *ProcDeclaration) Pos() Position { return n.At }
func (n *ProcDeclaration) node()         {}
func (n *ProcDeclaration) declaration()  {}

// FuncDeclaration represents func Name (Formals) : Result ~ Body.
type FuncDeclaration struct {
	identity
	At      Position
	Name    string
	Formals []FormalParameter
	Result  TypeDenoter
	Body    Expression
}

func (n *FuncDeclaration) Pos() Position { return n.At }
func (n *FuncDeclaration) node()         {}
func (n *FuncDeclaration) declaration()  {}

// OperatorDeclaration is a user-defined operator function.
type OperatorDeclaration struct {
	identity
	At       Position
	Spelling string
	Formals  []FormalParameter
	Result   TypeDenoter
	Body     Expression
}

func (n *OperatorDeclaration) Pos() Position { return n.At }
func (n *OperatorDeclaration) node()         {}
func (n *OperatorDeclaration) declaration()  {}

// TypeDeclaration represents type Name ~ T.
type TypeDeclaration struct {
	identity
	At   Position
	Name string
	T    TypeDenoter
}

func (n *TypeDeclaration) Pos() Position { return n.At }
func (n *TypeDeclaration) node()         {}
func (n *TypeDeclaration) declaration()  {}

// EnumTypeDeclaration declares an enumeration type and its literals.
type EnumTypeDeclaration struct {
	identity
	At   Position
	Name string
	T    *EnumTypeDenoter
}

func (n *EnumTypeDeclaration) Pos() Position { return n.At }
func (n *EnumTypeDeclaration) node()         {}
func (n *EnumTypeDeclaration) declaration()  {}

// EnumLiteral is one literal of an enumeration type.
type EnumLiteral struct {
	identity
	At    Position
	Name  string
	Value int
}

func (n *EnumLiteral) Pos() Position { return n.At }
func (n *EnumLiteral) node()         {}
func (n *EnumLiteral) declaration()  {}

// UnaryOperatorDeclaration declares a standard unary operator.
type UnaryOperatorDeclaration struct {
	identity
	At       Position
	Spelling string
	Arg      TypeDenoter
	Result   TypeDenoter
}

func (n *UnaryOperatorDeclaration) Pos() Position { return n.At }
func (n *UnaryOperatorDeclaration) node()         {}
func (n *UnaryOperatorDeclaration) declaration()  {}

// BinaryOperatorDeclaration declares a standard binary operator.
type BinaryOperatorDeclaration struct {
	identity
	At       Position
	Spelling string
	Arg1     TypeDenoter
	Arg2     TypeDenoter
	Result   TypeDenoter
}

func (n *BinaryOperatorDeclaration) Pos() Position { return n.At }
func (n *BinaryOperatorDeclaration) node()         {}
func (n *BinaryOperatorDeclaration) declaration()  {}

// SequentialDeclaration elaborates its declarations in order.
type SequentialDeclaration struct {
	identity
	At    Position
	Decls []Declaration
}

func (n *SequentialDeclaration) Pos() Position { return n.At }
func (n *SequentialDeclaration) node()         {}
func (n *SequentialDeclaration) declaration()  {}

// PackageDeclaration groups a private and a public declaration under a
// package name. Private may be nil.
type PackageDeclaration struct {
	identity
	At      Position
	Name    string
	Private Declaration
	Public  Declaration
}

func (n *PackageDeclaration) Pos() Position { return n.At }
func (n *PackageDeclaration) node()         {}
func (n *PackageDeclaration) declaration()  {}

// ---------------------------------------------------------------------------
// Formal parameters
// ---------------------------------------------------------------------------

// FormalParameter is the interface for formal parameter declarations.
type FormalParameter interface {
	Declaration
	formal() // marker method
}

// ConstFormalParameter is a by-value parameter.
type ConstFormalParameter struct {
	identity
	At   Position
	Name string
	T    TypeDenoter
}

func (n *ConstFormalParameter) Pos() Position { return n.At }
func (n *ConstFormalParameter) node()         {}
func (n *ConstFormalParameter) declaration()  {}
func (n *ConstFormalParameter) formal()       {}

// VarFormalParameter is a by-reference parameter.
type VarFormalParameter struct {
	identity
	At   Position
	Name string
	T    TypeDenoter
}

func (n *VarFormalParameter) Pos() Position { return n.At }
func (n *VarFormalParameter) node()         {}
func (n *VarFormalParameter) declaration()  {}
func (n *VarFormalParameter) formal()       {}

// ProcFormalParameter is a procedure parameter.
type ProcFormalParameter struct {
	identity
	At      Position
	Name    string
	Formals []FormalParameter
}

func (n *ProcFormalParameter) Pos() Position { return n.At }
func (n *ProcFormalParameter) node()         {}
func (n *ProcFormalParameter) declaration()  {}
func (n *ProcFormalParameter) formal()       {}

// FuncFormalParameter is a function parameter.
type FuncFormalParameter struct {
	identity
	At      Position
	Name    string
	Formals []FormalParameter
	Result  TypeDenoter
}

func (n *FuncFormalParameter) Pos() Position { return n.At }
func (n *FuncFormalParameter) node()         {}
func (n *FuncFormalParameter) declaration()  {}
func (n *FuncFormalParameter) formal()       {}

// ValResFormalParameter is a value-result parameter.
type ValResFormalParameter struct {
	identity
	At   Position
	Name string
	T    TypeDenoter
}

func (n *ValResFormalParameter) Pos() Position { return n.At }
func (n *ValResFormalParameter) node()         {}
func (n *ValResFormalParameter) declaration()  {}
func (n *ValResFormalParameter) formal()       {}

// ResFormalParameter is a result parameter.
type ResFormalParameter struct {
	identity
	At   Position
	Name string
	T    TypeDenoter
}

func (n *ResFormalParameter) Pos() Position { return n.At }
func (n *ResFormalParameter) node()         {}
func (n *ResFormalParameter) declaration()  {}
func (n *ResFormalParameter) formal()       {}

// DeclName returns the declared name of d, or "" for anonymous groupings.
func DeclName(d Declaration) string {
	switch d := d.(type) {
	case *ConstDeclaration:
		return d.Name
	case *VarDeclaration:
		return d.Name
	case *VarInitialization:
		return d.Name
	case *ProcDeclaration:
		return d.Name
	case *FuncDeclaration:
		return d.Name
	case *OperatorDeclaration:
		return d.Spelling
	case *TypeDeclaration:
		return d.Name
	case *EnumTypeDeclaration:
		return d.Name
	case *EnumLiteral:
		return d.Name
	case *UnaryOperatorDeclaration:
		return d.Spelling
	case *BinaryOperatorDeclaration:
		return d.Spelling
	case *PackageDeclaration:
		return d.Name
	case *ConstFormalParameter:
		return d.Name
	case *VarFormalParameter:
		return d.Name
	case *ProcFormalParameter:
		return d.Name
	case *FuncFormalParameter:
		return d.Name
	case *ValResFormalParameter:
		return d.Name
	case *ResFormalParameter:
		return d.Name
	case *FieldTypeDenoter:
		return d.Name
	}
	return ""
}
