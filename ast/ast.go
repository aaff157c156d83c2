// Package ast defines the annotated syntax tree that contextual analysis
// hands to the code generator. Every expression and value-or-variable name
// carries its resolved type, every identifier and operator carries its
// declaring node, and every declaration and type denoter carries a stable
// NodeID allocated by a Builder.
package ast

import "fmt"

// Position represents a source location.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Position
	node() // marker method
}

// ---------------------------------------------------------------------------
// Programs
// ---------------------------------------------------------------------------

// Program is the root of a compilation unit.
type Program struct {
	At   Position
	Body Command
}

func (n *Program) Pos() Position { return n.At }
func (n *Program) node()         {}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

// Command is the interface for command nodes.
type Command interface {
	Node
	command() // marker method
}

// AssignCommand represents V := E.
type AssignCommand struct {
	At Position
	V  Vname
	E  Expression
}

func (n *AssignCommand) Pos() Position { return n.At }
func (n *AssignCommand) node()         {}
func (n *AssignCommand) command()      {}

// CallCommand represents a procedure call.
type CallCommand struct {
	At     Position
	Callee *Identifier
	Args   []ActualParameter
}

func (n *CallCommand) Pos() Position { return n.At }
func (n *CallCommand) node()         {}
func (n *CallCommand) command()      {}

// EmptyCommand does nothing.
type EmptyCommand struct {
	At Position
}

func (n *EmptyCommand) Pos() Position { return n.At }
func (n *EmptyCommand) node()         {}
func (n *EmptyCommand) command()      {}

// IfCommand represents if Cond then Then else Else.
type IfCommand struct {
	At   Position
	Cond Expression
	Then Command
	Else Command
}

func (n *IfCommand) Pos() Position { return n.At }
func (n *IfCommand) node()         {}
func (n *IfCommand) command()      {}

// CaseArm is one labelled branch of a case command.
type CaseArm struct {
	At    Position
	Label int
	Body  Command
}

// CaseCommand selects among integer-labelled arms. Else may be nil.
type CaseCommand struct {
	At       Position
	Selector Expression
	Arms     []*CaseArm
	Else     Command
}

func (n *CaseCommand) Pos() Position { return n.At }
func (n *CaseCommand) node()         {}
func (n *CaseCommand) command()      {}

// ForCommand represents for Var := Var.E to To do Body. The induction
// variable is declared as a constant bound to the lower bound.
type ForCommand struct {
	At   Position
	Var  *ConstDeclaration
	To   Expression
	Body Command
}

func (n *ForCommand) Pos() Position { return n.At }
func (n *ForCommand) node()         {}
func (n *ForCommand) command()      {}

// LetCommand represents let Decl in Body.
type LetCommand struct {
	At   Position
	Decl Declaration
	Body Command
}

func (n *LetCommand) Pos() Position { return n.At }
func (n *LetCommand) node()         {}
func (n *LetCommand) command()      {}

// SequentialCommand runs its commands in order.
type SequentialCommand struct {
	At       Position
	Commands []Command
}

func (n *SequentialCommand) Pos() Position { return n.At }
func (n *SequentialCommand) node()         {}
func (n *SequentialCommand) command()      {}

// WhileCommand represents while Cond do Body.
type WhileCommand struct {
	At   Position
	Cond Expression
	Body Command
}

func (n *WhileCommand) Pos() Position { return n.At }
func (n *WhileCommand) node()         {}
func (n *WhileCommand) command()      {}

// RepeatCommand represents repeat Body until Cond.
type RepeatCommand struct {
	At   Position
	Body Command
	Cond Expression
}

func (n *RepeatCommand) Pos() Position { return n.At }
func (n *RepeatCommand) node()         {}
func (n *RepeatCommand) command()      {}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// Expression is the interface for expression nodes. Type returns the type
// assigned by contextual analysis.
type Expression interface {
	Node
	Type() TypeDenoter
	expression() // marker method
}

// ArrayExpression represents an array aggregate [e1, e2, ...].
type ArrayExpression struct {
	At       Position
	T        TypeDenoter
	Elements []Expression
}

func (n *ArrayExpression) Pos() Position     { return n.At }
func (n *ArrayExpression) Type() TypeDenoter { return n.T }
func (n *ArrayExpression) node()             {}
func (n *ArrayExpression) expression()       {}

// BinaryExpression represents Left Op Right.
type BinaryExpression struct {
	At    Position
	T     TypeDenoter
	Left  Expression
	Op    *Operator
	Right Expression
}

func (n *BinaryExpression) Pos() Position     { return n.At }
func (n *BinaryExpression) Type() TypeDenoter { return n.T }
func (n *BinaryExpression) node()             {}
func (n *BinaryExpression) expression()       {}

// CallExpression represents a function call.
type CallExpression struct {
	At     Position
	T      TypeDenoter
	Callee *Identifier
	Args   []ActualParameter
}

func (n *CallExpression) Pos() Position     { return n.At }
func (n *CallExpression) Type() TypeDenoter { return n.T }
func (n *CallExpression) node()             {}
func (n *CallExpression) expression()       {}

// CharacterExpression represents a character literal.
type CharacterExpression struct {
	At    Position
	T     TypeDenoter
	Value rune
}

func (n *CharacterExpression) Pos() Position     { return n.At }
func (n *CharacterExpression) Type() TypeDenoter { return n.T }
func (n *CharacterExpression) node()             {}
func (n *CharacterExpression) expression()       {}

// EmptyExpression yields no value.
type EmptyExpression struct {
	At Position
	T  TypeDenoter
}

func (n *EmptyExpression) Pos() Position     { return n.At }
func (n *EmptyExpression) Type() TypeDenoter { return n.T }
func (n *EmptyExpression) node()             {}
func (n *EmptyExpression) expression()       {}

// FixedStringExpression represents a fixed-length string literal.
type FixedStringExpression struct {
	At    Position
	T     TypeDenoter
	Value string
}

func (n *FixedStringExpression) Pos() Position     { return n.At }
func (n *FixedStringExpression) Type() TypeDenoter { return n.T }
func (n *FixedStringExpression) node()             {}
func (n *FixedStringExpression) expression()       {}

// IfExpression represents if Cond then Then else Else.
type IfExpression struct {
	At   Position
	T    TypeDenoter
	Cond Expression
	Then Expression
	Else Expression
}

func (n *IfExpression) Pos() Position     { return n.At }
func (n *IfExpression) Type() TypeDenoter { return n.T }
func (n *IfExpression) node()             {}
func (n *IfExpression) expression()       {}

// IntegerExpression represents an integer literal.
type IntegerExpression struct {
	At    Position
	T     TypeDenoter
	Value int
}

func (n *IntegerExpression) Pos() Position     { return n.At }
func (n *IntegerExpression) Type() TypeDenoter { return n.T }
func (n *IntegerExpression) node()             {}
func (n *IntegerExpression) expression()       {}

// LetExpression represents let Decl in Body.
type LetExpression struct {
	At   Position
	T    TypeDenoter
	Decl Declaration
	Body Expression
}

func (n *LetExpression) Pos() Position     { return n.At }
func (n *LetExpression) Type() TypeDenoter { return n.T }
func (n *LetExpression) node()             {}
func (n *LetExpression) expression()       {}

// NilExpression represents the nil reference.
type NilExpression struct {
	At Position
	T  TypeDenoter
}

func (n *NilExpression) Pos() Position     { return n.At }
func (n *NilExpression) Type() TypeDenoter { return n.T }
func (n *NilExpression) node()             {}
func (n *NilExpression) expression()       {}

// FieldInit is one field of a record aggregate.
type FieldInit struct {
	Name  string
	Value Expression
}

// RecordExpression represents a record aggregate {f1 ~ e1, f2 ~ e2}.
type RecordExpression struct {
	At     Position
	T      TypeDenoter
	Fields []*FieldInit
}

func (n *RecordExpression) Pos() Position     { return n.At }
func (n *RecordExpression) Type() TypeDenoter { return n.T }
func (n *RecordExpression) node()             {}
func (n *RecordExpression) expression()       {}

// UnaryExpression represents Op Operand.
type UnaryExpression struct {
	At      Position
	T       TypeDenoter
	Op      *Operator
	Operand Expression
}

func (n *UnaryExpression) Pos() Position     { return n.At }
func (n *UnaryExpression) Type() TypeDenoter { return n.T }
func (n *UnaryExpression) node()             {}
func (n *UnaryExpression) expression()       {}

// VnameExpression reads the value named by V.
type VnameExpression struct {
	At Position
	T  TypeDenoter
	V  Vname
}

func (n *VnameExpression) Pos() Position     { return n.At }
func (n *VnameExpression) Type() TypeDenoter { return n.T }
func (n *VnameExpression) node()             {}
func (n *VnameExpression) expression()       {}

// ---------------------------------------------------------------------------
// Value-or-variable names
// ---------------------------------------------------------------------------

// Vname is the interface for value-or-variable names.
type Vname interface {
	Node
	Type() TypeDenoter
	vname() // marker method
}

// SimpleVname names a declared constant, variable or parameter.
type SimpleVname struct {
	At   Position
	T    TypeDenoter
	Name *Identifier
}

func (n *SimpleVname) Pos() Position     { return n.At }
func (n *SimpleVname) Type() TypeDenoter { return n.T }
func (n *SimpleVname) node()             {}
func (n *SimpleVname) vname()            {}

// DotVname selects Field from the record named by Base.
type DotVname struct {
	At    Position
	T     TypeDenoter
	Base  Vname
	Field *Identifier
}

func (n *DotVname) Pos() Position     { return n.At }
func (n *DotVname) Type() TypeDenoter { return n.T }
func (n *DotVname) node()             {}
func (n *DotVname) vname()            {}

// SubscriptVname selects element Index from the array named by Base.
type SubscriptVname struct {
	At    Position
	T     TypeDenoter
	Base  Vname
	Index Expression
}

func (n *SubscriptVname) Pos() Position     { return n.At }
func (n *SubscriptVname) Type() TypeDenoter { return n.T }
func (n *SubscriptVname) node()             {}
func (n *SubscriptVname) vname()            {}

// ---------------------------------------------------------------------------
// Identifiers and operators
// ---------------------------------------------------------------------------

// Identifier is an applied occurrence of a name, linked to its declaration.
// Package holds the qualifier of a packaged identifier, if any.
type Identifier struct {
	At       Position
	Spelling string
	Package  string
	Decl     Declaration
}

func (n *Identifier) Pos() Position { return n.At }
func (n *Identifier) node()         {}

// Operator is an applied occurrence of an operator, linked to its declaration.
type Operator struct {
	At       Position
	Spelling string
	Decl     Declaration
}

func (n *Operator) Pos() Position { return n.At }
func (n *Operator) node()         {}

// ---------------------------------------------------------------------------
// Actual parameters
// ---------------------------------------------------------------------------

// ActualParameter is the interface for actual parameter nodes.
type ActualParameter interface {
	Node
	actual() // marker method
}

// ConstActualParameter passes the value of E.
type ConstActualParameter struct {
	At Position
	E  Expression
}

func (n *ConstActualParameter) Pos() Position { return n.At }
func (n *ConstActualParameter) node()         {}
func (n *ConstActualParameter) actual()       {}

// VarActualParameter passes the address of V.
type VarActualParameter struct {
	At Position
	V  Vname
}

func (n *VarActualParameter) Pos() Position { return n.At }
func (n *VarActualParameter) node()         {}
func (n *VarActualParameter) actual()       {}

// ProcActualParameter passes a procedure as a closure.
type ProcActualParameter struct {
	At     Position
	Callee *Identifier
}

func (n *ProcActualParameter) Pos() Position { return n.At }
func (n *ProcActualParameter) node()         {}
func (n *ProcActualParameter) actual()       {}

// FuncActualParameter passes a function as a closure.
type FuncActualParameter struct {
	At     Position
	Callee *Identifier
}

func (n *FuncActualParameter) Pos() Position { return n.At }
func (n *FuncActualParameter) node()         {}
func (n *FuncActualParameter) actual()       {}

// ValResActualParameter passes the current value of V and its address.
type ValResActualParameter struct {
	At Position
	V  Vname
}

func (n *ValResActualParameter) Pos() Position { return n.At }
func (n *ValResActualParameter) node()         {}
func (n *ValResActualParameter) actual()       {}

// ResActualParameter passes space for a result and the address of V.
type ResActualParameter struct {
	At Position
	V  Vname
}

func (n *ResActualParameter) Pos() Position { return n.At }
func (n *ResActualParameter) node()         {}
func (n *ResActualParameter) actual()       {}
