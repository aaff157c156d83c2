package wire

import (
	"fmt"

	"github.com/chazu/tamc/ast"
	"github.com/fxamacker/cbor/v2"
)

// TreeVersion is the tree document format read and written by this package.
const TreeVersion = 1

// Reference kinds for the standard environment. A std node names a
// standard declaration, a stdtype node a primitive type denoter.
const (
	KindStd     = "std"
	KindStdType = "stdtype"
)

// Document is an annotated tree flattened into a node table. References
// between nodes are 1-based indices into Nodes; 0 means absent.
type Document struct {
	Version int    `cbor:"1,keyasint"`
	Root    int    `cbor:"2,keyasint"`
	Nodes   []Node `cbor:"3,keyasint"`
}

// Node is one tree node. Kind is the name of the ast node type, or one of
// the standard reference kinds. Which fields are meaningful depends on Kind.
type Node struct {
	Kind    string `cbor:"1,keyasint"`
	Text    string `cbor:"2,keyasint,omitempty"` // name, spelling or string literal
	Package string `cbor:"3,keyasint,omitempty"`
	Value   int    `cbor:"4,keyasint,omitempty"` // literal, length or case label
	Kids    []int  `cbor:"5,keyasint,omitempty"`
	Decl    int    `cbor:"6,keyasint,omitempty"`
	Type    int    `cbor:"7,keyasint,omitempty"`
	Line    int    `cbor:"8,keyasint,omitempty"`
	Col     int    `cbor:"9,keyasint,omitempty"`
}

// Tree is a decoded document. Its identified nodes, standard environment
// included, all come from Builder.
type Tree struct {
	Builder *ast.Builder
	Env     *ast.StdEnvironment
	Program *ast.Program
}

// MarshalTree flattens p into a document and serializes it to CBOR bytes.
// Nodes owned by env are written as standard references.
func MarshalTree(env *ast.StdEnvironment, p *ast.Program) ([]byte, error) {
	doc, err := Flatten(env, p)
	if err != nil {
		return nil, err
	}
	return cborEncMode.Marshal(doc)
}

// UnmarshalTree deserializes and decodes a tree document.
func UnmarshalTree(data []byte) (*Tree, error) {
	var doc Document
	if err := cbor.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("wire: unmarshal tree: %w", err)
	}
	return Decode(&doc)
}

// ---------------------------------------------------------------------------
// Decoding
// ---------------------------------------------------------------------------

// constructors allocate an empty node for each kind.
var constructors = map[string]func() any{
	"Program": func() any { return &ast.Program{} },

	"AssignCommand":     func() any { return &ast.AssignCommand{} },
	"CallCommand":       func() any { return &ast.CallCommand{} },
	"EmptyCommand":      func() any { return &ast.EmptyCommand{} },
	"IfCommand":         func() any { return &ast.IfCommand{} },
	"CaseCommand":       func() any { return &ast.CaseCommand{} },
	"CaseArm":           func() any { return &ast.CaseArm{} },
	"ForCommand":        func() any { return &ast.ForCommand{} },
	"LetCommand":        func() any { return &ast.LetCommand{} },
	"SequentialCommand": func() any { return &ast.SequentialCommand{} },
	"WhileCommand":      func() any { return &ast.WhileCommand{} },
	"RepeatCommand":     func() any { return &ast.RepeatCommand{} },

	"ArrayExpression":       func() any { return &ast.ArrayExpression{} },
	"BinaryExpression":      func() any { return &ast.BinaryExpression{} },
	"CallExpression":        func() any { return &ast.CallExpression{} },
	"CharacterExpression":   func() any { return &ast.CharacterExpression{} },
	"EmptyExpression":       func() any { return &ast.EmptyExpression{} },
	"FixedStringExpression": func() any { return &ast.FixedStringExpression{} },
	"IfExpression":          func() any { return &ast.IfExpression{} },
	"IntegerExpression":     func() any { return &ast.IntegerExpression{} },
	"LetExpression":         func() any { return &ast.LetExpression{} },
	"NilExpression":         func() any { return &ast.NilExpression{} },
	"RecordExpression":      func() any { return &ast.RecordExpression{} },
	"FieldInit":             func() any { return &ast.FieldInit{} },
	"UnaryExpression":       func() any { return &ast.UnaryExpression{} },
	"VnameExpression":       func() any { return &ast.VnameExpression{} },

	"SimpleVname":    func() any { return &ast.SimpleVname{} },
	"DotVname":       func() any { return &ast.DotVname{} },
	"SubscriptVname": func() any { return &ast.SubscriptVname{} },
	"Identifier":     func() any { return &ast.Identifier{} },
	"Operator":       func() any { return &ast.Operator{} },

	"ConstActualParameter":  func() any { return &ast.ConstActualParameter{} },
	"VarActualParameter":    func() any { return &ast.VarActualParameter{} },
	"ProcActualParameter":   func() any { return &ast.ProcActualParameter{} },
	"FuncActualParameter":   func() any { return &ast.FuncActualParameter{} },
	"ValResActualParameter": func() any { return &ast.ValResActualParameter{} },
	"ResActualParameter":    func() any { return &ast.ResActualParameter{} },

	"ConstDeclaration":          func() any { return &ast.ConstDeclaration{} },
	"VarDeclaration":            func() any { return &ast.VarDeclaration{} },
	"VarInitialization":         func() any { return &ast.VarInitialization{} },
	"ProcDeclaration":           func() any { return &ast.ProcDeclaration{} },
	"FuncDeclaration":           func() any { return &ast.FuncDeclaration{} },
	"OperatorDeclaration":       func() any { return &ast.OperatorDeclaration{} },
	"TypeDeclaration":           func() any { return &ast.TypeDeclaration{} },
	"EnumTypeDeclaration":       func() any { return &ast.EnumTypeDeclaration{} },
	"EnumLiteral":               func() any { return &ast.EnumLiteral{} },
	"UnaryOperatorDeclaration":  func() any { return &ast.UnaryOperatorDeclaration{} },
	"BinaryOperatorDeclaration": func() any { return &ast.BinaryOperatorDeclaration{} },
	"SequentialDeclaration":     func() any { return &ast.SequentialDeclaration{} },
	"PackageDeclaration":        func() any { return &ast.PackageDeclaration{} },

	"ConstFormalParameter":  func() any { return &ast.ConstFormalParameter{} },
	"VarFormalParameter":    func() any { return &ast.VarFormalParameter{} },
	"ProcFormalParameter":   func() any { return &ast.ProcFormalParameter{} },
	"FuncFormalParameter":   func() any { return &ast.FuncFormalParameter{} },
	"ValResFormalParameter": func() any { return &ast.ValResFormalParameter{} },
	"ResFormalParameter":    func() any { return &ast.ResFormalParameter{} },

	"AnyTypeDenoter":         func() any { return &ast.AnyTypeDenoter{} },
	"ErrorTypeDenoter":       func() any { return &ast.ErrorTypeDenoter{} },
	"BoolTypeDenoter":        func() any { return &ast.BoolTypeDenoter{} },
	"CharTypeDenoter":        func() any { return &ast.CharTypeDenoter{} },
	"IntTypeDenoter":         func() any { return &ast.IntTypeDenoter{} },
	"NilTypeDenoter":         func() any { return &ast.NilTypeDenoter{} },
	"SimpleTypeDenoter":      func() any { return &ast.SimpleTypeDenoter{} },
	"ArrayTypeDenoter":       func() any { return &ast.ArrayTypeDenoter{} },
	"FixedStringTypeDenoter": func() any { return &ast.FixedStringTypeDenoter{} },
	"RecordTypeDenoter":      func() any { return &ast.RecordTypeDenoter{} },
	"FieldTypeDenoter":       func() any { return &ast.FieldTypeDenoter{} },
	"EnumTypeDenoter":        func() any { return &ast.EnumTypeDenoter{} },
}

type decoder struct {
	doc  *Document
	env  *ast.StdEnvironment
	objs []any
	cur  int // 1-based index of the node being filled
	err  error
}

// Decode rebuilds the tree described by doc. Every node is allocated
// before any is filled in, so references may form cycles.
func Decode(doc *Document) (*Tree, error) {
	if doc.Version != TreeVersion {
		return nil, fmt.Errorf("wire: unsupported tree version %d", doc.Version)
	}
	b := ast.NewBuilder()
	d := &decoder{doc: doc, env: ast.NewStdEnvironment(b), objs: make([]any, len(doc.Nodes))}

	for i := range doc.Nodes {
		d.cur = i + 1
		obj, err := d.allocate(b, &doc.Nodes[i])
		if err != nil {
			return nil, fmt.Errorf("wire: node %d: %w", i+1, err)
		}
		d.objs[i] = obj
	}
	for i := range doc.Nodes {
		d.cur = i + 1
		d.fill(d.objs[i], &doc.Nodes[i])
		if d.err != nil {
			return nil, d.err
		}
	}

	d.cur = 0
	prog := need[*ast.Program](d, doc.Root, "root")
	if d.err != nil {
		return nil, d.err
	}
	log().Debugf("decoded %d nodes, %d identified", len(doc.Nodes), b.Count())
	return &Tree{Builder: b, Env: d.env, Program: prog}, nil
}

func (d *decoder) allocate(b *ast.Builder, w *Node) (any, error) {
	switch w.Kind {
	case KindStd:
		if decl := d.env.Decl(w.Text); decl != nil {
			return decl, nil
		}
		return nil, fmt.Errorf("unknown standard declaration %q", w.Text)
	case KindStdType:
		if t := d.env.TypeNamed(w.Text); t != nil {
			return t, nil
		}
		return nil, fmt.Errorf("unknown standard type %q", w.Text)
	}
	mk, ok := constructors[w.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown node kind %q", w.Kind)
	}
	obj := mk()
	if n, ok := obj.(ast.Identified); ok {
		ast.New(b, n)
	}
	return obj, nil
}

func (d *decoder) failf(format string, args ...any) {
	if d.err != nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if d.cur == 0 {
		d.err = fmt.Errorf("wire: %s", msg)
		return
	}
	d.err = fmt.Errorf("wire: node %d: %s", d.cur, msg)
}

// opt resolves ref as a T, allowing 0.
func opt[T any](d *decoder, ref int, what string) T {
	var zero T
	if ref == 0 {
		return zero
	}
	if ref < 0 || ref > len(d.objs) {
		d.failf("%s reference %d out of range", what, ref)
		return zero
	}
	v, ok := d.objs[ref-1].(T)
	if !ok {
		d.failf("%s reference %d is a %s", what, ref, d.doc.Nodes[ref-1].Kind)
		return zero
	}
	return v
}

// need resolves ref as a T and fails on 0.
func need[T any](d *decoder, ref int, what string) T {
	if ref == 0 {
		d.failf("missing %s", what)
		var zero T
		return zero
	}
	return opt[T](d, ref, what)
}

func list[T any](d *decoder, refs []int, what string) []T {
	if len(refs) == 0 {
		return nil
	}
	out := make([]T, len(refs))
	for i, r := range refs {
		out[i] = need[T](d, r, what)
	}
	return out
}

func kid(w *Node, i int) int {
	if i < len(w.Kids) {
		return w.Kids[i]
	}
	return 0
}

func rest(w *Node, i int) []int {
	if i < len(w.Kids) {
		return w.Kids[i:]
	}
	return nil
}

func (d *decoder) fill(obj any, w *Node) {
	if w.Kind == KindStd || w.Kind == KindStdType {
		return
	}
	at := ast.Position{Line: w.Line, Column: w.Col}

	switch n := obj.(type) {
	case *ast.Program:
		n.At = at
		n.Body = need[ast.Command](d, kid(w, 0), "body")

	// Commands
	case *ast.AssignCommand:
		n.At = at
		n.V = need[ast.Vname](d, kid(w, 0), "target")
		n.E = need[ast.Expression](d, kid(w, 1), "expression")
	case *ast.CallCommand:
		n.At = at
		n.Callee = need[*ast.Identifier](d, kid(w, 0), "callee")
		n.Args = list[ast.ActualParameter](d, rest(w, 1), "argument")
	case *ast.EmptyCommand:
		n.At = at
	case *ast.IfCommand:
		n.At = at
		n.Cond = need[ast.Expression](d, kid(w, 0), "condition")
		n.Then = need[ast.Command](d, kid(w, 1), "then branch")
		n.Else = need[ast.Command](d, kid(w, 2), "else branch")
	case *ast.CaseCommand:
		n.At = at
		n.Selector = need[ast.Expression](d, kid(w, 0), "selector")
		n.Else = opt[ast.Command](d, kid(w, 1), "else branch")
		n.Arms = list[*ast.CaseArm](d, rest(w, 2), "case arm")
	case *ast.CaseArm:
		n.At = at
		n.Label = w.Value
		n.Body = need[ast.Command](d, kid(w, 0), "body")
	case *ast.ForCommand:
		n.At = at
		n.Var = need[*ast.ConstDeclaration](d, kid(w, 0), "control variable")
		n.To = need[ast.Expression](d, kid(w, 1), "upper bound")
		n.Body = need[ast.Command](d, kid(w, 2), "body")
	case *ast.LetCommand:
		n.At = at
		n.Decl = need[ast.Declaration](d, kid(w, 0), "declaration")
		n.Body = need[ast.Command](d, kid(w, 1), "body")
	case *ast.SequentialCommand:
		n.At = at
		n.Commands = list[ast.Command](d, w.Kids, "command")
	case *ast.WhileCommand:
		n.At = at
		n.Cond = need[ast.Expression](d, kid(w, 0), "condition")
		n.Body = need[ast.Command](d, kid(w, 1), "body")
	case *ast.RepeatCommand:
		n.At = at
		n.Body = need[ast.Command](d, kid(w, 0), "body")
		n.Cond = need[ast.Expression](d, kid(w, 1), "condition")

	// Expressions
	case *ast.ArrayExpression:
		n.At, n.T = at, d.typ(w)
		n.Elements = list[ast.Expression](d, w.Kids, "element")
	case *ast.BinaryExpression:
		n.At, n.T = at, d.typ(w)
		n.Left = need[ast.Expression](d, kid(w, 0), "left operand")
		n.Op = need[*ast.Operator](d, kid(w, 1), "operator")
		n.Right = need[ast.Expression](d, kid(w, 2), "right operand")
	case *ast.CallExpression:
		n.At, n.T = at, d.typ(w)
		n.Callee = need[*ast.Identifier](d, kid(w, 0), "callee")
		n.Args = list[ast.ActualParameter](d, rest(w, 1), "argument")
	case *ast.CharacterExpression:
		n.At, n.T = at, d.typ(w)
		n.Value = rune(w.Value)
	case *ast.EmptyExpression:
		n.At, n.T = at, d.typ(w)
	case *ast.FixedStringExpression:
		n.At, n.T = at, d.typ(w)
		n.Value = w.Text
	case *ast.IfExpression:
		n.At, n.T = at, d.typ(w)
		n.Cond = need[ast.Expression](d, kid(w, 0), "condition")
		n.Then = need[ast.Expression](d, kid(w, 1), "then branch")
		n.Else = need[ast.Expression](d, kid(w, 2), "else branch")
	case *ast.IntegerExpression:
		n.At, n.T = at, d.typ(w)
		n.Value = w.Value
	case *ast.LetExpression:
		n.At, n.T = at, d.typ(w)
		n.Decl = need[ast.Declaration](d, kid(w, 0), "declaration")
		n.Body = need[ast.Expression](d, kid(w, 1), "body")
	case *ast.NilExpression:
		n.At, n.T = at, d.typ(w)
	case *ast.RecordExpression:
		n.At, n.T = at, d.typ(w)
		n.Fields = list[*ast.FieldInit](d, w.Kids, "field")
	case *ast.FieldInit:
		n.Name = w.Text
		n.Value = need[ast.Expression](d, kid(w, 0), "field value")
	case *ast.UnaryExpression:
		n.At, n.T = at, d.typ(w)
		n.Op = need[*ast.Operator](d, kid(w, 0), "operator")
		n.Operand = need[ast.Expression](d, kid(w, 1), "operand")
	case *ast.VnameExpression:
		n.At, n.T = at, d.typ(w)
		n.V = need[ast.Vname](d, kid(w, 0), "name")

	// Names
	case *ast.SimpleVname:
		n.At, n.T = at, d.typ(w)
		n.Name = need[*ast.Identifier](d, kid(w, 0), "identifier")
	case *ast.DotVname:
		n.At, n.T = at, d.typ(w)
		n.Base = need[ast.Vname](d, kid(w, 0), "record")
		n.Field = need[*ast.Identifier](d, kid(w, 1), "field")
	case *ast.SubscriptVname:
		n.At, n.T = at, d.typ(w)
		n.Base = need[ast.Vname](d, kid(w, 0), "array")
		n.Index = need[ast.Expression](d, kid(w, 1), "index")
	case *ast.Identifier:
		n.At, n.Spelling, n.Package = at, w.Text, w.Package
		n.Decl = need[ast.Declaration](d, w.Decl, "declaration of "+w.Text)
	case *ast.Operator:
		n.At, n.Spelling = at, w.Text
		n.Decl = need[ast.Declaration](d, w.Decl, "declaration of "+w.Text)

	// Actual parameters
	case *ast.ConstActualParameter:
		n.At = at
		n.E = need[ast.Expression](d, kid(w, 0), "expression")
	case *ast.VarActualParameter:
		n.At = at
		n.V = need[ast.Vname](d, kid(w, 0), "variable")
	case *ast.ProcActualParameter:
		n.At = at
		n.Callee = need[*ast.Identifier](d, kid(w, 0), "procedure")
	case *ast.FuncActualParameter:
		n.At = at
		n.Callee = need[*ast.Identifier](d, kid(w, 0), "function")
	case *ast.ValResActualParameter:
		n.At = at
		n.V = need[ast.Vname](d, kid(w, 0), "variable")
	case *ast.ResActualParameter:
		n.At = at
		n.V = need[ast.Vname](d, kid(w, 0), "variable")

	// Declarations
	case *ast.ConstDeclaration:
		n.At, n.Name = at, w.Text
		n.E = need[ast.Expression](d, kid(w, 0), "value")
	case *ast.VarDeclaration:
		n.At, n.Name, n.T = at, w.Text, d.typ(w)
	case *ast.VarInitialization:
		n.At, n.Name, n.T = at, w.Text, d.typ(w)
		n.E = need[ast.Expression](d, kid(w, 0), "initial value")
	case *ast.ProcDeclaration:
		n.At, n.Name = at, w.Text
		n.Body = need[ast.Command](d, kid(w, 0), "body")
		n.Formals = list[ast.FormalParameter](d, rest(w, 1), "formal parameter")
	case *ast.FuncDeclaration:
		n.At, n.Name, n.Result = at, w.Text, d.typ(w)
		n.Body = need[ast.Expression](d, kid(w, 0), "body")
		n.Formals = list[ast.FormalParameter](d, rest(w, 1), "formal parameter")
	case *ast.OperatorDeclaration:
		n.At, n.Spelling, n.Result = at, w.Text, d.typ(w)
		n.Body = need[ast.Expression](d, kid(w, 0), "body")
		n.Formals = list[ast.FormalParameter](d, rest(w, 1), "formal parameter")
	case *ast.TypeDeclaration:
		n.At, n.Name, n.T = at, w.Text, d.typ(w)
	case *ast.EnumTypeDeclaration:
		n.At, n.Name = at, w.Text
		n.T = need[*ast.EnumTypeDenoter](d, w.Type, "enumeration type")
	case *ast.EnumLiteral:
		n.At, n.Name, n.Value = at, w.Text, w.Value
	case *ast.UnaryOperatorDeclaration:
		n.At, n.Spelling, n.Result = at, w.Text, d.typ(w)
		n.Arg = need[ast.TypeDenoter](d, kid(w, 0), "argument type")
	case *ast.BinaryOperatorDeclaration:
		n.At, n.Spelling, n.Result = at, w.Text, d.typ(w)
		n.Arg1 = need[ast.TypeDenoter](d, kid(w, 0), "argument type")
		n.Arg2 = need[ast.TypeDenoter](d, kid(w, 1), "argument type")
	case *ast.SequentialDeclaration:
		n.At = at
		n.Decls = list[ast.Declaration](d, w.Kids, "declaration")
	case *ast.PackageDeclaration:
		n.At, n.Name = at, w.Text
		n.Private = need[ast.Declaration](d, kid(w, 0), "private part")
		n.Public = need[ast.Declaration](d, kid(w, 1), "public part")

	// Formal parameters
	case *ast.ConstFormalParameter:
		n.At, n.Name, n.T = at, w.Text, d.typ(w)
	case *ast.VarFormalParameter:
		n.At, n.Name, n.T = at, w.Text, d.typ(w)
	case *ast.ProcFormalParameter:
		n.At, n.Name = at, w.Text
		n.Formals = list[ast.FormalParameter](d, w.Kids, "formal parameter")
	case *ast.FuncFormalParameter:
		n.At, n.Name, n.Result = at, w.Text, d.typ(w)
		n.Formals = list[ast.FormalParameter](d, w.Kids, "formal parameter")
	case *ast.ValResFormalParameter:
		n.At, n.Name, n.T = at, w.Text, d.typ(w)
	case *ast.ResFormalParameter:
		n.At, n.Name, n.T = at, w.Text, d.typ(w)

	// Type denoters
	case *ast.AnyTypeDenoter:
		n.At = at
	case *ast.ErrorTypeDenoter:
		n.At = at
	case *ast.BoolTypeDenoter:
		n.At = at
	case *ast.CharTypeDenoter:
		n.At = at
	case *ast.IntTypeDenoter:
		n.At = at
	case *ast.NilTypeDenoter:
		n.At = at
	case *ast.SimpleTypeDenoter:
		n.At, n.Name = at, w.Text
	case *ast.ArrayTypeDenoter:
		n.At, n.Length, n.Elem = at, w.Value, d.typ(w)
	case *ast.FixedStringTypeDenoter:
		n.At, n.Length = at, w.Value
	case *ast.RecordTypeDenoter:
		n.At = at
		n.Fields = list[*ast.FieldTypeDenoter](d, w.Kids, "field")
	case *ast.FieldTypeDenoter:
		n.At, n.Name, n.T = at, w.Text, d.typ(w)
	case *ast.EnumTypeDenoter:
		n.At = at
		n.Literals = list[*ast.EnumLiteral](d, w.Kids, "literal")

	default:
		panic(fmt.Sprintf("wire: no decoder for %T", obj))
	}
}

func (d *decoder) typ(w *Node) ast.TypeDenoter {
	return opt[ast.TypeDenoter](d, w.Type, "type")
}

// ---------------------------------------------------------------------------
// Encoding
// ---------------------------------------------------------------------------

type flattener struct {
	env   *ast.StdEnvironment
	index map[any]int
	nodes []Node
}

// Flatten turns the tree rooted at p into a document. Shared and cyclic
// references are preserved: each node is written once.
func Flatten(env *ast.StdEnvironment, p *ast.Program) (*Document, error) {
	f := &flattener{env: env, index: make(map[any]int)}
	root, err := f.ref(p)
	if err != nil {
		return nil, err
	}
	return &Document{Version: TreeVersion, Root: root, Nodes: f.nodes}, nil
}

func (f *flattener) ref(obj any) (int, error) {
	if isNil(obj) {
		return 0, nil
	}
	if i, ok := f.index[obj]; ok {
		return i, nil
	}
	f.nodes = append(f.nodes, Node{})
	i := len(f.nodes)
	f.index[obj] = i

	var w Node
	var err error
	if n, ok := obj.(ast.Node); ok {
		if name, isType, std := f.env.NameOf(n); std {
			w = Node{Kind: KindStd, Text: name}
			if isType {
				w.Kind = KindStdType
			}
			f.nodes[i-1] = w
			return i, nil
		}
	}
	if w, err = f.describe(obj); err != nil {
		return 0, err
	}
	f.nodes[i-1] = w
	return i, nil
}

// isNil reports whether obj is nil or a typed nil pointer to a node.
func isNil(obj any) bool {
	switch n := obj.(type) {
	case nil:
		return true
	case *ast.Identifier:
		return n == nil
	case *ast.Operator:
		return n == nil
	case *ast.ConstDeclaration:
		return n == nil
	case *ast.EnumTypeDenoter:
		return n == nil
	}
	return false
}

// refs flattens each element of a slice.
func refs[T any](f *flattener, xs []T) ([]int, error) {
	out := make([]int, 0, len(xs))
	for _, x := range xs {
		r, err := f.ref(x)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// kids flattens a fixed list of children followed by a slice of refs.
func (f *flattener) kids(fixed []any, more []int) ([]int, error) {
	out := make([]int, 0, len(fixed)+len(more))
	for _, x := range fixed {
		r, err := f.ref(x)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return append(out, more...), nil
}

func kindOf(obj any) string {
	s := fmt.Sprintf("%T", obj)
	const prefix = "*ast."
	if len(s) > len(prefix) && s[:len(prefix)] == prefix {
		return s[len(prefix):]
	}
	return s
}

func lineCol(p ast.Position) (int, int) { return p.Line, p.Column }

func (f *flattener) describe(obj any) (Node, error) {
	w := Node{Kind: kindOf(obj)}
	if _, ok := constructors[w.Kind]; !ok {
		return w, fmt.Errorf("wire: cannot encode %T", obj)
	}
	if n, ok := obj.(ast.Node); ok {
		w.Line, w.Col = lineCol(n.Pos())
	}
	if e, ok := obj.(interface{ Type() ast.TypeDenoter }); ok {
		t, err := f.ref(e.Type())
		if err != nil {
			return w, err
		}
		w.Type = t
	}

	var fixed []any
	var more []int
	var err error
	switch n := obj.(type) {
	case *ast.Program:
		fixed = []any{n.Body}
	case *ast.AssignCommand:
		fixed = []any{n.V, n.E}
	case *ast.CallCommand:
		fixed = []any{n.Callee}
		more, err = refs(f, n.Args)
	case *ast.EmptyCommand:
	case *ast.IfCommand:
		fixed = []any{n.Cond, n.Then, n.Else}
	case *ast.CaseCommand:
		fixed = []any{n.Selector, n.Else}
		more, err = refs(f, n.Arms)
	case *ast.CaseArm:
		w.Value = n.Label
		fixed = []any{n.Body}
	case *ast.ForCommand:
		fixed = []any{n.Var, n.To, n.Body}
	case *ast.LetCommand:
		fixed = []any{n.Decl, n.Body}
	case *ast.SequentialCommand:
		more, err = refs(f, n.Commands)
	case *ast.WhileCommand:
		fixed = []any{n.Cond, n.Body}
	case *ast.RepeatCommand:
		fixed = []any{n.Body, n.Cond}

	case *ast.ArrayExpression:
		more, err = refs(f, n.Elements)
	case *ast.BinaryExpression:
		fixed = []any{n.Left, n.Op, n.Right}
	case *ast.CallExpression:
		fixed = []any{n.Callee}
		more, err = refs(f, n.Args)
	case *ast.CharacterExpression:
		w.Value = int(n.Value)
	case *ast.EmptyExpression, *ast.NilExpression:
	case *ast.FixedStringExpression:
		w.Text = n.Value
	case *ast.IfExpression:
		fixed = []any{n.Cond, n.Then, n.Else}
	case *ast.IntegerExpression:
		w.Value = n.Value
	case *ast.LetExpression:
		fixed = []any{n.Decl, n.Body}
	case *ast.RecordExpression:
		more, err = refs(f, n.Fields)
	case *ast.FieldInit:
		w.Text = n.Name
		fixed = []any{n.Value}
	case *ast.UnaryExpression:
		fixed = []any{n.Op, n.Operand}
	case *ast.VnameExpression:
		fixed = []any{n.V}

	case *ast.SimpleVname:
		fixed = []any{n.Name}
	case *ast.DotVname:
		fixed = []any{n.Base, n.Field}
	case *ast.SubscriptVname:
		fixed = []any{n.Base, n.Index}
	case *ast.Identifier:
		w.Text, w.Package = n.Spelling, n.Package
		w.Decl, err = f.ref(n.Decl)
	case *ast.Operator:
		w.Text = n.Spelling
		w.Decl, err = f.ref(n.Decl)

	case *ast.ConstActualParameter:
		fixed = []any{n.E}
	case *ast.VarActualParameter:
		fixed = []any{n.V}
	case *ast.ProcActualParameter:
		fixed = []any{n.Callee}
	case *ast.FuncActualParameter:
		fixed = []any{n.Callee}
	case *ast.ValResActualParameter:
		fixed = []any{n.V}
	case *ast.ResActualParameter:
		fixed = []any{n.V}

	case *ast.ConstDeclaration:
		w.Text = n.Name
		fixed = []any{n.E}
	case *ast.VarDeclaration:
		w.Text = n.Name
		w.Type, err = f.ref(n.T)
	case *ast.VarInitialization:
		w.Text = n.Name
		w.Type, err = f.ref(n.T)
		fixed = []any{n.E}
	case *ast.ProcDeclaration:
		w.Text = n.Name
		fixed = []any{n.Body}
		more, err = refs(f, n.Formals)
	case *ast.FuncDeclaration:
		w.Text = n.Name
		if w.Type, err = f.ref(n.Result); err == nil {
			fixed = []any{n.Body}
			more, err = refs(f, n.Formals)
		}
	case *ast.OperatorDeclaration:
		w.Text = n.Spelling
		if w.Type, err = f.ref(n.Result); err == nil {
			fixed = []any{n.Body}
			more, err = refs(f, n.Formals)
		}
	case *ast.TypeDeclaration:
		w.Text = n.Name
		w.Type, err = f.ref(n.T)
	case *ast.EnumTypeDeclaration:
		w.Text = n.Name
		w.Type, err = f.ref(n.T)
	case *ast.EnumLiteral:
		w.Text, w.Value = n.Name, n.Value
	case *ast.UnaryOperatorDeclaration:
		w.Text = n.Spelling
		w.Type, err = f.ref(n.Result)
		fixed = []any{n.Arg}
	case *ast.BinaryOperatorDeclaration:
		w.Text = n.Spelling
		w.Type, err = f.ref(n.Result)
		fixed = []any{n.Arg1, n.Arg2}
	case *ast.SequentialDeclaration:
		more, err = refs(f, n.Decls)
	case *ast.PackageDeclaration:
		w.Text = n.Name
		fixed = []any{n.Private, n.Public}

	case *ast.ConstFormalParameter:
		w.Text = n.Name
		w.Type, err = f.ref(n.T)
	case *ast.VarFormalParameter:
		w.Text = n.Name
		w.Type, err = f.ref(n.T)
	case *ast.ProcFormalParameter:
		w.Text = n.Name
		more, err = refs(f, n.Formals)
	case *ast.FuncFormalParameter:
		w.Text = n.Name
		if w.Type, err = f.ref(n.Result); err == nil {
			more, err = refs(f, n.Formals)
		}
	case *ast.ValResFormalParameter:
		w.Text = n.Name
		w.Type, err = f.ref(n.T)
	case *ast.ResFormalParameter:
		w.Text = n.Name
		w.Type, err = f.ref(n.T)

	case *ast.AnyTypeDenoter, *ast.ErrorTypeDenoter, *ast.BoolTypeDenoter,
		*ast.CharTypeDenoter, *ast.IntTypeDenoter, *ast.NilTypeDenoter:
	case *ast.SimpleTypeDenoter:
		w.Text = n.Name
	case *ast.ArrayTypeDenoter:
		w.Value = n.Length
		w.Type, err = f.ref(n.Elem)
	case *ast.FixedStringTypeDenoter:
		w.Value = n.Length
	case *ast.RecordTypeDenoter:
		more, err = refs(f, n.Fields)
	case *ast.FieldTypeDenoter:
		w.Text = n.Name
		w.Type, err = f.ref(n.T)
	case *ast.EnumTypeDenoter:
		more, err = refs(f, n.Literals)
	}
	if err != nil {
		return w, err
	}
	if w.Kids, err = f.kids(fixed, more); err != nil {
		return w, err
	}
	if len(w.Kids) == 0 {
		w.Kids = nil
	}
	return w, nil
}
