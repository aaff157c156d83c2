package codegen

import (
	"github.com/chazu/tamc/ast"
	"github.com/chazu/tamc/tam"
)

// typeResolver computes type representations. Records are registered as in
// progress before their fields are resolved; a field that leads back to a
// record still in progress makes every record on that cycle heap-indirect.
type typeResolver struct {
	c          *Encoder
	inProgress map[ast.NodeID]int // index into path
	path       []*recordState
}

type recordState struct {
	rec  *ast.RecordTypeDenoter
	heap bool
}

func newTypeResolver(c *Encoder) *typeResolver {
	return &typeResolver{c: c, inProgress: make(map[ast.NodeID]int)}
}

// typeRep returns the representation of t, resolving and memoizing it on
// first use. A nil type has size 0.
func (c *Encoder) typeRep(t ast.TypeDenoter) TypeRepresentation {
	if t == nil {
		return TypeRepresentation{}
	}
	return c.types.resolve(t)
}

// typeSize returns the inline size of t in words.
func (c *Encoder) typeSize(t ast.TypeDenoter) int {
	return c.typeRep(t).Size
}

func (r *typeResolver) resolve(t ast.TypeDenoter) TypeRepresentation {
	if e, ok := r.c.entities.lookup(t.ID()); ok {
		if rep, ok := e.(TypeRepresentation); ok {
			return rep
		}
	}
	if i, ok := r.inProgress[t.ID()]; ok {
		for _, s := range r.path[i:] {
			s.heap = true
		}
		return TypeRepresentation{Size: tam.AddressSize, Heap: true}
	}

	var rep TypeRepresentation
	switch t := t.(type) {
	case *ast.BoolTypeDenoter:
		rep.Size = tam.BooleanSize
	case *ast.CharTypeDenoter:
		rep.Size = tam.CharacterSize
	case *ast.IntTypeDenoter, *ast.EnumTypeDenoter:
		rep.Size = tam.IntegerSize
	case *ast.NilTypeDenoter:
		rep.Size = tam.AddressSize
	case *ast.AnyTypeDenoter, *ast.ErrorTypeDenoter, *ast.SimpleTypeDenoter:
		rep.Size = 0
	case *ast.ArrayTypeDenoter:
		rep.Size = t.Length * r.resolve(t.Elem).Size
	case *ast.FixedStringTypeDenoter:
		rep.Size = t.Length * tam.CharacterSize
	case *ast.RecordTypeDenoter:
		rep = r.resolveRecord(t)
	default:
		panic("codegen: unknown type denoter " + kindName(t))
	}
	r.c.entities.bind(t, typeName(t), rep)
	return rep
}

func (r *typeResolver) resolveRecord(t *ast.RecordTypeDenoter) TypeRepresentation {
	state := &recordState{rec: t}
	r.inProgress[t.ID()] = len(r.path)
	r.path = append(r.path, state)

	type placed struct {
		f   *ast.FieldTypeDenoter
		rep Field
	}
	fields := make([]placed, 0, len(t.Fields))
	offset := 0
	for _, f := range t.Fields {
		if _, ok := f.T.(*ast.NilTypeDenoter); ok {
			state.heap = true
		}
		size := r.c.typeSize(f.T)
		fields = append(fields, placed{f: f, rep: Field{Size: size, Offset: offset}})
		offset += size
	}

	r.path = r.path[:len(r.path)-1]
	delete(r.inProgress, t.ID())

	for _, p := range fields {
		if _, ok := r.c.entities.lookup(p.f.ID()); !ok {
			r.c.entities.bind(p.f, p.f.Name, p.rep)
		}
	}
	if state.heap {
		return TypeRepresentation{Size: tam.AddressSize, Heap: true, Payload: offset}
	}
	return TypeRepresentation{Size: offset, Payload: offset}
}

func typeName(t ast.TypeDenoter) string {
	switch t := t.(type) {
	case *ast.BoolTypeDenoter:
		return "Boolean"
	case *ast.CharTypeDenoter:
		return "Char"
	case *ast.IntTypeDenoter:
		return "Integer"
	case *ast.EnumTypeDenoter:
		return "enum"
	case *ast.NilTypeDenoter:
		return "nil"
	case *ast.AnyTypeDenoter:
		return "any"
	case *ast.ErrorTypeDenoter:
		return "error"
	case *ast.SimpleTypeDenoter:
		return t.Name
	case *ast.ArrayTypeDenoter:
		return "array"
	case *ast.FixedStringTypeDenoter:
		return "string"
	case *ast.RecordTypeDenoter:
		return "record"
	}
	return ""
}

// arrayLength returns the element count of an array or fixed-string type,
// or 0 for any other type.
func arrayLength(t ast.TypeDenoter) int {
	switch t := t.(type) {
	case *ast.ArrayTypeDenoter:
		return t.Length
	case *ast.FixedStringTypeDenoter:
		return t.Length
	}
	return 0
}
