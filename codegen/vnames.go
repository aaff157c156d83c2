package codegen

import (
	"github.com/chazu/tamc/ast"
	"github.com/chazu/tamc/tam"
)

// ---------------------------------------------------------------------------
// Value-or-variable names
// ---------------------------------------------------------------------------

// vnameAddress is the addressing left on a vname once it is resolved: a
// static offset from its entity, and whether a dynamic offset was added.
type vnameAddress struct {
	offset  int
	indexed bool
}

// access describes how to reach the datum named by a vname after the code
// emitted by resolveVname has run. When indexed is set a dynamic offset
// word is on the stack; when heap is set an absolute address word is on
// the stack and offset is relative to it.
type access struct {
	decl    ast.Declaration
	entity  Entity
	offset  int
	indexed bool
	heap    bool
}

// pushed returns the number of words the resolving code left on the stack.
func (a access) pushed() int {
	if a.indexed || a.heap {
		return 1
	}
	return 0
}

// resolveVname emits the dynamic part of the address of v and returns the
// rest as an access.
func (c *Encoder) resolveVname(v ast.Vname, f Frame) access {
	c.at(v)
	var a access
	switch v := v.(type) {
	case *ast.SimpleVname:
		a = access{decl: v.Name.Decl, entity: c.entityOf(v.Name.Decl)}

	case *ast.DotVname:
		a = c.resolveVname(v.Base, f)
		baseRep := c.typeRep(v.Base.Type())
		field, ok := c.entityOf(v.Field.Decl).(Field)
		if !ok {
			panic("codegen: " + v.Field.Spelling + " is not a record field")
		}
		if baseRep.Heap {
			c.fetchAccess(a, f, tam.AddressSize)
			a = access{decl: a.decl, entity: a.entity, offset: field.Offset, heap: true}
		} else {
			a.offset += field.Offset
		}

	case *ast.SubscriptVname:
		a = c.resolveVname(v.Base, f)
		length := arrayLength(v.Base.Type())
		elemSize := c.typeSize(v.Type())
		if lit, ok := v.Index.(*ast.IntegerExpression); ok {
			c.typeRep(lit.Type())
			a.offset += lit.Value * elemSize
			c.emit(tam.LOADL, 0, 0, lit.Value)
			c.rangeCheck(length)
			c.emit(tam.POP, 0, 0, tam.IntegerSize)
			break
		}
		c.encodeExpression(v.Index, f.Extend(a.pushed()))
		c.rangeCheck(length)
		if elemSize != 1 {
			c.emit(tam.LOADL, 0, 0, elemSize)
			c.callPrimitive(tam.MultDisplacement)
		}
		if a.pushed() > 0 {
			c.callPrimitive(tam.AddDisplacement)
		} else {
			a.indexed = true
		}

	default:
		panic("codegen: unknown vname " + kindName(v))
	}
	c.vnames[v] = vnameAddress{offset: a.offset, indexed: a.indexed || a.heap}
	return a
}

// rangeCheck checks the index on top of the stack against [0, length).
func (c *Encoder) rangeCheck(length int) {
	c.emit(tam.LOADL, 0, 0, 0)
	c.emit(tam.LOADL, 0, 0, length)
	c.callPrimitive(tam.RangeCheckDisplacement)
}

// addOffset adds a static offset to the address on top of the stack.
func (c *Encoder) addOffset(offset int) {
	if offset != 0 {
		c.emit(tam.LOADL, 0, 0, offset)
		c.callPrimitive(tam.AddDisplacement)
	}
}

// slot returns the frame address of a slot-held entity.
func slot(e Entity) (ObjectAddress, bool) {
	switch e := e.(type) {
	case KnownAddress:
		return e.Address, true
	case UnknownValue:
		return e.Address, true
	}
	return ObjectAddress{}, false
}

// encodeFetch pushes the value of v, size words.
func (c *Encoder) encodeFetch(v ast.Vname, f Frame, size int) {
	c.fetchAccess(c.resolveVname(v, f), f, size)
}

// encodeStore pops size words into v. f is the frame with the value
// already pushed.
func (c *Encoder) encodeStore(v ast.Vname, f Frame, size int) {
	c.storeAccess(c.resolveVname(v, f), f, size)
}

// encodeFetchAddress pushes the address of v.
func (c *Encoder) encodeFetchAddress(v ast.Vname, f Frame) {
	c.fetchAddressAccess(c.resolveVname(v, f), f)
}

func (c *Encoder) fetchAccess(a access, f Frame, size int) {
	if size > tam.MaxOperand {
		c.restrict("can't load values larger than 255 words")
		size = tam.MaxOperand
	}
	if kv, ok := a.entity.(KnownValue); ok {
		c.emit(tam.LOADL, 0, 0, kv.Value)
		return
	}
	if !a.heap {
		if addr, ok := slot(a.entity); ok {
			r := c.displayRegister(f.Level, addr.Level)
			if !a.indexed {
				c.emit(tam.LOAD, size, r, addr.Displacement+a.offset)
				return
			}
			c.emit(tam.LOADA, 0, r, addr.Displacement+a.offset)
			c.callPrimitive(tam.AddDisplacement)
			c.emit(tam.LOADI, size, 0, 0)
			return
		}
	}
	c.indirectAddress(a, f)
	c.emit(tam.LOADI, size, 0, 0)
}

func (c *Encoder) storeAccess(a access, f Frame, size int) {
	if size > tam.MaxOperand {
		c.restrict("can't store values larger than 255 words")
		size = tam.MaxOperand
	}
	if _, ok := a.entity.(UnknownValue); ok && !a.heap && !isResultFormal(a.decl) {
		panic("codegen: store to constant " + ast.DeclName(a.decl))
	}
	if !a.heap {
		if addr, ok := slot(a.entity); ok {
			r := c.displayRegister(f.Level, addr.Level)
			if !a.indexed {
				c.emit(tam.STORE, size, r, addr.Displacement+a.offset)
				return
			}
			c.emit(tam.LOADA, 0, r, addr.Displacement+a.offset)
			c.callPrimitive(tam.AddDisplacement)
			c.emit(tam.STOREI, size, 0, 0)
			return
		}
	}
	c.indirectAddress(a, f)
	c.emit(tam.STOREI, size, 0, 0)
}

func (c *Encoder) fetchAddressAccess(a access, f Frame) {
	if !a.heap {
		if addr, ok := slot(a.entity); ok {
			c.emit(tam.LOADA, 0, c.displayRegister(f.Level, addr.Level), addr.Displacement+a.offset)
			if a.indexed {
				c.callPrimitive(tam.AddDisplacement)
			}
			return
		}
	}
	c.indirectAddress(a, f)
}

// indirectAddress completes the address of a datum reached through a
// pointer: a heap cell, or the target of a var parameter.
func (c *Encoder) indirectAddress(a access, f Frame) {
	if a.heap {
		c.addOffset(a.offset)
		return
	}
	ua, ok := a.entity.(UnknownAddress)
	if !ok {
		panic("codegen: " + ast.DeclName(a.decl) + " (" + EntityKind(a.entity) + ") has no address")
	}
	c.emit(tam.LOAD, tam.AddressSize, c.displayRegister(f.Level, ua.Address.Level), ua.Address.Displacement)
	if a.indexed {
		c.callPrimitive(tam.AddDisplacement)
	}
	c.addOffset(a.offset)
}
