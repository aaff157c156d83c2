package codegen

import (
	"github.com/chazu/tamc/ast"
	"github.com/chazu/tamc/tam"
)

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// encodeExpression generates code that pushes the value of e and returns
// its size in words. The type of e is resolved before any code is emitted.
func (c *Encoder) encodeExpression(e ast.Expression, f Frame) int {
	c.at(e)
	valSize := c.typeSize(e.Type())

	switch e := e.(type) {
	case *ast.EmptyExpression:
		return 0

	case *ast.IntegerExpression:
		c.emit(tam.LOADL, 0, 0, e.Value)
		return valSize

	case *ast.CharacterExpression:
		c.emit(tam.LOADL, 0, 0, int(e.Value))
		return valSize

	case *ast.FixedStringExpression:
		for i := 0; i < len(e.Value); i++ {
			c.emit(tam.LOADL, 0, 0, int(e.Value[i]))
		}
		return valSize

	case *ast.NilExpression:
		c.emit(tam.LOADL, 0, 0, 0)
		return tam.AddressSize

	case *ast.VnameExpression:
		c.encodeFetch(e.V, f, valSize)
		return valSize

	case *ast.UnaryExpression:
		argSize := c.encodeExpression(e.Operand, f)
		c.callOperator(e.Op, f.Extend(argSize), argSize)
		return valSize

	case *ast.BinaryExpression:
		size1 := c.encodeExpression(e.Left, f)
		size2 := c.encodeExpression(e.Right, f.Extend(size1))
		argsSize := size1 + size2
		if e.Op.Decl == c.env.LexLessDecl {
			c.emit(tam.LOADL, 0, 0, c.typeSize(e.Left.Type()))
		}
		c.callOperator(e.Op, f.Extend(argsSize), argsSize)
		return valSize

	case *ast.CallExpression:
		argsSize := c.encodeActuals(e.Args, f)
		c.callRoutine(e.Callee, f.Extend(argsSize), argsSize)
		return valSize

	case *ast.IfExpression:
		elseLabel := c.emitter.NewLabel()
		end := c.emitter.NewLabel()
		c.encodeExpression(e.Cond, f)
		c.emitter.EmitJump(tam.JUMPIF, tam.FalseRep, elseLabel)
		size := c.encodeExpression(e.Then, f)
		c.emitter.EmitJump(tam.JUMP, 0, end)
		c.emitter.Mark(elseLabel)
		c.encodeExpression(e.Else, f)
		c.emitter.Mark(end)
		return size

	case *ast.LetExpression:
		extra := c.encodeDeclaration(e.Decl, f)
		size := c.encodeExpression(e.Body, f.Extend(extra))
		if extra > 0 {
			c.emit(tam.POP, size, 0, extra)
		}
		return size

	case *ast.ArrayExpression:
		size := 0
		for _, elem := range e.Elements {
			size += c.encodeExpression(elem, f.Extend(size))
		}
		return size

	case *ast.RecordExpression:
		return c.encodeRecordExpression(e, f)
	}
	panic("codegen: unknown expression " + kindName(e))
}

// encodeRecordExpression pushes the fields of a record aggregate. A record
// of heap type is then copied into a freshly allocated heap cell and only
// the pointer to it is left on the stack.
func (c *Encoder) encodeRecordExpression(e *ast.RecordExpression, f Frame) int {
	rep := c.typeRep(e.Type())
	payload := 0
	for _, fi := range e.Fields {
		payload += c.encodeExpression(fi.Value, f.Extend(payload))
	}
	if !rep.Heap {
		return payload
	}
	c.emit(tam.LOADL, 0, 0, payload)
	c.callPrimitive(tam.NewDisplacement)
	c.emit(tam.LOAD, payload+tam.AddressSize, tam.ST, -tam.AddressSize-payload)
	c.emit(tam.STOREI, payload, 0, 0)
	c.emit(tam.POP, tam.AddressSize, 0, payload)
	return tam.AddressSize
}
