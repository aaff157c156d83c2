package codegen

import (
	"github.com/chazu/tamc/ast"
	"github.com/chazu/tamc/tam"
)

// ---------------------------------------------------------------------------
// Actual parameters and calls
// ---------------------------------------------------------------------------

// encodeActuals pushes the arguments of a call from left to right and
// returns their total size.
func (c *Encoder) encodeActuals(args []ast.ActualParameter, f Frame) int {
	size := 0
	for _, ap := range args {
		size += c.encodeActual(ap, f.Extend(size))
	}
	return size
}

func (c *Encoder) encodeActual(ap ast.ActualParameter, f Frame) int {
	c.at(ap)
	switch ap := ap.(type) {
	case *ast.ConstActualParameter:
		return c.encodeExpression(ap.E, f)

	case *ast.VarActualParameter:
		c.encodeFetchAddress(ap.V, f)
		return tam.AddressSize

	case *ast.ValResActualParameter:
		size := c.typeSize(ap.V.Type())
		c.encodeFetch(ap.V, f, size)
		c.encodeFetchAddress(ap.V, f.Extend(size))
		return size + tam.AddressSize

	case *ast.ResActualParameter:
		size := c.typeSize(ap.V.Type())
		c.emit(tam.PUSH, 0, 0, size)
		c.encodeFetchAddress(ap.V, f.Extend(size))
		return size + tam.AddressSize

	case *ast.ProcActualParameter:
		c.pushClosure(ap.Callee, f)
		return tam.ClosureSize

	case *ast.FuncActualParameter:
		c.pushClosure(ap.Callee, f)
		return tam.ClosureSize
	}
	panic("codegen: unknown actual parameter " + kindName(ap))
}

// pushClosure pushes the static link and code address of a routine.
func (c *Encoder) pushClosure(id *ast.Identifier, f Frame) {
	switch e := c.entityOf(id.Decl).(type) {
	case KnownRoutine:
		c.emit(tam.LOADA, 0, c.displayRegister(f.Level, e.Address.Level), 0)
		c.emit(tam.LOADA, 0, tam.CB, e.Address.Displacement)
	case UnknownRoutine:
		c.emit(tam.LOAD, tam.ClosureSize, c.displayRegister(f.Level, e.Address.Level), e.Address.Displacement)
	case PrimitiveRoutine:
		c.emit(tam.LOADA, 0, tam.SB, 0)
		c.emit(tam.LOADA, 0, tam.PB, e.Displacement)
	case EqualityRoutine:
		c.emit(tam.LOADA, 0, tam.SB, 0)
		c.emit(tam.LOADA, 0, tam.PB, e.Displacement)
	default:
		panic("codegen: " + id.Spelling + " is not a routine")
	}
}

// callRoutine emits the call of the routine named by id. f is the frame
// after its arguments, argsSize words, have been pushed.
func (c *Encoder) callRoutine(id *ast.Identifier, f Frame, argsSize int) {
	c.call(id.Decl, id.Spelling, f, argsSize)
}

// callOperator emits the call of an operator's routine.
func (c *Encoder) callOperator(op *ast.Operator, f Frame, argsSize int) {
	c.call(op.Decl, op.Spelling, f, argsSize)
}

func (c *Encoder) call(decl ast.Declaration, name string, f Frame, argsSize int) {
	switch e := c.entityOf(decl).(type) {
	case KnownRoutine:
		c.emit(tam.CALL, int(c.displayRegister(f.Level, e.Address.Level)), tam.CB, e.Address.Displacement)
	case UnknownRoutine:
		c.emit(tam.LOAD, tam.ClosureSize, c.displayRegister(f.Level, e.Address.Level), e.Address.Displacement)
		c.emit(tam.CALLI, 0, 0, 0)
	case PrimitiveRoutine:
		if e.Displacement != tam.IDDisplacement {
			c.callPrimitive(e.Displacement)
		}
	case EqualityRoutine:
		c.emit(tam.LOADL, 0, 0, argsSize/2)
		c.callPrimitive(e.Displacement)
	default:
		panic("codegen: " + name + " is not a routine")
	}
}
