package codegen

import (
	"github.com/chazu/tamc/ast"
	"github.com/chazu/tamc/tam"
)

// ---------------------------------------------------------------------------
// Declarations
// ---------------------------------------------------------------------------

// encodeDeclaration elaborates d in frame f and returns the number of
// words its code leaves on the stack. A declaration that already has an
// entity is not elaborated again.
func (c *Encoder) encodeDeclaration(d ast.Declaration, f Frame) int {
	c.at(d)
	switch d := d.(type) {
	case *ast.SequentialDeclaration:
		extra := 0
		for _, sub := range d.Decls {
			extra += c.encodeDeclaration(sub, f.Extend(extra))
		}
		return extra
	case *ast.PackageDeclaration:
		extra := 0
		if d.Private != nil {
			extra = c.encodeDeclaration(d.Private, f)
		}
		if d.Public != nil {
			extra += c.encodeDeclaration(d.Public, f.Extend(extra))
		}
		return extra
	}

	if _, ok := c.entities.lookup(d.ID()); ok {
		return 0
	}

	switch d := d.(type) {
	case *ast.ConstDeclaration:
		return c.encodeConstDeclaration(d, f)

	case *ast.VarDeclaration:
		size := c.typeSize(d.T)
		c.emit(tam.PUSH, 0, 0, size)
		c.entities.bind(d, d.Name, KnownAddress{
			Size:        size,
			Address:     ObjectAddress{Level: f.Level, Displacement: f.Size},
			ArrayLength: arrayLength(d.T),
		})
		return size

	case *ast.VarInitialization:
		size := c.typeSize(d.T)
		c.encodeExpression(d.E, f)
		c.entities.bind(d, d.Name, KnownAddress{
			Size:        size,
			Address:     ObjectAddress{Level: f.Level, Displacement: f.Size},
			ArrayLength: arrayLength(d.T),
		})
		return size

	case *ast.ProcDeclaration:
		c.encodeRoutine(d, d.Name, d.Formals, f, true, func(body Frame) int {
			c.encodeCommand(d.Body, body)
			return 0
		})
		return 0

	case *ast.FuncDeclaration:
		c.encodeRoutine(d, d.Name, d.Formals, f, true, func(body Frame) int {
			return c.encodeExpression(d.Body, body)
		})
		return 0

	case *ast.OperatorDeclaration:
		c.encodeRoutine(d, d.Spelling, d.Formals, f, false, func(body Frame) int {
			return c.encodeExpression(d.Body, body)
		})
		return 0

	case *ast.TypeDeclaration:
		c.entities.bind(d, d.Name, c.typeRep(d.T))
		return 0

	case *ast.EnumTypeDeclaration:
		c.entities.bind(d, d.Name, c.typeRep(d.T))
		for _, lit := range d.T.Literals {
			c.encodeDeclaration(lit, f)
		}
		return 0

	case *ast.EnumLiteral:
		c.entities.bind(d, d.Name, KnownValue{Size: tam.IntegerSize, Value: d.Value})
		return 0

	case *ast.UnaryOperatorDeclaration, *ast.BinaryOperatorDeclaration:
		// standard operators are bound before generation starts
		return 0

	case ast.FormalParameter:
		panic("codegen: formal parameter " + ast.DeclName(d) + " outside a routine")
	}
	panic("codegen: unknown declaration " + kindName(d))
}

func (c *Encoder) encodeConstDeclaration(d *ast.ConstDeclaration, f Frame) int {
	switch e := d.E.(type) {
	case *ast.IntegerExpression:
		c.typeRep(e.Type())
		c.entities.bind(d, d.Name, KnownValue{Size: tam.IntegerSize, Value: e.Value})
		return 0
	case *ast.CharacterExpression:
		c.typeRep(e.Type())
		c.entities.bind(d, d.Name, KnownValue{Size: tam.CharacterSize, Value: int(e.Value)})
		return 0
	}
	size := c.encodeExpression(d.E, f)
	c.entities.bind(d, d.Name, UnknownValue{
		Size:    size,
		Address: ObjectAddress{Level: f.Level, Displacement: f.Size},
	})
	return size
}

// encodeRoutine emits a routine declared in frame f: a jump over the body,
// the body itself at the next level in, and a return. body generates the
// routine's command or result expression and returns the result size.
func (c *Encoder) encodeRoutine(d ast.Declaration, name string, formals []ast.FormalParameter,
	f Frame, copyBack bool, body func(Frame) int) {
	skip := c.emitter.NewLabel()
	c.emitter.EmitJump(tam.JUMP, 0, skip)
	c.entities.bind(d, name, KnownRoutine{
		Size:    tam.ClosureSize,
		Address: ObjectAddress{Level: f.Level, Displacement: c.emitter.CurrentAddress()},
	})

	argsSize, valSize := 0, 0
	if f.Level == tam.MaxRoutineLevel {
		c.restrict("can't nest routines more than 7 deep")
	} else {
		argsSize = c.encodeFormals(formals, f.Deeper(0))
		inner := f.Deeper(tam.LinkDataSize)
		valSize = body(inner)
		if copyBack {
			c.copyResults(formals, inner)
		}
	}
	c.emit(tam.RETURN, valSize, 0, argsSize)
	c.emitter.Mark(skip)
}

// ---------------------------------------------------------------------------
// Formal parameters
// ---------------------------------------------------------------------------

// encodeFormals binds formals to slots below the link data of frame f and
// returns the total size of the arguments. The last argument lies nearest
// the frame base, so formals are placed from last to first.
func (c *Encoder) encodeFormals(formals []ast.FormalParameter, f Frame) int {
	size := 0
	for i := len(formals) - 1; i >= 0; i-- {
		size += c.encodeFormal(formals[i], f.Extend(size))
	}
	return size
}

func (c *Encoder) encodeFormal(fp ast.FormalParameter, f Frame) int {
	c.at(fp)
	at := func(disp int) ObjectAddress {
		return ObjectAddress{Level: f.Level, Displacement: disp}
	}
	switch fp := fp.(type) {
	case *ast.ConstFormalParameter:
		size := c.typeSize(fp.T)
		c.entities.bind(fp, fp.Name, UnknownValue{Size: size, Address: at(-f.Size - size)})
		return size
	case *ast.VarFormalParameter:
		c.typeRep(fp.T)
		c.entities.bind(fp, fp.Name, UnknownAddress{
			Size:    tam.AddressSize,
			Address: at(-f.Size - tam.AddressSize),
		})
		return tam.AddressSize
	case *ast.ProcFormalParameter:
		c.entities.bind(fp, fp.Name, UnknownRoutine{
			Size:    tam.ClosureSize,
			Address: at(-f.Size - tam.ClosureSize),
		})
		return tam.ClosureSize
	case *ast.FuncFormalParameter:
		c.typeRep(fp.Result)
		c.entities.bind(fp, fp.Name, UnknownRoutine{
			Size:    tam.ClosureSize,
			Address: at(-f.Size - tam.ClosureSize),
		})
		return tam.ClosureSize
	case *ast.ValResFormalParameter:
		size := c.typeSize(fp.T)
		c.entities.bind(fp, fp.Name, UnknownValue{
			Size:    size,
			Address: at(-f.Size - size - tam.AddressSize),
		})
		return size + tam.AddressSize
	case *ast.ResFormalParameter:
		size := c.typeSize(fp.T)
		c.entities.bind(fp, fp.Name, UnknownValue{
			Size:    size,
			Address: at(-f.Size - size - tam.AddressSize),
		})
		return size + tam.AddressSize
	}
	panic("codegen: unknown formal parameter " + kindName(fp))
}

// copyResults stores the final value of every result and value-result
// formal through the address its caller passed above the value.
func (c *Encoder) copyResults(formals []ast.FormalParameter, f Frame) {
	for _, fp := range formals {
		switch fp.(type) {
		case *ast.ValResFormalParameter, *ast.ResFormalParameter:
		default:
			continue
		}
		uv := c.entityOf(fp).(UnknownValue)
		r := c.displayRegister(f.Level, uv.Address.Level)
		c.emit(tam.LOAD, uv.Size+tam.AddressSize, r, uv.Address.Displacement)
		c.emit(tam.STOREI, uv.Size, 0, 0)
	}
}

// isResultFormal reports whether d is a result or value-result formal.
func isResultFormal(d ast.Declaration) bool {
	switch d.(type) {
	case *ast.ValResFormalParameter, *ast.ResFormalParameter:
		return true
	}
	return false
}
