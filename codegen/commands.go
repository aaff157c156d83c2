package codegen

import (
	"github.com/chazu/tamc/ast"
	"github.com/chazu/tamc/tam"
)

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

// encodeCommand generates code for cmd in frame f. Commands leave the stack
// as they found it.
func (c *Encoder) encodeCommand(cmd ast.Command, f Frame) {
	c.at(cmd)
	switch cmd := cmd.(type) {
	case *ast.EmptyCommand:

	case *ast.SequentialCommand:
		for _, sub := range cmd.Commands {
			c.encodeCommand(sub, f)
		}

	case *ast.AssignCommand:
		size := c.encodeExpression(cmd.E, f)
		c.encodeStore(cmd.V, f.Extend(size), size)

	case *ast.CallCommand:
		argsSize := c.encodeActuals(cmd.Args, f)
		c.callRoutine(cmd.Callee, f.Extend(argsSize), argsSize)

	case *ast.IfCommand:
		elseLabel := c.emitter.NewLabel()
		end := c.emitter.NewLabel()
		c.encodeExpression(cmd.Cond, f)
		c.emitter.EmitJump(tam.JUMPIF, tam.FalseRep, elseLabel)
		c.encodeCommand(cmd.Then, f)
		c.emitter.EmitJump(tam.JUMP, 0, end)
		c.emitter.Mark(elseLabel)
		c.encodeCommand(cmd.Else, f)
		c.emitter.Mark(end)

	case *ast.WhileCommand:
		test := c.emitter.NewLabel()
		c.emitter.EmitJump(tam.JUMP, 0, test)
		loop := c.emitter.Here()
		c.encodeCommand(cmd.Body, f)
		c.emitter.Mark(test)
		c.encodeExpression(cmd.Cond, f)
		c.emitter.EmitJump(tam.JUMPIF, tam.TrueRep, loop)

	case *ast.RepeatCommand:
		loop := c.emitter.Here()
		c.encodeCommand(cmd.Body, f)
		c.encodeExpression(cmd.Cond, f)
		c.emitter.EmitJump(tam.JUMPIF, tam.FalseRep, loop)

	case *ast.ForCommand:
		c.encodeFor(cmd, f)

	case *ast.CaseCommand:
		c.encodeCase(cmd, f)

	case *ast.LetCommand:
		extra := c.encodeDeclaration(cmd.Decl, f)
		c.encodeCommand(cmd.Body, f.Extend(extra))
		if extra > 0 {
			c.emit(tam.POP, 0, 0, extra)
		}

	default:
		panic("codegen: unknown command " + kindName(cmd))
	}
}

// encodeFor generates a counting loop. The induction variable gets a stack
// slot holding the counter; the loop runs while counter <= upper bound.
func (c *Encoder) encodeFor(cmd *ast.ForCommand, f Frame) {
	v := cmd.Var
	c.encodeDeclaration(v, f)
	if kv, ok := c.entityOf(v).(KnownValue); ok {
		c.emit(tam.LOADL, 0, 0, kv.Value)
		c.entities.rebind(v, v.Name, UnknownValue{
			Size:    tam.IntegerSize,
			Address: ObjectAddress{Level: f.Level, Displacement: f.Size},
		})
	}
	counter := c.entityOf(v).(UnknownValue).Address
	inner := f.Extend(tam.IntegerSize)
	r := c.displayRegister(inner.Level, counter.Level)

	exit := c.emitter.NewLabel()
	test := c.emitter.Here()
	c.emit(tam.LOAD, tam.IntegerSize, r, counter.Displacement)
	c.encodeExpression(cmd.To, inner.Extend(tam.IntegerSize))
	c.callPrimitive(tam.LeDisplacement)
	c.emitter.EmitJump(tam.JUMPIF, tam.FalseRep, exit)

	c.encodeCommand(cmd.Body, inner)

	c.emit(tam.LOAD, tam.IntegerSize, r, counter.Displacement)
	c.callPrimitive(tam.SuccDisplacement)
	c.emit(tam.STORE, tam.IntegerSize, r, counter.Displacement)
	c.emitter.EmitJump(tam.JUMP, 0, test)
	c.emitter.Mark(exit)
	c.emit(tam.POP, 0, 0, tam.IntegerSize)
}

// encodeCase evaluates the selector once and tests a copy of it against
// each arm's label in turn. Every arm jumps to a shared end label, where the
// selector is popped.
func (c *Encoder) encodeCase(cmd *ast.CaseCommand, f Frame) {
	c.encodeExpression(cmd.Selector, f)
	inner := f.Extend(tam.IntegerSize)
	end := c.emitter.NewLabel()
	for _, arm := range cmd.Arms {
		c.at(arm.Body)
		body := c.emitter.NewLabel()
		past := c.emitter.NewLabel()
		c.emit(tam.LOAD, tam.IntegerSize, tam.ST, -1)
		c.emitter.EmitJump(tam.JUMPIF, arm.Label, body)
		c.emitter.EmitJump(tam.JUMP, 0, past)
		c.emitter.Mark(body)
		c.encodeCommand(arm.Body, inner)
		c.emitter.EmitJump(tam.JUMP, 0, end)
		c.emitter.Mark(past)
	}
	if cmd.Else != nil {
		c.encodeCommand(cmd.Else, inner)
	}
	c.emitter.Mark(end)
	c.emit(tam.POP, 0, 0, tam.IntegerSize)
}
