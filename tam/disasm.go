package tam

import (
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// Disassembly
// ---------------------------------------------------------------------------

func formatInstruction(in Instruction) string {
	switch in.Op {
	case LOAD, STORE:
		return fmt.Sprintf("%s(%d) %d[%s]", in.Op, in.N, in.D, in.R)
	case LOADA, JUMP:
		return fmt.Sprintf("%s %d[%s]", in.Op, in.D, in.R)
	case LOADI, STOREI:
		return fmt.Sprintf("%s(%d)", in.Op, in.N)
	case LOADL, PUSH:
		return fmt.Sprintf("%s %d", in.Op, in.D)
	case CALL:
		if in.R == PB {
			if name := PrimitiveName(int(in.D)); name != "" {
				return fmt.Sprintf("CALL %s", name)
			}
		}
		return fmt.Sprintf("CALL(%s) %d[%s]", Register(in.N), in.D, in.R)
	case RETURN, POP:
		return fmt.Sprintf("%s(%d) %d", in.Op, in.N, in.D)
	case JUMPIF:
		return fmt.Sprintf("JUMPIF(%d) %d[%s]", in.N, in.D, in.R)
	case CALLI, JUMPI, HALT:
		return in.Op.String()
	default:
		return fmt.Sprintf("%s n=%d r=%s d=%d", in.Op, in.N, in.R, in.D)
	}
}

// DisassembleInstruction returns the listing line for the instruction at
// address addr.
func DisassembleInstruction(addr int, in Instruction) string {
	return fmt.Sprintf("%04d  %s", addr, formatInstruction(in))
}

// Disassemble returns a full listing of code, which is assumed to start at
// CodeBase.
func Disassemble(code []Instruction) string {
	var sb strings.Builder
	for i, in := range code {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(DisassembleInstruction(CodeBase+i, in))
	}
	return sb.String()
}
