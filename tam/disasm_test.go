package tam

import "testing"

func TestFormatInstruction(t *testing.T) {
	tests := []struct {
		in   Instruction
		want string
	}{
		{Instruction{Op: LOAD, N: 1, R: LB, D: 2}, "LOAD(1) 2[LB]"},
		{Instruction{Op: STORE, N: 3, R: L1, D: -5}, "STORE(3) -5[L1]"},
		{Instruction{Op: LOADA, R: SB, D: 4}, "LOADA 4[SB]"},
		{Instruction{Op: JUMP, R: CB, D: 12}, "JUMP 12[CB]"},
		{Instruction{Op: LOADI, N: 2}, "LOADI(2)"},
		{Instruction{Op: STOREI, N: 1}, "STOREI(1)"},
		{Instruction{Op: LOADL, D: 32767}, "LOADL 32767"},
		{Instruction{Op: PUSH, D: 3}, "PUSH 3"},
		{Instruction{Op: CALL, N: int32(SB), R: PB, D: PutintDisplacement}, "CALL putint"},
		{Instruction{Op: CALL, N: int32(SB), R: PB, D: RangeCheckDisplacement}, "CALL rangecheck"},
		{Instruction{Op: CALL, N: int32(LB), R: CB, D: 9}, "CALL(LB) 9[CB]"},
		{Instruction{Op: RETURN, N: 1, D: 2}, "RETURN(1) 2"},
		{Instruction{Op: POP, N: 0, D: 4}, "POP(0) 4"},
		{Instruction{Op: JUMPIF, N: FalseRep, R: CB, D: 15}, "JUMPIF(0) 15[CB]"},
		{Instruction{Op: CALLI}, "CALLI"},
		{Instruction{Op: HALT}, "HALT"},
		{Instruction{Op: Opcode(9), N: 1, R: SB, D: 2}, "OP_9 n=1 r=SB d=2"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.in.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisassemble(t *testing.T) {
	code := []Instruction{
		{Op: PUSH, D: 1},
		{Op: CALL, N: int32(SB), R: PB, D: PuteolDisplacement},
		{Op: HALT},
	}
	want := "0000  PUSH 1\n0001  CALL puteol\n0002  HALT"
	if got := Disassemble(code); got != want {
		t.Errorf("Disassemble =\n%s\nwant\n%s", got, want)
	}
}

func TestNames(t *testing.T) {
	if PrimitiveName(FixedLexDisplacement) != "fixedlex" {
		t.Errorf("fixedlex name = %q", PrimitiveName(FixedLexDisplacement))
	}
	if PrimitiveName(0) != "" || PrimitiveName(99) != "" {
		t.Error("names returned for non-primitive displacements")
	}
	if L6.String() != "L6" || Register(20).String() != "R20" {
		t.Errorf("register names: %s, %s", L6, Register(20))
	}
}
