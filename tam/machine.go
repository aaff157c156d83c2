// Package tam describes the Triangle Abstract Machine as seen by the code
// generator: its instruction format, opcodes, registers, primitive routine
// table, data representation and fixed capacity limits.
package tam

import "fmt"

// ---------------------------------------------------------------------------
// Opcodes
// ---------------------------------------------------------------------------

// Opcode identifies a TAM instruction.
type Opcode int32

const (
	LOAD   Opcode = 0  // push n words from d[r]
	LOADA  Opcode = 1  // push address d[r]
	LOADI  Opcode = 2  // pop address, push n words from it
	LOADL  Opcode = 3  // push literal d
	STORE  Opcode = 4  // pop n words into d[r]
	STOREI Opcode = 5  // pop address, pop n words into it
	CALL   Opcode = 6  // call routine at d[r] with static link register n
	CALLI  Opcode = 7  // pop closure, call it
	RETURN Opcode = 8  // return n result words, discarding d argument words
	PUSH   Opcode = 10 // reserve d words
	POP    Opcode = 11 // pop d words below the top n words
	JUMP   Opcode = 12 // jump to d[r]
	JUMPI  Opcode = 13 // pop address, jump to it
	JUMPIF Opcode = 14 // pop word, jump to d[r] if it equals n
	HALT   Opcode = 15 // stop execution
)

// opcodeNames maps opcodes to their mnemonics.
var opcodeNames = map[Opcode]string{
	LOAD:   "LOAD",
	LOADA:  "LOADA",
	LOADI:  "LOADI",
	LOADL:  "LOADL",
	STORE:  "STORE",
	STOREI: "STOREI",
	CALL:   "CALL",
	CALLI:  "CALLI",
	RETURN: "RETURN",
	PUSH:   "PUSH",
	POP:    "POP",
	JUMP:   "JUMP",
	JUMPI:  "JUMPI",
	JUMPIF: "JUMPIF",
	HALT:   "HALT",
}

// String implements the Stringer interface.
func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("OP_%d", int32(op))
}

// ---------------------------------------------------------------------------
// Registers
// ---------------------------------------------------------------------------

// Register identifies one of the machine's addressing registers.
type Register int32

const (
	CB Register = 0  // code base
	CT Register = 1  // code top
	PB Register = 2  // primitives base
	PT Register = 3  // primitives top
	SB Register = 4  // stack base (global frame)
	ST Register = 5  // stack top
	HB Register = 6  // heap base
	HT Register = 7  // heap top
	LB Register = 8  // local base
	L1 Register = 9  // frame one level out
	L2 Register = 10 // frame two levels out
	L3 Register = 11
	L4 Register = 12
	L5 Register = 13
	L6 Register = 14
	CP Register = 15 // code pointer
)

var registerNames = [...]string{
	"CB", "CT", "PB", "PT", "SB", "ST", "HB", "HT",
	"LB", "L1", "L2", "L3", "L4", "L5", "L6", "CP",
}

// String implements the Stringer interface.
func (r Register) String() string {
	if r >= 0 && int(r) < len(registerNames) {
		return registerNames[r]
	}
	return fmt.Sprintf("R%d", int32(r))
}

// ---------------------------------------------------------------------------
// Primitive routines (displacements relative to PB)
// ---------------------------------------------------------------------------

const (
	IDDisplacement         = 1
	NotDisplacement        = 2
	AndDisplacement        = 3
	OrDisplacement         = 4
	SuccDisplacement       = 5
	PredDisplacement       = 6
	NegDisplacement        = 7
	AddDisplacement        = 8
	SubDisplacement        = 9
	MultDisplacement       = 10
	DivDisplacement        = 11
	ModDisplacement        = 12
	LtDisplacement         = 13
	LeDisplacement         = 14
	GeDisplacement         = 15
	GtDisplacement         = 16
	EqDisplacement         = 17
	NeDisplacement         = 18
	EolDisplacement        = 19
	EofDisplacement        = 20
	GetDisplacement        = 21
	PutDisplacement        = 22
	GeteolDisplacement     = 23
	PuteolDisplacement     = 24
	GetintDisplacement     = 25
	PutintDisplacement     = 26
	NewDisplacement        = 27
	DisposeDisplacement    = 28
	FixedLexDisplacement   = 29
	RangeCheckDisplacement = 30
)

var primitiveNames = map[int]string{
	IDDisplacement:         "id",
	NotDisplacement:        "not",
	AndDisplacement:        "and",
	OrDisplacement:         "or",
	SuccDisplacement:       "succ",
	PredDisplacement:       "pred",
	NegDisplacement:        "neg",
	AddDisplacement:        "add",
	SubDisplacement:        "sub",
	MultDisplacement:       "mult",
	DivDisplacement:        "div",
	ModDisplacement:        "mod",
	LtDisplacement:         "lt",
	LeDisplacement:         "le",
	GeDisplacement:         "ge",
	GtDisplacement:         "gt",
	EqDisplacement:         "eq",
	NeDisplacement:         "ne",
	EolDisplacement:        "eol",
	EofDisplacement:        "eof",
	GetDisplacement:        "get",
	PutDisplacement:        "put",
	GeteolDisplacement:     "geteol",
	PuteolDisplacement:     "puteol",
	GetintDisplacement:     "getint",
	PutintDisplacement:     "putint",
	NewDisplacement:        "new",
	DisposeDisplacement:    "dispose",
	FixedLexDisplacement:   "fixedlex",
	RangeCheckDisplacement: "rangecheck",
}

// PrimitiveName returns the name of the primitive routine at displacement d
// from PB, or "" if there is none.
func PrimitiveName(d int) string {
	return primitiveNames[d]
}

// ---------------------------------------------------------------------------
// Data representation
// ---------------------------------------------------------------------------

const (
	BooleanSize   = 1
	CharacterSize = 1
	IntegerSize   = 1
	AddressSize   = 1
	ClosureSize   = 2 * AddressSize
	LinkDataSize  = 3 * AddressSize

	FalseRep  = 0
	TrueRep   = 1
	MaxintRep = 32767
)

// ---------------------------------------------------------------------------
// Capacity limits
// ---------------------------------------------------------------------------

const (
	// CodeBase is the address of the first instruction of a program.
	CodeBase = 0
	// CodeLimit is the first address past the code store (PB).
	CodeLimit = 1024

	// MaxRoutineLevel is the deepest lexical level a routine body may run at.
	MaxRoutineLevel = 7
	// MaxOperand is the largest value the n field of an instruction can hold.
	MaxOperand = 255
	// DisplayDepth is the number of levels the L1..L6 registers reach.
	DisplayDepth = 6
)
