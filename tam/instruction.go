package tam

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Instruction is one fixed-format TAM instruction.
type Instruction struct {
	Op Opcode   // operation
	R  Register // register field
	N  int32    // operand length or static-link register, 0..255
	D  int32    // displacement or literal
}

// String implements the Stringer interface.
func (in Instruction) String() string {
	return formatInstruction(in)
}

// instructionBytes is the encoded width of one instruction.
const instructionBytes = 16

// WriteObject writes code as an object program: one record per
// instruction, each four big-endian 32-bit fields in the order op, r, n, d.
func WriteObject(w io.Writer, code []Instruction) error {
	bw := bufio.NewWriter(w)
	var buf [instructionBytes]byte
	for _, in := range code {
		binary.BigEndian.PutUint32(buf[0:], uint32(in.Op))
		binary.BigEndian.PutUint32(buf[4:], uint32(in.R))
		binary.BigEndian.PutUint32(buf[8:], uint32(in.N))
		binary.BigEndian.PutUint32(buf[12:], uint32(in.D))
		if _, err := bw.Write(buf[:]); err != nil {
			return fmt.Errorf("tam: write object: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("tam: write object: %w", err)
	}
	return nil
}

// ReadObject reads an object program written by WriteObject.
func ReadObject(r io.Reader) ([]Instruction, error) {
	br := bufio.NewReader(r)
	var code []Instruction
	var buf [instructionBytes]byte
	for {
		_, err := io.ReadFull(br, buf[:])
		if errors.Is(err, io.EOF) {
			return code, nil
		}
		if err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("tam: truncated object program after %d instructions", len(code))
			}
			return nil, fmt.Errorf("tam: read object: %w", err)
		}
		code = append(code, Instruction{
			Op: Opcode(int32(binary.BigEndian.Uint32(buf[0:]))),
			R:  Register(int32(binary.BigEndian.Uint32(buf[4:]))),
			N:  int32(binary.BigEndian.Uint32(buf[8:])),
			D:  int32(binary.BigEndian.Uint32(buf[12:])),
		})
	}
}
