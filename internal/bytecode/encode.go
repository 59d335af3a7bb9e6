package bytecode

import (
	"math/big"

	"github.com/Epiisteme/zinc/internal/diag"
)

// EncodeBigInt renders v as sign-magnitude little-endian bytes: one sign
// byte (0x00 non-negative, 0x01 negative) followed by the magnitude's
// little-endian bytes. This is the "length-prefixed little-endian
// arbitrary-precision signed integer" format spec.md §6 describes; the
// length prefix itself is written by the caller (Program.WriteBigInt).
func EncodeBigInt(v *big.Int) []byte {
	sign := byte(0)
	if v.Sign() < 0 {
		sign = 1
	}
	mag := new(big.Int).Abs(v).Bytes() // big-endian magnitude
	out := make([]byte, 1+len(mag))
	out[0] = sign
	for i, b := range mag {
		out[1+len(mag)-1-i] = b
	}
	return out
}

// DecodeBigInt is the inverse of EncodeBigInt.
func DecodeBigInt(buf []byte) *big.Int {
	if len(buf) == 0 {
		return big.NewInt(0)
	}
	sign := buf[0]
	leBytes := buf[1:]
	beBytes := make([]byte, len(leBytes))
	for i, b := range leBytes {
		beBytes[len(leBytes)-1-i] = b
	}
	out := new(big.Int).SetBytes(beBytes)
	if sign != 0 {
		out.Neg(out)
	}
	return out
}

// Reader walks a Program's Code byte slice one operand at a time,
// advancing an internal program counter. It is the VM dispatch loop's
// only means of decoding instructions (spec.md §4.5: "reads the
// instruction at PC, advances PC").
type Reader struct {
	Code []byte
	PC   int
}

// NewReader returns a Reader positioned at pc.
func NewReader(code []byte, pc int) *Reader {
	return &Reader{Code: code, PC: pc}
}

// ReadOp reads one opcode byte and advances.
func (r *Reader) ReadOp() (OpCode, error) {
	if r.PC < 0 || r.PC >= len(r.Code) {
		return 0, diag.NewUnlocated(diag.InvalidProgramCounter, "program counter %d out of bounds (code length %d)", r.PC, len(r.Code))
	}
	op := OpCode(r.Code[r.PC])
	r.PC++
	return op, nil
}

// ReadUint32 reads a fixed-width little-endian operand and advances.
func (r *Reader) ReadUint32() (uint32, error) {
	if r.PC+4 > len(r.Code) {
		return 0, diag.NewUnlocated(diag.MalformedInstruction, "truncated uint32 operand at offset %d", r.PC)
	}
	v := uint32(r.Code[r.PC]) | uint32(r.Code[r.PC+1])<<8 | uint32(r.Code[r.PC+2])<<16 | uint32(r.Code[r.PC+3])<<24
	r.PC += 4
	return v, nil
}

// ReadInt32 reads a fixed-width little-endian signed operand.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadBigInt reads a length-prefixed arbitrary-precision signed integer.
func (r *Reader) ReadBigInt() (*big.Int, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if r.PC+int(n) > len(r.Code) {
		return nil, diag.NewUnlocated(diag.MalformedInstruction, "truncated bigint operand at offset %d", r.PC)
	}
	buf := r.Code[r.PC : r.PC+int(n)]
	r.PC += int(n)
	return DecodeBigInt(buf), nil
}
