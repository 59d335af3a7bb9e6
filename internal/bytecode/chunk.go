package bytecode

import (
	"math/big"

	"github.com/Epiisteme/zinc/internal/value"
)

// DebugInfo stores the source location, when known, for an instruction
// offset (spec.md §6: "Debug metadata is optional and may associate
// source locations to instruction offsets").
type DebugInfo struct {
	Line   int
	Column int
	File   string
}

// Constant is a scalar compile-time value referenced by push_const.
type Constant struct {
	Type value.Type
	Raw  *big.Int
}

// Program is the VM's immutable input: a flat instruction sequence plus
// the side tables push_const, input, output, and the supplemented
// aggregate instructions reference by index (spec.md §3 "Program", §6
// "Bytecode program (binary)").
type Program struct {
	Version     uint32
	EntryOffset int

	Code []byte

	Constants []Constant
	Types     []value.Type
	Names     []string
	NameLists [][]string

	// Debug maps an instruction's starting byte offset to its source
	// location; instructions with no entry have no known location.
	Debug map[int]DebugInfo

	// MaxCallDepth bounds the call stack (spec.md §3: "Frames form a
	// stack whose maximum depth is bounded by the program").
	MaxCallDepth int
}

// NewProgram returns an empty program ready for WriteOp-style assembly.
func NewProgram() *Program {
	return &Program{
		Version:      1,
		Debug:        make(map[int]DebugInfo),
		MaxCallDepth: 1024,
	}
}

// WriteOp appends a single opcode byte and returns its offset.
func (p *Program) WriteOp(op OpCode) int {
	offset := len(p.Code)
	p.Code = append(p.Code, byte(op))
	return offset
}

// WriteUint32 appends a fixed-width little-endian operand (spec.md §6:
// "fixed widths per operand"), used for small indices and counts.
func (p *Program) WriteUint32(v uint32) {
	p.Code = append(p.Code, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// WriteInt32 appends a fixed-width little-endian signed operand, used
// for jump deltas.
func (p *Program) WriteInt32(v int32) {
	p.WriteUint32(uint32(v))
}

// WriteBigInt appends a length-prefixed little-endian arbitrary-precision
// signed integer (spec.md §6), used for push_const's immediate value,
// since integers may be up to 253 bits wide — too wide for a fixed
// machine word.
func (p *Program) WriteBigInt(v *big.Int) {
	buf := EncodeBigInt(v)
	p.WriteUint32(uint32(len(buf)))
	p.Code = append(p.Code, buf...)
}

// SetDebug records the source location of the instruction starting at
// offset.
func (p *Program) SetDebug(offset int, d DebugInfo) {
	p.Debug[offset] = d
}

// AddConstant interns a push_const value and returns its table index.
func (p *Program) AddConstant(t value.Type, raw *big.Int) uint32 {
	p.Constants = append(p.Constants, Constant{Type: t, Raw: raw})
	return uint32(len(p.Constants) - 1)
}

// AddType interns a type descriptor (used by input/output) and returns
// its table index.
func (p *Program) AddType(t value.Type) uint32 {
	p.Types = append(p.Types, t)
	return uint32(len(p.Types) - 1)
}

// AddName interns a field/message name and returns its table index.
func (p *Program) AddName(name string) uint32 {
	p.Names = append(p.Names, name)
	return uint32(len(p.Names) - 1)
}

// AddNameList interns a list of field names (used by make_struct) and
// returns its table index.
func (p *Program) AddNameList(names []string) uint32 {
	p.NameLists = append(p.NameLists, names)
	return uint32(len(p.NameLists) - 1)
}
