package store

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math/big"

	"github.com/Epiisteme/zinc/internal/bytecode"
)

// HashProgram content-hashes everything that can change a program's
// constraint system: its entry offset, its code stream, and every side table push_const,
// input, and the aggregate instructions read from. Debug info is excluded
// since it never affects arithmetization (spec.md §6: "Debug metadata is
// optional").
func HashProgram(p *bytecode.Program) string {
	h := sha256.New()
	var entry [8]byte
	binary.LittleEndian.PutUint64(entry[:], uint64(p.EntryOffset))
	h.Write(entry[:])
	h.Write(p.Code)
	for _, c := range p.Constants {
		h.Write([]byte(c.Type.String()))
		writeBigInt(h, c.Raw)
	}
	for _, t := range p.Types {
		h.Write([]byte(t.String()))
	}
	for _, n := range p.Names {
		h.Write([]byte{0})
		h.Write([]byte(n))
	}
	for _, nl := range p.NameLists {
		h.Write([]byte{0})
		for _, n := range nl {
			h.Write([]byte(n))
			h.Write([]byte{0})
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// HashInputs hashes an ordered vector of *big.Int inputs (either a
// program's public or witness inputs).
func HashInputs(inputs []*big.Int) string {
	h := sha256.New()
	for _, v := range inputs {
		writeBigInt(h, v)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeBigInt(h interface{ Write([]byte) (int, error) }, v *big.Int) {
	if v == nil {
		v = big.NewInt(0)
	}
	bs := v.Bytes()
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(bs)))
	h.Write(lenBuf[:])
	h.Write([]byte{byte(v.Sign())})
	h.Write(bs)
}
