package bytecode

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// wireProgram is Program's on-disk JSON shape (spec.md §6: "the bytecode
// program ... the binary format is left to the implementation's
// discretion beyond what this section fixes"). big.Int constants are
// carried as decimal strings since encoding/json has no native bignum
// support.
type wireProgram struct {
	Version      uint32            `json:"version"`
	EntryOffset  int               `json:"entry_offset"`
	Code         []byte            `json:"code"`
	Constants    []wireConstant    `json:"constants"`
	Types        []interface{}     `json:"types"`
	Names        []string          `json:"names"`
	NameLists    [][]string        `json:"name_lists"`
	Debug        map[string]DebugInfo `json:"debug"`
	MaxCallDepth int               `json:"max_call_depth"`
}

type wireConstant struct {
	Type interface{} `json:"type"`
	Raw  string      `json:"raw"`
}

// Marshal serializes a Program for storage or transport. Constants' and
// Types' value.Type descriptors round-trip through encoding/json's own
// struct marshaling since every Type field is exported.
func Marshal(p *Program) ([]byte, error) {
	w := wireProgram{
		Version:      p.Version,
		EntryOffset:  p.EntryOffset,
		Code:         p.Code,
		Names:        p.Names,
		NameLists:    p.NameLists,
		MaxCallDepth: p.MaxCallDepth,
	}
	for _, c := range p.Constants {
		raw := "0"
		if c.Raw != nil {
			raw = c.Raw.String()
		}
		w.Constants = append(w.Constants, wireConstant{Type: c.Type, Raw: raw})
	}
	for _, t := range p.Types {
		w.Types = append(w.Types, t)
	}
	w.Debug = make(map[string]DebugInfo, len(p.Debug))
	for offset, d := range p.Debug {
		w.Debug[fmt.Sprintf("%d", offset)] = d
	}
	return json.Marshal(w)
}

// Unmarshal is the inverse of Marshal.
func Unmarshal(data []byte) (*Program, error) {
	var w wireProgram
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("bytecode: unmarshal program: %w", err)
	}
	p := &Program{
		Version:      w.Version,
		EntryOffset:  w.EntryOffset,
		Code:         w.Code,
		Names:        w.Names,
		NameLists:    w.NameLists,
		MaxCallDepth: w.MaxCallDepth,
		Debug:        make(map[int]DebugInfo, len(w.Debug)),
	}
	for offsetStr, d := range w.Debug {
		var offset int
		if _, err := fmt.Sscanf(offsetStr, "%d", &offset); err != nil {
			return nil, fmt.Errorf("bytecode: unmarshal program: bad debug offset %q: %w", offsetStr, err)
		}
		p.Debug[offset] = d
	}
	// Types and Constants' embedded value.Type round-trip via a second
	// pass through json so wireConstant/[]interface{}'s untyped map
	// decoding becomes a concrete value.Type.
	typesJSON, err := json.Marshal(w.Types)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(typesJSON, &p.Types); err != nil {
		return nil, fmt.Errorf("bytecode: unmarshal program: types: %w", err)
	}
	for _, wc := range w.Constants {
		tJSON, err := json.Marshal(wc.Type)
		if err != nil {
			return nil, err
		}
		var t Constant
		if err := json.Unmarshal(tJSON, &t.Type); err != nil {
			return nil, fmt.Errorf("bytecode: unmarshal program: constant type: %w", err)
		}
		raw, ok := new(big.Int).SetString(wc.Raw, 10)
		if !ok {
			return nil, fmt.Errorf("bytecode: unmarshal program: bad constant %q", wc.Raw)
		}
		t.Raw = raw
		p.Constants = append(p.Constants, t)
	}
	return p, nil
}
