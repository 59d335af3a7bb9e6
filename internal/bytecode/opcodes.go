package bytecode

// OpCode is the one-byte instruction tag of spec.md §6's instruction set.
type OpCode byte

const (
	OpPushConst OpCode = iota
	OpDup
	OpSwap
	OpPop
	OpLoad
	OpStore
	OpLoadSequence
	OpStoreSequence
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpNeg
	OpCast
	OpAnd
	OpOr
	OpXor
	OpNot
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpJump
	OpJumpIf
	OpCall
	OpReturn
	OpCSelect
	OpInput
	OpOutput
	OpAssert
	OpExit

	// The following are not named in spec.md §6's instruction set summary,
	// which scopes the bytecode generator out of the core. They exist
	// because the value algebra of spec.md §4.3 includes aggregate element
	// access, update, and length, and a runnable VM needs some way to
	// materialize and address an array, tuple, or structure as a whole
	// stack value — the gap left by the generator's absence. See
	// SPEC_FULL.md's supplemented-features note.
	OpMakeArray
	OpMakeTuple
	OpMakeStruct
	OpIndex
	OpUpdateIndex
	OpFieldGet
	OpUpdateField
	OpLen
)

func (op OpCode) String() string {
	switch op {
	case OpPushConst:
		return "push_const"
	case OpDup:
		return "dup"
	case OpSwap:
		return "swap"
	case OpPop:
		return "pop"
	case OpLoad:
		return "load"
	case OpStore:
		return "store"
	case OpLoadSequence:
		return "load_sequence"
	case OpStoreSequence:
		return "store_sequence"
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	case OpMod:
		return "mod"
	case OpNeg:
		return "neg"
	case OpCast:
		return "cast"
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpXor:
		return "xor"
	case OpNot:
		return "not"
	case OpEq:
		return "eq"
	case OpNe:
		return "ne"
	case OpLt:
		return "lt"
	case OpLe:
		return "le"
	case OpGt:
		return "gt"
	case OpGe:
		return "ge"
	case OpJump:
		return "jump"
	case OpJumpIf:
		return "jumpif"
	case OpCall:
		return "call"
	case OpReturn:
		return "return"
	case OpCSelect:
		return "cselect"
	case OpInput:
		return "input"
	case OpOutput:
		return "output"
	case OpAssert:
		return "assert"
	case OpExit:
		return "exit"
	case OpMakeArray:
		return "make_array"
	case OpMakeTuple:
		return "make_tuple"
	case OpMakeStruct:
		return "make_struct"
	case OpIndex:
		return "index"
	case OpUpdateIndex:
		return "update_index"
	case OpFieldGet:
		return "field_get"
	case OpUpdateField:
		return "update_field"
	case OpLen:
		return "len"
	default:
		return "unknown"
	}
}
