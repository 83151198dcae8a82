package vm

// OpCode is a single-byte instruction tag. The numbering here mirrors
// the family grouping a YAML opcode spec would assign (Stack, Alu,
// Pred, Crypto, Access, StateRead, Memory, TotalControlFlow, Repeat) —
// that generator is explicitly out of scope, so this table is
// hand-authored, in the static-table style of the teacher's own
// opcode.go, rather than code-generated.
type OpCode byte

const (
	// Stack family.
	OpPush OpCode = iota
	OpPop
	OpDup
	OpSwap
	OpSelectFromStack
	OpReserve
	OpStackLoad
	OpStackStore

	// Alu family. Checked 64-bit arithmetic only.
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpShl
	OpShr
	OpSar

	// Pred family.
	OpEq
	OpGt
	OpLt
	OpGte
	OpLte
	OpAnd
	OpOr
	OpNot
	OpEqRange
	OpEqSet

	// Crypto family.
	OpSha256
	OpVerifyEd25519
	OpRecoverSecp256k1

	// Access family.
	OpPredicateData
	OpPredicateDataLen
	OpNumSlots
	OpMutKeys
	OpThisAddress
	OpThisContractAddress
	OpPredicateExists
	OpRepeatCounter

	// StateRead family. Not in the Constraint subset.
	OpKeyRange
	OpKeyRangeExtern

	// Memory family. Not in the Constraint subset.
	OpMemAlloc
	OpMemFree
	OpMemLoad
	OpMemStore
	OpMemLoadRange
	OpMemStoreRange
	OpMemLength

	// TotalControlFlow family. Not in the Constraint subset.
	OpHalt
	OpHaltIf
	OpJumpIf
	OpPanicIf

	// Repeat family.
	OpRepeatStart
	OpRepeatEnd

	// Reserved, unimplemented per the open Compute question: the
	// opcodes are carved out of the table but decoding one is an
	// error, since no semantics are attached.
	OpCompute
	OpComputeEnd

	numOpcodes
)

// NumOpcodes is the number of opcodes assigned in the table, including
// the reserved-but-undispatchable Compute family.
const NumOpcodes = int(numOpcodes)

var opNames = [numOpcodes]string{
	OpPush:                "Push",
	OpPop:                 "Pop",
	OpDup:                 "Dup",
	OpSwap:                "Swap",
	OpSelectFromStack:     "SelectFromStack",
	OpReserve:             "Reserve",
	OpStackLoad:           "StackLoad",
	OpStackStore:          "StackStore",
	OpAdd:                 "Add",
	OpSub:                 "Sub",
	OpMul:                 "Mul",
	OpDiv:                 "Div",
	OpMod:                 "Mod",
	OpShl:                 "Shl",
	OpShr:                 "Shr",
	OpSar:                 "Sar",
	OpEq:                  "Eq",
	OpGt:                  "Gt",
	OpLt:                  "Lt",
	OpGte:                 "Gte",
	OpLte:                 "Lte",
	OpAnd:                 "And",
	OpOr:                  "Or",
	OpNot:                 "Not",
	OpEqRange:             "EqRange",
	OpEqSet:               "EqSet",
	OpSha256:              "Sha256",
	OpVerifyEd25519:       "VerifyEd25519",
	OpRecoverSecp256k1:    "RecoverSecp256k1",
	OpPredicateData:       "PredicateData",
	OpPredicateDataLen:    "PredicateDataLen",
	OpNumSlots:            "NumSlots",
	OpMutKeys:             "MutKeys",
	OpThisAddress:         "ThisAddress",
	OpThisContractAddress: "ThisContractAddress",
	OpPredicateExists:     "PredicateExists",
	OpRepeatCounter:       "RepeatCounter",
	OpKeyRange:            "KeyRange",
	OpKeyRangeExtern:      "KeyRangeExtern",
	OpMemAlloc:            "MemAlloc",
	OpMemFree:             "MemFree",
	OpMemLoad:             "MemLoad",
	OpMemStore:            "MemStore",
	OpMemLoadRange:        "MemLoadRange",
	OpMemStoreRange:       "MemStoreRange",
	OpMemLength:           "MemLength",
	OpHalt:                "Halt",
	OpHaltIf:              "HaltIf",
	OpJumpIf:              "JumpIf",
	OpPanicIf:             "PanicIf",
	OpRepeatStart:         "RepeatStart",
	OpRepeatEnd:           "RepeatEnd",
	OpCompute:             "Compute",
	OpComputeEnd:          "ComputeEnd",
}

func (op OpCode) String() string {
	if int(op) < 0 || int(op) >= len(opNames) {
		return "Invalid"
	}
	return opNames[op]
}

// ArgBytes returns the number of immediate bytes an opcode carries in
// its binary encoding, following immediately after the opcode byte
// (spec §6: "Push has arg_bytes = 8 ... all other ops currently have
// arg_bytes = 0"). Every operand besides Push's literal word is taken
// from the stack at execution time, not from the instruction stream.
func (op OpCode) ArgBytes() int {
	if op == OpPush {
		return 8
	}
	return 0
}

// IsValid reports whether op is an assigned opcode.
func (op OpCode) IsValid() bool {
	return int(op) >= 0 && int(op) < NumOpcodes
}

// constraintSubset holds every opcode permitted in a leaf program drawn
// from the Constraint subset: no I/O, no jumps, no halts, no memory.
var constraintSubset = func() [numOpcodes]bool {
	var excluded = map[OpCode]bool{
		OpKeyRange:       true,
		OpKeyRangeExtern: true,
		OpMemAlloc:       true,
		OpMemFree:        true,
		OpMemLoad:        true,
		OpMemStore:       true,
		OpMemLoadRange:   true,
		OpMemStoreRange:  true,
		OpMemLength:      true,
		OpHalt:           true,
		OpHaltIf:         true,
		OpJumpIf:         true,
		OpPanicIf:        true,
		OpCompute:        true,
		OpComputeEnd:     true,
	}
	var table [numOpcodes]bool
	for i := 0; i < int(numOpcodes); i++ {
		table[i] = !excluded[OpCode(i)]
	}
	return table
}()

// InConstraintSubset reports whether op may appear in a leaf program
// declared as total (spec §4.6: "the 'Constraint' subset excludes
// Halt*, Jump*, Panic*, KeyRange*, and Memory*").
func (op OpCode) InConstraintSubset() bool {
	if !op.IsValid() {
		return false
	}
	return constraintSubset[op]
}

// IsReserved reports whether op is carved out of the table but has no
// implemented semantics (the Compute family, per the open design
// question this implementation declines to resolve).
func (op OpCode) IsReserved() bool {
	return op == OpCompute || op == OpComputeEnd
}
