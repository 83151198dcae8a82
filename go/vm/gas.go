package vm

import "github.com/essential-contributions/essential-base-sub001/go/types"

// opGasCostTable assigns a static per-opcode cost, keyed by opcode
// byte exactly like the teacher's own fork-indexed gas tables. Unlike
// the teacher, this implementation has no fork dimension: the cost
// function is injected by callers of the graph runner (spec §4.14,
// "op_gas_cost(op) -> u64 is injected"), and this table is merely the
// default implementation of that function.
var opGasCostTable = [numOpcodes]types.Gas{
	OpPush:            1,
	OpPop:             1,
	OpDup:             1,
	OpSwap:            1,
	OpSelectFromStack: 1,
	OpReserve:         1,
	OpStackLoad:       1,
	OpStackStore:      1,

	OpAdd: 1,
	OpSub: 1,
	OpMul: 1,
	OpDiv: 1,
	OpMod: 1,
	OpShl: 1,
	OpShr: 1,
	OpSar: 1,

	OpEq:      1,
	OpGt:      1,
	OpLt:      1,
	OpGte:     1,
	OpLte:     1,
	OpAnd:     1,
	OpOr:      1,
	OpNot:     1,
	OpEqRange: 1,
	OpEqSet:   1,

	OpSha256:           12,
	OpVerifyEd25519:    25,
	OpRecoverSecp256k1: 25,

	OpPredicateData:       1,
	OpPredicateDataLen:    1,
	OpNumSlots:            1,
	OpMutKeys:             1,
	OpThisAddress:         1,
	OpThisContractAddress: 1,
	OpPredicateExists:     5,
	OpRepeatCounter:       1,

	OpKeyRange:       10,
	OpKeyRangeExtern: 10,

	OpMemAlloc:      2,
	OpMemFree:       1,
	OpMemLoad:       1,
	OpMemStore:      1,
	OpMemLoadRange:  1,
	OpMemStoreRange: 1,
	OpMemLength:     1,

	OpHalt:    1,
	OpHaltIf:  1,
	OpJumpIf:  1,
	OpPanicIf: 1,

	OpRepeatStart: 1,
	OpRepeatEnd:   1,
}

// GasCostFunc computes the cost of executing op. The graph runner
// accepts one of these as an injected dependency rather than hardcoding
// a schedule (spec §4.11 step 2, §4.14).
type GasCostFunc func(op OpCode) types.Gas

// DefaultGasCost is the built-in GasCostFunc, a static per-opcode
// schedule read from opGasCostTable. Callers that need a different pricing model (e.g. a
// protocol that meters by wall-clock cost) supply their own
// GasCostFunc to the graph runner instead.
func DefaultGasCost(op OpCode) types.Gas {
	if !op.IsValid() {
		return 0
	}
	return opGasCostTable[op]
}
