package vm

import (
	"fmt"

	"github.com/essential-contributions/essential-base-sub001/go/types"
)

// Per-family sentinel errors. Modeled on the teacher's own
// go/interpreter/lfvm/errors.go, which declares comparable constant
// errors rather than allocating error values at the failure site.
const (
	ErrStackOverflow        = types.ConstError("stack: overflow")
	ErrStackUnderflow       = types.ConstError("stack: underflow")
	ErrStackIndexOutOfBounds = types.ConstError("stack: index out of bounds")
	ErrStackBadLengthPrefix = types.ConstError("stack: bad length prefix")

	ErrMemoryOverflow        = types.ConstError("memory: overflow")
	ErrMemoryIndexOutOfBounds = types.ConstError("memory: index out of bounds")
	ErrMemoryFreePastLength  = types.ConstError("memory: free past current length")

	ErrAluOverflow       = types.ConstError("alu: overflow")
	ErrAluUnderflow      = types.ConstError("alu: underflow")
	ErrAluDivideByZero   = types.ConstError("alu: divide by zero")
	ErrAluShiftOutOfRange = types.ConstError("alu: shift amount out of range")

	ErrCryptoMalformedPublicKey = types.ConstError("crypto: malformed public key")
	ErrCryptoMalformedSignature = types.ConstError("crypto: malformed signature")
	ErrCryptoInvalidRecoveryID  = types.ConstError("crypto: invalid recovery id")

	ErrAccessNegativeIndex    = types.ConstError("access: negative index")
	ErrAccessOutOfBounds      = types.ConstError("access: out of bounds")

	ErrRepeatOverflow       = types.ConstError("repeat: overflow")
	ErrRepeatEmpty          = types.ConstError("repeat: empty")
	ErrRepeatInvalidCounter = types.ConstError("repeat: invalid count direction")

	ErrDecodeMalformedBytecode  = types.ConstError("decode: malformed bytecode")
	ErrDecodeMalformedSetPayload = types.ConstError("decode: malformed set payload")
	ErrDecodeNegativeLength     = types.ConstError("decode: negative length")

	ErrInvalidCondition = types.ConstError("control flow: invalid boolean condition")
	ErrJumpedToSelf      = types.ConstError("control flow: jump to self")
	ErrJumpBackward      = types.ConstError("control flow: only forward jumps are allowed")
	ErrJumpMisaligned    = types.ConstError("control flow: jump target is not an instruction boundary")

	ErrInvalidEvaluation = types.ConstError("leaf program did not halt with exactly one boolean on the stack")

	ErrReservedOpcode = types.ConstError("decode: reserved opcode with no implemented semantics")
)

// AccessMissingArgKind identifies which stack argument an Access op was
// missing (spec §4.8: "a missing stack argument fails with
// Access::MissingArg(kind)").
type AccessMissingArgKind string

const (
	MissingArgSlotIx   AccessMissingArgKind = "slot_ix"
	MissingArgValueIx  AccessMissingArgKind = "value_ix"
	MissingArgLen      AccessMissingArgKind = "len"
	MissingArgWhich    AccessMissingArgKind = "which"
	MissingArgBlobLen  AccessMissingArgKind = "blob_len"
)

// AccessMissingArgError reports a missing stack argument for an Access
// op, naming which argument was absent.
type AccessMissingArgError struct {
	Kind AccessMissingArgKind
}

func (e AccessMissingArgError) Error() string {
	return fmt.Sprintf("access: missing argument %q", e.Kind)
}

// StateReadError wraps an opaque error returned by a StateReader
// implementation, passed through untouched per spec §7.
type StateReadError struct {
	Err error
}

func (e StateReadError) Error() string { return fmt.Sprintf("state read: %v", e.Err) }
func (e StateReadError) Unwrap() error { return e.Err }

// PanicError is raised by PanicIf: it carries a snapshot of the stack
// at the moment of the panic as diagnostic payload.
type PanicError struct {
	StackSnapshot []types.Word
}

func (e PanicError) Error() string {
	return fmt.Sprintf("panic: stack at panic = %v", e.StackSnapshot)
}

// OutOfGasError reports a gas-limit breach, carrying the spend at the
// time of the breach, the cost of the op that would have breached it,
// and the limit in force.
type OutOfGasError struct {
	Spent types.Gas
	OpGas types.Gas
	Limit types.Gas
}

func (e OutOfGasError) Error() string {
	return fmt.Sprintf("out of gas: spent=%d op_gas=%d limit=%d", e.Spent, e.OpGas, e.Limit)
}

// ExecError wraps any op-level error with the program-counter index of
// the op that produced it (spec §7: "Every op error is wrapped as
// Exec(pc, inner)").
type ExecError struct {
	OpIndex int
	Err     error
}

func (e ExecError) Error() string { return fmt.Sprintf("op %d: %v", e.OpIndex, e.Err) }
func (e ExecError) Unwrap() error { return e.Err }

// NodeError wraps any program-level error with the index of the
// predicate-graph node that produced it.
type NodeError struct {
	NodeIndex int
	Err       error
}

func (e NodeError) Error() string { return fmt.Sprintf("node %d: %v", e.NodeIndex, e.Err) }
func (e NodeError) Unwrap() error { return e.Err }

// SolutionError wraps any node-level error with the index of the
// solution that produced it.
type SolutionError struct {
	SolutionIndex int
	Err           error
}

func (e SolutionError) Error() string {
	return fmt.Sprintf("solution %d: %v", e.SolutionIndex, e.Err)
}
func (e SolutionError) Unwrap() error { return e.Err }
