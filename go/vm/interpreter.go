package vm

import "github.com/essential-contributions/essential-base-sub001/go/types"

// VM holds everything one node's program execution needs: the decoded
// program, the operand machinery (Stack, Memory, Repeat), the
// read-only Access view, and the pre/post state readers it is entitled
// to consult (spec §4.11). A VM is built fresh per node evaluation;
// its Stack is typically obtained from NewStack and returned to the
// stack pool with ReturnStack by the caller once the node's result has
// been captured. Memory is not pooled: NewMemory allocates a new one.
type VM struct {
	Program *BytecodeMapped
	Stack   *Stack
	Memory  *Memory
	Repeat  *Repeat
	Access  *Access

	// PreState and PostState back the KeyRange/KeyRangeExtern ops.
	// Which of the two a node may reach is decided by the graph runner
	// before Run is called, by wiring only the reader(s) its declared
	// reads flag permits (spec §4.9, §4.12 point 4).
	PreState  StateReader
	PostState StateReader

	GasCost GasCostFunc
	Gas     types.Gas // cumulative spend so far
	GasMax  types.Gas
}

// Run executes Program from its first instruction to completion,
// returning whether it halted (explicitly via Halt/HaltIf, or
// implicitly by reaching the end of the program). Every op-level error
// is wrapped with the instruction index that produced it (spec §7:
// "Every op error is wrapped as Exec(pc, inner)").
func (vm *VM) Run() (halted bool, err error) {
	if vm.GasCost == nil {
		vm.GasCost = DefaultGasCost
	}

	idx := 0
	for {
		if idx >= vm.Program.Len() {
			// Falling off the end of the program is an implicit halt
			// (spec §4.11 step 1).
			return true, nil
		}

		op := vm.Program.OpAt(idx)
		cost := vm.GasCost(op)
		if vm.Gas+cost > vm.GasMax {
			return false, OutOfGasError{Spent: vm.Gas, OpGas: cost, Limit: vm.GasMax}
		}
		vm.Gas += cost

		next := idx + 1
		stop, err := vm.dispatch(op, idx, &next)
		if err != nil {
			return false, ExecError{OpIndex: idx, Err: err}
		}
		if stop {
			return true, nil
		}
		idx = next
	}
}

// dispatch executes a single instruction. On a taken jump or a
// completed repeat iteration it overwrites *next with the resolved
// instruction index; otherwise *next is left as idx+1. stop reports an
// explicit Halt/HaltIf.
func (vm *VM) dispatch(op OpCode, idx int, next *int) (stop bool, err error) {
	s, m, r, a := vm.Stack, vm.Memory, vm.Repeat, vm.Access

	switch op {

	// ---- Stack family ----
	case OpPush:
		return false, s.Push(vm.Program.PushArgAt(idx))
	case OpPop:
		_, err := s.Pop()
		return false, err
	case OpDup:
		return false, s.SelectFromStack(s.Len() - 1)
	case OpSwap:
		topIx := s.Len() - 1
		otherIx := topIx - 1
		top, err := s.Load(topIx)
		if err != nil {
			return false, err
		}
		other, err := s.Load(otherIx)
		if err != nil {
			return false, err
		}
		if err := s.Store(topIx, other); err != nil {
			return false, err
		}
		return false, s.Store(otherIx, top)
	case OpSelectFromStack:
		n, err := s.Pop()
		if err != nil {
			return false, err
		}
		return false, s.SelectFromStack(int(n))
	case OpReserve:
		n, err := s.Pop()
		if err != nil {
			return false, err
		}
		return false, s.ReserveZeroed(int(n))
	case OpStackLoad:
		ix, err := s.Pop()
		if err != nil {
			return false, err
		}
		w, err := s.Load(int(ix))
		if err != nil {
			return false, err
		}
		return false, s.Push(w)
	case OpStackStore:
		ix, err := s.Pop()
		if err != nil {
			return false, err
		}
		w, err := s.Pop()
		if err != nil {
			return false, err
		}
		return false, s.Store(int(ix), w)

	// ---- Alu family ----
	case OpAdd:
		return false, binaryAlu(s, aluAdd)
	case OpSub:
		return false, binaryAlu(s, aluSub)
	case OpMul:
		return false, binaryAlu(s, aluMul)
	case OpDiv:
		return false, binaryAlu(s, aluDiv)
	case OpMod:
		return false, binaryAlu(s, aluMod)
	case OpShl:
		return false, binaryAlu(s, aluShl)
	case OpShr:
		return false, binaryAlu(s, aluShr)
	case OpSar:
		return false, binaryAlu(s, aluSar)

	// ---- Pred family ----
	case OpEq:
		return false, pureBinaryPred(s, predEq)
	case OpGt:
		return false, pureBinaryPred(s, predGt)
	case OpLt:
		return false, pureBinaryPred(s, predLt)
	case OpGte:
		return false, pureBinaryPred(s, predGte)
	case OpLte:
		return false, pureBinaryPred(s, predLte)
	case OpAnd:
		return false, binaryAlu(s, predAnd)
	case OpOr:
		return false, binaryAlu(s, predOr)
	case OpNot:
		v, err := s.Pop()
		if err != nil {
			return false, err
		}
		negated, err := predNot(v)
		if err != nil {
			return false, err
		}
		return false, s.Push(negated)
	case OpEqRange:
		var result types.Word
		err := s.PopLenWords2(func(first, second []types.Word) error {
			result = predEqRange(first, second)
			return nil
		})
		if err != nil {
			return false, err
		}
		return false, s.Push(result)
	case OpEqSet:
		var result types.Word
		err := s.PopLenWords2(func(first, second []types.Word) error {
			eq, err := predEqSet(first, second)
			result = eq
			return err
		})
		if err != nil {
			return false, err
		}
		return false, s.Push(result)

	// ---- Crypto family ----
	case OpSha256:
		return false, cryptoSha256(s)
	case OpVerifyEd25519:
		return false, cryptoVerifyEd25519(s)
	case OpRecoverSecp256k1:
		return false, cryptoRecoverSecp256k1(s)

	// ---- Access family ----
	case OpPredicateData:
		lenW, err := s.Pop()
		if err != nil {
			return false, err
		}
		valueIxW, err := s.Pop()
		if err != nil {
			return false, err
		}
		slotIxW, err := s.Pop()
		if err != nil {
			return false, err
		}
		words, err := accessPredicateData(a, int(slotIxW), int(valueIxW), int(lenW))
		if err != nil {
			return false, err
		}
		return false, s.Extend(words)
	case OpPredicateDataLen:
		slotIxW, err := s.Pop()
		if err != nil {
			return false, err
		}
		n, err := accessPredicateDataLen(a, int(slotIxW))
		if err != nil {
			return false, err
		}
		return false, s.Push(types.Word(n))
	case OpNumSlots:
		whichW, err := s.Pop()
		if err != nil {
			return false, err
		}
		n, err := accessNumSlots(a, int(whichW))
		if err != nil {
			return false, err
		}
		return false, s.Push(types.Word(n))
	case OpMutKeys:
		words := encodeKeySet(a.MutKeys)
		if err := s.Extend(words); err != nil {
			return false, err
		}
		return false, s.Push(types.Word(len(words)))
	case OpThisAddress:
		out := accessThisAddress(a)
		return false, s.Extend(out[:])
	case OpThisContractAddress:
		out := accessThisContractAddress(a)
		return false, s.Extend(out[:])
	case OpPredicateExists:
		return false, accessPredicateExists(a, s)
	case OpRepeatCounter:
		n, err := r.Counter()
		if err != nil {
			return false, err
		}
		return false, s.Push(types.Word(n))

	// ---- StateRead family ----
	case OpKeyRange:
		return false, keyRange(vm.readerFor(), a.ThisContractAddress, s, m)
	case OpKeyRangeExtern:
		return false, keyRangeExtern(vm.readerFor(), s, m)

	// ---- Memory family ----
	case OpMemAlloc:
		n, err := s.Pop()
		if err != nil {
			return false, err
		}
		return false, m.Alloc(int(n))
	case OpMemFree:
		n, err := s.Pop()
		if err != nil {
			return false, err
		}
		return false, m.Free(int(n))
	case OpMemLoad:
		addr, err := s.Pop()
		if err != nil {
			return false, err
		}
		w, err := m.Load(int(addr))
		if err != nil {
			return false, err
		}
		return false, s.Push(w)
	case OpMemStore:
		v, err := s.Pop()
		if err != nil {
			return false, err
		}
		addr, err := s.Pop()
		if err != nil {
			return false, err
		}
		return false, m.Store(int(addr), v)
	case OpMemLoadRange:
		n, err := s.Pop()
		if err != nil {
			return false, err
		}
		addr, err := s.Pop()
		if err != nil {
			return false, err
		}
		ws, err := m.LoadRange(int(addr), int(n))
		if err != nil {
			return false, err
		}
		return false, s.Extend(ws)
	case OpMemStoreRange:
		return false, s.PopLenWords(func(ws []types.Word) error {
			addr, err := s.Pop()
			if err != nil {
				return err
			}
			return m.StoreRange(int(addr), ws)
		})
	case OpMemLength:
		return false, s.Push(types.Word(m.Length()))

	// ---- TotalControlFlow family ----
	case OpHalt:
		return true, nil
	case OpHaltIf:
		halt, err := haltIf(s)
		return halt, err
	case OpJumpIf:
		taken, newIdx, err := jumpIf(s, vm.Program, idx)
		if err != nil {
			return false, err
		}
		if taken {
			*next = newIdx
		}
		return false, nil
	case OpPanicIf:
		triggered, panicErr, err := panicIf(s)
		if err != nil {
			return false, err
		}
		if triggered {
			return false, panicErr
		}
		return false, nil

	// ---- Repeat family ----
	case OpRepeatStart:
		countUpW, err := s.Pop()
		if err != nil {
			return false, err
		}
		n, err := s.Pop()
		if err != nil {
			return false, err
		}
		countUp, err := asBool(countUpW)
		if err != nil {
			return false, err
		}
		return false, r.Start(idx, int(n), countUp)
	case OpRepeatEnd:
		loop, returnIndex, err := r.End()
		if err != nil {
			return false, err
		}
		if loop {
			*next = returnIndex
		}
		return false, nil

	default:
		return false, ErrReservedOpcode
	}
}

// readerFor resolves the state reader the currently executing node may
// use. The graph runner wires only the reader(s) permitted by the
// node's declared reads flag; a node entitled to both sees the
// post-state view take precedence (spec §4.9, §4.12 point 4).
func (vm *VM) readerFor() StateReader {
	if vm.PostState != nil {
		return vm.PostState
	}
	return vm.PreState
}

// binaryAlu pops two operands, applies f, and pushes the single
// result. Shared by the Alu family (checked arithmetic) and the two
// strict boolean Pred ops (And/Or), since both shapes are
// pop-2/push-1-with-possible-error.
func binaryAlu(s *Stack, f func(a, b types.Word) (types.Word, error)) error {
	a, b, err := s.Pop2()
	if err != nil {
		return err
	}
	v, err := f(a, b)
	if err != nil {
		return err
	}
	return s.Push(v)
}

// pureBinaryPred pops two operands, applies f, and pushes the result;
// f never fails (the strict comparison ops only ever produce 0/1).
func pureBinaryPred(s *Stack, f func(a, b types.Word) types.Word) error {
	a, b, err := s.Pop2()
	if err != nil {
		return err
	}
	return s.Push(f(a, b))
}
