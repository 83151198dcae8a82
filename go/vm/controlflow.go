package vm

import "github.com/essential-contributions/essential-base-sub001/go/types"

// haltIf pops the top of the stack and reports whether execution
// should halt now (spec §4.10: "HaltIf halts iff the top is 1, errors
// on non-boolean").
func haltIf(s *Stack) (bool, error) {
	w, err := s.Pop()
	if err != nil {
		return false, err
	}
	return asBool(w)
}

// jumpIf pops (distance, cond) and computes the new instruction index
// when the jump is taken. distance is a byte offset relative to the
// current instruction's own byte offset, resolved back to an
// instruction index via program's offset table. Only forward jumps are
// allowed; distance == 0 with cond true is JumpedToSelf (spec §4.10,
// §8 "jump-forward-only").
func jumpIf(s *Stack, program *BytecodeMapped, idx int) (taken bool, newIdx int, err error) {
	distanceW, err := s.Pop()
	if err != nil {
		return false, 0, err
	}
	condW, err := s.Pop()
	if err != nil {
		return false, 0, err
	}
	cond, err := asBool(condW)
	if err != nil {
		return false, 0, err
	}
	if !cond {
		return false, 0, nil
	}
	if distanceW == 0 {
		return false, 0, ErrJumpedToSelf
	}
	if distanceW < 0 {
		return false, 0, ErrJumpBackward
	}
	target := program.OffsetAt(idx) + int(distanceW)
	resolved := program.IndexOfOffset(target)
	if resolved < 0 {
		return false, 0, ErrJumpMisaligned
	}
	return true, resolved, nil
}

// panicIf pops a condition; when true it reports a panic carrying a
// snapshot of the current stack contents (spec §4.10).
func panicIf(s *Stack) (bool, PanicError, error) {
	w, err := s.Pop()
	if err != nil {
		return false, PanicError{}, err
	}
	triggered, err := asBool(w)
	if err != nil {
		return false, PanicError{}, err
	}
	if !triggered {
		return false, PanicError{}, nil
	}
	snapshot := make([]types.Word, s.Len())
	for i := range snapshot {
		snapshot[len(snapshot)-1-i], _ = s.Peek(i)
	}
	return true, PanicError{StackSnapshot: snapshot}, nil
}
