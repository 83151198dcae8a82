package vm

import (
	"testing"

	"github.com/essential-contributions/essential-base-sub001/go/types"
)

func TestHaltIf(t *testing.T) {
	s := NewStack()
	defer ReturnStack(s)

	s.Push(1)
	halt, err := haltIf(s)
	if err != nil || !halt {
		t.Fatalf("expected halt=true, got %v, err=%v", halt, err)
	}

	s.Push(0)
	halt, err = haltIf(s)
	if err != nil || halt {
		t.Fatalf("expected halt=false, got %v, err=%v", halt, err)
	}

	s.Push(2)
	if _, err := haltIf(s); err != ErrInvalidCondition {
		t.Fatalf("expected ErrInvalidCondition, got %v", err)
	}
}

func buildProgram(t *testing.T, ops []Instruction) *BytecodeMapped {
	t.Helper()
	p, err := NewBytecodeMappedFromOps(ops)
	if err != nil {
		t.Fatalf("build program: %v", err)
	}
	return p
}

func TestJumpIf_ForwardTaken(t *testing.T) {
	program := buildProgram(t, []Instruction{
		{Op: OpJumpIf},  // index 0
		{Op: OpPop},     // index 1
		{Op: OpHalt},    // index 2
	})

	s := NewStack()
	defer ReturnStack(s)

	distance := program.OffsetAt(2) - program.OffsetAt(0)
	s.Push(1) // cond
	s.Push(types.Word(distance))

	taken, idx, err := jumpIf(s, program, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !taken || idx != 2 {
		t.Fatalf("expected jump to index 2, got taken=%v idx=%d", taken, idx)
	}
}

func TestJumpIf_NotTakenFallsThrough(t *testing.T) {
	program := buildProgram(t, []Instruction{
		{Op: OpJumpIf},
		{Op: OpPop},
		{Op: OpHalt},
	})
	s := NewStack()
	defer ReturnStack(s)

	s.Push(0) // cond false
	s.Push(5)

	taken, _, err := jumpIf(s, program, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if taken {
		t.Fatalf("expected no jump")
	}
}

func TestJumpIf_SelfJumpIsError(t *testing.T) {
	program := buildProgram(t, []Instruction{
		{Op: OpJumpIf},
		{Op: OpHalt},
	})
	s := NewStack()
	defer ReturnStack(s)

	s.Push(1)
	s.Push(0)

	if _, _, err := jumpIf(s, program, 0); err != ErrJumpedToSelf {
		t.Fatalf("expected ErrJumpedToSelf, got %v", err)
	}
}

func TestJumpIf_BackwardIsError(t *testing.T) {
	program := buildProgram(t, []Instruction{
		{Op: OpHalt},
		{Op: OpJumpIf},
	})
	s := NewStack()
	defer ReturnStack(s)

	s.Push(1)
	s.Push(-1)

	if _, _, err := jumpIf(s, program, 1); err != ErrJumpBackward {
		t.Fatalf("expected ErrJumpBackward, got %v", err)
	}
}

func TestJumpIf_MisalignedTargetIsError(t *testing.T) {
	program := buildProgram(t, []Instruction{
		{Op: OpJumpIf},
		{Op: OpPush, Arg: 9},
		{Op: OpHalt},
	})
	s := NewStack()
	defer ReturnStack(s)

	s.Push(1)
	// Jump into the middle of the Push immediate, not an instruction boundary.
	s.Push(types.Word(program.OffsetAt(1) + 3 - program.OffsetAt(0)))

	if _, _, err := jumpIf(s, program, 0); err != ErrJumpMisaligned {
		t.Fatalf("expected ErrJumpMisaligned, got %v", err)
	}
}

func TestPanicIf_CapturesSnapshot(t *testing.T) {
	s := NewStack()
	defer ReturnStack(s)

	s.Push(10)
	s.Push(20)
	s.Push(1) // trigger

	triggered, panicErr, err := panicIf(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !triggered {
		t.Fatalf("expected panic to trigger")
	}
	want := []types.Word{10, 20}
	if len(panicErr.StackSnapshot) != len(want) {
		t.Fatalf("snapshot length = %d, want %d", len(panicErr.StackSnapshot), len(want))
	}
	for i := range want {
		if panicErr.StackSnapshot[i] != want[i] {
			t.Errorf("snapshot[%d] = %d, want %d", i, panicErr.StackSnapshot[i], want[i])
		}
	}
}

func TestPanicIf_NotTriggered(t *testing.T) {
	s := NewStack()
	defer ReturnStack(s)

	s.Push(0)
	triggered, _, err := panicIf(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if triggered {
		t.Fatalf("expected no panic")
	}
}
