package vm

import (
	"testing"

	"github.com/essential-contributions/essential-base-sub001/go/types"
)

func TestAluAdd(t *testing.T) {
	got, err := aluAdd(3, 4)
	if err != nil || got != 7 {
		t.Fatalf("3+4: got %d err %v", got, err)
	}
	if _, err := aluAdd(minWordMax(), 1); err != ErrAluOverflow {
		t.Fatalf("expected overflow adding past max, got %v", err)
	}
	if _, err := aluAdd(minWord, -1); err != ErrAluUnderflow {
		t.Fatalf("expected underflow subtracting past min via negative add, got %v", err)
	}
}

func minWordMax() types.Word { return types.Word(1<<63 - 1) }

func TestAluSub(t *testing.T) {
	got, err := aluSub(10, 4)
	if err != nil || got != 6 {
		t.Fatalf("10-4: got %d err %v", got, err)
	}
	if _, err := aluSub(minWord, 1); err != ErrAluUnderflow {
		t.Fatalf("expected underflow, got %v", err)
	}
}

func TestAluMul(t *testing.T) {
	got, err := aluMul(6, 7)
	if err != nil || got != 42 {
		t.Fatalf("6*7: got %d err %v", got, err)
	}
	if _, err := aluMul(minWordMax(), 2); err != ErrAluOverflow {
		t.Fatalf("expected overflow, got %v", err)
	}
	got, err = aluMul(0, minWordMax())
	if err != nil || got != 0 {
		t.Fatalf("0*x: got %d err %v", got, err)
	}
}

func TestAluDiv(t *testing.T) {
	if _, err := aluDiv(42, 0); err != ErrAluDivideByZero {
		t.Fatalf("expected divide by zero, got %v", err)
	}
	got, err := aluDiv(42, 6)
	if err != nil || got != 7 {
		t.Fatalf("42/6: got %d err %v", got, err)
	}
	if _, err := aluDiv(minWord, -1); err != ErrAluOverflow {
		t.Fatalf("expected overflow dividing min by -1, got %v", err)
	}
}

func TestAluMod(t *testing.T) {
	if _, err := aluMod(42, 0); err != ErrAluDivideByZero {
		t.Fatalf("expected divide by zero, got %v", err)
	}
	got, err := aluMod(10, 3)
	if err != nil || got != 1 {
		t.Fatalf("10%%3: got %d err %v", got, err)
	}
}

func TestAluShifts(t *testing.T) {
	if _, err := aluShl(1, 64); err != ErrAluShiftOutOfRange {
		t.Fatalf("expected shift out of range, got %v", err)
	}
	if _, err := aluShl(1, -1); err != ErrAluShiftOutOfRange {
		t.Fatalf("expected shift out of range for negative shift, got %v", err)
	}
	got, _ := aluShl(1, 4)
	if got != 16 {
		t.Fatalf("1<<4: got %d", got)
	}
	got, _ = aluShr(-1, 63)
	if got != 1 {
		t.Fatalf("logical shr of -1 by 63: want 1, got %d", got)
	}
	got, _ = aluSar(-1, 63)
	if got != -1 {
		t.Fatalf("arithmetic sar of -1 by 63: want -1, got %d", got)
	}
}
