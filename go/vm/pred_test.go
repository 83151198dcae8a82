package vm

import (
	"testing"

	"github.com/essential-contributions/essential-base-sub001/go/types"
)

func TestPredComparisons(t *testing.T) {
	if predEq(3, 3) != 1 || predEq(3, 4) != 0 {
		t.Errorf("eq failed")
	}
	if predGt(4, 3) != 1 || predGt(3, 4) != 0 {
		t.Errorf("gt failed")
	}
	if predLt(3, 4) != 1 || predLt(4, 3) != 0 {
		t.Errorf("lt failed")
	}
	if predGte(3, 3) != 1 || predGte(2, 3) != 0 {
		t.Errorf("gte failed")
	}
	if predLte(3, 3) != 1 || predLte(4, 3) != 0 {
		t.Errorf("lte failed")
	}
}

func TestPredAndOrNot(t *testing.T) {
	got, err := predAnd(1, 1)
	if err != nil || got != 1 {
		t.Fatalf("and(1,1): got %d err %v", got, err)
	}
	got, err = predOr(0, 1)
	if err != nil || got != 1 {
		t.Fatalf("or(0,1): got %d err %v", got, err)
	}
	got, err = predNot(0)
	if err != nil || got != 1 {
		t.Fatalf("not(0): got %d err %v", got, err)
	}
	if _, err := predAnd(2, 1); err != ErrInvalidCondition {
		t.Fatalf("expected invalid condition, got %v", err)
	}
}

func TestPredEqRange(t *testing.T) {
	if predEqRange([]types.Word{1, 2, 3}, []types.Word{1, 2, 3}) != 1 {
		t.Errorf("expected equal ranges to compare equal")
	}
	if predEqRange([]types.Word{1, 2}, []types.Word{1, 2, 3}) != 0 {
		t.Errorf("expected different-length ranges to compare unequal")
	}
}

func TestPredEqSet_OrderIndependent(t *testing.T) {
	// two members: [1,2] and [3]
	a := []types.Word{2, 1, 2, 1, 3}
	b := []types.Word{1, 3, 2, 1, 2}
	got, err := predEqSet(a, b)
	if err != nil {
		t.Fatalf("eq_set failed: %v", err)
	}
	if got != 1 {
		t.Errorf("expected sets to compare equal regardless of member order")
	}
}

func TestPredEqSet_DifferentMultisetsCompareUnequal(t *testing.T) {
	a := []types.Word{1, 1}
	b := []types.Word{1, 2}
	got, err := predEqSet(a, b)
	if err != nil {
		t.Fatalf("eq_set failed: %v", err)
	}
	if got != 0 {
		t.Errorf("expected distinct multisets to compare unequal")
	}
}

func TestPredEqSet_RejectsMalformedPayload(t *testing.T) {
	a := []types.Word{5, 1}
	b := []types.Word{0}
	if _, err := predEqSet(a, b); err != ErrDecodeMalformedSetPayload {
		t.Fatalf("expected malformed set payload error, got %v", err)
	}
}
