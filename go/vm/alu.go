package vm

import "github.com/essential-contributions/essential-base-sub001/go/types"

// Checked 64-bit arithmetic (spec §4.7, §8 "ALU totality"): every op
// either returns the mathematically correct result or an error, never
// a silent wraparound. Grounded on the overflow/underflow checks in
// the original alu module, re-expressed with Go's int64 and the
// add/sub/mul overflow idioms from math/bits-style checked arithmetic.

func aluAdd(a, b types.Word) (types.Word, error) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, ErrAluOverflow
	}
	return sum, nil
}

func aluSub(a, b types.Word) (types.Word, error) {
	diff := a - b
	if (b < 0 && diff < a) || (b > 0 && diff > a) {
		return 0, ErrAluUnderflow
	}
	return diff, nil
}

func aluMul(a, b types.Word) (types.Word, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if (a == minWord && b == -1) || (a == -1 && b == minWord) {
		return 0, ErrAluOverflow
	}
	prod := a * b
	if prod/b != a {
		return 0, ErrAluOverflow
	}
	return prod, nil
}

func aluDiv(a, b types.Word) (types.Word, error) {
	if b == 0 {
		return 0, ErrAluDivideByZero
	}
	if a == minWord && b == -1 {
		return 0, ErrAluOverflow
	}
	return a / b, nil
}

func aluMod(a, b types.Word) (types.Word, error) {
	if b == 0 {
		return 0, ErrAluDivideByZero
	}
	if a == minWord && b == -1 {
		return 0, nil
	}
	return a % b, nil
}

const minWord = types.Word(-1 << 63)

func aluShl(a, shift types.Word) (types.Word, error) {
	if shift < 0 || shift >= 64 {
		return 0, ErrAluShiftOutOfRange
	}
	return types.Word(uint64(a) << uint(shift)), nil
}

func aluShr(a, shift types.Word) (types.Word, error) {
	if shift < 0 || shift >= 64 {
		return 0, ErrAluShiftOutOfRange
	}
	return types.Word(uint64(a) >> uint(shift)), nil
}

func aluSar(a, shift types.Word) (types.Word, error) {
	if shift < 0 || shift >= 64 {
		return 0, ErrAluShiftOutOfRange
	}
	return a >> uint(shift), nil
}
