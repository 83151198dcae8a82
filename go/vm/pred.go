package vm

import "github.com/essential-contributions/essential-base-sub001/go/types"

// boolWord encodes a Go bool as the 0/1 Word convention used
// throughout the system (spec §4.7: "Booleans are encoded as 0/1").
func boolWord(b bool) types.Word {
	if b {
		return 1
	}
	return 0
}

// asBool decodes a Word as a boolean, failing on anything but 0/1.
func asBool(w types.Word) (bool, error) {
	switch w {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, ErrInvalidCondition
	}
}

func predEq(a, b types.Word) types.Word    { return boolWord(a == b) }
func predGt(a, b types.Word) types.Word    { return boolWord(a > b) }
func predLt(a, b types.Word) types.Word    { return boolWord(a < b) }
func predGte(a, b types.Word) types.Word   { return boolWord(a >= b) }
func predLte(a, b types.Word) types.Word   { return boolWord(a <= b) }

// predAnd/predOr/predNot operate on the 0/1 boolean encoding and fail
// with InvalidCondition on any other value, mirroring the strictness
// of the comparison ops.
func predAnd(a, b types.Word) (types.Word, error) {
	ab, err := asBool(a)
	if err != nil {
		return 0, err
	}
	bb, err := asBool(b)
	if err != nil {
		return 0, err
	}
	return boolWord(ab && bb), nil
}

func predOr(a, b types.Word) (types.Word, error) {
	ab, err := asBool(a)
	if err != nil {
		return 0, err
	}
	bb, err := asBool(b)
	if err != nil {
		return 0, err
	}
	return boolWord(ab || bb), nil
}

func predNot(a types.Word) (types.Word, error) {
	ab, err := asBool(a)
	if err != nil {
		return 0, err
	}
	return boolWord(!ab), nil
}

// predEqRange compares two equal-length spans element-wise.
func predEqRange(lhs, rhs []types.Word) types.Word {
	if len(lhs) != len(rhs) {
		return 0
	}
	for i := range lhs {
		if lhs[i] != rhs[i] {
			return 0
		}
	}
	return 1
}

// predEqSet interprets each span as a concatenation of length-prefixed
// members and compares them as unordered multisets: equal in size, and
// every member of one appears in the other (spec §4.7, §8 "Set
// equality is order-independent").
func predEqSet(lhs, rhs []types.Word) (types.Word, error) {
	lhsMembers, err := decodeMembers(lhs)
	if err != nil {
		return 0, err
	}
	rhsMembers, err := decodeMembers(rhs)
	if err != nil {
		return 0, err
	}
	if len(lhsMembers) != len(rhsMembers) {
		return 0, nil
	}
	used := make([]bool, len(rhsMembers))
	for _, m := range lhsMembers {
		found := false
		for j, candidate := range rhsMembers {
			if used[j] {
				continue
			}
			if wordsEqual(m, candidate) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return 0, nil
		}
	}
	return 1, nil
}

func decodeMembers(span []types.Word) ([][]types.Word, error) {
	var members [][]types.Word
	for i := 0; i < len(span); {
		n := span[i]
		if n < 0 {
			return nil, ErrDecodeNegativeLength
		}
		count := int(n)
		start := i + 1
		end := start + count
		if end > len(span) {
			return nil, ErrDecodeMalformedSetPayload
		}
		members = append(members, span[start:end])
		i = end
	}
	return members, nil
}

func wordsEqual(a, b []types.Word) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
