package types

// ConstError is a comparable, constant error value. Modeled on the
// teacher's own error declarations in go/interpreter/lfvm/errors.go,
// which use the same pattern for sentinel VM errors.
type ConstError string

func (e ConstError) Error() string { return string(e) }

// Gas is the unit used to meter op execution (C14).
type Gas = uint64
