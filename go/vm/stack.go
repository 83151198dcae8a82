package vm

import (
	"fmt"
	"strings"
	"sync"

	"github.com/essential-contributions/essential-base-sub001/go/types"
)

// StackLimit is the maximum number of words a stack may hold at once
// (spec §3: "capacity ≤ STACK_LIMIT = 32 768").
const StackLimit = 32768

// Stack is the word-wide operand stack used by op execution. It is a
// fixed-capacity stack to avoid reallocation mid-program; a push past
// StackLimit fails with ErrStackOverflow. Modeled on the
// teacher's own fixed-array + sync.Pool stack, widened from a single
// 256-bit word to StackLimit 64-bit words and given the length-prefixed
// span operations the predicate VM's access and crypto ops need.
//
// The stack is not safe for concurrent use. Use NewStack to obtain one
// from the shared pool and ReturnStack to release it.
type Stack struct {
	data [StackLimit]types.Word
	len  int
}

// Len returns the number of words currently on the stack.
func (s *Stack) Len() int { return s.len }

// Push appends w to the top of the stack.
func (s *Stack) Push(w types.Word) error {
	if s.len >= StackLimit {
		return ErrStackOverflow
	}
	s.data[s.len] = w
	s.len++
	return nil
}

// Extend appends ws in order, as if each had been pushed individually.
func (s *Stack) Extend(ws []types.Word) error {
	if s.len+len(ws) > StackLimit {
		return ErrStackOverflow
	}
	copy(s.data[s.len:], ws)
	s.len += len(ws)
	return nil
}

// ReserveZeroed pushes n zero words.
func (s *Stack) ReserveZeroed(n int) error {
	if n < 0 {
		return ErrStackIndexOutOfBounds
	}
	if s.len+n > StackLimit {
		return ErrStackOverflow
	}
	for i := s.len; i < s.len+n; i++ {
		s.data[i] = 0
	}
	s.len += n
	return nil
}

// Pop removes and returns the top word.
func (s *Stack) Pop() (types.Word, error) {
	if s.len == 0 {
		return 0, ErrStackUnderflow
	}
	s.len--
	return s.data[s.len], nil
}

// Pop2 removes and returns the top two words as (second-from-top, top).
func (s *Stack) Pop2() (a, b types.Word, err error) {
	if s.len < 2 {
		return 0, 0, ErrStackUnderflow
	}
	b, err = s.Pop()
	if err != nil {
		return 0, 0, err
	}
	a, err = s.Pop()
	return a, b, err
}

// Pop3 removes and returns the top three words, bottom-to-top ordered.
func (s *Stack) Pop3() (a, b, c types.Word, err error) {
	if s.len < 3 {
		return 0, 0, 0, ErrStackUnderflow
	}
	c, _ = s.Pop()
	b, _ = s.Pop()
	a, _ = s.Pop()
	return a, b, c, nil
}

// Pop4 removes and returns the top four words, bottom-to-top ordered.
func (s *Stack) Pop4() (a, b, c, d types.Word, err error) {
	if s.len < 4 {
		return 0, 0, 0, 0, ErrStackUnderflow
	}
	d, _ = s.Pop()
	c, _ = s.Pop()
	b, _ = s.Pop()
	a, _ = s.Pop()
	return a, b, c, d, nil
}

// Pop8 removes and returns the top eight words, bottom-to-top ordered.
func (s *Stack) Pop8() ([8]types.Word, error) {
	var out [8]types.Word
	if s.len < 8 {
		return out, ErrStackUnderflow
	}
	for i := 7; i >= 0; i-- {
		out[i], _ = s.Pop()
	}
	return out, nil
}

// PopN removes and returns the top n words, bottom-to-top ordered. n
// is a fixed arity known to the caller, unlike PopLenWords whose count
// is itself read from the stack.
func (s *Stack) PopN(n int) ([]types.Word, error) {
	if n < 0 || s.len < n {
		return nil, ErrStackUnderflow
	}
	out := make([]types.Word, n)
	for i := n - 1; i >= 0; i-- {
		out[i], _ = s.Pop()
	}
	return out, nil
}

// Peek returns the word ix positions from the top without removing it;
// Peek(0) is the top of the stack.
func (s *Stack) Peek(ix int) (types.Word, error) {
	if ix < 0 || ix >= s.len {
		return 0, ErrStackIndexOutOfBounds
	}
	return s.data[s.len-ix-1], nil
}

// Load reads the word at absolute position ix, counted from the
// bottom of the stack (position 0 is the first word pushed).
func (s *Stack) Load(ix int) (types.Word, error) {
	if ix < 0 || ix >= s.len {
		return 0, ErrStackIndexOutOfBounds
	}
	return s.data[ix], nil
}

// Store overwrites the word at absolute position ix, counted from the
// bottom of the stack.
func (s *Stack) Store(ix int, w types.Word) error {
	if ix < 0 || ix >= s.len {
		return ErrStackIndexOutOfBounds
	}
	s.data[ix] = w
	return nil
}

// SelectFromStack copies the element at absolute position ix to the
// top of the stack.
func (s *Stack) SelectFromStack(ix int) error {
	w, err := s.Load(ix)
	if err != nil {
		return err
	}
	return s.Push(w)
}

// PopLenWords reads a length n from the top of the stack, hands the
// next n words (beneath it, top-down reversed to original push order)
// to f as a slice, then pops the length and those n words. f's error,
// if any, is returned unwrapped so callers can distinguish it from a
// stack fault.
func (s *Stack) PopLenWords(f func([]types.Word) error) error {
	n, err := s.Pop()
	if err != nil {
		return err
	}
	if n < 0 {
		return ErrStackIndexOutOfBounds
	}
	count := int(n)
	if count > s.len {
		return ErrStackUnderflow
	}
	words := make([]types.Word, count)
	for i := count - 1; i >= 0; i-- {
		words[i], _ = s.Pop()
	}
	return f(words)
}

// PopLenWords2 reads two consecutive length-prefixed spans from the
// top of the stack (the second span, then the first, in pop order) and
// hands both to f in (first, second) order.
func (s *Stack) PopLenWords2(f func(first, second []types.Word) error) error {
	var second []types.Word
	if err := s.PopLenWords(func(ws []types.Word) error {
		second = ws
		return nil
	}); err != nil {
		return err
	}
	return s.PopLenWords(func(first []types.Word) error {
		return f(first, second)
	})
}

func (s *Stack) String() string {
	b := strings.Builder{}
	for i := 0; i < s.len; i++ {
		b.WriteString(fmt.Sprintf("    [%5d] %d\n", s.len-i-1, s.data[s.len-i-1]))
	}
	return b.String()
}

// ------------------ Stack Pool ------------------

var stackPool = sync.Pool{
	New: func() interface{} {
		return &Stack{}
	},
}

// NewStack returns a zeroed stack from a shared reuse pool, avoiding a
// 256KB allocation per predicate evaluation. Thread-safe.
func NewStack() *Stack {
	return stackPool.Get().(*Stack)
}

// ReturnStack resets and returns s to the pool. A stack may only be
// returned once; concurrent reuse after return is undefined.
// Thread-safe.
func ReturnStack(s *Stack) {
	s.len = 0
	stackPool.Put(s)
}
