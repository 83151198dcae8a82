package vm

// repeatDirection distinguishes a bounded countdown from a bounded
// countup repeat frame (spec §4.4).
type repeatDirection int

const (
	countDown repeatDirection = iota
	countUp
)

// repeatFrame is one nested repeat-loop activation.
type repeatFrame struct {
	counter     int
	direction   repeatDirection
	limit       int // only meaningful for countUp
	returnIndex int
}

// Repeat is the bounded nested-loop frame stack (spec §4.4). Depth is
// bounded the same way the operand Stack is, since frames live on
// their own small stack rather than interleaved with values.
type Repeat struct {
	frames []repeatFrame
}

// NewRepeat returns an empty repeat stack.
func NewRepeat() *Repeat {
	return &Repeat{}
}

// Start pushes a new frame. pc is the instruction index of the
// RepeatStart op itself; the frame's return_index is pc+1, the first
// instruction of the loop body. When countUp is false the frame counts
// down from n; when true it counts up from 0 to limit n.
func (r *Repeat) Start(pc, n int, countUpDir bool) error {
	if len(r.frames) >= StackLimit {
		return ErrRepeatOverflow
	}
	if n < 0 {
		return ErrRepeatInvalidCounter
	}
	f := repeatFrame{returnIndex: pc + 1}
	if countUpDir {
		f.direction = countUp
		f.counter = 0
		f.limit = n
	} else {
		f.direction = countDown
		f.counter = n
	}
	r.frames = append(r.frames, f)
	return nil
}

// End inspects the top frame and reports whether the loop continues.
// When it returns (true, returnIndex, nil) the caller must jump to
// returnIndex; when it returns (false, _, nil) the frame has been
// popped and execution falls through to the instruction after
// RepeatEnd.
func (r *Repeat) End() (loop bool, returnIndex int, err error) {
	if len(r.frames) == 0 {
		return false, 0, ErrRepeatEmpty
	}
	top := &r.frames[len(r.frames)-1]
	switch top.direction {
	case countDown:
		if top.counter <= 1 {
			r.pop()
			return false, 0, nil
		}
		top.counter--
		return true, top.returnIndex, nil
	case countUp:
		if top.counter >= top.limit-1 {
			r.pop()
			return false, 0, nil
		}
		top.counter++
		return true, top.returnIndex, nil
	default:
		return false, 0, ErrRepeatInvalidCounter
	}
}

// Counter reads the top frame's counter, for the RepeatCounter access
// op. Absence of a frame is an error.
func (r *Repeat) Counter() (int, error) {
	if len(r.frames) == 0 {
		return 0, ErrRepeatEmpty
	}
	return r.frames[len(r.frames)-1].counter, nil
}

// Depth reports how many frames are currently nested.
func (r *Repeat) Depth() int {
	return len(r.frames)
}

func (r *Repeat) pop() {
	r.frames = r.frames[:len(r.frames)-1]
}
