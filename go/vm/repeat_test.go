package vm

import "testing"

func TestRepeat_CountDown_LoopsThenFallsThrough(t *testing.T) {
	r := NewRepeat()
	if err := r.Start(10, 3, false); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	loop, ret, err := r.End()
	if err != nil || !loop || ret != 11 {
		t.Fatalf("iteration 1: loop=%v ret=%d err=%v", loop, ret, err)
	}
	loop, ret, err = r.End()
	if err != nil || !loop || ret != 11 {
		t.Fatalf("iteration 2: loop=%v ret=%d err=%v", loop, ret, err)
	}
	loop, _, err = r.End()
	if err != nil || loop {
		t.Fatalf("iteration 3: expected fall-through, got loop=%v err=%v", loop, err)
	}
	if r.Depth() != 0 {
		t.Fatalf("expected frame popped, depth=%d", r.Depth())
	}
}

func TestRepeat_CountUp_LoopsUntilLimit(t *testing.T) {
	r := NewRepeat()
	if err := r.Start(0, 3, true); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		loop, _, err := r.End()
		if err != nil || !loop {
			t.Fatalf("iteration %d: expected loop, got loop=%v err=%v", i, loop, err)
		}
	}
	loop, _, err := r.End()
	if err != nil || loop {
		t.Fatalf("expected fall-through at limit, got loop=%v err=%v", loop, err)
	}
}

func TestRepeat_Counter_ReadsTopFrame(t *testing.T) {
	r := NewRepeat()
	_ = r.Start(0, 5, false)
	c, err := r.Counter()
	if err != nil || c != 5 {
		t.Fatalf("expected counter 5, got %d err %v", c, err)
	}
}

func TestRepeat_Counter_EmptyIsError(t *testing.T) {
	r := NewRepeat()
	if _, err := r.Counter(); err != ErrRepeatEmpty {
		t.Fatalf("expected empty error, got %v", err)
	}
}

func TestRepeat_End_EmptyIsError(t *testing.T) {
	r := NewRepeat()
	if _, _, err := r.End(); err != ErrRepeatEmpty {
		t.Fatalf("expected empty error, got %v", err)
	}
}

func TestRepeat_Start_RejectsNegativeCount(t *testing.T) {
	r := NewRepeat()
	if err := r.Start(0, -1, false); err != ErrRepeatInvalidCounter {
		t.Fatalf("expected invalid counter error, got %v", err)
	}
}
