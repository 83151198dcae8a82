package vm

import (
	"testing"

	"github.com/essential-contributions/essential-base-sub001/go/hash"
)

func TestProgramCache_ReturnsSameDecodedProgramOnRepeatLookup(t *testing.T) {
	program := []byte{byte(OpPush), 0, 0, 0, 0, 0, 0, 0, 6, byte(OpHalt)}
	addr := hash.ProgramAddress(program)

	c := NewProgramCache()
	first, err := c.Get(addr, program)
	if err != nil {
		t.Fatalf("first get failed: %v", err)
	}
	second, err := c.Get(addr, program)
	if err != nil {
		t.Fatalf("second get failed: %v", err)
	}
	if first != second {
		t.Errorf("expected cached pointer to be reused, got distinct decodes")
	}
}

func TestProgramCache_PropagatesDecodeErrors(t *testing.T) {
	c := NewProgramCache()
	if _, err := c.Get(hash.ProgramAddress([]byte{255}), []byte{255}); err != ErrReservedOpcode {
		t.Fatalf("expected reserved opcode error, got %v", err)
	}
}
