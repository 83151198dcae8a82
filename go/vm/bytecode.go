package vm

import "github.com/essential-contributions/essential-base-sub001/go/types"

// BytecodeMapped holds a validated program together with the byte
// offset of every instruction in it. Storing offsets rather than a
// decoded slice of tagged Op variants avoids the per-instruction
// overhead of an enum carrying its own operand fields — the rationale
// is the same one behind the teacher's own Instruction/Code design,
// adapted here to point back into the original byte slice instead of
// re-encoding into a denser opcode+arg representation, since programs
// are hashed by their raw bytes (spec §6, "Program encoding").
type BytecodeMapped struct {
	code    []byte
	offsets []int
}

// NewBytecodeMapped strictly decodes raw program bytes: it walks
// linearly, reading one opcode byte at each position, looking up its
// arg_bytes, and requiring that many immediate bytes to follow.
// Trailing truncation and unknown opcodes are errors (spec §4.5).
func NewBytecodeMapped(code []byte) (*BytecodeMapped, error) {
	offsets := make([]int, 0, len(code))
	for i := 0; i < len(code); {
		op := OpCode(code[i])
		if !op.IsValid() || op.IsReserved() {
			return nil, ErrReservedOpcode
		}
		offsets = append(offsets, i)
		need := 1 + op.ArgBytes()
		if i+need > len(code) {
			return nil, ErrDecodeMalformedBytecode
		}
		i += need
	}
	return &BytecodeMapped{code: code, offsets: offsets}, nil
}

// NewBytecodeMappedFromOps builds a BytecodeMapped by emitting bytes
// for an already-validated list of instructions, skipping the strict
// decode pass (spec §4.5: "constructed either from an already-validated
// op list ... or by strictly decoding raw bytes").
func NewBytecodeMappedFromOps(ops []Instruction) (*BytecodeMapped, error) {
	var code []byte
	offsets := make([]int, 0, len(ops))
	for _, inst := range ops {
		if !inst.Op.IsValid() || inst.Op.IsReserved() {
			return nil, ErrReservedOpcode
		}
		offsets = append(offsets, len(code))
		code = append(code, byte(inst.Op))
		if inst.Op == OpPush {
			wb := types.BytesFromWord(types.Word(inst.Arg))
			code = append(code, wb[:]...)
		}
	}
	return &BytecodeMapped{code: code, offsets: offsets}, nil
}

// Instruction is a single decoded op, used only to build a
// BytecodeMapped from a program assembled in memory (e.g. by tests or
// an external assembler); execution itself walks the byte slice.
type Instruction struct {
	Op  OpCode
	Arg types.Word
}

// Len reports the number of instructions in the mapped program.
func (b *BytecodeMapped) Len() int { return len(b.offsets) }

// ByteLen reports the length of the underlying byte slice.
func (b *BytecodeMapped) ByteLen() int { return len(b.code) }

// OpAt returns the opcode at instruction index i. O(1), guaranteed
// valid once the map has been constructed.
func (b *BytecodeMapped) OpAt(i int) OpCode {
	return OpCode(b.code[b.offsets[i]])
}

// OffsetAt returns the byte offset of instruction index i.
func (b *BytecodeMapped) OffsetAt(i int) int {
	return b.offsets[i]
}

// PushArgAt returns the 8-byte immediate word carried by the Push
// instruction at index i. Callers must only call this when OpAt(i) ==
// OpPush.
func (b *BytecodeMapped) PushArgAt(i int) types.Word {
	off := b.offsets[i] + 1
	var arr [8]byte
	copy(arr[:], b.code[off:off+8])
	return types.WordFromBytes(arr)
}

// IndexOfOffset finds the instruction index whose byte offset equals
// off, used when resolving jump targets expressed as byte distances.
// Returns -1 if off does not land on an instruction boundary.
func (b *BytecodeMapped) IndexOfOffset(off int) int {
	for i, o := range b.offsets {
		if o == off {
			return i
		}
		if o > off {
			break
		}
	}
	return -1
}
