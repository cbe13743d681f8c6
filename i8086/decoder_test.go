package i8086

import "testing"

// sliceReader is a ByteReader over a fixed byte slice, tracking how
// many bytes were consumed so tests can assert encoding length.
type sliceReader struct {
	b   []byte
	pos int
}

func (s *sliceReader) NextByte() (byte, bool) {
	if s.pos >= len(s.b) {
		return 0, false
	}
	v := s.b[s.pos]
	s.pos++
	return v, true
}

func decodeAll(t *testing.T, bytes []byte) (Op, int) {
	t.Helper()
	r := &sliceReader{b: bytes}
	op, ok := Decode(r)
	if !ok {
		t.Fatalf("Decode(% x) failed", bytes)
	}
	return op, r.pos
}

func TestDecodeMovImmByte(t *testing.T) {
	// B0 FF: MOV AL, 0xFF
	op, n := decodeAll(t, []byte{0xB0, 0xFF})
	if n != 2 {
		t.Fatalf("consumed %d bytes, want 2", n)
	}
	if op.Kind != KindBinaryByte || op.BinOp != OpMov {
		t.Fatalf("op = %+v, want MOV byte", op)
	}
	if op.Dest.Kind != OperandRegister || op.Dest.Reg != RegAL {
		t.Fatalf("dest = %+v, want AL", op.Dest)
	}
	if op.Src.Kind != OperandImmByte || op.Src.ImmByte != 0xFF {
		t.Fatalf("src = %+v, want imm8 0xff", op.Src)
	}
}

func TestDecodeMovImmWord(t *testing.T) {
	// B8 FF 7F: MOV AX, 0x7FFF
	op, n := decodeAll(t, []byte{0xB8, 0xFF, 0x7F})
	if n != 3 {
		t.Fatalf("consumed %d bytes, want 3", n)
	}
	if op.Kind != KindBinaryWord || op.Src.ImmWord != 0x7FFF {
		t.Fatalf("op = %+v, want MOV AX, 0x7fff", op)
	}
}

func TestDecodeMovAccumulatorDirectMemory(t *testing.T) {
	// A1 34 12: MOV AX, [0x1234]
	op, n := decodeAll(t, []byte{0xA1, 0x34, 0x12})
	if n != 3 {
		t.Fatalf("consumed %d bytes, want 3", n)
	}
	if op.Src.Kind != OperandDirect || op.Src.Disp != 0x1234 {
		t.Fatalf("src = %+v, want direct 0x1234", op.Src)
	}
}

func TestDecodeGroup1Opcode82IsByteWidth(t *testing.T) {
	// 82 C0 05: ADD AL, 0x05 via the redundant 0x82 byte-form alias
	op, n := decodeAll(t, []byte{0x82, 0xC0, 0x05})
	if n != 3 {
		t.Fatalf("consumed %d bytes, want 3", n)
	}
	if op.Kind != KindBinaryByte {
		t.Fatalf("op.Kind = %v, want KindBinaryByte", op.Kind)
	}
	if op.BinOp != OpAdd {
		t.Fatalf("op.BinOp = %v, want OpAdd", op.BinOp)
	}
	if op.Src.Kind != OperandImmByte || op.Src.ImmByte != 0x05 {
		t.Fatalf("src = %+v, want imm8 5", op.Src)
	}
}

func TestDecodeGroup1Opcode83SignExtends(t *testing.T) {
	// 83 C0 FF: ADD AX, -1 (0xFFFF after sign extension)
	op, n := decodeAll(t, []byte{0x83, 0xC0, 0xFF})
	if n != 3 {
		t.Fatalf("consumed %d bytes, want 3", n)
	}
	if op.Kind != KindBinaryWord {
		t.Fatalf("op.Kind = %v, want KindBinaryWord", op.Kind)
	}
	if op.Src.ImmWord != 0xFFFF {
		t.Fatalf("src.ImmWord = %#04x, want 0xffff", op.Src.ImmWord)
	}
}

func TestDecodeLEARejectsRegisterOperand(t *testing.T) {
	// 8D C0: LEA AX, AX - mod=3, structurally invalid
	r := &sliceReader{b: []byte{0x8D, 0xC0}}
	if _, ok := Decode(r); ok {
		t.Fatalf("Decode(LEA reg,reg) succeeded, want decode fault")
	}
}

func TestDecodeJmpShortLength(t *testing.T) {
	// EB 05: JMP short +5
	op, n := decodeAll(t, []byte{0xEB, 0x05})
	if n != 2 {
		t.Fatalf("consumed %d bytes, want 2", n)
	}
	if op.Kind != KindJmp || op.Target.Kind != CallWithinDirect || op.Target.Offset != 5 {
		t.Fatalf("op = %+v, want within-direct jmp +5", op)
	}
}

func TestDecodeUnassignedOpcodeFails(t *testing.T) {
	// 0F is POP CS in this family, not unassigned - use 0x63, a genuinely
	// unassigned 8086 opcode (later ARPL on 80286+, out of scope).
	r := &sliceReader{b: []byte{0x63}}
	if _, ok := Decode(r); ok {
		t.Fatalf("Decode(0x63) succeeded, want decode fault (unassigned on 8086)")
	}
}

func TestDecodeTruncatedStreamFails(t *testing.T) {
	// B8 requires two more immediate bytes; only one is present.
	r := &sliceReader{b: []byte{0xB8, 0x01}}
	if _, ok := Decode(r); ok {
		t.Fatalf("Decode(truncated MOV AX,imm16) succeeded, want decode fault")
	}
}
