package i8086

import "testing"

// fakeMemory is a minimal in-package Memory stub for unit tests that
// don't need the backend package's full flat array.
type fakeMemory struct {
	bytes map[uint32]byte
}

func newFakeMemory() *fakeMemory { return &fakeMemory{bytes: make(map[uint32]byte)} }

func (m *fakeMemory) ReadByte(addr uint32) byte  { return m.bytes[addr&0xFFFFF] }
func (m *fakeMemory) WriteByte(addr uint32, v byte) { m.bytes[addr&0xFFFFF] = v }
func (m *fakeMemory) ReadWord(addr uint32) uint16 {
	return uint16(m.ReadByte(addr)) | uint16(m.ReadByte(addr+1))<<8
}
func (m *fakeMemory) WriteWord(addr uint32, v uint16) {
	m.WriteByte(addr, byte(v))
	m.WriteByte(addr+1, byte(v>>8))
}

type fakePorts struct{ b, w map[uint16]uint16 }

func newFakePorts() *fakePorts { return &fakePorts{b: map[uint16]uint16{}, w: map[uint16]uint16{}} }

func (p *fakePorts) InByte(port uint16) byte      { return byte(p.b[port]) }
func (p *fakePorts) OutByte(port uint16, v byte)  { p.b[port] = uint16(v) }
func (p *fakePorts) InWord(port uint16) uint16    { return p.w[port] }
func (p *fakePorts) OutWord(port uint16, v uint16) { p.w[port] = v }

func newTestCPU() *CPU {
	return NewCPU(newFakeMemory(), newFakePorts())
}

func TestEffectiveOffsetBxSi(t *testing.T) {
	c := newTestCPU()
	c.Reg.BX = 0x0100
	c.Reg.SI = 0x0010
	op := Operand{Kind: OperandAddress, Base: BaseBxSi, Disp: 0x0005}
	if got := c.EffectiveOffset(op); got != 0x0115 {
		t.Fatalf("EffectiveOffset = %#04x, want 0x0115", got)
	}
}

func TestResolveAddrDefaultsToSSForBP(t *testing.T) {
	c := newTestCPU()
	c.Reg.SS = 0x2000
	c.Reg.DS = 0x3000
	c.Reg.BP = 0x0010
	op := Operand{Kind: OperandAddress, Base: BaseBp}
	got := c.resolveAddr(op)
	want := Physical(0x2000, 0x0010)
	if got != want {
		t.Fatalf("resolveAddr(BP) = %#05x, want %#05x (should default to SS)", got, want)
	}
}

func TestResolveAddrSegmentOverride(t *testing.T) {
	c := newTestCPU()
	c.Reg.SS = 0x2000
	c.Reg.ES = 0x4000
	c.Reg.BP = 0x0010
	c.segOverride = RegES
	c.segOverrideActive = true
	op := Operand{Kind: OperandAddress, Base: BaseBp}
	got := c.resolveAddr(op)
	want := Physical(0x4000, 0x0010)
	if got != want {
		t.Fatalf("resolveAddr with ES override = %#05x, want %#05x", got, want)
	}
}

func TestImmByteSignExtendsOnWordRead(t *testing.T) {
	c := newTestCPU()
	op := Operand{Kind: OperandImmByte, ImmByte: 0xFF}
	if got := c.ReadWord(op); got != 0xFFFF {
		t.Fatalf("ReadWord(imm8 0xff) = %#04x, want 0xffff", got)
	}
}

func TestWriteToImmediateIsNoOp(t *testing.T) {
	c := newTestCPU()
	op := Operand{Kind: OperandImmWord, ImmWord: 42}
	c.WriteWord(op, 99) // must not panic
	if c.ReadWord(op) != 42 {
		t.Fatalf("immediate operand mutated by WriteWord")
	}
}
