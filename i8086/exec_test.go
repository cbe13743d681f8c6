package i8086

import "testing"

// writeCode places a byte stream starting at the CPU's current CS:IP,
// for Step to fetch from exactly as the real code fetcher would.
func writeCode(t *testing.T, c *CPU, code []byte) {
	t.Helper()
	mem := c.Mem.(*fakeMemory)
	for i, b := range code {
		mem.WriteByte(Physical(c.Reg.CS, c.Reg.IP)+uint32(i), b)
	}
}

func step(t *testing.T, c *CPU) {
	t.Helper()
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step() = %v", err)
	}
}

func TestAddByteOverflowFlags(t *testing.T) {
	// B0 FF 04 01: MOV AL,0xFF ; ADD AL,1
	c := newTestCPU()
	writeCode(t, c, []byte{0xB0, 0xFF, 0x04, 0x01})
	step(t, c)
	step(t, c)

	if c.Reg.AX&0xFF != 0x00 {
		t.Fatalf("AL = %#02x, want 0x00", c.Reg.AX&0xFF)
	}
	want := map[string]bool{"ZF": true, "CF": true, "AF": true, "PF": true, "SF": false, "OF": false}
	got := map[string]bool{
		"ZF": c.Reg.Flag(FlagZF), "CF": c.Reg.Flag(FlagCF), "AF": c.Reg.Flag(FlagAF),
		"PF": c.Reg.Flag(FlagPF), "SF": c.Reg.Flag(FlagSF), "OF": c.Reg.Flag(FlagOF),
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %v, want %v", k, got[k], v)
		}
	}
}

func TestAddWordSignedOverflowFlags(t *testing.T) {
	// B8 FF 7F 05 01 00: MOV AX,0x7FFF ; ADD AX,0x0001
	c := newTestCPU()
	writeCode(t, c, []byte{0xB8, 0xFF, 0x7F, 0x05, 0x01, 0x00})
	step(t, c)
	step(t, c)

	if c.Reg.AX != 0x8000 {
		t.Fatalf("AX = %#04x, want 0x8000", c.Reg.AX)
	}
	if !c.Reg.Flag(FlagOF) || !c.Reg.Flag(FlagSF) {
		t.Fatalf("OF/SF not both set: OF=%v SF=%v", c.Reg.Flag(FlagOF), c.Reg.Flag(FlagSF))
	}
	if c.Reg.Flag(FlagCF) || c.Reg.Flag(FlagZF) {
		t.Fatalf("CF/ZF should both be clear: CF=%v ZF=%v", c.Reg.Flag(FlagCF), c.Reg.Flag(FlagZF))
	}
}

func TestMemoryMovIndirect(t *testing.T) {
	c := newTestCPU()
	c.Reg.DS = 0
	c.Reg.BX = 0x0200
	c.Mem.WriteWord(Physical(0, 0x0200), 0xBEEF)
	// 8B 07: MOV AX, [BX]
	writeCode(t, c, []byte{0x8B, 0x07})
	step(t, c)
	if c.Reg.AX != 0xBEEF {
		t.Fatalf("AX = %#04x, want 0xbeef", c.Reg.AX)
	}
}

func TestCmpDoesNotWriteBack(t *testing.T) {
	c := newTestCPU()
	c.Reg.AX = 0x0005
	// 3D 05 00: CMP AX, 5
	writeCode(t, c, []byte{0x3D, 0x05, 0x00})
	step(t, c)
	if c.Reg.AX != 0x0005 {
		t.Fatalf("AX mutated by CMP: %#04x", c.Reg.AX)
	}
	if !c.Reg.Flag(FlagZF) {
		t.Fatalf("ZF not set after CMP AX,AX-equal")
	}
}

func TestStackPushPopDuality(t *testing.T) {
	c := newTestCPU()
	c.Reg.SS = 0
	c.Reg.SP = 0x0100
	c.Reg.AX = 0x1234
	sp0 := c.Reg.SP
	c.pushWord(c.Reg.AX)
	if c.Reg.SP != sp0-2 {
		t.Fatalf("SP after push = %#04x, want %#04x", c.Reg.SP, sp0-2)
	}
	v := c.popWord()
	if v != 0x1234 {
		t.Fatalf("popWord = %#04x, want 0x1234", v)
	}
	if c.Reg.SP != sp0 {
		t.Fatalf("SP after pop = %#04x, want %#04x", c.Reg.SP, sp0)
	}
}

func TestConditionalJumpTaken(t *testing.T) {
	c := newTestCPU()
	c.Reg.Flags |= FlagZF
	startIP := c.Reg.IP
	// 74 05: JE/JZ +5
	writeCode(t, c, []byte{0x74, 0x05})
	step(t, c)
	want := startIP + 2 + 5
	if c.Reg.IP != want {
		t.Fatalf("IP = %#04x, want %#04x", c.Reg.IP, want)
	}
}

func TestConditionalJumpNotTaken(t *testing.T) {
	c := newTestCPU()
	c.Reg.Flags &^= FlagZF
	startIP := c.Reg.IP
	writeCode(t, c, []byte{0x74, 0x05})
	step(t, c)
	want := startIP + 2
	if c.Reg.IP != want {
		t.Fatalf("IP = %#04x, want %#04x (fallthrough)", c.Reg.IP, want)
	}
}

func TestRepMovsbCopiesCxBytes(t *testing.T) {
	c := newTestCPU()
	c.Reg.DS, c.Reg.ES = 0, 0
	c.Reg.SI, c.Reg.DI = 0x0100, 0x0200
	c.Reg.CX = 4
	for i := 0; i < 4; i++ {
		c.Mem.WriteByte(Physical(0, 0x0100+uint16(i)), byte(0xA0+i))
	}
	// F3 A4: REP MOVSB - one Step for the prefix, one for the string op
	writeCode(t, c, []byte{0xF3, 0xA4})
	step(t, c)
	step(t, c)

	if c.Reg.CX != 0 {
		t.Fatalf("CX after REP MOVSB = %d, want 0", c.Reg.CX)
	}
	if c.Reg.SI != 0x0104 || c.Reg.DI != 0x0204 {
		t.Fatalf("SI/DI = %#04x/%#04x, want 0x0104/0x0204", c.Reg.SI, c.Reg.DI)
	}
	for i := 0; i < 4; i++ {
		got := c.Mem.ReadByte(Physical(0, 0x0200+uint16(i)))
		if got != byte(0xA0+i) {
			t.Errorf("dest[%d] = %#02x, want %#02x", i, got, 0xA0+i)
		}
	}
}

func TestStringDirectionFlagReversesStep(t *testing.T) {
	c := newTestCPU()
	c.Reg.Flags |= FlagDF
	c.Reg.DS, c.Reg.ES = 0, 0
	c.Reg.SI, c.Reg.DI = 0x0100, 0x0200
	// A4: MOVSB (no rep)
	writeCode(t, c, []byte{0xA4})
	step(t, c)
	if c.Reg.SI != 0x00FF || c.Reg.DI != 0x01FF {
		t.Fatalf("SI/DI after DF-set MOVSB = %#04x/%#04x, want 0x00ff/0x01ff", c.Reg.SI, c.Reg.DI)
	}
}

func TestShlSetsCarryFromLostBit(t *testing.T) {
	c := newTestCPU()
	c.Reg.AX = 0x8001
	// D1 E0: SHL AX, 1
	writeCode(t, c, []byte{0xD1, 0xE0})
	step(t, c)
	if c.Reg.AX != 0x0002 {
		t.Fatalf("AX = %#04x, want 0x0002", c.Reg.AX)
	}
	if !c.Reg.Flag(FlagCF) {
		t.Fatalf("CF not set from shifted-out bit")
	}
}

func TestDivideFaultOnZeroDivisor(t *testing.T) {
	c := newTestCPU()
	c.Reg.AX = 0x0064
	c.Reg.DX = 0
	c.Reg.CX = 0 // divisor register for the encoding below
	// F7 F1: DIV CX (CX=0 -> fault)
	writeCode(t, c, []byte{0xF7, 0xF1})
	if _, err := c.Step(); err != ErrDivideFault {
		t.Fatalf("Step(DIV CX, CX=0) = %v, want ErrDivideFault", err)
	}
}

func TestSegmentOverrideAppliesToNextInstructionOnly(t *testing.T) {
	c := newTestCPU()
	c.Reg.DS = 0x1000
	c.Reg.ES = 0x2000
	c.Reg.BX = 0x0010
	c.Mem.WriteWord(Physical(0x2000, 0x0010), 0xAAAA)
	c.Mem.WriteWord(Physical(0x1000, 0x0010), 0xBBBB)

	// 26 8B 07: ES: MOV AX, [BX] ; 8B 07: MOV AX, [BX] (no override)
	writeCode(t, c, []byte{0x26, 0x8B, 0x07, 0x8B, 0x07})
	step(t, c) // segment-override prefix
	step(t, c) // MOV AX,[BX] under ES
	if c.Reg.AX != 0xAAAA {
		t.Fatalf("AX with ES override = %#04x, want 0xaaaa", c.Reg.AX)
	}
	step(t, c) // MOV AX,[BX] without override, latch must have cleared
	if c.Reg.AX != 0xBBBB {
		t.Fatalf("AX without override = %#04x, want 0xbbbb (override should not persist)", c.Reg.AX)
	}
}
