package i8086

import "testing"

func TestNewCPUBootState(t *testing.T) {
	c := newTestCPU()
	if c.Reg.CS != 0xFFFF || c.Reg.IP != 0 {
		t.Fatalf("boot CS:IP = %04x:%04x, want ffff:0000", c.Reg.CS, c.Reg.IP)
	}
	if !c.Running() {
		t.Fatalf("new CPU should be running")
	}
}

func TestHltStopsTheFetchLoop(t *testing.T) {
	c := newTestCPU()
	writeCode(t, c, []byte{0xF4}) // HLT
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step(HLT) = %v", err)
	}
	if c.Running() {
		t.Fatalf("CPU still running after HLT")
	}
	if _, err := c.Step(); err != ErrHalted {
		t.Fatalf("Step() after halt = %v, want ErrHalted", err)
	}
}

func TestCallPushesReturnAddressAndRetPopsIt(t *testing.T) {
	c := newTestCPU()
	c.Reg.SS = 0
	c.Reg.SP = 0x0100
	c.Reg.CS = 0
	c.Reg.IP = 0

	// E8 03 00: CALL +3 (to the HLT at offset 6) ; at offset 3: C3 RET
	// at offset 6: F4 HLT
	writeCode(t, c, []byte{0xE8, 0x03, 0x00, 0xC3, 0x00, 0x00, 0xF4})
	startIP := c.Reg.IP

	step(t, c) // CALL, pushes return addr (startIP+3), jumps to offset 6
	if c.Reg.IP != startIP+3+3 {
		t.Fatalf("IP after CALL = %#04x, want %#04x", c.Reg.IP, startIP+3+3)
	}

	// Rewind IP back to the RET we placed at offset 3 to exercise it in
	// isolation rather than executing through the HLT.
	c.Reg.IP = 3
	step(t, c) // RET
	if c.Reg.IP != startIP+3 {
		t.Fatalf("IP after RET = %#04x, want %#04x (the pushed return address)", c.Reg.IP, startIP+3)
	}
}

func TestDecodeFaultLeavesCPURunning(t *testing.T) {
	c := newTestCPU()
	writeCode(t, c, []byte{0x63}) // unassigned on the 8086
	if _, err := c.Step(); err != ErrDecodeFault {
		t.Fatalf("Step(0x63) = %v, want ErrDecodeFault", err)
	}
	if !c.Running() {
		t.Fatalf("a decode fault should not itself halt the CPU")
	}
}

func TestRunStopsCleanlyOnHlt(t *testing.T) {
	c := newTestCPU()
	writeCode(t, c, []byte{0xB0, 0x01, 0xF4}) // MOV AL,1 ; HLT
	if err := c.Run(); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
	if c.Running() {
		t.Fatalf("CPU should be halted after Run()")
	}
	if c.Reg.AX&0xFF != 1 {
		t.Fatalf("AL = %#02x, want 1", c.Reg.AX&0xFF)
	}
}

func TestIOPortRoundTrip(t *testing.T) {
	c := newTestCPU()
	c.Reg.AX = 0x0042
	c.Reg.DX = 0x03F8
	// EE: OUT DX, AL
	writeCode(t, c, []byte{0xEE})
	step(t, c)
	ports := c.IO.(*fakePorts)
	if ports.InByte(0x03F8) != 0x42 {
		t.Fatalf("port 0x3f8 = %#02x, want 0x42", ports.InByte(0x03F8))
	}
}
