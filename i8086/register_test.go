package i8086

import "testing"

func TestByteAliasingPreservesOtherHalf(t *testing.T) {
	var r RegisterFile
	r.AX = 0x1234
	r.WriteByte(RegAL, 0xFF)
	if r.AX != 0x12FF {
		t.Fatalf("AX after AL write = %#04x, want 0x12ff", r.AX)
	}
	r.WriteByte(RegAH, 0x00)
	if r.AX != 0x00FF {
		t.Fatalf("AX after AH write = %#04x, want 0x00ff", r.AX)
	}
	if r.ReadByte(RegAL) != 0xFF {
		t.Fatalf("AL = %#02x, want 0xff", r.ReadByte(RegAL))
	}
}

func TestResetBootState(t *testing.T) {
	r := RegisterFile{AX: 1, CS: 2, IP: 3}
	r.Reset()
	if r.CS != 0xFFFF || r.IP != 0 || r.AX != 0 {
		t.Fatalf("Reset() = %+v, want CS=0xFFFF IP=0 AX=0", r)
	}
}

func TestBlitFlagsForcesSetOverClear(t *testing.T) {
	var r RegisterFile
	r.Flags = FlagCF | FlagZF
	r.BlitFlags(FlagCF|FlagZF, FlagCF)
	if !r.Flag(FlagCF) {
		t.Fatalf("CF should be set")
	}
	if r.Flag(FlagZF) {
		t.Fatalf("ZF should be cleared")
	}
}

func TestPhysicalAddressWraps(t *testing.T) {
	cases := []struct {
		seg, off uint16
		want     uint32
	}{
		{0x0000, 0x0000, 0x00000},
		{0xFFFF, 0x000F, 0xFFFFF},
		{0xFFFF, 0xFFFF, 0x0FFEF},
		{0x1000, 0x0010, 0x10010},
	}
	for _, c := range cases {
		got := Physical(c.seg, c.off)
		if got != c.want {
			t.Errorf("Physical(%#04x, %#04x) = %#05x, want %#05x", c.seg, c.off, got, c.want)
		}
	}
}
