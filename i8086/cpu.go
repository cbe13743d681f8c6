// cpu.go - the CPU shell: fetch loop, segment-override latch, halt state

package i8086

// CPU is a single logical 8086 processor: a register file plus the two
// capabilities it needs from its host (memory, I/O ports). It is
// strictly single-threaded and synchronous — there is no suspension
// point inside Step (§5).
type CPU struct {
	Reg RegisterFile
	Mem Memory
	IO  Ports

	running bool

	// segOverride/segOverrideActive implement the one-instruction
	// segment-override latch (§3, §4.6, §9): the decoder emits a
	// Segment op, Step sets the latch after executing it, the following
	// instruction consumes it, and Step clears it at the end of that
	// instruction's step.
	segOverride       RegisterID
	segOverrideActive bool

	// repLatch mirrors the segment-override latch for a preceding
	// REP/REPE/REPNE prefix: a Nullary Repz/Repnz op sets it, the next
	// String op consumes it, and it is cleared at end-of-step unless
	// that next op was itself another prefix (§4.5.6, §4.5 note).
	repLatch RepPrefix
}

// NewCPU creates a CPU bound to the given memory and I/O capabilities.
// The register file starts zeroed except CS=0xFFFF, IP=0x0000 — the
// classic boot vector — and running is true.
func NewCPU(mem Memory, io Ports) *CPU {
	c := &CPU{Mem: mem, IO: io}
	c.Reg.Reset()
	c.running = true
	return c
}

// Running reports whether the fetch-execute loop should keep going.
func (c *CPU) Running() bool {
	return c.running
}

// Hlt clears the running flag (what the HLT instruction does).
func (c *CPU) Hlt() {
	c.running = false
}

// Unhlt sets the running flag, letting a host resume a halted CPU
// (e.g. after delivering a simulated external event).
func (c *CPU) Unhlt() {
	c.running = true
}

// Jmp sets CS:IP directly — the host-controlled entry point used to
// load a program (e.g. a .COM image at CS:0x0100).
func (c *CPU) Jmp(cs, ip uint16) {
	c.Reg.CS = cs
	c.Reg.IP = ip
}

// codeFetcher adapts the CPU's own CS:IP into the ByteReader the
// decoder pulls from: each call reads memory[CS:IP] and advances IP
// by one (§6, "Code-fetch byte stream").
type codeFetcher struct {
	cpu *CPU
}

func (f *codeFetcher) NextByte() (byte, bool) {
	addr := Physical(f.cpu.Reg.CS, f.cpu.Reg.IP)
	b := f.cpu.Mem.ReadByte(addr)
	f.cpu.Reg.IP++
	return b, true
}

// Step decodes and executes exactly one instruction. It returns false
// (with no state mutated beyond the IP advances already performed
// during the partial fetch) when the CPU is halted or the decoder hits
// a decode fault, matching real hardware's behavior for an incomplete
// fetch (§7).
func (c *CPU) Step() (bool, error) {
	if !c.running {
		return false, ErrHalted
	}

	fetcher := &codeFetcher{cpu: c}
	op, ok := Decode(fetcher)
	if !ok {
		return false, ErrDecodeFault
	}

	// segOverride/segOverrideActive/repLatch already hold whatever the
	// previous instruction latched (or the zero value); execute
	// consults them directly via resolveAddr and the string-op path.
	err := c.execute(op)

	isRepPrefix := op.Kind == KindNullary && (op.Nullary == NullRepz || op.Nullary == NullRepnz)
	isPrefix := op.Kind == KindSegment || isRepPrefix

	if op.Kind == KindSegment {
		c.segOverride = op.Seg
		c.segOverrideActive = true
	} else if !isPrefix {
		c.segOverrideActive = false
	}

	if isRepPrefix {
		if op.Nullary == NullRepz {
			c.repLatch = RepEqual
		} else {
			c.repLatch = RepNotEqual
		}
	} else if !isPrefix {
		c.repLatch = RepNone
	}

	if err != nil {
		return false, err
	}
	return true, nil
}

// Run repeats Step while running is true, stopping immediately (without
// treating it as an error) when Step reports a halt.
func (c *CPU) Run() error {
	for c.running {
		if _, err := c.Step(); err != nil {
			if err == ErrHalted {
				return nil
			}
			return err
		}
	}
	return nil
}
