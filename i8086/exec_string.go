// exec_string.go - Movs/Cmps/Scas/Lods/Stos and the Rep loop (§4.5.6)

package i8086

// segDS resolves the source segment string ops use for DS:SI, honoring
// a one-instruction override. ES:DI, the destination half of Movs and
// the implicit operand of Scas/Stos, is never overridable on real
// hardware, so it always reads plain ES.
func (c *CPU) segDS() uint16 {
	seg := RegDS
	if c.segOverrideActive {
		seg = c.segOverride
	}
	return c.Reg.ReadWord(seg)
}

// execString runs one string op, or loops it under the REP/REPE/REPNE
// prefix latched by the previous Step (§4.5.6, §4.6).
func (c *CPU) execString(op Op) error {
	step := int32(1)
	if op.Size == SizeWord {
		step = 2
	}
	if c.Reg.Flag(FlagDF) {
		step = -step
	}

	rep := c.repLatch
	if rep == RepNone {
		c.stringStep(op, step)
		return nil
	}

	for c.Reg.CX != 0 {
		c.stringStep(op, step)
		c.Reg.CX--
		switch op.StringOp {
		case StringCmps, StringScas:
			if rep == RepEqual && !c.Reg.Flag(FlagZF) {
				return nil
			}
			if rep == RepNotEqual && c.Reg.Flag(FlagZF) {
				return nil
			}
		}
	}
	return nil
}

func (c *CPU) stringStep(op Op, step int32) {
	switch op.StringOp {
	case StringMovs:
		srcAddr := Physical(c.segDS(), c.Reg.SI)
		dstAddr := Physical(c.Reg.ES, c.Reg.DI)
		if op.Size == SizeWord {
			c.Mem.WriteWord(dstAddr, c.Mem.ReadWord(srcAddr))
		} else {
			c.Mem.WriteByte(dstAddr, c.Mem.ReadByte(srcAddr))
		}
		c.Reg.SI = uint16(int32(c.Reg.SI) + step)
		c.Reg.DI = uint16(int32(c.Reg.DI) + step)

	case StringCmps:
		srcAddr := Physical(c.segDS(), c.Reg.SI)
		dstAddr := Physical(c.Reg.ES, c.Reg.DI)
		var fr flagResult
		if op.Size == SizeWord {
			fr = subFlags(uint32(c.Mem.ReadWord(dstAddr)), uint32(c.Mem.ReadWord(srcAddr)), 0, true)
		} else {
			fr = subFlags(uint32(c.Mem.ReadByte(dstAddr)), uint32(c.Mem.ReadByte(srcAddr)), 0, false)
		}
		c.Reg.BlitFlags(fr.clear, fr.set)
		c.Reg.SI = uint16(int32(c.Reg.SI) + step)
		c.Reg.DI = uint16(int32(c.Reg.DI) + step)

	case StringScas:
		dstAddr := Physical(c.Reg.ES, c.Reg.DI)
		var fr flagResult
		if op.Size == SizeWord {
			fr = subFlags(uint32(c.Mem.ReadWord(dstAddr)), uint32(c.Reg.AX), 0, true)
		} else {
			fr = subFlags(uint32(c.Mem.ReadByte(dstAddr)), uint32(c.Reg.ReadByte(RegAL)), 0, false)
		}
		c.Reg.BlitFlags(fr.clear, fr.set)
		c.Reg.DI = uint16(int32(c.Reg.DI) + step)

	case StringLods:
		srcAddr := Physical(c.segDS(), c.Reg.SI)
		if op.Size == SizeWord {
			c.Reg.AX = c.Mem.ReadWord(srcAddr)
		} else {
			c.Reg.WriteByte(RegAL, c.Mem.ReadByte(srcAddr))
		}
		c.Reg.SI = uint16(int32(c.Reg.SI) + step)

	case StringStos:
		dstAddr := Physical(c.Reg.ES, c.Reg.DI)
		if op.Size == SizeWord {
			c.Mem.WriteWord(dstAddr, c.Reg.AX)
		} else {
			c.Mem.WriteByte(dstAddr, c.Reg.ReadByte(RegAL))
		}
		c.Reg.DI = uint16(int32(c.Reg.DI) + step)
	}
}
