// exec_misc.go - Lds/Les, In/Out, Int/Iret, Xlat, flag shuffles, decimal adjust (§4.5.7)

package i8086

func (c *CPU) execLdsLes(op Op, seg RegisterID) error {
	addr := c.resolveAddr(op.Dest)
	off := c.Mem.ReadWord(addr)
	segVal := c.Mem.ReadWord(addr + 2)
	c.Reg.WriteWord(op.Reg, off)
	c.Reg.WriteWord(seg, segVal)
	return nil
}

func (c *CPU) execIn(op Op, port uint16) error {
	if op.Size == SizeWord {
		c.Reg.AX = c.IO.InWord(port)
	} else {
		c.Reg.WriteByte(RegAL, c.IO.InByte(port))
	}
	return nil
}

func (c *CPU) execOut(op Op, port uint16) error {
	if op.Size == SizeWord {
		c.IO.OutWord(port, c.Reg.AX)
	} else {
		c.IO.OutByte(port, c.Reg.ReadByte(RegAL))
	}
	return nil
}

// execInt pushes FLAGS, CS, IP, clears IF/TF, and loads CS:IP from the
// real-mode vector table at 0x0000:(vec*4) (§4.5.7).
func (c *CPU) execInt(vec uint8) error {
	c.pushWord(c.Reg.GetFlags())
	c.Reg.BlitFlags(FlagIF|FlagTF, 0)
	c.pushWord(c.Reg.CS)
	c.pushWord(c.Reg.IP)
	vectorAddr := uint32(vec) * 4
	c.Reg.IP = c.Mem.ReadWord(vectorAddr)
	c.Reg.CS = c.Mem.ReadWord(vectorAddr + 2)
	return nil
}

func (c *CPU) execIret() {
	c.Reg.IP = c.popWord()
	c.Reg.CS = c.popWord()
	c.Reg.SetFlags(c.popWord())
}

func (c *CPU) execNullary(op Op) error {
	switch op.Nullary {
	case NullXlat:
		addr := Physical(c.segDS(), c.Reg.BX+uint16(c.Reg.ReadByte(RegAL)))
		c.Reg.WriteByte(RegAL, c.Mem.ReadByte(addr))

	case NullLahf:
		c.Reg.WriteByte(RegAH, byte(c.Reg.GetFlags()))
	case NullSahf:
		low := uint16(c.Reg.ReadByte(RegAH))
		c.Reg.BlitFlags(0x00FF, low&0x00FF)

	case NullPushf:
		c.pushWord(c.Reg.GetFlags())
	case NullPopf:
		c.Reg.SetFlags(c.popWord())

	case NullAaa:
		c.aaa()
	case NullDaa:
		c.daa()
	case NullAas:
		c.aas()
	case NullDas:
		c.das()
	case NullAam:
		return c.aam()
	case NullAad:
		c.aad()

	case NullCbw:
		c.Reg.AX = uint16(int16(int8(c.Reg.ReadByte(RegAL))))
	case NullCwd:
		if c.Reg.AX&0x8000 != 0 {
			c.Reg.DX = 0xFFFF
		} else {
			c.Reg.DX = 0
		}

	case NullRepz, NullRepnz:
		// the prefix latch itself is maintained by Step; nothing to
		// execute here

	case NullInto:
		if c.Reg.Flag(FlagOF) {
			return c.execInt(4)
		}
	case NullIret:
		c.execIret()

	case NullClc:
		c.Reg.BlitFlags(FlagCF, 0)
	case NullCmc:
		if c.Reg.Flag(FlagCF) {
			c.Reg.BlitFlags(FlagCF, 0)
		} else {
			c.Reg.BlitFlags(0, FlagCF)
		}
	case NullStc:
		c.Reg.BlitFlags(0, FlagCF)
	case NullCld:
		c.Reg.BlitFlags(FlagDF, 0)
	case NullStd:
		c.Reg.BlitFlags(0, FlagDF)
	case NullCli:
		c.Reg.BlitFlags(FlagIF, 0)
	case NullSti:
		c.Reg.BlitFlags(0, FlagIF)

	case NullHlt:
		c.Hlt()
	case NullWait, NullLock:
		// no-op in the core (§4.5.7)
	}
	return nil
}

// aaa implements ASCII-adjust-after-add on AL/AH, the published Intel
// behavior (§4.5.7).
func (c *CPU) aaa() {
	al := c.Reg.ReadByte(RegAL)
	if al&0x0F > 9 || c.Reg.Flag(FlagAF) {
		al += 6
		c.Reg.WriteByte(RegAH, c.Reg.ReadByte(RegAH)+1)
		c.Reg.BlitFlags(0, FlagAF|FlagCF)
	} else {
		c.Reg.BlitFlags(FlagAF|FlagCF, 0)
	}
	c.Reg.WriteByte(RegAL, al&0x0F)
}

// aas implements ASCII-adjust-after-subtract.
func (c *CPU) aas() {
	al := c.Reg.ReadByte(RegAL)
	if al&0x0F > 9 || c.Reg.Flag(FlagAF) {
		al -= 6
		c.Reg.WriteByte(RegAH, c.Reg.ReadByte(RegAH)-1)
		c.Reg.BlitFlags(0, FlagAF|FlagCF)
	} else {
		c.Reg.BlitFlags(FlagAF|FlagCF, 0)
	}
	c.Reg.WriteByte(RegAL, al&0x0F)
}

// daa implements decimal-adjust-after-add on AL.
func (c *CPU) daa() {
	al := uint16(c.Reg.ReadByte(RegAL))
	oldAL, oldCF := al, c.Reg.Flag(FlagCF)
	af, cf := c.Reg.Flag(FlagAF), false

	if al&0x0F > 9 || af {
		al += 6
		cf = oldCF || al > 0xFF
		al &= 0xFF
		af = true
	} else {
		af = false
	}
	if oldAL > 0x99 || oldCF {
		al = (al + 0x60) & 0xFF
		cf = true
	}

	clear, set := commonFlags(uint32(al), 0x80, 0xFF)
	clear |= FlagAF | FlagCF
	if af {
		set |= FlagAF
	}
	if cf {
		set |= FlagCF
	}
	c.Reg.BlitFlags(clear, set)
	c.Reg.WriteByte(RegAL, byte(al))
}

// das implements decimal-adjust-after-subtract on AL.
func (c *CPU) das() {
	al := uint16(c.Reg.ReadByte(RegAL))
	oldAL, oldCF := al, c.Reg.Flag(FlagCF)
	af, cf := c.Reg.Flag(FlagAF), false

	if al&0x0F > 9 || af {
		borrowed := al < 6
		al = (al - 6) & 0xFF
		cf = oldCF || borrowed
		af = true
	} else {
		af = false
	}
	if oldAL > 0x99 || oldCF {
		al = (al - 0x60) & 0xFF
		cf = true
	}

	clear, set := commonFlags(uint32(al), 0x80, 0xFF)
	clear |= FlagAF | FlagCF
	if af {
		set |= FlagAF
	}
	if cf {
		set |= FlagCF
	}
	c.Reg.BlitFlags(clear, set)
	c.Reg.WriteByte(RegAL, byte(al))
}

// aam implements ASCII-adjust-after-multiply: AH=AL/10, AL=AL%10. The
// decoder only ever produces the base-10 form (§4.3 validates the
// trailing 0x0A), so the divisor is never zero.
func (c *CPU) aam() error {
	al := c.Reg.ReadByte(RegAL)
	ah := al / 10
	al = al % 10
	c.Reg.WriteByte(RegAH, ah)
	c.Reg.WriteByte(RegAL, al)
	clear, set := commonFlags(uint32(al), 0x80, 0xFF)
	clear |= FlagCF | FlagOF | FlagAF
	c.Reg.BlitFlags(clear, set)
	return nil
}

// aad implements ASCII-adjust-before-divide: AL=AH*10+AL, AH=0.
func (c *CPU) aad() {
	ah, al := c.Reg.ReadByte(RegAH), c.Reg.ReadByte(RegAL)
	result := byte(uint16(ah)*10 + uint16(al))
	c.Reg.WriteByte(RegAL, result)
	c.Reg.WriteByte(RegAH, 0)
	clear, set := commonFlags(uint32(result), 0x80, 0xFF)
	clear |= FlagCF | FlagOF | FlagAF
	c.Reg.BlitFlags(clear, set)
}
