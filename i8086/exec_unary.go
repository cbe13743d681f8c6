// exec_unary.go - Push/Pop/Inc/Dec/Not/Neg/Mul/Imul/Div/Idiv (§4.5.2)

package i8086

func (c *CPU) pushWord(v uint16) {
	c.Reg.SP -= 2
	c.Mem.WriteWord(Physical(c.Reg.SS, c.Reg.SP), v)
}

func (c *CPU) popWord() uint16 {
	v := c.Mem.ReadWord(Physical(c.Reg.SS, c.Reg.SP))
	c.Reg.SP += 2
	return v
}

func (c *CPU) execUnary(op Op, wide bool) error {
	switch op.UnOp {
	case OpPush:
		if wide {
			c.pushWord(c.ReadWord(op.Dest))
		} else {
			c.pushWord(uint16(int16(int8(c.ReadByte(op.Dest)))))
		}
		return nil

	case OpPop:
		v := c.popWord()
		if wide {
			c.WriteWord(op.Dest, v)
		} else {
			c.WriteByte(op.Dest, byte(v))
		}
		return nil

	case OpInc:
		return c.incDec(op, wide, true)
	case OpDec:
		return c.incDec(op, wide, false)

	case OpNot:
		if wide {
			c.WriteWord(op.Dest, ^c.ReadWord(op.Dest))
		} else {
			c.WriteByte(op.Dest, ^c.ReadByte(op.Dest))
		}
		return nil

	case OpNeg:
		return c.neg(op, wide)
	case OpMul:
		return c.mul(op, wide)
	case OpImul:
		return c.imul(op, wide)
	case OpDiv:
		return c.div(op, wide)
	case OpIdiv:
		return c.idiv(op, wide)
	}
	return nil
}

// incDec implements Inc/Dec as Add/Sub with operand 1, with CF left
// untouched (§4.5.2).
func (c *CPU) incDec(op Op, wide, isInc bool) error {
	var d uint32
	if wide {
		d = uint32(c.ReadWord(op.Dest))
	} else {
		d = uint32(c.ReadByte(op.Dest))
	}

	var fr flagResult
	if isInc {
		fr = addFlags(1, d, 0, wide)
	} else {
		fr = subFlags(1, d, 0, wide)
	}
	fr.clear &^= FlagCF
	fr.set &^= FlagCF
	c.Reg.BlitFlags(fr.clear, fr.set)

	if wide {
		c.WriteWord(op.Dest, uint16(fr.result))
	} else {
		c.WriteByte(op.Dest, byte(fr.result))
	}
	return nil
}

// neg computes 0-d; CF is set iff d was nonzero (§4.5.2).
func (c *CPU) neg(op Op, wide bool) error {
	var d uint32
	if wide {
		d = uint32(c.ReadWord(op.Dest))
	} else {
		d = uint32(c.ReadByte(op.Dest))
	}
	fr := subFlags(d, 0, 0, wide)
	fr.clear &^= FlagCF
	fr.set &^= FlagCF
	if d != 0 {
		fr.set |= FlagCF
	} else {
		fr.clear |= FlagCF
	}
	c.Reg.BlitFlags(fr.clear, fr.set)

	if wide {
		c.WriteWord(op.Dest, uint16(fr.result))
	} else {
		c.WriteByte(op.Dest, byte(fr.result))
	}
	return nil
}

// mul is unsigned multiply: AX<-AL*d (byte) or DX:AX<-AX*d (word).
// CF=OF iff the upper half is nonzero; SF/ZF/AF/PF are undefined by
// the architecture but cleared here from the low half for determinism
// (§4.5.2).
func (c *CPU) mul(op Op, wide bool) error {
	if wide {
		result := uint32(c.Reg.AX) * uint32(c.ReadWord(op.Dest))
		c.Reg.AX = uint16(result)
		c.Reg.DX = uint16(result >> 16)
		clear, set := commonFlags(result, 0x8000, 0xFFFF)
		clear |= FlagCF | FlagOF | FlagAF
		if c.Reg.DX != 0 {
			set |= FlagCF | FlagOF
		}
		c.Reg.BlitFlags(clear, set)
		return nil
	}
	result := uint32(c.Reg.ReadByte(RegAL)) * uint32(c.ReadByte(op.Dest))
	c.Reg.WriteWord(RegAX, uint16(result))
	clear, set := commonFlags(result, 0x80, 0xFF)
	clear |= FlagCF | FlagOF | FlagAF
	if result>>8 != 0 {
		set |= FlagCF | FlagOF
	}
	c.Reg.BlitFlags(clear, set)
	return nil
}

// imul is signed multiply with the same register layout as mul; CF=OF
// iff the upper half isn't purely the sign extension of the lower half.
func (c *CPU) imul(op Op, wide bool) error {
	if wide {
		a := int32(int16(c.Reg.AX))
		d := int32(int16(c.ReadWord(op.Dest)))
		result := a * d
		c.Reg.AX = uint16(result)
		c.Reg.DX = uint16(result >> 16)
		overflow := result != int32(int16(uint16(result)))
		c.setMulOverflow(overflow, uint32(result), true)
		return nil
	}
	a := int32(int8(c.Reg.ReadByte(RegAL)))
	d := int32(int8(c.ReadByte(op.Dest)))
	result := a * d
	c.Reg.WriteWord(RegAX, uint16(result))
	overflow := result != int32(int8(uint8(result)))
	c.setMulOverflow(overflow, uint32(result), false)
	return nil
}

// setMulOverflow sets CF=OF from overflow, clears AF, and derives
// SF/ZF/PF from the low half of the product, as mul does.
func (c *CPU) setMulOverflow(overflow bool, result uint32, wide bool) {
	top, trunc := widthMasks(wide)
	clear, set := commonFlags(result, top, trunc)
	clear |= FlagCF | FlagOF | FlagAF
	if overflow {
		set |= FlagCF | FlagOF
	}
	c.Reg.BlitFlags(clear, set)
}

// div is unsigned division; a zero divisor or a quotient that doesn't
// fit its destination is a divide fault (§4.5.2, §7).
func (c *CPU) div(op Op, wide bool) error {
	if wide {
		dividend := uint32(c.Reg.DX)<<16 | uint32(c.Reg.AX)
		divisor := uint32(c.ReadWord(op.Dest))
		if divisor == 0 {
			return ErrDivideFault
		}
		q, r := dividend/divisor, dividend%divisor
		if q > 0xFFFF {
			return ErrDivideFault
		}
		c.Reg.AX, c.Reg.DX = uint16(q), uint16(r)
		return nil
	}
	dividend := uint32(c.Reg.AX)
	divisor := uint32(c.ReadByte(op.Dest))
	if divisor == 0 {
		return ErrDivideFault
	}
	q, r := dividend/divisor, dividend%divisor
	if q > 0xFF {
		return ErrDivideFault
	}
	c.Reg.WriteByte(RegAL, byte(q))
	c.Reg.WriteByte(RegAH, byte(r))
	return nil
}

// idiv is signed division with the same fault conditions as div.
func (c *CPU) idiv(op Op, wide bool) error {
	if wide {
		dividend := int32(uint32(c.Reg.DX)<<16 | uint32(c.Reg.AX))
		divisor := int32(int16(c.ReadWord(op.Dest)))
		if divisor == 0 {
			return ErrDivideFault
		}
		q, r := dividend/divisor, dividend%divisor
		if q > 32767 || q < -32768 {
			return ErrDivideFault
		}
		c.Reg.AX, c.Reg.DX = uint16(int16(q)), uint16(int16(r))
		return nil
	}
	dividend := int32(int16(c.Reg.AX))
	divisor := int32(int8(c.ReadByte(op.Dest)))
	if divisor == 0 {
		return ErrDivideFault
	}
	q, r := dividend/divisor, dividend%divisor
	if q > 127 || q < -128 {
		return ErrDivideFault
	}
	c.Reg.WriteByte(RegAL, byte(int8(q)))
	c.Reg.WriteByte(RegAH, byte(int8(r)))
	return nil
}
