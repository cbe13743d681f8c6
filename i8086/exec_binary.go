// exec_binary.go - Add/Or/Adc/Sbb/And/Sub/Xor/Cmp/Xchg/Test/Mov (§4.5.1)

package i8086

func (c *CPU) execBinary(op Op, wide bool) error {
	switch op.BinOp {
	case OpMov:
		if wide {
			c.WriteWord(op.Dest, c.ReadWord(op.Src))
		} else {
			c.WriteByte(op.Dest, c.ReadByte(op.Src))
		}
		return nil

	case OpXchg:
		if wide {
			a, b := c.ReadWord(op.Dest), c.ReadWord(op.Src)
			c.WriteWord(op.Dest, b)
			c.WriteWord(op.Src, a)
		} else {
			a, b := c.ReadByte(op.Dest), c.ReadByte(op.Src)
			c.WriteByte(op.Dest, b)
			c.WriteByte(op.Src, a)
		}
		return nil
	}

	var s, d uint32
	if wide {
		s, d = uint32(c.ReadWord(op.Src)), uint32(c.ReadWord(op.Dest))
	} else {
		s, d = uint32(c.ReadByte(op.Src)), uint32(c.ReadByte(op.Dest))
	}

	var fr flagResult
	switch op.BinOp {
	case OpAdd:
		fr = addFlags(s, d, 0, wide)
	case OpAdc:
		fr = addFlags(s, d, carryIn(c), wide)
	case OpSub, OpCmp:
		fr = subFlags(s, d, 0, wide)
	case OpSbb:
		fr = subFlags(s, d, carryIn(c), wide)
	case OpAnd, OpTest:
		fr = logicFlags(d&s, wide)
	case OpOr:
		fr = logicFlags(d|s, wide)
	case OpXor:
		fr = logicFlags(d^s, wide)
	}
	c.Reg.BlitFlags(fr.clear, fr.set)

	if op.BinOp == OpCmp || op.BinOp == OpTest {
		return nil
	}
	if wide {
		c.WriteWord(op.Dest, uint16(fr.result))
	} else {
		c.WriteByte(op.Dest, byte(fr.result))
	}
	return nil
}

func carryIn(c *CPU) uint32 {
	if c.Reg.Flag(FlagCF) {
		return 1
	}
	return 0
}
