// exec_branch.go - conditional branches, calls, jumps, returns (§4.5.4, §4.5.5)

package i8086

// condTaken evaluates a branch predicate. Loop/Loope/Loopne also
// decrement CX as a side effect, matching the combined fetch-decrement
// semantics of the real instructions (§4.5.4).
func condTaken(c *CPU, cond Condition) bool {
	switch cond {
	case CondO:
		return c.Reg.Flag(FlagOF)
	case CondNo:
		return !c.Reg.Flag(FlagOF)
	case CondB:
		return c.Reg.Flag(FlagCF)
	case CondNb:
		return !c.Reg.Flag(FlagCF)
	case CondE:
		return c.Reg.Flag(FlagZF)
	case CondNe:
		return !c.Reg.Flag(FlagZF)
	case CondBe:
		return c.Reg.Flag(FlagCF) || c.Reg.Flag(FlagZF)
	case CondA:
		return !c.Reg.Flag(FlagCF) && !c.Reg.Flag(FlagZF)
	case CondS:
		return c.Reg.Flag(FlagSF)
	case CondNs:
		return !c.Reg.Flag(FlagSF)
	case CondP:
		return c.Reg.Flag(FlagPF)
	case CondNp:
		return !c.Reg.Flag(FlagPF)
	case CondL:
		return c.Reg.Flag(FlagSF) != c.Reg.Flag(FlagOF)
	case CondGe:
		return c.Reg.Flag(FlagSF) == c.Reg.Flag(FlagOF)
	case CondLe:
		return c.Reg.Flag(FlagZF) || c.Reg.Flag(FlagSF) != c.Reg.Flag(FlagOF)
	case CondG:
		return !c.Reg.Flag(FlagZF) && c.Reg.Flag(FlagSF) == c.Reg.Flag(FlagOF)
	case CondCxz:
		return c.Reg.CX == 0
	case CondLoop, CondLoope, CondLoopne:
		c.Reg.CX--
		taken := c.Reg.CX != 0
		if cond == CondLoope {
			taken = taken && c.Reg.Flag(FlagZF)
		}
		if cond == CondLoopne {
			taken = taken && !c.Reg.Flag(FlagZF)
		}
		return taken
	}
	return false
}

func (c *CPU) execCondJmp(op Op) error {
	if condTaken(c, op.Cond) {
		c.Reg.IP = uint16(int32(c.Reg.IP) + int32(op.Offset8))
	}
	return nil
}

func (c *CPU) execCall(op Op) error {
	switch op.Target.Kind {
	case CallWithinDirect:
		c.pushWord(c.Reg.IP)
		c.Reg.IP = uint16(int32(c.Reg.IP) + int32(op.Target.Offset))
	case CallWithinIndirect:
		target := c.ReadWord(op.Target.Operand)
		c.pushWord(c.Reg.IP)
		c.Reg.IP = target
	case CallInterDirect:
		c.pushWord(c.Reg.CS)
		c.pushWord(c.Reg.IP)
		c.Reg.CS, c.Reg.IP = op.Target.Seg, op.Target.Off
	case CallInterIndirect:
		addr := c.resolveAddr(op.Target.Operand)
		ip, cs := c.Mem.ReadWord(addr), c.Mem.ReadWord(addr+2)
		c.pushWord(c.Reg.CS)
		c.pushWord(c.Reg.IP)
		c.Reg.CS, c.Reg.IP = cs, ip
	}
	return nil
}

func (c *CPU) execJmp(op Op) error {
	switch op.Target.Kind {
	case CallWithinDirect:
		c.Reg.IP = uint16(int32(c.Reg.IP) + int32(op.Target.Offset))
	case CallWithinIndirect:
		c.Reg.IP = c.ReadWord(op.Target.Operand)
	case CallInterDirect:
		c.Reg.CS, c.Reg.IP = op.Target.Seg, op.Target.Off
	case CallInterIndirect:
		addr := c.resolveAddr(op.Target.Operand)
		c.Reg.IP = c.Mem.ReadWord(addr)
		c.Reg.CS = c.Mem.ReadWord(addr + 2)
	}
	return nil
}
