// exec.go - the executor's top-level dispatch: Op + state -> state'

package i8086

// execute applies one decoded Op to the CPU. It is the single entry
// point every Kind-specific routine hangs off of (§4.5).
func (c *CPU) execute(op Op) error {
	switch op.Kind {
	case KindBinaryByte:
		return c.execBinary(op, false)
	case KindBinaryWord:
		return c.execBinary(op, true)
	case KindUnaryByte:
		return c.execUnary(op, false)
	case KindUnaryWord:
		return c.execUnary(op, true)
	case KindShiftByte:
		return c.execShift(op, false)
	case KindShiftWord:
		return c.execShift(op, true)
	case KindCondJmp:
		return c.execCondJmp(op)
	case KindCall:
		return c.execCall(op)
	case KindJmp:
		return c.execJmp(op)
	case KindRetWithin:
		c.Reg.IP = c.popWord()
		return nil
	case KindRetWithinImm:
		c.Reg.IP = c.popWord()
		c.Reg.SP += op.RetImm
		return nil
	case KindRetInter:
		c.Reg.IP = c.popWord()
		c.Reg.CS = c.popWord()
		return nil
	case KindRetInterImm:
		c.Reg.IP = c.popWord()
		c.Reg.CS = c.popWord()
		c.Reg.SP += op.RetImm
		return nil
	case KindString:
		return c.execString(op)
	case KindLea:
		c.Reg.WriteWord(op.Reg, c.EffectiveOffset(op.Dest))
		return nil
	case KindLds:
		return c.execLdsLes(op, RegDS)
	case KindLes:
		return c.execLdsLes(op, RegES)
	case KindInFixed:
		return c.execIn(op, c.Reg.DX)
	case KindOutFixed:
		return c.execOut(op, c.Reg.DX)
	case KindInVariable:
		return c.execIn(op, uint16(op.Port8))
	case KindOutVariable:
		return c.execOut(op, uint16(op.Port8))
	case KindInt:
		return c.execInt(op.IntVec)
	case KindEsc:
		return nil // coprocessor escape: no-op in the core (§4.5.7)
	case KindSegment:
		return nil // the latch itself is applied by Step
	case KindNullary:
		return c.execNullary(op)
	}
	return ErrDecodeFault
}
