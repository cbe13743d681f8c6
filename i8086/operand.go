// operand.go - tagged operand tree and the effective-address resolver

package i8086

// AddressBase names one of the eight ModR/M memory addressing
// combinations (mod != 11, rm != 110 for mod=00).
type AddressBase int

const (
	BaseBxSi AddressBase = iota
	BaseBxDi
	BaseBpSi
	BaseBpDi
	BaseSi
	BaseDi
	BaseBp
	BaseBx
)

// OperandKind tags which case of Operand is populated.
type OperandKind int

const (
	OperandRegister OperandKind = iota
	OperandAddress
	OperandDirect
	OperandImmByte
	OperandImmWord
)

// Operand is the tagged description of an instruction operand. Width
// for OperandRegister is carried by Reg.Width(); ImmByte/ImmWord carry
// their own width. Immediate operands are never used as write
// destinations — callers never produce that combination (§4.4).
type Operand struct {
	Kind OperandKind

	Reg  RegisterID  // OperandRegister, OperandAddress' segment-reg is never here
	Base AddressBase // OperandAddress
	Disp uint16      // OperandAddress: signed disp16, already mod 2^16; OperandDirect: offset

	ImmByte uint8
	ImmWord uint16
}

// baseOffset sums the named base registers for a memory operand.
// BP-based forms are flagged by the caller so it can pick SS as the
// default segment; this helper only computes the 16-bit offset.
func (r *RegisterFile) baseOffset(base AddressBase) uint16 {
	switch base {
	case BaseBxSi:
		return r.BX + r.SI
	case BaseBxDi:
		return r.BX + r.DI
	case BaseBpSi:
		return r.BP + r.SI
	case BaseBpDi:
		return r.BP + r.DI
	case BaseSi:
		return r.SI
	case BaseDi:
		return r.DI
	case BaseBp:
		return r.BP
	case BaseBx:
		return r.BX
	}
	return 0
}

// defaultSegment returns the default segment register for base: SS for
// the BP-based forms, DS for all others.
func defaultSegment(base AddressBase) RegisterID {
	switch base {
	case BaseBpSi, BaseBpDi, BaseBp:
		return RegSS
	default:
		return RegDS
	}
}

// resolveAddr computes the 20-bit physical address of a memory operand,
// honoring the one-instruction segment-override latch.
func (c *CPU) resolveAddr(op Operand) uint32 {
	switch op.Kind {
	case OperandAddress:
		seg := defaultSegment(op.Base)
		if c.segOverrideActive {
			seg = c.segOverride
		}
		offset := c.Reg.baseOffset(op.Base) + op.Disp
		return Physical(c.Reg.ReadWord(seg), offset)
	case OperandDirect:
		seg := RegDS
		if c.segOverrideActive {
			seg = c.segOverride
		}
		return Physical(c.Reg.ReadWord(seg), op.Disp)
	}
	return 0
}

// ReadWord reads a 16-bit value from an operand.
func (c *CPU) ReadWord(op Operand) uint16 {
	switch op.Kind {
	case OperandRegister:
		return c.Reg.ReadWord(op.Reg)
	case OperandAddress, OperandDirect:
		return c.Mem.ReadWord(c.resolveAddr(op))
	case OperandImmWord:
		return op.ImmWord
	case OperandImmByte:
		return uint16(int16(int8(op.ImmByte)))
	}
	return 0
}

// WriteWord writes a 16-bit value to an operand. Writing to an
// immediate operand is a silent no-op (§4.4) — callers never do this.
func (c *CPU) WriteWord(op Operand, v uint16) {
	switch op.Kind {
	case OperandRegister:
		c.Reg.WriteWord(op.Reg, v)
	case OperandAddress, OperandDirect:
		c.Mem.WriteWord(c.resolveAddr(op), v)
	}
}

// ReadByte reads an 8-bit value from an operand.
func (c *CPU) ReadByte(op Operand) byte {
	switch op.Kind {
	case OperandRegister:
		return c.Reg.ReadByte(op.Reg)
	case OperandAddress, OperandDirect:
		return c.Mem.ReadByte(c.resolveAddr(op))
	case OperandImmByte:
		return op.ImmByte
	}
	return 0
}

// WriteByte writes an 8-bit value to an operand.
func (c *CPU) WriteByte(op Operand, v byte) {
	switch op.Kind {
	case OperandRegister:
		c.Reg.WriteByte(op.Reg, v)
	case OperandAddress, OperandDirect:
		c.Mem.WriteByte(c.resolveAddr(op), v)
	}
}

// EffectiveOffset returns the pre-segment offset of a memory operand,
// the value LEA writes — it never touches memory (§4.5.7).
func (c *CPU) EffectiveOffset(op Operand) uint16 {
	switch op.Kind {
	case OperandAddress:
		return c.Reg.baseOffset(op.Base) + op.Disp
	case OperandDirect:
		return op.Disp
	}
	return 0
}
