// decoder.go - byte stream -> Op, including ModR/M, displacements, immediates

package i8086

// ByteReader is the contract the decoder pulls code bytes from: each
// call yields the next byte in instruction-stream order, or ok=false
// if the stream is exhausted. The CPU shell's codeFetcher adapts
// memory[CS:IP] (post-incrementing IP) into this interface (§6).
type ByteReader interface {
	NextByte() (byte, bool)
}

// decodeCtx threads a ByteReader through one Decode call.
type decodeCtx struct {
	r ByteReader
}

func (d *decodeCtx) u8() (byte, bool) {
	return d.r.NextByte()
}

func (d *decodeCtx) u16() (uint16, bool) {
	lo, ok := d.r.NextByte()
	if !ok {
		return 0, false
	}
	hi, ok := d.r.NextByte()
	if !ok {
		return 0, false
	}
	return uint16(lo) | uint16(hi)<<8, true
}

func (d *decodeCtx) i8() (int8, bool) {
	b, ok := d.u8()
	return int8(b), ok
}

// Register decode tables, indexed by the 3-bit ModR/M field they came
// from (§4.2, §4.3).
var regWordTable = [8]RegisterID{RegAX, RegCX, RegDX, RegBX, RegSP, RegBP, RegSI, RegDI}
var regByteTable = [8]RegisterID{RegAL, RegCL, RegDL, RegBL, RegAH, RegCH, RegDH, RegBH}
var segRegTable = [4]RegisterID{RegES, RegCS, RegSS, RegDS}
var addressBaseTable = [8]AddressBase{BaseBxSi, BaseBxDi, BaseBpSi, BaseBpDi, BaseSi, BaseDi, BaseBp, BaseBx}

func regOperand(idx byte, wide bool) Operand {
	if wide {
		return Operand{Kind: OperandRegister, Reg: regWordTable[idx&7]}
	}
	return Operand{Kind: OperandRegister, Reg: regByteTable[idx&7]}
}

// modrm holds the decoded mod/reg/rm fields of a ModR/M byte.
type modrm struct {
	mod, reg, rm byte
}

func (d *decodeCtx) fetchModRM() (modrm, bool) {
	b, ok := d.u8()
	if !ok {
		return modrm{}, false
	}
	return modrm{mod: (b >> 6) & 3, reg: (b >> 3) & 7, rm: b & 7}, true
}

// rmOperand decodes the r/m operand of a ModR/M byte already read into
// m, including any trailing displacement bytes (§4.3).
func (d *decodeCtx) rmOperand(m modrm, wide bool) (Operand, bool) {
	if m.mod == 3 {
		return regOperand(m.rm, wide), true
	}
	base := addressBaseTable[m.rm]
	switch m.mod {
	case 0:
		if m.rm == 6 {
			disp, ok := d.u16()
			if !ok {
				return Operand{}, false
			}
			return Operand{Kind: OperandDirect, Disp: disp}, true
		}
		return Operand{Kind: OperandAddress, Base: base}, true
	case 1:
		disp, ok := d.i8()
		if !ok {
			return Operand{}, false
		}
		return Operand{Kind: OperandAddress, Base: base, Disp: uint16(int16(disp))}, true
	case 2:
		disp, ok := d.u16()
		if !ok {
			return Operand{}, false
		}
		return Operand{Kind: OperandAddress, Base: base, Disp: disp}, true
	}
	return Operand{}, false
}

// Decode turns the next instruction in r into an Op, consuming exactly
// that instruction's bytes, or reports false if the opcode (or a
// group's sub-opcode slot) is unassigned, or the stream runs out
// mid-instruction (§4.3, §7).
func Decode(r ByteReader) (Op, bool) {
	d := &decodeCtx{r: r}
	b, ok := d.u8()
	if !ok {
		return Op{}, false
	}
	return dispatch(d, b)
}

// dispatch routes the first opcode byte to its family decoder. Ranges
// follow §4.3's opcode group table.
func dispatch(d *decodeCtx, b byte) (Op, bool) {
	switch {
	case b <= 0x3F:
		return decodeALUBlock(d, b)
	case b >= 0x40 && b <= 0x4F:
		return decodeIncDecReg(d, b)
	case b >= 0x50 && b <= 0x5F:
		return decodePushPopReg(d, b)
	case b >= 0x70 && b <= 0x7F:
		return decodeCondJmpShort(d, b)
	case b >= 0x80 && b <= 0x83:
		return decodeGroup1(d, b)
	case b >= 0x84 && b <= 0x8F:
		return decode84to8F(d, b)
	case b == 0x90:
		ax := regOperand(0, true)
		return Op{Kind: KindBinaryWord, BinOp: OpXchg, Src: ax, Dest: ax}, true
	case b >= 0x91 && b <= 0x97:
		return Op{Kind: KindBinaryWord, BinOp: OpXchg, Src: regOperand(0, true), Dest: regOperand(b&7, true)}, true
	case b >= 0x98 && b <= 0x9F:
		return decode98to9F(d, b)
	case b >= 0xA0 && b <= 0xA3:
		return decodeMovAccMem(d, b)
	case b >= 0xA4 && b <= 0xA7:
		return decodeStringAF(d, b)
	case b == 0xA8 || b == 0xA9:
		return decodeTestAcc(d, b)
	case b >= 0xAA && b <= 0xAF:
		return decodeStringAF(d, b)
	case b >= 0xB0 && b <= 0xBF:
		return decodeMovImmReg(d, b)
	case b == 0xC2 || b == 0xC3 || b == 0xCA || b == 0xCB:
		return decodeRet(d, b)
	case b == 0xC4 || b == 0xC5:
		return decodeLdsLes(d, b)
	case b == 0xC6 || b == 0xC7:
		return decodeMovRMImm(d, b)
	case b == 0xCC || b == 0xCD || b == 0xCE || b == 0xCF:
		return decodeIntGroup(d, b)
	case b >= 0xD0 && b <= 0xD3:
		return decodeShiftGroup(d, b)
	case b == 0xD4:
		imm, ok := d.u8()
		if !ok || imm != 0x0A {
			return Op{}, false
		}
		return Op{Kind: KindNullary, Nullary: NullAam}, true
	case b == 0xD5:
		imm, ok := d.u8()
		if !ok || imm != 0x0A {
			return Op{}, false
		}
		return Op{Kind: KindNullary, Nullary: NullAad}, true
	case b == 0xD7:
		return Op{Kind: KindNullary, Nullary: NullXlat}, true
	case b >= 0xD8 && b <= 0xDF:
		return decodeEsc(d, b)
	case b >= 0xE0 && b <= 0xE3:
		return decodeLoopJcxz(d, b)
	case b >= 0xE4 && b <= 0xE7:
		return decodeIOVariable(d, b)
	case b == 0xE8:
		return decodeCallNear(d)
	case b == 0xE9:
		return decodeJmpNear(d)
	case b == 0xEA:
		return decodeJmpFar(d)
	case b == 0xEB:
		return decodeJmpShort(d)
	case b >= 0xEC && b <= 0xEF:
		return decodeIOFixed(d, b)
	case b == 0xF0:
		return Op{Kind: KindNullary, Nullary: NullLock}, true
	case b == 0xF2:
		return Op{Kind: KindNullary, Nullary: NullRepnz}, true
	case b == 0xF3:
		return Op{Kind: KindNullary, Nullary: NullRepz}, true
	case b == 0xF4:
		return Op{Kind: KindNullary, Nullary: NullHlt}, true
	case b == 0xF5:
		return Op{Kind: KindNullary, Nullary: NullCmc}, true
	case b == 0xF6 || b == 0xF7:
		return decodeGroup3(d, b)
	case b == 0xF8:
		return Op{Kind: KindNullary, Nullary: NullClc}, true
	case b == 0xF9:
		return Op{Kind: KindNullary, Nullary: NullStc}, true
	case b == 0xFA:
		return Op{Kind: KindNullary, Nullary: NullCli}, true
	case b == 0xFB:
		return Op{Kind: KindNullary, Nullary: NullSti}, true
	case b == 0xFC:
		return Op{Kind: KindNullary, Nullary: NullCld}, true
	case b == 0xFD:
		return Op{Kind: KindNullary, Nullary: NullStd}, true
	case b == 0xFE || b == 0xFF:
		return decodeGroup45(d, b)
	}
	return Op{}, false
}
