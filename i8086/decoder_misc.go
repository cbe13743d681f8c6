// decoder_misc.go - the remaining opcode families: 0x40-0x7F, 0x90-0xFF

package i8086

// decodeIncDecReg handles 0x40-0x4F: INC/DEC word register.
func decodeIncDecReg(_ *decodeCtx, b byte) (Op, bool) {
	op := OpInc
	if b >= 0x48 {
		op = OpDec
	}
	dest := Operand{Kind: OperandRegister, Reg: regWordTable[b&7]}
	return Op{Kind: KindUnaryWord, UnOp: op, Dest: dest}, true
}

// decodePushPopReg handles 0x50-0x5F: PUSH/POP word register.
func decodePushPopReg(_ *decodeCtx, b byte) (Op, bool) {
	op := OpPush
	if b >= 0x58 {
		op = OpPop
	}
	dest := Operand{Kind: OperandRegister, Reg: regWordTable[b&7]}
	return Op{Kind: KindUnaryWord, UnOp: op, Dest: dest}, true
}

// condTable maps the low nibble of a 0x70-0x7F opcode to its predicate
// (§4.3, §4.5.4). 0xE0-0xE3 are mapped by decodeLoopJcxz instead.
var condTable = [16]Condition{
	CondO, CondNo, CondB, CondNb, CondE, CondNe, CondBe, CondA,
	CondS, CondNs, CondP, CondNp, CondL, CondGe, CondLe, CondG,
}

// decodeCondJmpShort handles 0x70-0x7F: conditional short branches.
func decodeCondJmpShort(d *decodeCtx, b byte) (Op, bool) {
	off, ok := d.i8()
	if !ok {
		return Op{}, false
	}
	return Op{Kind: KindCondJmp, Cond: condTable[b&0xF], Offset8: off}, true
}

// decodeLoopJcxz handles 0xE0-0xE3: LOOP/LOOPE/LOOPNE/JCXZ.
func decodeLoopJcxz(d *decodeCtx, b byte) (Op, bool) {
	off, ok := d.i8()
	if !ok {
		return Op{}, false
	}
	var cond Condition
	switch b {
	case 0xE0:
		cond = CondLoopne
	case 0xE1:
		cond = CondLoope
	case 0xE2:
		cond = CondLoop
	case 0xE3:
		cond = CondCxz
	}
	return Op{Kind: KindCondJmp, Cond: cond, Offset8: off}, true
}

// decode98to9F handles CBW, CWD, CALL far direct, WAIT, PUSHF, POPF,
// SAHF, LAHF.
func decode98to9F(d *decodeCtx, b byte) (Op, bool) {
	switch b {
	case 0x98:
		return Op{Kind: KindNullary, Nullary: NullCbw}, true
	case 0x99:
		return Op{Kind: KindNullary, Nullary: NullCwd}, true
	case 0x9A:
		off, ok := d.u16()
		if !ok {
			return Op{}, false
		}
		seg, ok := d.u16()
		if !ok {
			return Op{}, false
		}
		return Op{Kind: KindCall, Target: CallTarget{Kind: CallInterDirect, Seg: seg, Off: off}}, true
	case 0x9B:
		return Op{Kind: KindNullary, Nullary: NullWait}, true
	case 0x9C:
		return Op{Kind: KindNullary, Nullary: NullPushf}, true
	case 0x9D:
		return Op{Kind: KindNullary, Nullary: NullPopf}, true
	case 0x9E:
		return Op{Kind: KindNullary, Nullary: NullSahf}, true
	case 0x9F:
		return Op{Kind: KindNullary, Nullary: NullLahf}, true
	}
	return Op{}, false
}

// decodeMovAccMem handles 0xA0-0xA3: MOV accumulator <-> direct memory.
func decodeMovAccMem(d *decodeCtx, b byte) (Op, bool) {
	off, ok := d.u16()
	if !ok {
		return Op{}, false
	}
	mem := Operand{Kind: OperandDirect, Disp: off}
	wide := b == 0xA1 || b == 0xA3
	acc := Operand{Kind: OperandRegister, Reg: RegAL}
	if wide {
		acc = Operand{Kind: OperandRegister, Reg: RegAX}
	}
	kind := KindBinaryByte
	if wide {
		kind = KindBinaryWord
	}
	if b == 0xA0 || b == 0xA1 {
		return Op{Kind: kind, BinOp: OpMov, Src: mem, Dest: acc}, true
	}
	return Op{Kind: kind, BinOp: OpMov, Src: acc, Dest: mem}, true
}

// decodeTestAcc handles 0xA8/0xA9: TEST accumulator, imm.
func decodeTestAcc(d *decodeCtx, b byte) (Op, bool) {
	if b == 0xA8 {
		imm, ok := d.u8()
		if !ok {
			return Op{}, false
		}
		dest := Operand{Kind: OperandRegister, Reg: RegAL}
		src := Operand{Kind: OperandImmByte, ImmByte: imm}
		return Op{Kind: KindBinaryByte, BinOp: OpTest, Src: src, Dest: dest}, true
	}
	imm, ok := d.u16()
	if !ok {
		return Op{}, false
	}
	dest := Operand{Kind: OperandRegister, Reg: RegAX}
	src := Operand{Kind: OperandImmWord, ImmWord: imm}
	return Op{Kind: KindBinaryWord, BinOp: OpTest, Src: src, Dest: dest}, true
}

// decodeStringAF handles 0xA4-0xA7 (MOVS/CMPS) and 0xAA-0xAF
// (STOS/LODS/SCAS). The REP prefix, if any, was decoded as a separate
// Nullary op on a prior call and is applied by the CPU shell's latch,
// not here.
func decodeStringAF(_ *decodeCtx, b byte) (Op, bool) {
	var strOp StringOp
	var size Size
	switch b {
	case 0xA4:
		strOp, size = StringMovs, SizeByte
	case 0xA5:
		strOp, size = StringMovs, SizeWord
	case 0xA6:
		strOp, size = StringCmps, SizeByte
	case 0xA7:
		strOp, size = StringCmps, SizeWord
	case 0xAA:
		strOp, size = StringStos, SizeByte
	case 0xAB:
		strOp, size = StringStos, SizeWord
	case 0xAC:
		strOp, size = StringLods, SizeByte
	case 0xAD:
		strOp, size = StringLods, SizeWord
	case 0xAE:
		strOp, size = StringScas, SizeByte
	case 0xAF:
		strOp, size = StringScas, SizeWord
	default:
		return Op{}, false
	}
	return Op{Kind: KindString, StringOp: strOp, Size: size}, true
}

// decodeMovImmReg handles 0xB0-0xBF: MOV imm -> register.
func decodeMovImmReg(d *decodeCtx, b byte) (Op, bool) {
	wide := b >= 0xB8
	dest := regOperand(b&7, wide)
	if !wide {
		imm, ok := d.u8()
		if !ok {
			return Op{}, false
		}
		src := Operand{Kind: OperandImmByte, ImmByte: imm}
		return Op{Kind: KindBinaryByte, BinOp: OpMov, Src: src, Dest: dest}, true
	}
	imm, ok := d.u16()
	if !ok {
		return Op{}, false
	}
	src := Operand{Kind: OperandImmWord, ImmWord: imm}
	return Op{Kind: KindBinaryWord, BinOp: OpMov, Src: src, Dest: dest}, true
}

// decodeRet handles 0xC2/0xC3 (near) and 0xCA/0xCB (far) returns.
func decodeRet(d *decodeCtx, b byte) (Op, bool) {
	switch b {
	case 0xC2:
		imm, ok := d.u16()
		if !ok {
			return Op{}, false
		}
		return Op{Kind: KindRetWithinImm, RetImm: imm}, true
	case 0xC3:
		return Op{Kind: KindRetWithin}, true
	case 0xCA:
		imm, ok := d.u16()
		if !ok {
			return Op{}, false
		}
		return Op{Kind: KindRetInterImm, RetImm: imm}, true
	case 0xCB:
		return Op{Kind: KindRetInter}, true
	}
	return Op{}, false
}

// decodeLdsLes handles 0xC4 (LES) and 0xC5 (LDS): rm must be memory.
func decodeLdsLes(d *decodeCtx, b byte) (Op, bool) {
	m, ok := d.fetchModRM()
	if !ok || m.mod == 3 {
		return Op{}, false
	}
	rm, ok := d.rmOperand(m, true)
	if !ok {
		return Op{}, false
	}
	if b == 0xC4 {
		return Op{Kind: KindLes, Reg: regWordTable[m.reg], Dest: rm}, true
	}
	return Op{Kind: KindLds, Reg: regWordTable[m.reg], Dest: rm}, true
}

// decodeMovRMImm handles 0xC6/0xC7 /0: MOV rm, imm.
func decodeMovRMImm(d *decodeCtx, b byte) (Op, bool) {
	wide := b == 0xC7
	m, ok := d.fetchModRM()
	if !ok || m.reg != 0 {
		return Op{}, false
	}
	dest, ok := d.rmOperand(m, wide)
	if !ok {
		return Op{}, false
	}
	if !wide {
		imm, ok := d.u8()
		if !ok {
			return Op{}, false
		}
		src := Operand{Kind: OperandImmByte, ImmByte: imm}
		return Op{Kind: KindBinaryByte, BinOp: OpMov, Src: src, Dest: dest}, true
	}
	imm, ok := d.u16()
	if !ok {
		return Op{}, false
	}
	src := Operand{Kind: OperandImmWord, ImmWord: imm}
	return Op{Kind: KindBinaryWord, BinOp: OpMov, Src: src, Dest: dest}, true
}

// decodeIntGroup handles 0xCC (INT3, treated as INT imm=3), 0xCD (INT
// imm8), 0xCE (INTO), 0xCF (IRET).
func decodeIntGroup(d *decodeCtx, b byte) (Op, bool) {
	switch b {
	case 0xCC:
		return Op{Kind: KindInt, IntVec: 3}, true
	case 0xCD:
		imm, ok := d.u8()
		if !ok {
			return Op{}, false
		}
		return Op{Kind: KindInt, IntVec: imm}, true
	case 0xCE:
		return Op{Kind: KindNullary, Nullary: NullInto}, true
	case 0xCF:
		return Op{Kind: KindNullary, Nullary: NullIret}, true
	}
	return Op{}, false
}

// shiftSubOps maps a Group-2 ModR/M reg field to its shift op. Slot 6
// is unassigned on the 8086 (§4.3).
var shiftSubOps = [8]ShiftOp{OpRol, OpRor, OpRcl, OpRcr, OpShl, OpShr, 0, OpSar}

// decodeShiftGroup handles 0xD0-0xD3: shift rm by 1 or CL.
func decodeShiftGroup(d *decodeCtx, b byte) (Op, bool) {
	wide := b == 0xD1 || b == 0xD3
	byCl := b == 0xD2 || b == 0xD3
	m, ok := d.fetchModRM()
	if !ok || m.reg == 6 {
		return Op{}, false
	}
	dest, ok := d.rmOperand(m, wide)
	if !ok {
		return Op{}, false
	}
	shiftType := ShiftOne
	if byCl {
		shiftType = ShiftCl
	}
	kind := KindShiftByte
	if wide {
		kind = KindShiftWord
	}
	return Op{Kind: kind, ShiftOp: shiftSubOps[m.reg], ShiftType: shiftType, Dest: dest}, true
}

// decodeEsc handles 0xD8-0xDF: coprocessor escape. The 6-bit escape
// code is assembled from the 3 low bits of the opcode and the reg
// field of ModR/M, matching how the 8087 decoded it; the core treats
// the whole family as a no-op pass-through (§4.5.7).
func decodeEsc(d *decodeCtx, b byte) (Op, bool) {
	m, ok := d.fetchModRM()
	if !ok {
		return Op{}, false
	}
	rm, ok := d.rmOperand(m, true)
	if !ok {
		return Op{}, false
	}
	code := ((b & 7) << 3) | m.reg
	return Op{Kind: KindEsc, EscCode: code, EscRM: rm}, true
}

// decodeIOVariable handles 0xE4-0xE7: IN/OUT with an immediate 8-bit
// port.
func decodeIOVariable(d *decodeCtx, b byte) (Op, bool) {
	port, ok := d.u8()
	if !ok {
		return Op{}, false
	}
	size := SizeByte
	if b == 0xE5 || b == 0xE7 {
		size = SizeWord
	}
	if b == 0xE4 || b == 0xE5 {
		return Op{Kind: KindInVariable, Size: size, Port8: port}, true
	}
	return Op{Kind: KindOutVariable, Size: size, Port8: port}, true
}

// decodeIOFixed handles 0xEC-0xEF: IN/OUT through the port named by DX.
func decodeIOFixed(_ *decodeCtx, b byte) (Op, bool) {
	size := SizeByte
	if b == 0xED || b == 0xEF {
		size = SizeWord
	}
	if b == 0xEC || b == 0xED {
		return Op{Kind: KindInFixed, Size: size}, true
	}
	return Op{Kind: KindOutFixed, Size: size}, true
}

// decodeCallNear handles 0xE8: CALL near, signed 16-bit displacement.
func decodeCallNear(d *decodeCtx) (Op, bool) {
	off, ok := d.u16()
	if !ok {
		return Op{}, false
	}
	return Op{Kind: KindCall, Target: CallTarget{Kind: CallWithinDirect, Offset: int16(off)}}, true
}

// decodeJmpNear handles 0xE9: JMP near, signed 16-bit displacement.
func decodeJmpNear(d *decodeCtx) (Op, bool) {
	off, ok := d.u16()
	if !ok {
		return Op{}, false
	}
	return Op{Kind: KindJmp, Target: CallTarget{Kind: CallWithinDirect, Offset: int16(off)}}, true
}

// decodeJmpFar handles 0xEA: JMP far, absolute segment:offset.
func decodeJmpFar(d *decodeCtx) (Op, bool) {
	off, ok := d.u16()
	if !ok {
		return Op{}, false
	}
	seg, ok := d.u16()
	if !ok {
		return Op{}, false
	}
	return Op{Kind: KindJmp, Target: CallTarget{Kind: CallInterDirect, Seg: seg, Off: off}}, true
}

// decodeJmpShort handles 0xEB: JMP short, signed 8-bit displacement.
func decodeJmpShort(d *decodeCtx) (Op, bool) {
	off, ok := d.i8()
	if !ok {
		return Op{}, false
	}
	return Op{Kind: KindJmp, Target: CallTarget{Kind: CallWithinDirect, Offset: int16(off)}}, true
}

// group3UnaryOps maps a Group-3 ModR/M reg field. Slot 1 is unassigned
// (§4.3); slot 0 is TEST rm,imm, the rest are unary.
var group3UnaryOps = [8]UnaryOp{0, 0, OpNot, OpNeg, OpMul, OpImul, OpDiv, OpIdiv}

// decodeGroup3 handles 0xF6/0xF7: TEST/NOT/NEG/MUL/IMUL/DIV/IDIV.
func decodeGroup3(d *decodeCtx, b byte) (Op, bool) {
	wide := b == 0xF7
	m, ok := d.fetchModRM()
	if !ok || m.reg == 1 {
		return Op{}, false
	}
	rm, ok := d.rmOperand(m, wide)
	if !ok {
		return Op{}, false
	}
	if m.reg == 0 {
		if !wide {
			imm, ok := d.u8()
			if !ok {
				return Op{}, false
			}
			src := Operand{Kind: OperandImmByte, ImmByte: imm}
			return Op{Kind: KindBinaryByte, BinOp: OpTest, Src: src, Dest: rm}, true
		}
		imm, ok := d.u16()
		if !ok {
			return Op{}, false
		}
		src := Operand{Kind: OperandImmWord, ImmWord: imm}
		return Op{Kind: KindBinaryWord, BinOp: OpTest, Src: src, Dest: rm}, true
	}
	kind := KindUnaryByte
	if wide {
		kind = KindUnaryWord
	}
	return Op{Kind: kind, UnOp: group3UnaryOps[m.reg], Dest: rm}, true
}

// decodeGroup45 handles 0xFE (INC/DEC rm8) and 0xFF (INC/DEC/CALL/JMP/
// PUSH rm16, near and far, direct and indirect).
func decodeGroup45(d *decodeCtx, b byte) (Op, bool) {
	if b == 0xFE {
		m, ok := d.fetchModRM()
		if !ok || m.reg > 1 {
			return Op{}, false
		}
		dest, ok := d.rmOperand(m, false)
		if !ok {
			return Op{}, false
		}
		op := OpInc
		if m.reg == 1 {
			op = OpDec
		}
		return Op{Kind: KindUnaryByte, UnOp: op, Dest: dest}, true
	}

	m, ok := d.fetchModRM()
	if !ok {
		return Op{}, false
	}
	switch m.reg {
	case 0, 1:
		dest, ok := d.rmOperand(m, true)
		if !ok {
			return Op{}, false
		}
		op := OpInc
		if m.reg == 1 {
			op = OpDec
		}
		return Op{Kind: KindUnaryWord, UnOp: op, Dest: dest}, true
	case 2:
		rm, ok := d.rmOperand(m, true)
		if !ok {
			return Op{}, false
		}
		return Op{Kind: KindCall, Target: CallTarget{Kind: CallWithinIndirect, Operand: rm}}, true
	case 3:
		if m.mod == 3 {
			return Op{}, false // far indirect call must name memory, never a register
		}
		rm, ok := d.rmOperand(m, true)
		if !ok {
			return Op{}, false
		}
		return Op{Kind: KindCall, Target: CallTarget{Kind: CallInterIndirect, Operand: rm}}, true
	case 4:
		rm, ok := d.rmOperand(m, true)
		if !ok {
			return Op{}, false
		}
		return Op{Kind: KindJmp, Target: CallTarget{Kind: CallWithinIndirect, Operand: rm}}, true
	case 5:
		if m.mod == 3 {
			return Op{}, false // far indirect jump must name memory, never a register
		}
		rm, ok := d.rmOperand(m, true)
		if !ok {
			return Op{}, false
		}
		return Op{Kind: KindJmp, Target: CallTarget{Kind: CallInterIndirect, Operand: rm}}, true
	case 6:
		dest, ok := d.rmOperand(m, true)
		if !ok {
			return Op{}, false
		}
		return Op{Kind: KindUnaryWord, UnOp: OpPush, Dest: dest}, true
	}
	return Op{}, false
}
