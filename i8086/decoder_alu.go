// decoder_alu.go - the 0x00-0x3F ALU binary family, group 1 (0x80-0x83) and 0x84-0x8F

package i8086

// aluBlockOps maps the 3-bit block index (bits 5-3 of an opcode in
// 0x00-0x3F) to the binary op it selects (§4.3).
var aluBlockOps = [8]BinaryOp{OpAdd, OpOr, OpAdc, OpSbb, OpAnd, OpSub, OpXor, OpCmp}

// decimalAdjustOps maps blocks 4-7's octet-7 slot to its nullary op.
var decimalAdjustOps = [4]NullaryOp{NullDaa, NullDas, NullAaa, NullAas}

// decodeALUBlock handles 0x00-0x3F: eight 8-opcode blocks, one per
// binary op, each following the {Eb,Gb / Ev,Gv / Gb,Eb / Gv,Ev /
// AL,imm8 / AX,imm16 / push-seg / pop-seg-or-decimal-adjust} pattern
// (§4.3).
func decodeALUBlock(d *decodeCtx, b byte) (Op, bool) {
	block := (b >> 3) & 7
	octet := b & 7
	binOp := aluBlockOps[block]

	switch octet {
	case 0, 1, 2, 3:
		wide := octet&1 != 0
		dIsReg := octet&2 != 0
		m, ok := d.fetchModRM()
		if !ok {
			return Op{}, false
		}
		reg := regOperand(m.reg, wide)
		rm, ok := d.rmOperand(m, wide)
		if !ok {
			return Op{}, false
		}
		src, dest := reg, rm
		if dIsReg {
			src, dest = rm, reg
		}
		kind := KindBinaryByte
		if wide {
			kind = KindBinaryWord
		}
		return Op{Kind: kind, BinOp: binOp, Src: src, Dest: dest}, true

	case 4:
		imm, ok := d.u8()
		if !ok {
			return Op{}, false
		}
		dest := Operand{Kind: OperandRegister, Reg: RegAL}
		src := Operand{Kind: OperandImmByte, ImmByte: imm}
		return Op{Kind: KindBinaryByte, BinOp: binOp, Src: src, Dest: dest}, true

	case 5:
		imm, ok := d.u16()
		if !ok {
			return Op{}, false
		}
		dest := Operand{Kind: OperandRegister, Reg: RegAX}
		src := Operand{Kind: OperandImmWord, ImmWord: imm}
		return Op{Kind: KindBinaryWord, BinOp: binOp, Src: src, Dest: dest}, true

	case 6:
		if block < 4 {
			dest := Operand{Kind: OperandRegister, Reg: segRegTable[block]}
			return Op{Kind: KindUnaryWord, UnOp: OpPush, Dest: dest}, true
		}
		return Op{Kind: KindSegment, Seg: segRegTable[block-4]}, true

	case 7:
		if block == 1 {
			// 0x0F: POP CS, the only segment pop the 8086 ever assigned
			// to this slot (later reused as a two-byte escape, out of
			// scope here per the Non-goals).
			dest := Operand{Kind: OperandRegister, Reg: RegCS}
			return Op{Kind: KindUnaryWord, UnOp: OpPop, Dest: dest}, true
		}
		if block < 4 {
			dest := Operand{Kind: OperandRegister, Reg: segRegTable[block]}
			return Op{Kind: KindUnaryWord, UnOp: OpPop, Dest: dest}, true
		}
		return Op{Kind: KindNullary, Nullary: decimalAdjustOps[block-4]}, true
	}
	return Op{}, false
}

// decodeGroup1 handles 0x80-0x83: ALU op rm, imm, sub-opcode from the
// ModR/M reg field selects Add/Or/Adc/Sbb/And/Sub/Xor/Cmp. 0x83
// sign-extends an 8-bit immediate to word width (§4.3).
func decodeGroup1(d *decodeCtx, b byte) (Op, bool) {
	wide := b == 0x81 || b == 0x83
	m, ok := d.fetchModRM()
	if !ok {
		return Op{}, false
	}
	dest, ok := d.rmOperand(m, wide)
	if !ok {
		return Op{}, false
	}
	binOp := aluBlockOps[m.reg]

	if !wide { // 0x80/0x82: Eb, Ib (0x82 is a redundant byte-form alias)
		imm, ok := d.u8()
		if !ok {
			return Op{}, false
		}
		src := Operand{Kind: OperandImmByte, ImmByte: imm}
		return Op{Kind: KindBinaryByte, BinOp: binOp, Src: src, Dest: dest}, true
	}
	if b == 0x83 { // Ev, Ib sign-extended to word
		imm, ok := d.i8()
		if !ok {
			return Op{}, false
		}
		src := Operand{Kind: OperandImmWord, ImmWord: uint16(int16(imm))}
		return Op{Kind: KindBinaryWord, BinOp: binOp, Src: src, Dest: dest}, true
	}
	// 0x81: Ev, Iv
	imm, ok := d.u16()
	if !ok {
		return Op{}, false
	}
	src := Operand{Kind: OperandImmWord, ImmWord: imm}
	return Op{Kind: KindBinaryWord, BinOp: binOp, Src: src, Dest: dest}, true
}

// decode84to8F handles TEST/XCHG rm,reg (0x84-0x87), MOV reg<->rm/seg
// (0x88-0x8E), LEA (0x8D), and POP rm (0x8F /0).
func decode84to8F(d *decodeCtx, b byte) (Op, bool) {
	switch b {
	case 0x84, 0x85:
		wide := b == 0x85
		m, ok := d.fetchModRM()
		if !ok {
			return Op{}, false
		}
		rm, ok := d.rmOperand(m, wide)
		if !ok {
			return Op{}, false
		}
		reg := regOperand(m.reg, wide)
		kind := KindBinaryByte
		if wide {
			kind = KindBinaryWord
		}
		return Op{Kind: kind, BinOp: OpTest, Src: reg, Dest: rm}, true

	case 0x86, 0x87:
		wide := b == 0x87
		m, ok := d.fetchModRM()
		if !ok {
			return Op{}, false
		}
		rm, ok := d.rmOperand(m, wide)
		if !ok {
			return Op{}, false
		}
		reg := regOperand(m.reg, wide)
		kind := KindBinaryByte
		if wide {
			kind = KindBinaryWord
		}
		return Op{Kind: kind, BinOp: OpXchg, Src: reg, Dest: rm}, true

	case 0x88, 0x89:
		wide := b == 0x89
		m, ok := d.fetchModRM()
		if !ok {
			return Op{}, false
		}
		rm, ok := d.rmOperand(m, wide)
		if !ok {
			return Op{}, false
		}
		reg := regOperand(m.reg, wide)
		kind := KindBinaryByte
		if wide {
			kind = KindBinaryWord
		}
		return Op{Kind: kind, BinOp: OpMov, Src: reg, Dest: rm}, true

	case 0x8A, 0x8B:
		wide := b == 0x8B
		m, ok := d.fetchModRM()
		if !ok {
			return Op{}, false
		}
		rm, ok := d.rmOperand(m, wide)
		if !ok {
			return Op{}, false
		}
		reg := regOperand(m.reg, wide)
		kind := KindBinaryByte
		if wide {
			kind = KindBinaryWord
		}
		return Op{Kind: kind, BinOp: OpMov, Src: rm, Dest: reg}, true

	case 0x8C, 0x8E:
		m, ok := d.fetchModRM()
		if !ok {
			return Op{}, false
		}
		rm, ok := d.rmOperand(m, true)
		if !ok {
			return Op{}, false
		}
		if m.reg > 3 {
			return Op{}, false
		}
		seg := Operand{Kind: OperandRegister, Reg: segRegTable[m.reg]}
		if b == 0x8C {
			return Op{Kind: KindBinaryWord, BinOp: OpMov, Src: seg, Dest: rm}, true
		}
		return Op{Kind: KindBinaryWord, BinOp: OpMov, Src: rm, Dest: seg}, true

	case 0x8D:
		m, ok := d.fetchModRM()
		if !ok || m.mod == 3 { // LEA of a register operand is nonsensical
			return Op{}, false
		}
		rm, ok := d.rmOperand(m, true)
		if !ok {
			return Op{}, false
		}
		return Op{Kind: KindLea, Reg: regWordTable[m.reg], Dest: rm}, true

	case 0x8F:
		m, ok := d.fetchModRM()
		if !ok || m.reg != 0 {
			return Op{}, false
		}
		rm, ok := d.rmOperand(m, true)
		if !ok {
			return Op{}, false
		}
		return Op{Kind: KindUnaryWord, UnOp: OpPop, Dest: rm}, true
	}
	return Op{}, false
}
