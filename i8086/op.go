// op.go - the decoded instruction tree

package i8086

// Size distinguishes byte- and word-width instruction forms where the
// Op's Kind alone doesn't already carry it (string ops, fixed/variable
// I/O).
type Size int

const (
	SizeByte Size = iota
	SizeWord
)

// BinaryOp enumerates the ALU/MOV family sharing the reg<->rm
// encodings (§3, BinaryByte/BinaryWord).
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpOr
	OpAdc
	OpSbb
	OpAnd
	OpSub
	OpXor
	OpCmp
	OpXchg
	OpTest
	OpMov
)

// UnaryOp enumerates the single-operand family (§3, UnaryByte/Word).
type UnaryOp int

const (
	OpPush UnaryOp = iota
	OpPop
	OpInc
	OpDec
	OpNot
	OpNeg
	OpMul
	OpImul
	OpDiv
	OpIdiv
)

// ShiftOp enumerates the shift/rotate family.
type ShiftOp int

const (
	OpRol ShiftOp = iota
	OpRor
	OpRcl
	OpRcr
	OpShl
	OpShr
	OpSar
)

// ShiftType distinguishes a shift count of 1 from one drawn from CL.
type ShiftType int

const (
	ShiftOne ShiftType = iota
	ShiftCl
)

// Condition enumerates the 20 conditional-branch predicates of §4.3.
type Condition int

const (
	CondO Condition = iota
	CondNo
	CondB
	CondNb
	CondE
	CondNe
	CondBe
	CondA
	CondS
	CondNs
	CondP
	CondNp
	CondL
	CondGe
	CondLe
	CondG
	CondCxz
	CondLoop
	CondLoope
	CondLoopne
)

// StringOp enumerates the string-move family (§4.5.6).
type StringOp int

const (
	StringMovs StringOp = iota
	StringCmps
	StringScas
	StringLods
	StringStos
)

// NullaryOp enumerates the no-operand instructions of §3.
type NullaryOp int

const (
	NullXlat NullaryOp = iota
	NullLahf
	NullSahf
	NullPushf
	NullPopf
	NullAaa
	NullDaa
	NullAas
	NullDas
	NullAam
	NullAad
	NullCbw
	NullCwd
	NullRepz
	NullRepnz
	NullInto
	NullIret
	NullClc
	NullCmc
	NullStc
	NullCld
	NullStd
	NullCli
	NullSti
	NullHlt
	NullWait
	NullLock
)

// RepPrefix tags which repeat prefix (if any) preceded a string op.
type RepPrefix int

const (
	RepNone RepPrefix = iota
	RepEqual                    // REP / REPE / REPZ
	RepNotEqual                 // REPNE / REPNZ
)

// CallKind tags which of the four call/jump target forms is in effect.
type CallKind int

const (
	CallWithinDirect CallKind = iota
	CallWithinIndirect
	CallInterDirect
	CallInterIndirect
)

// CallTarget is the tagged target of a Call or Jmp op.
type CallTarget struct {
	Kind    CallKind
	Offset  int16   // CallWithinDirect: signed displacement added to IP
	Operand Operand // CallWithinIndirect / CallInterIndirect: must resolve to a register or memory location, never an immediate
	Seg     uint16  // CallInterDirect
	Off     uint16  // CallInterDirect
}

// OpKind tags which case of Op is populated. Width is carried in the
// variant itself (e.g. KindBinaryByte vs KindBinaryWord) rather than erased into a runtime
// flag, per §9.
type OpKind int

const (
	KindBinaryByte OpKind = iota
	KindBinaryWord
	KindUnaryByte
	KindUnaryWord
	KindShiftByte
	KindShiftWord
	KindCondJmp
	KindCall
	KindJmp
	KindRetWithin
	KindRetWithinImm
	KindRetInter
	KindRetInterImm
	KindString
	KindLea
	KindLds
	KindLes
	KindInFixed
	KindOutFixed
	KindInVariable
	KindOutVariable
	KindInt
	KindEsc
	KindSegment
	KindNullary
)

// Op is the decoded, structurally tagged instruction the decoder
// produces and the executor consumes.
type Op struct {
	Kind OpKind

	BinOp BinaryOp // KindBinaryByte/Word
	Src   Operand  // KindBinaryByte/Word
	Dest  Operand  // KindBinaryByte/Word, KindUnaryByte/Word, KindShiftByte/Word, KindLea/Lds/Les

	UnOp UnaryOp // KindUnaryByte/Word

	ShiftOp   ShiftOp   // KindShiftByte/Word
	ShiftType ShiftType // KindShiftByte/Word

	Cond    Condition // KindCondJmp
	Offset8 int8      // KindCondJmp

	Target CallTarget // KindCall, KindJmp

	RetImm uint16 // KindRetWithinImm, KindRetInterImm

	StringOp StringOp  // KindString
	Rep      RepPrefix // unused: the decoder leaves it RepNone; the CPU's repLatch carries the repeat prefix
	Size     Size      // KindString, KindInFixed/OutFixed/InVariable/OutVariable

	Reg RegisterID // KindLea, KindLds, KindLes: destination register

	Port8 uint8 // KindInVariable, KindOutVariable

	IntVec  uint8 // KindInt
	EscCode uint8 // KindEsc: 6-bit coprocessor escape id
	EscRM   Operand

	Seg RegisterID // KindSegment: the override register (ES/CS/SS/DS)

	Nullary NullaryOp // KindNullary
}
