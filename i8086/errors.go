// errors.go - the core's fault taxonomy (§7)

package i8086

import "errors"

// ErrDecodeFault is returned by Step when Decode reports false: the
// opcode (or a group's sub-opcode slot) is unassigned, or the byte
// stream runs out mid-instruction. execute also returns it for an Op
// whose Kind it does not recognise.
var ErrDecodeFault = errors.New("i8086: decode fault")

// ErrDivideFault is returned by Div/Idiv on a zero divisor or a
// quotient that overflows the destination register (§4.5.2, §7).
var ErrDivideFault = errors.New("i8086: divide fault")

// ErrBadOperand marks a structurally invalid operand for an
// instruction that requires a specific operand shape — an indirect
// far call/jump or LDS/LES naming a register instead of memory
// (§4.5.7, §7). The decoder should never produce this combination;
// it exists to make the invariant checkable at the boundary.
var ErrBadOperand = errors.New("i8086: bad operand combination")

// ErrHalted is returned by Step once HLT has cleared the running flag.
// It is not a fault — §7 explicitly says halting is not an error —
// but callers that loop on Step need a distinguishable sentinel to
// stop without treating it as ErrDecodeFault.
var ErrHalted = errors.New("i8086: halted")
