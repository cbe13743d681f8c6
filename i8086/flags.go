// flags.go - the arithmetic primitive every binary/unary op composes with

package i8086

// flagResult is what the arithmetic primitive returns: the raw result
// plus a clear/set mask pair applied to FLAGS via BlitFlags. Isolating
// this here keeps every op's flag logic expressible as one BlitFlags
// call (§9).
type flagResult struct {
	result   uint32
	clear    uint16
	set      uint16
}

// widthMasks returns the top-bit and truncation masks for a width.
func widthMasks(wide bool) (top, trunc uint32) {
	if wide {
		return 0x8000, 0xFFFF
	}
	return 0x80, 0xFF
}

func parity(v uint32) bool {
	b := byte(v)
	b ^= b >> 4
	b ^= b >> 2
	b ^= b >> 1
	return b&1 == 0
}

// commonFlags computes SF/ZF/PF from a truncated result, shared by
// every arithmetic and logical primitive.
func commonFlags(result uint32, top, trunc uint32) (clear, set uint16) {
	r := result & trunc
	clear = FlagSF | FlagZF | FlagPF
	if r&top != 0 {
		set |= FlagSF
	}
	if r == 0 {
		set |= FlagZF
	}
	if parity(r) {
		set |= FlagPF
	}
	return clear, set
}

// addFlags computes the full flag vector for s+d (+carryIn), per
// §4.5.1's Add/Adc row.
func addFlags(s, d uint32, carryIn uint32, wide bool) flagResult {
	top, trunc := widthMasks(wide)
	result := d + s + carryIn
	r := result & trunc

	clear, set := commonFlags(result, top, trunc)
	clear |= FlagCF | FlagOF | FlagAF
	if result&^trunc != 0 {
		set |= FlagCF
	}
	if ^(s^d)&(s^r)&top != 0 {
		set |= FlagOF
	}
	if (s^d^r)&0x10 != 0 {
		set |= FlagAF
	}
	return flagResult{result: r, clear: clear, set: set}
}

// subFlags computes the full flag vector for d-(s+borrowIn), per
// §4.5.1's Sub/Cmp/Sbb row.
func subFlags(s, d uint32, borrowIn uint32, wide bool) flagResult {
	top, trunc := widthMasks(wide)
	total := s + borrowIn
	result := d - total
	r := result & trunc

	clear, set := commonFlags(result, top, trunc)
	clear |= FlagCF | FlagOF | FlagAF
	if total > d {
		set |= FlagCF
	}
	if (total^d)&(d^r)&top != 0 {
		set |= FlagOF
	}
	if (total^d^r)&0x10 != 0 {
		set |= FlagAF
	}
	return flagResult{result: r, clear: clear, set: set}
}

// logicFlags computes the flag vector for And/Or/Xor/Test: CF=OF=0,
// AF undefined (left untouched), SF/ZF/PF from the result.
func logicFlags(result uint32, wide bool) flagResult {
	top, trunc := widthMasks(wide)
	clear, set := commonFlags(result, top, trunc)
	clear |= FlagCF | FlagOF
	return flagResult{result: result & trunc, clear: clear, set: set}
}
