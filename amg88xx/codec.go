package amg88xx

// Conversion factors from raw register counts to degrees Celsius
// (datasheet sections 4.4 and 4.7).
const pixelTempConversion = 0.25
const thermistorConversion = 0.0625

// signedMag12ToFloat decodes a 12-bit sign-magnitude value: bit 11 is the
// sign, bits 0-10 the magnitude. The thermistor registers use this format.
func signedMag12ToFloat(val uint16) float32 {
	abs := val & 0x7FF
	if val&0x800 != 0 {
		return -float32(abs)
	}
	return float32(abs)
}

// int12ToFloat decodes the low 12 bits of val as a two's complement
// integer. Sign extension is done with a mask and a subtraction instead of
// shifting a signed value, so the result does not depend on the shift
// semantics of the host integer type. Pixel registers use this format.
func int12ToFloat(val uint16) float32 {
	v := int32(val & 0xFFF)
	if v&0x800 != 0 {
		v -= 1 << 12
	}
	return float32(v)
}

// levelToRaw converts an interrupt level in Celsius to raw counts,
// saturating at the register limits. Out-of-range levels clamp silently;
// the hardware cannot signal more than full scale anyway.
func levelToRaw(level float32) int {
	conv := int(level / pixelTempConversion)
	if conv > 4095 {
		conv = 4095
	}
	if conv < -4095 {
		conv = -4095
	}
	return conv
}

// encodeLevel splits an interrupt level across a register pair: the low
// register carries bits 0-7, the low nibble of the high register carries
// bits 8-11. The layout is fixed by the hardware.
func encodeLevel(level float32) (lo, hi byte) {
	raw := uint16(levelToRaw(level)) & 0xFFF
	return byte(raw), byte(raw >> 8)
}

// decodeLevel is the inverse of encodeLevel.
func decodeLevel(lo, hi byte) float32 {
	raw := uint16(hi&0x0F)<<8 | uint16(lo)
	return int12ToFloat(raw) * pixelTempConversion
}
