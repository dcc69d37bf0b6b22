package core

// utoa converts an unsigned integer to a string without using fmt package
// This is a lightweight alternative for embedded systems
func utoa(n uint32) string {
	var buf [10]byte
	return string(appendUint(buf[:0], n))
}

// appendUint appends the decimal form of n to buf
func appendUint(buf []byte, n uint32) []byte {
	if n == 0 {
		return append(buf, '0')
	}

	// Build digits right to left in a scratch array
	var digits [10]byte
	pos := len(digits)
	for n > 0 {
		pos--
		digits[pos] = byte('0' + n%10)
		n /= 10
	}

	return append(buf, digits[pos:]...)
}

// appendMillivolts appends mv as volts with exactly three decimals, e.g.
// 1650 -> "1.650" and 5 -> "0.005".
func appendMillivolts(buf []byte, mv uint32) []byte {
	buf = appendUint(buf, mv/1000)
	frac := mv % 1000
	return append(buf, '.',
		byte('0'+frac/100),
		byte('0'+frac/10%10),
		byte('0'+frac%10))
}

// FormatMillivolts renders millivolts as a volts string with three decimals
func FormatMillivolts(mv uint32) string {
	var buf [16]byte
	return string(appendMillivolts(buf[:0], mv))
}

// Millivolts converts a conversion code to millivolts: reading * vref / fullScale,
// truncated. fullScale is the code count (16384 for a 14-bit converter).
func Millivolts(reading ADCValue, vrefMillivolts, fullScale uint32) uint32 {
	if fullScale == 0 {
		return 0
	}
	return uint32(uint64(reading) * uint64(vrefMillivolts) / uint64(fullScale))
}
