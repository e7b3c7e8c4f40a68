package booking

import "fmt"

// codeLen is the fixed length of a reserve code: one category prefix
// digit followed by a 5-digit zero-padded sequence.
const codeLen = 6

// FormatCode renders a reserve code from its prefix digit and sequence
// number.
func FormatCode(prefix byte, seq int) string {
	return fmt.Sprintf("%c%05d", prefix, seq)
}

// ParseCode validates the shape of a reserve code and returns its
// category prefix digit.  It accepts exactly six ASCII digits.
func ParseCode(code string) (byte, bool) {
	if len(code) != codeLen {
		return 0, false
	}
	for i := 0; i < codeLen; i++ {
		if code[i] < '0' || code[i] > '9' {
			return 0, false
		}
	}
	return code[0], true
}
