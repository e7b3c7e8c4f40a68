package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCode(t *testing.T) {
	assert.Equal(t, "100001", FormatCode('1', 1))
	assert.Equal(t, "700042", FormatCode('7', 42))
	assert.Equal(t, "912345", FormatCode('9', 12345))
}

func TestFormatCodeKeepsFixedWidth(t *testing.T) {
	for _, seq := range []int{0, 1, 99, 99999} {
		assert.Len(t, FormatCode('5', seq), 6)
	}
}

func TestParseCode(t *testing.T) {
	prefix, ok := ParseCode("100042")
	assert.True(t, ok)
	assert.Equal(t, byte('1'), prefix)

	prefix, ok = ParseCode("700008")
	assert.True(t, ok)
	assert.Equal(t, byte('7'), prefix)
}

func TestParseCodeRejectsBadShapes(t *testing.T) {
	for _, code := range []string{"", "12345", "1234567", "1000a2", "10 042", "일00042"} {
		_, ok := ParseCode(code)
		assert.False(t, ok, "code %q should be rejected", code)
	}
}
