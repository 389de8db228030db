package stringutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNumeric(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"Valid digits", "123456", true},
		{"Valid PSID", "2519836451412456", true},
		{"Empty string", "", false},
		{"Contains letter", "123a456", false},
		{"Contains space", "123 456", false},
		{"Only letters", "abc", false},
		{"Special chars", "123-456", false},
		{"Full-width digits", "１２３", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsNumeric(tt.input))
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{"Fits", "hello", 5, "hello"},
		{"Cut with ellipsis", "hello world", 5, "he..."},
		{"Trailing space trimmed", "ab cdef", 6, "ab..."},
		{"Tiny limit", "abcdef", 2, "ab"},
		{"Zero limit", "abc", 0, ""},
		{"Multibyte", "你好世界你好", 5, "你好..."},
		{"Empty", "", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, TruncateRunes(tt.input, tt.limit))
		})
	}

	long := strings.Repeat("界", 3000)
	assert.Len(t, []rune(TruncateRunes(long, 2000)), 2000)
}
