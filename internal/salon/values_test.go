package salon

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestFormatDateInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"1", "1"},
		{"12", "12"},
		{"123", "12/3"},
		{"1203", "12/03"},
		{"12032", "12/03/2"},
		{"12032024", "12/03/2024"},
		{"12/03/2024", "12/03/2024"},
		{"12-03-2024", "12/03/2024"},
		{"1203202499", "12/03/2024"},
		{"ab12c", "12"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDateInput(tt.in))
		})
	}
}

func TestParseStock(t *testing.T) {
	n, err := ParseStock(" 5 ")
	assert.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = ParseStock("")
	assert.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = ParseStock("-2")
	assert.NoError(t, err)
	assert.Equal(t, -2, n)

	_, err = ParseStock("five")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseOrderValue(t *testing.T) {
	tests := map[string]string{
		"10.50":    "10.5",
		" 5 ":      "5",
		"abc":      "0",
		"":         "0",
		"NaN":      "0",
		"10,50":    "10",
		"10abc":    "10",
		"45 reais": "45",
		"-3.5x":    "-3.5",
		".5":       "0.5",
		"1e2":      "100",
		"Infinity": "0",
	}
	for in, want := range tests {
		assert.Equalf(t, want, ParseOrderValue(in).String(), "input %q", in)
	}
}
