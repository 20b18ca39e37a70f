package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"0.00", 0},
		{"1", 100},
		{"1.5", 150},
		{"199.90", 19990},
		{"0.07", 7},
		{"12345678.99", 1234567899},
	}
	for _, tc := range cases {
		got, err := ParseCents(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseCentsRejectsInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "-1.00", "+5", "1.234", "1.2.3", "1,50", "."} {
		_, err := ParseCents(in)
		assert.ErrorIs(t, err, ErrInvalidPrice, "input %q", in)
	}
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "0.00", FormatCents(0))
	assert.Equal(t, "0.07", FormatCents(7))
	assert.Equal(t, "1.50", FormatCents(150))
	assert.Equal(t, "199.90", FormatCents(19990))
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 100, 12345, 1234567899} {
		got, err := ParseCents(FormatCents(cents))
		require.NoError(t, err)
		assert.Equal(t, cents, got)
	}
}
