package runparity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	test := []struct {
		carrier string
		m       int
		exp     string
	}{
		{"", 3, ""},
		{"0101010101", 3, ""},
		{"00110011", 3, ""},
		{"00110011", 2, "0000"},
		{"000111", 3, "11"},
		{"0000111", 3, "01"},
		{"000011110000", 3, "000"},
		{"0110", 1, "101"},
		{"00000", 6, ""},
	}
	for _, tt := range test {
		t.Run(tt.carrier, func(t *testing.T) {
			got, err := Decode(bits(tt.carrier), tt.m)
			require.NoError(t, err)
			assert.Equal(t, tt.exp, str(got))
		})
	}
}

func TestParitiesRestartable(t *testing.T) {
	carrier := bits("0001111000001")
	seq, err := Parities(carrier, 3)
	require.NoError(t, err)

	var first, second []bool
	for p := range seq {
		first = append(first, p)
	}
	for p := range seq {
		second = append(second, p)
	}
	assert.Equal(t, "101", str(first))
	assert.Equal(t, first, second)

	// stopping early leaves nothing behind for the next range
	for range seq {
		break
	}
	var third []bool
	for p := range seq {
		third = append(third, p)
	}
	assert.Equal(t, first, third)
}

func TestDecodeDoesNotMutate(t *testing.T) {
	carrier := bits("000111000111")
	_, err := Decode(carrier, 3)
	require.NoError(t, err)
	assert.Equal(t, "000111000111", str(carrier))
}
