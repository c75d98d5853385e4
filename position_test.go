package sheetengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionString(t *testing.T) {
	tests := []struct {
		pos  Position
		want string
	}{
		{Position{Row: 0, Col: 0}, "A1"},
		{Position{Row: 0, Col: 25}, "Z1"},
		{Position{Row: 0, Col: 26}, "AA1"},
		{Position{Row: 9, Col: 27}, "AB10"},
		{Position{Row: 0, Col: 701}, "ZZ1"},
		{Position{Row: 0, Col: 702}, "AAA1"},
		{Position{Row: -1, Col: 0}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.pos.String())
	}
}

func TestPositionFromString(t *testing.T) {
	tests := []struct {
		in   string
		want Position
	}{
		{"A1", Position{Row: 0, Col: 0}},
		{"Z1", Position{Row: 0, Col: 25}},
		{"AA1", Position{Row: 0, Col: 26}},
		{"AB10", Position{Row: 9, Col: 27}},
		{"ZZ1", Position{Row: 0, Col: 701}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PositionFromString(tt.in))
	}
}

func TestPositionFromStringRejectsMalformed(t *testing.T) {
	bad := []string{"", "1", "A", "1A", "a1", "A1B", "AAAA1", "A-1", "A0", "A "}
	for _, in := range bad {
		assert.Equal(t, NonePosition, PositionFromString(in), "input %q", in)
	}
}

func TestPositionFromStringRejectsOutOfRange(t *testing.T) {
	assert.Equal(t, NonePosition, PositionFromString("ZZZ1"))
	assert.Equal(t, NonePosition, PositionFromString("A99999"))
}

func TestPositionRoundTrip(t *testing.T) {
	samples := []Position{
		{Row: 0, Col: 0},
		{Row: 41, Col: 2},
		{Row: 16383, Col: 16383},
		{Row: 100, Col: 676},
	}
	for _, p := range samples {
		assert.Equal(t, p, PositionFromString(p.String()))
	}
}

func TestPositionIsValid(t *testing.T) {
	assert.True(t, Position{Row: 0, Col: 0}.IsValid())
	assert.True(t, Position{Row: MaxRows - 1, Col: MaxCols - 1}.IsValid())
	assert.False(t, Position{Row: MaxRows, Col: 0}.IsValid())
	assert.False(t, Position{Row: 0, Col: MaxCols}.IsValid())
	assert.False(t, Position{Row: -1, Col: 0}.IsValid())
}

func TestPositionLess(t *testing.T) {
	assert.True(t, (Position{Row: 0, Col: 1}).Less(Position{Row: 1, Col: 0}))
	assert.True(t, (Position{Row: 0, Col: 0}).Less(Position{Row: 0, Col: 1}))
	assert.False(t, (Position{Row: 0, Col: 1}).Less(Position{Row: 0, Col: 1}))
}
