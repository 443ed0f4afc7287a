package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocate(t *testing.T) {
	for _, tt := range []struct {
		input   string
		offsets []int
		want    []Position
	}{
		{"", []int{0}, []Position{{0, 1, 1}}},
		{"A\n", []int{0, 1, 2}, []Position{
			{0, 1, 1},
			{1, 1, 2},
			{2, 2, 1},
		}},
		{"\nAA\r\r\nA\n\n", []int{1, 3, 4, 5, 6, 9}, []Position{
			{1, 2, 1},
			{3, 2, 3},
			{4, 3, 1},
			{5, 3, 2},
			{6, 4, 1},
			{9, 6, 1},
		}},
		// Out of order queries exercise the line start cache.
		{"\nAA\r\r\nA\n\n", []int{9, 1, 5, 3}, []Position{
			{9, 6, 1},
			{1, 2, 1},
			{5, 3, 2},
			{3, 2, 3},
		}},
	} {
		loc := NewLocator(tt.input)
		for i, offset := range tt.offsets {
			assert.Equal(t, tt.want[i], loc.Locate(offset),
				"%q offset %d", tt.input, offset)
		}
	}
}

func TestLocateClamps(t *testing.T) {
	assert.Equal(t, Position{2, 1, 3}, Locate("ab", 5))
	assert.Equal(t, Position{0, 1, 1}, Locate("ab", -1))
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "3:7", Position{Offset: 42, Line: 3, Column: 7}.String())
}
