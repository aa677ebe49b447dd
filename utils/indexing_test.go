package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRange(t *testing.T) {
	assert.Equal(t, Index{3, 4, 5, 6}, NewRange(3, 6))
	assert.Equal(t, Index{0}, NewRange(0, 0))
}

func TestSplit1D(t *testing.T) {
	ranges := Split1D(10, 3)
	assert.Equal(t, [][2]int{{0, 4}, {4, 7}, {7, 10}}, ranges)

	// More threads than work collapses to one row per chunk
	ranges = Split1D(2, 8)
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}}, ranges)
}
