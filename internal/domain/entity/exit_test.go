package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsExitTile(t *testing.T) {
	for _, idx := range []int{200, 201, 206, 207} {
		assert.True(t, IsExitTile(idx), "tile %d", idx)
	}
	for _, idx := range []int{-1, 0, 1, 199, 202, 203, 204, 205, 208, 1000} {
		assert.False(t, IsExitTile(idx), "tile %d", idx)
	}
}
