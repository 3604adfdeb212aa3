package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomName(t *testing.T) {
	a := RandomName()
	b := RandomName()
	assert.NotEqual(t, a, b)
	assert.Contains(t, a, "player-")
}
