package util

import (
	"github.com/google/uuid"
)

// RandomName generates a random display name suitable for testing
func RandomName() string {
	return "player-" + uuid.New().String()
}
