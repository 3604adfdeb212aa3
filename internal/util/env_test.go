package util

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetenv(t *testing.T) {
	const key = "CARDRUSH_TEST_ENV_VAR"
	_ = os.Unsetenv(key)
	assert.Equal(t, "fallback", Getenv(key, "fallback"))

	_ = os.Setenv(key, "value")
	defer func() { _ = os.Unsetenv(key) }()
	assert.Equal(t, "value", Getenv(key, "fallback"))
}
