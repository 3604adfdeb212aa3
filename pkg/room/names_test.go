package room

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameRegistry(t *testing.T) {
	a := assert.New(t)
	r := NewNameRegistry()

	a.False(r.Register(""))
	a.True(r.Register("bob"))
	a.False(r.Register("bob"))

	r.Release("bob")
	a.True(r.Register("bob"))

	// release is idempotent
	r.Release("bob")
	r.Release("bob")
	r.Release("never-registered")
	a.True(r.Register("bob"))
}

func TestNameRegistry_concurrent(t *testing.T) {
	r := NewNameRegistry()

	const attempts = 32
	var succeeded int64
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if r.Register("bob") {
				atomic.AddInt64(&succeeded, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), succeeded)
}
