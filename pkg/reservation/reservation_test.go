package reservation

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_ReserveRelease(t *testing.T) {
	t.Parallel()

	s := NewSet()

	assert.True(t, s.Reserve("9780441478125"))
	assert.False(t, s.Reserve("9780441478125"))
	assert.True(t, s.Reserved("9780441478125"))

	s.Release("9780441478125")
	assert.False(t, s.Reserved("9780441478125"))
	assert.True(t, s.Reserve("9780441478125"))
}

func TestSet_ReleaseUnheldKey(t *testing.T) {
	t.Parallel()

	s := NewSet()
	s.Release("missing")
	assert.Equal(t, 0, s.Len())
}

func TestSet_ConcurrentReserveSingleWinner(t *testing.T) {
	t.Parallel()

	s := NewSet()

	const goroutines = 64
	var wg sync.WaitGroup
	wins := make(chan bool, goroutines)

	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Reserve("contended") {
				wins <- true
			}
		}()
	}
	wg.Wait()
	close(wins)

	assert.Len(t, wins, 1)
}
