package guard

import (
	"sync"
	"testing"
)

func TestRWGuardSerializesWriters(t *testing.T) {
	var g RWGuard
	var counter int
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Write(func() {
				counter++
			})
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Fatalf("counter = %d, want 50", counter)
	}
}

func TestRWGuardAllowsConcurrentReaders(t *testing.T) {
	var g RWGuard
	g.BeginRead()
	g.BeginRead() // a second reader must not deadlock
	g.EndRead()
	g.EndRead()
}
