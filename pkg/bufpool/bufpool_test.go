package bufpool

import (
	"bytes"
	"sync"
	"testing"
)

func TestGetReturnsEmptyBuffer(t *testing.T) {
	b := Get()
	b.WriteString("leftover payload data")
	Put(b)

	for i := 0; i < 10; i++ {
		got := Get()
		if got.Len() != 0 {
			t.Fatalf("Get() returned buffer with %d bytes, want empty", got.Len())
		}
		Put(got)
	}
}

func TestPutDiscardsOversizedBuffers(t *testing.T) {
	b := new(bytes.Buffer)
	b.Grow(maxRetainedCap * 2)
	Put(b)
	Put(nil)
}

func TestConcurrentUse(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				b := Get()
				b.WriteString("record")
				Put(b)
			}
		}()
	}
	wg.Wait()
}
