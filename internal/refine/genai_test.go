package refine

import (
	"sync"
	"testing"

	"github.com/nguyentantai21042004/video-notes/internal/logger"
)

func TestGenaiClientConcurrentKeyRotation(t *testing.T) {
	c := NewGenaiClient([]string{"key-a", "key-b", "key-c"}, logger.New("error", "text")).(*implGenaiClient)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				idx, key := c.key()
				if key != c.apiKeys[idx] {
					t.Errorf("key %q does not match index %d", key, idx)
					return
				}
				c.rotateKey()
			}
		}()
	}
	wg.Wait()

	idx, _ := c.key()
	if idx < 0 || idx >= len(c.apiKeys) {
		t.Fatalf("key index %d out of range", idx)
	}
}
