package memory

import (
	"time"

	"github.com/postboard/postboard/internal/pkg/metrics"
)

// Store labels used for metrics
const (
	storeUsers = "users"
	storePosts = "posts"
)

// observe returns a func that records the duration of a store operation when called
func observe(store, operation string) func() {
	start := time.Now()
	return func() {
		metrics.RecordStoreOp(store, operation, time.Since(start))
	}
}

// nextIDAfter returns the first id greater than every id in ids
func nextIDAfter(ids []int) int {
	next := 1
	for _, id := range ids {
		if id >= next {
			next = id + 1
		}
	}
	return next
}
