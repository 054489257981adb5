package core

import (
	"strconv"
	"sync"
	"time"
)

// timestampIDs hands out millisecond timestamp ids. An id is never reused
// within one sequence and never collides with an id in taken.
type timestampIDs struct {
	mu   sync.Mutex
	last int64
}

func (q *timestampIDs) next(now time.Time, taken map[string]struct{}) string {
	q.mu.Lock()
	defer q.mu.Unlock()

	id := now.UnixMilli()
	if id <= q.last {
		id = q.last + 1
	}
	for {
		if _, ok := taken[strconv.FormatInt(id, 10)]; !ok {
			break
		}
		id++
	}
	q.last = id
	return strconv.FormatInt(id, 10)
}
