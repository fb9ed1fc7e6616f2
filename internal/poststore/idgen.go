package poststore

import (
	"fmt"
	"strconv"
	"sync"
	"time"
)

var (
	idMu       sync.Mutex
	lastMillis int64
	idSeq      int
)

// NewID generates a post identifier derived from wall-clock time at
// millisecond resolution, matching the historical record naming scheme.
//
// Raw millisecond timestamps collide under concurrent creation, so calls
// landing in the same millisecond (or observing a backwards clock step) get a
// monotonically increasing sequence suffix. Identifiers are unique within one
// process; cross-process collisions remain possible, which is why
// Store.Create still detects an existing record and returns ErrConflict.
func NewID() string {
	idMu.Lock()
	defer idMu.Unlock()

	now := time.Now().UnixMilli()
	if now <= lastMillis {
		idSeq++
		return fmt.Sprintf("%d-%d", lastMillis, idSeq)
	}
	lastMillis = now
	idSeq = 0
	return strconv.FormatInt(now, 10)
}
