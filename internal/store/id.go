package store

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Row ids are ULIDs: every aggregate (games, nations, events, chats,
// reactions) sorts by creation time without a separate sequence column, and
// the monotonic source keeps ids ordered within one process.
var (
	idEntropy = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	idMu      sync.Mutex
)

// NewID returns a fresh lexicographically sortable row id.
func NewID() string {
	idMu.Lock()
	defer idMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), idEntropy).String()
}
