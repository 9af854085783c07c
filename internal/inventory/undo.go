package inventory

import (
	"sync"
	"time"
)

// UndoLog is a single-slot buffer holding the most recently removed item and
// its original position. The slot expires after a fixed window, and a newer
// removal overwrites whatever is pending; there is no undo stack.
type UndoLog struct {
	mu      sync.Mutex
	item    Item
	index   int
	expires time.Time
	window  time.Duration
	now     func() time.Time
}

// DefaultUndoWindow is how long a removal stays recoverable.
const DefaultUndoWindow = 8 * time.Second

// NewUndoLog creates an UndoLog with the given expiry window. A window of
// zero or less falls back to DefaultUndoWindow.
func NewUndoLog(window time.Duration) *UndoLog {
	if window <= 0 {
		window = DefaultUndoWindow
	}
	return &UndoLog{window: window, now: time.Now}
}

// Record stores a removed item and where it came from, replacing any
// pending entry.
func (u *UndoLog) Record(item Item, index int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.item = item
	u.index = index
	u.expires = u.now().Add(u.window)
}

// Take returns the pending item and its original index, clearing the slot.
// ok is false when nothing is pending or the entry has expired.
func (u *UndoLog) Take() (Item, int, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.expires.IsZero() || u.now().After(u.expires) {
		u.expires = time.Time{}
		return Item{}, 0, false
	}
	item, index := u.item, u.index
	u.item = Item{}
	u.expires = time.Time{}
	return item, index, true
}
