package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUndoLogEmpty(t *testing.T) {
	u := NewUndoLog(0)
	_, _, ok := u.Take()
	assert.False(t, ok)
}

func TestUndoLogRecordTake(t *testing.T) {
	u := NewUndoLog(0)
	u.Record(Item{Description: "coin"}, 3)

	item, index, ok := u.Take()
	assert.True(t, ok)
	assert.Equal(t, "coin", item.Description)
	assert.Equal(t, 3, index)

	// The slot holds exactly one restore.
	_, _, ok = u.Take()
	assert.False(t, ok)
}

func TestUndoLogOverwrite(t *testing.T) {
	u := NewUndoLog(0)
	u.Record(Item{Description: "first"}, 0)
	u.Record(Item{Description: "second"}, 1)

	item, index, ok := u.Take()
	assert.True(t, ok)
	assert.Equal(t, "second", item.Description)
	assert.Equal(t, 1, index)
}

func TestUndoLogExpiry(t *testing.T) {
	now := time.Now()
	u := NewUndoLog(8 * time.Second)
	u.now = func() time.Time { return now }

	u.Record(Item{Description: "coin"}, 0)

	// Just inside the window.
	now = now.Add(7 * time.Second)
	_, _, ok := u.Take()
	assert.True(t, ok)

	u.Record(Item{Description: "coin"}, 0)
	now = now.Add(9 * time.Second)
	_, _, ok = u.Take()
	assert.False(t, ok, "expired removals are not recoverable")
}
