package inventory

import (
	"strconv"
	"strings"
)

// Item is a single inventory entry. All fields are stored as text so that
// user-entered formatting ("1.50" vs "1.5") survives encryption round trips.
type Item struct {
	Description  string `json:"description"`
	WeightOzt    string `json:"weight_ozt"`
	DateAcquired string `json:"date_acquired"`
	PricePaid    string `json:"price_paid"`
	Modifier     string `json:"modifier"`
}

// Dataset is an ordered sequence of items.
type Dataset []Item

// Clone returns a deep copy of the dataset.
func (d Dataset) Clone() Dataset {
	if d == nil {
		return nil
	}
	out := make(Dataset, len(d))
	copy(out, d)
	return out
}

// Amount parses a non-negative decimal stored as text. Invalid or negative
// text counts as zero; this mirrors how blank cells behave in the editor.
func Amount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// Insert places item at index, clamping the index to the valid range.
// Returns the new dataset; the receiver is not modified.
func (d Dataset) Insert(index int, item Item) Dataset {
	if index < 0 {
		index = 0
	}
	if index > len(d) {
		index = len(d)
	}
	out := make(Dataset, 0, len(d)+1)
	out = append(out, d[:index]...)
	out = append(out, item)
	out = append(out, d[index:]...)
	return out
}

// Remove deletes the item at index and returns the new dataset together
// with the removed item. ok is false when index is out of range.
func (d Dataset) Remove(index int) (Dataset, Item, bool) {
	if index < 0 || index >= len(d) {
		return d, Item{}, false
	}
	removed := d[index]
	out := make(Dataset, 0, len(d)-1)
	out = append(out, d[:index]...)
	out = append(out, d[index+1:]...)
	return out, removed, true
}
