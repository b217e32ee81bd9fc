package model

import (
	"time"

	"github.com/google/uuid"
)

type SelectionKind = string

const (
	SelectionProvider SelectionKind = "provider"
	SelectionGenre    SelectionKind = "genre"
)

// Selection is one entry of a collaboratively edited set. Key is the catalog
// id of the provider or genre; membership is decided by Key alone, so any
// participant may remove an item someone else added.
type Selection struct {
	Key        int64     `json:"key"`
	SelectedBy uuid.UUID `json:"selected_by"`
	Username   string    `json:"username"`
	SelectedAt time.Time `json:"selected_at"`
}

type SelectionSet []Selection

func (s SelectionSet) Contains(key int64) bool {
	for _, sel := range s {
		if sel.Key == key {
			return true
		}
	}
	return false
}

// Owner returns the selection carrying who added the item, if present.
func (s SelectionSet) Owner(key int64) (Selection, bool) {
	for _, sel := range s {
		if sel.Key == key {
			return sel, true
		}
	}
	return Selection{}, false
}

// Toggle is the merge function for concurrent edits: remove-by-key when the
// item is present, append otherwise. Calling it twice with no interleaving
// write yields the original set.
func (s SelectionSet) Toggle(key int64, userID uuid.UUID, username string, now time.Time) SelectionSet {
	if s.Contains(key) {
		out := make(SelectionSet, 0, len(s))
		for _, sel := range s {
			if sel.Key != key {
				out = append(out, sel)
			}
		}
		return out
	}
	out := make(SelectionSet, len(s), len(s)+1)
	copy(out, s)
	return append(out, Selection{
		Key:        key,
		SelectedBy: userID,
		Username:   username,
		SelectedAt: now,
	})
}

// Keys is the flattened id projection persisted alongside the rich set.
func (s SelectionSet) Keys() []int64 {
	keys := make([]int64, 0, len(s))
	for _, sel := range s {
		keys = append(keys, sel.Key)
	}
	return keys
}
