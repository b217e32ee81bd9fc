package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSelectionSetToggle(t *testing.T) {
	userID := uuid.New()
	now := time.Now()

	t.Run("adds an absent key", func(t *testing.T) {
		set := SelectionSet{}.Toggle(8, userID, "witty-otter", now)

		assert.True(t, set.Contains(8))
		owner, ok := set.Owner(8)
		assert.True(t, ok)
		assert.Equal(t, userID, owner.SelectedBy)
	})

	t.Run("removes by key regardless of who added it", func(t *testing.T) {
		other := uuid.New()
		set := SelectionSet{{Key: 8, SelectedBy: other, Username: "calm-lynx"}}

		out := set.Toggle(8, userID, "witty-otter", now)

		assert.False(t, out.Contains(8))
		assert.Empty(t, out)
	})

	t.Run("is self-inverse", func(t *testing.T) {
		set := SelectionSet{{Key: 35}, {Key: 99}}

		out := set.Toggle(8, userID, "witty-otter", now).Toggle(8, userID, "witty-otter", now)

		assert.Equal(t, set.Keys(), out.Keys())
	})

	t.Run("does not mutate the receiver", func(t *testing.T) {
		set := SelectionSet{{Key: 35}}

		_ = set.Toggle(8, userID, "witty-otter", now)

		assert.Equal(t, []int64{35}, set.Keys())
	})
}

func TestSelectionSetKeys(t *testing.T) {
	set := SelectionSet{{Key: 8}, {Key: 35}, {Key: 99}}
	assert.Equal(t, []int64{8, 35, 99}, set.Keys())
	assert.Empty(t, SelectionSet{}.Keys())
}

func TestIsLegalTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		legal    bool
	}{
		{StatusWaiting, StatusConfiguring, true},
		{StatusConfiguring, StatusMatching, true},
		{StatusWaiting, StatusMatching, false},
		{StatusConfiguring, StatusWaiting, false},
		{StatusMatching, StatusCompleted, false},
		{StatusMatching, StatusWaiting, false},
		{StatusCompleted, StatusWaiting, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.legal, IsLegalTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}
