package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/chores/domain"
)

func TestPreviewRenderer_Render(t *testing.T) {
	task := domain.Task{
		ID:                 "4",
		Title:              "Water plants",
		CompletionTimeGoal: "6:00 PM",
		CategoryTags:       []string{"Home", "Other"},
	}

	previews := NewPreviewRenderer().Render(task)
	require.Len(t, previews, 3)

	assert.Equal(t, domain.NotificationComingUp, previews[0].State)
	assert.Equal(t, "Water plants is due at 6:00 PM", previews[0].Body)
	assert.Equal(t, "in 15 minutes", previews[0].Time)

	assert.Equal(t, domain.NotificationDue, previews[1].State)
	assert.Equal(t, "Water plants should be completed now", previews[1].Body)

	assert.Equal(t, domain.NotificationOverdue, previews[2].State)
	assert.Equal(t, "Water plants is past the deadline (6:00 PM)", previews[2].Body)
	assert.Equal(t, "#ef4444", previews[2].Accent)

	for _, p := range previews {
		assert.Equal(t, AppName, p.AppName)
		assert.Equal(t, "Home", p.Category)
	}
}

func TestPreviewRenderer_Untagged(t *testing.T) {
	previews := PreviewRenderer{}.Render(domain.Task{Title: "x", CompletionTimeGoal: "7:00 PM"})

	for _, p := range previews {
		assert.Empty(t, p.Category)
	}
}
