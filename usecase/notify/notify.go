// Package notify renders static previews of the reminders a task would produce.
// No notification is ever delivered.
package notify

import (
	"fmt"

	"github.com/fastygo/chores/domain"
)

// AppName is the sender shown on every preview.
const AppName = "Chore Task App"

// Renderer turns a task into notification previews.
type Renderer interface {
	Render(task domain.Task) []domain.Notification
}

// PreviewRenderer produces the coming-up, due and overdue previews in that order.
type PreviewRenderer struct{}

func NewPreviewRenderer() *PreviewRenderer {
	return &PreviewRenderer{}
}

func (PreviewRenderer) Render(task domain.Task) []domain.Notification {
	category := ""
	if len(task.CategoryTags) > 0 {
		category = task.CategoryTags[0]
	}

	previews := []domain.Notification{
		{
			State:   domain.NotificationComingUp,
			Section: "Coming Up",
			Title:   "Task Coming Up",
			Body:    fmt.Sprintf("%s is due at %s", task.Title, task.CompletionTimeGoal),
			Time:    "in 15 minutes",
			Icon:    "⏰",
			Accent:  "#3b82f6",
		},
		{
			State:   domain.NotificationDue,
			Section: "Due Now",
			Title:   "Task Due Now",
			Body:    fmt.Sprintf("%s should be completed now", task.Title),
			Time:    "now",
			Icon:    "🔔",
			Accent:  "#f59e0b",
		},
		{
			State:   domain.NotificationOverdue,
			Section: "Overdue",
			Title:   "Task Overdue",
			Body:    fmt.Sprintf("%s is past the deadline (%s)", task.Title, task.CompletionTimeGoal),
			Time:    "30 minutes ago",
			Icon:    "⚠️",
			Accent:  "#ef4444",
		},
	}
	for i := range previews {
		previews[i].AppName = AppName
		previews[i].Category = category
	}
	return previews
}

var _ Renderer = PreviewRenderer{}
