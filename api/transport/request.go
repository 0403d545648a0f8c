package transport

import "github.com/fastygo/chores/domain"

// DateRequest selects the day whose tasks are listed.
type DateRequest struct {
	Date string `json:"date"`
}

// CategoryRequest sets the category filter; null clears it.
type CategoryRequest struct {
	Category *string `json:"category"`
}

// SubmitRequest optionally carries a full draft that replaces the open one.
type SubmitRequest struct {
	Draft *domain.Draft `json:"draft"`
}

// Keys accepted by PATCH /api/v1/form besides the draft field names.
const (
	PatchToggleDay      = "toggleDay"
	PatchToggleCategory = "toggleCategory"
	PatchToggleAlert    = "toggleAlert"
)
