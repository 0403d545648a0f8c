package domain

// Selection is the transient list filter chosen by the user. It is never persisted.
type Selection struct {
	Date     string  `json:"date"`
	Category *string `json:"category"`
}

// HasCategory reports whether a category filter is active.
func (s Selection) HasCategory() bool {
	return s.Category != nil && *s.Category != ""
}

// CategoryValue returns the active filter or the empty string.
func (s Selection) CategoryValue() string {
	if s.Category == nil {
		return ""
	}
	return *s.Category
}
