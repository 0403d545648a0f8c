// Package view derives render-ready task lists from the store contents and
// the current selection. Nothing here mutates its inputs.
package view

import (
	"slices"

	"github.com/fastygo/chores/domain"
)

// VisibleCategories is the sorted union of every tag in the whole collection.
func VisibleCategories(tasks []domain.Task) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, t := range tasks {
		for _, tag := range t.CategoryTags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	slices.Sort(out)
	return out
}

// FilteredTasks keeps tasks due on date and, when category is set, tagged with it.
// Store order is preserved.
func FilteredTasks(tasks []domain.Task, date string, category *string) []domain.Task {
	out := []domain.Task{}
	for i := range tasks {
		if tasks[i].Date != date {
			continue
		}
		if category != nil && !tasks[i].HasCategory(*category) {
			continue
		}
		out = append(out, tasks[i].Clone())
	}
	return out
}

// Project applies a selection to the collection. An empty category counts as no filter.
func Project(tasks []domain.Task, sel domain.Selection) []domain.Task {
	if !sel.HasCategory() {
		return FilteredTasks(tasks, sel.Date, nil)
	}
	return FilteredTasks(tasks, sel.Date, sel.Category)
}
