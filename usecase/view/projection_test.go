package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fastygo/chores/domain"
	"github.com/fastygo/chores/usecase/task"
)

const today = "2026-10-14"

func strPtr(s string) *string { return &s }

func titles(tasks []domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func TestFilteredTasks_SeedToday(t *testing.T) {
	seed := task.Seed(today)

	all := FilteredTasks(seed, today, nil)
	assert.Equal(t, []string{"Take out trash", "Clean kitchen", "Do laundry", "Water plants"}, titles(all))

	cleaning := FilteredTasks(seed, today, strPtr("Cleaning"))
	assert.Equal(t, []string{"Take out trash", "Clean kitchen"}, titles(cleaning))

	assert.Empty(t, FilteredTasks(seed, "2026-10-15", nil))
	assert.NotNil(t, FilteredTasks(nil, today, nil))
}

func TestFilteredTasks_IsSubsetInStoreOrder(t *testing.T) {
	seed := task.Seed(today)
	dates := []string{today, "2026-10-20", "2026-01-01"}
	categories := []*string{nil, strPtr("Home"), strPtr("Work"), strPtr("Nope")}

	for _, date := range dates {
		for _, category := range categories {
			got := FilteredTasks(seed, date, category)

			last := -1
			for _, g := range got {
				assert.Equal(t, date, g.Date)
				if category != nil {
					assert.Contains(t, g.CategoryTags, *category)
				}
				idx := -1
				for i := range seed {
					if seed[i].ID == g.ID {
						idx = i
					}
				}
				assert.Greater(t, idx, last)
				last = idx
			}
		}
	}
}

func TestFilteredTasks_DoesNotAliasInput(t *testing.T) {
	seed := task.Seed(today)

	got := FilteredTasks(seed, today, nil)
	got[0].CategoryTags[0] = "Changed"

	assert.Equal(t, "Cleaning", seed[0].CategoryTags[0])
}

func TestVisibleCategories(t *testing.T) {
	assert.Equal(t, []string{"Cleaning", "Home", "Personal", "Work"}, VisibleCategories(task.Seed(today)))
	assert.Equal(t, []string{}, VisibleCategories(nil))
}

func TestProject_EmptyCategoryMeansAll(t *testing.T) {
	seed := task.Seed(today)

	got := Project(seed, domain.Selection{Date: today, Category: strPtr("")})
	assert.Len(t, got, 4)

	got = Project(seed, domain.Selection{Date: "2026-10-20", Category: strPtr("Work")})
	assert.Equal(t, []string{"Monthly budget review"}, titles(got))
}
