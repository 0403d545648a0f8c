package task

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fastygo/chores/domain"
)

func TestSeed_Contents(t *testing.T) {
	tasks := Seed(today)
	require.Len(t, tasks, 5)

	var todays []string
	for _, task := range tasks {
		if task.Date == today {
			todays = append(todays, task.Title)
		}
		assert.False(t, task.IsComplete)
	}
	assert.Equal(t, []string{"Take out trash", "Clean kitchen", "Do laundry", "Water plants"}, todays)

	kitchen := tasks[1]
	assert.True(t, kitchen.IsOverdue)
	assert.Equal(t, "Deep clean counters and sink.", kitchen.Notes)
	assert.False(t, kitchen.RepeatDays.Has(time.Saturday))
	assert.Equal(t, 6, kitchen.RepeatDays.Len())

	budget := tasks[4]
	assert.Equal(t, "2026-10-20", budget.Date)
	assert.Equal(t, domain.MonthlyThirdSaturday, budget.MonthlyPattern)
	assert.Equal(t, "Home office", budget.Location)
	assert.Equal(t, []string{"Work", "Personal"}, budget.CategoryTags)
	require.NotNil(t, budget.DefaultSnoozeMinutes)
	assert.Equal(t, 15, *budget.DefaultSnoozeMinutes)
}

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadSeedFile(t *testing.T) {
	path := writeSeed(t, `
tasks:
  - id: a
    title: "  Feed cat  "
    dayOffset: 1
    repeatDays: [Mon, friday]
    monthlyPattern: last_day
    categoryTags: [Home]
    preDeadlineAlerts: [15, 5]
`)

	tasks, err := LoadSeedFile(path, today)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	got := tasks[0]
	assert.Equal(t, "Feed cat", got.Title)
	assert.Equal(t, "2026-10-15", got.Date)
	assert.Equal(t, domain.DefaultCompletionTimeGoal, got.CompletionTimeGoal)
	assert.Equal(t, []string{"Mon", "Fri"}, got.RepeatDays.Names())
	assert.Equal(t, domain.MonthlyLastDay, got.MonthlyPattern)
	assert.Equal(t, []int{5, 15}, got.PreDeadlineAlerts)
}

func TestLoadSeedFile_Rejects(t *testing.T) {
	cases := map[string]string{
		"duplicate id": "tasks:\n  - {id: a, title: x, categoryTags: [Home]}\n  - {id: a, title: y, categoryTags: [Home]}\n",
		"no category":  "tasks:\n  - {id: a, title: x}\n",
		"bad weekday":  "tasks:\n  - {id: a, title: x, categoryTags: [Home], repeatDays: [Someday]}\n",
		"bad yaml":     "tasks: [",
		"bad time":     "tasks:\n  - {id: a, title: x, categoryTags: [Home], completionTimeGoal: \"19:00\"}\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadSeedFile(writeSeed(t, body), today)
			assert.Error(t, err)
		})
	}
}

func TestSeedSource_FallsBackToBuiltIn(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	now := func() time.Time { return time.Date(2026, 10, 14, 9, 0, 0, 0, time.Local) }

	tasks := SeedSource(filepath.Join(t.TempDir(), "missing.yaml"), now, zap.New(core))()

	assert.Len(t, tasks, 5)
	assert.Equal(t, today, tasks[0].Date)
	assert.Equal(t, 1, logs.Len())
}

func TestSeedSource_PrefersFile(t *testing.T) {
	path := writeSeed(t, "tasks:\n  - {id: a, title: x, categoryTags: [Home]}\n")
	now := func() time.Time { return time.Date(2026, 10, 14, 9, 0, 0, 0, time.Local) }

	tasks := SeedSource(path, now, nil)()

	require.Len(t, tasks, 1)
	assert.Equal(t, "a", tasks[0].ID)
}

func TestExampleSeedFileLoads(t *testing.T) {
	tasks, err := LoadSeedFile(filepath.Join("..", "..", "assets", "seed.example.yaml"), today)
	require.NoError(t, err)
	assert.Len(t, tasks, 3)
}
