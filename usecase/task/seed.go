package task

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/fastygo/chores/domain"
)

// SeedFunc produces the collection used when nothing usable is persisted.
type SeedFunc func() []domain.Task

func intPtr(v int) *int { return &v }

var everyWeekday = domain.NewWeekdaySet(
	time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
)

// Seed returns the built-in chores relative to today.
func Seed(today string) []domain.Task {
	inSixDays, err := domain.ShiftDate(today, 6)
	if err != nil {
		inSixDays = today
	}
	return []domain.Task{
		{
			ID:                 "1",
			Title:              "Take out trash",
			Date:               today,
			CompletionTimeGoal: "7:00 PM",
			RepeatDays:         everyWeekday,
			CategoryTags:       []string{"Cleaning"},
			PreDeadlineAlerts:  []int{},
		},
		{
			ID:                   "2",
			Title:                "Clean kitchen",
			Date:                 today,
			CompletionTimeGoal:   "7:00 PM",
			RepeatDays:           everyWeekday,
			IsOverdue:            true,
			URL:                  "https://example.com/cleaning-checklist",
			Notes:                "Deep clean counters and sink.",
			CategoryTags:         []string{"Cleaning"},
			PreDeadlineAlerts:    []int{10},
			DefaultSnoozeMinutes: intPtr(10),
		},
		{
			ID:                 "3",
			Title:              "Do laundry",
			Date:               today,
			CompletionTimeGoal: "9:00 PM",
			RepeatDays:         everyWeekday,
			CategoryTags:       []string{"Home"},
			PreDeadlineAlerts:  []int{},
		},
		{
			ID:                   "4",
			Title:                "Water plants",
			Date:                 today,
			CompletionTimeGoal:   "6:00 PM",
			RepeatDays:           everyWeekday,
			CategoryTags:         []string{"Home"},
			PreDeadlineAlerts:    []int{5, 10},
			DefaultSnoozeMinutes: intPtr(5),
		},
		{
			ID:                   "5",
			Title:                "Monthly budget review",
			Date:                 inSixDays,
			CompletionTimeGoal:   "2:00 PM",
			MonthlyPattern:       domain.MonthlyThirdSaturday,
			Location:             "Home office",
			Notes:                "Review expenses and update budget spreadsheet",
			CategoryTags:         []string{"Work", "Personal"},
			PreDeadlineAlerts:    []int{15},
			DefaultSnoozeMinutes: intPtr(15),
		},
	}
}

type seedFile struct {
	Tasks []seedEntry `yaml:"tasks"`
}

type seedEntry struct {
	ID                   string   `yaml:"id"`
	Title                string   `yaml:"title"`
	DayOffset            int      `yaml:"dayOffset"`
	CompletionTimeGoal   string   `yaml:"completionTimeGoal"`
	RepeatDays           []string `yaml:"repeatDays"`
	MonthlyPattern       string   `yaml:"monthlyPattern"`
	IsOverdue            bool     `yaml:"isOverdue"`
	URL                  string   `yaml:"url"`
	Location             string   `yaml:"location"`
	Notes                string   `yaml:"notes"`
	CategoryTags         []string `yaml:"categoryTags"`
	PreDeadlineAlerts    []int    `yaml:"preDeadlineAlerts"`
	DefaultSnoozeMinutes *int     `yaml:"defaultSnoozeMinutes"`
}

// LoadSeedFile reads a YAML seed set. Dates are given as day offsets from today.
func LoadSeedFile(path string, today string) ([]domain.Task, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	out := make([]domain.Task, 0, len(file.Tasks))
	seen := map[string]bool{}
	for i, e := range file.Tasks {
		if e.ID == "" || seen[e.ID] {
			return nil, fmt.Errorf("seed entry %d: missing or duplicate id %q", i, e.ID)
		}
		seen[e.ID] = true
		if strings.TrimSpace(e.Title) == "" || len(e.CategoryTags) == 0 {
			return nil, fmt.Errorf("seed entry %q: title and categoryTags are required", e.ID)
		}

		pattern := domain.MonthlyPattern(strings.ToUpper(e.MonthlyPattern))
		if !pattern.Valid() {
			return nil, fmt.Errorf("seed entry %q: unknown monthly pattern %q", e.ID, e.MonthlyPattern)
		}
		var days domain.WeekdaySet
		for _, name := range e.RepeatDays {
			d, err := domain.ParseWeekday(name)
			if err != nil {
				return nil, fmt.Errorf("seed entry %q: %w", e.ID, err)
			}
			days = days.With(d)
		}
		date, err := domain.ShiftDate(today, e.DayOffset)
		if err != nil {
			return nil, err
		}
		goal := e.CompletionTimeGoal
		if goal == "" {
			goal = domain.DefaultCompletionTimeGoal
		}
		if !domain.IsTimeGoal(goal) {
			return nil, fmt.Errorf("seed entry %q: completionTimeGoal %q is not a clock time", e.ID, goal)
		}

		t := domain.Task{
			ID:                   e.ID,
			Title:                strings.TrimSpace(e.Title),
			Date:                 date,
			CompletionTimeGoal:   goal,
			RepeatDays:           days,
			MonthlyPattern:       pattern,
			IsOverdue:            e.IsOverdue,
			URL:                  e.URL,
			Location:             e.Location,
			Notes:                e.Notes,
			CategoryTags:         e.CategoryTags,
			PreDeadlineAlerts:    domain.NormalizeAlerts(e.PreDeadlineAlerts),
			DefaultSnoozeMinutes: e.DefaultSnoozeMinutes,
		}
		out = append(out, t.Clone())
	}
	return out, nil
}

// SeedSource returns the seed producer used by the store. When path is set the
// YAML file is preferred; an unusable file falls back to the built-in set.
func SeedSource(path string, now func() time.Time, logger *zap.Logger) SeedFunc {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return func() []domain.Task {
		today := domain.Today(now())
		if path == "" {
			return Seed(today)
		}
		tasks, err := LoadSeedFile(path, today)
		if err != nil {
			logger.Warn("seed file unusable, using built-in seed", zap.String("path", path), zap.Error(err))
			return Seed(today)
		}
		return tasks
	}
}
