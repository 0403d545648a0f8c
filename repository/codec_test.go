package repository

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/chores/domain"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	snooze := 10
	tasks := []domain.Task{
		{
			ID:                   "2",
			Title:                "Clean kitchen",
			Date:                 "2026-10-14",
			CompletionTimeGoal:   "7:00 PM",
			RepeatDays:           domain.NewWeekdaySet(time.Sunday, time.Thursday),
			IsOverdue:            true,
			URL:                  "https://example.com/cleaning-checklist",
			Notes:                "Deep clean counters and sink.",
			CategoryTags:         []string{"Cleaning"},
			PreDeadlineAlerts:    []int{10},
			DefaultSnoozeMinutes: &snooze,
		},
		{
			ID:                 "5",
			Title:              "Monthly budget review",
			Date:               "2026-10-20",
			CompletionTimeGoal: "2:00 PM",
			MonthlyPattern:     domain.MonthlyThirdSaturday,
			CategoryTags:       []string{"Work", "Personal"},
			PreDeadlineAlerts:  []int{},
		},
	}

	data, err := EncodeTasks(tasks)
	require.NoError(t, err)

	back, err := DecodeTasks(data)
	require.NoError(t, err)
	assert.Equal(t, tasks, back)
}

func TestEncodeTasks_WritesNotesUnderBothKeys(t *testing.T) {
	data, err := EncodeTasks([]domain.Task{{ID: "1", Title: "x", Notes: "hello"}})
	require.NoError(t, err)

	var raw []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, "hello", raw[0]["notes"])
	assert.Equal(t, "hello", raw[0]["description"])
	assert.Nil(t, raw[0]["monthlyPattern"])
	assert.Equal(t, []interface{}{}, raw[0]["repeatDays"])
}

func TestDecodeTasks_LegacyShapes(t *testing.T) {
	data := []byte(`[
		{"id":"1","title":"Take out trash","date":"2026-10-14","completionTimeGoal":"7:00 PM",
		 "repeatDays":["S","M","T","W","H","F"],"monthlyPattern":null,"isOverdue":false,"isComplete":false,
		 "categoryTags":["Cleaning"],"notes":"old notes"},
		{"id":"2","title":"Budget","date":"2026-10-14","completionTimeGoal":"2:00 PM",
		 "repeatDays":[],"monthlyPattern":"LAST_DAY","isOverdue":false,"isComplete":true,
		 "categoryTags":["Work"],"notes":"ignored","description":"preferred",
		 "preDeadlineAlerts":[15,5,5]}
	]`)

	tasks, err := DecodeTasks(data)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri"}, tasks[0].RepeatDays.Names())
	assert.Equal(t, "old notes", tasks[0].Notes)
	assert.Equal(t, []int{}, tasks[0].PreDeadlineAlerts)
	assert.Nil(t, tasks[0].DefaultSnoozeMinutes)

	assert.Equal(t, domain.MonthlyLastDay, tasks[1].MonthlyPattern)
	assert.Equal(t, "preferred", tasks[1].Notes)
	assert.Equal(t, []int{5, 15}, tasks[1].PreDeadlineAlerts)
	assert.True(t, tasks[1].IsComplete)
}

func storedRecord(overrides map[string]interface{}) map[string]interface{} {
	r := map[string]interface{}{
		"id":                 "1",
		"title":              "Take out trash",
		"date":               "2026-10-14",
		"completionTimeGoal": "7:00 PM",
		"categoryTags":       []string{"Cleaning"},
	}
	for k, v := range overrides {
		r[k] = v
	}
	return r
}

func TestDecodeTasks_AcceptsWellFormedRecord(t *testing.T) {
	data, err := json.Marshal([]map[string]interface{}{storedRecord(nil)})
	require.NoError(t, err)

	tasks, err := DecodeTasks(data)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Take out trash", tasks[0].Title)
}

func TestDecodeTasks_Rejects(t *testing.T) {
	raw := map[string]string{
		"not json":     `{{`,
		"not an array": `{"id":"1"}`,
	}
	for name, input := range raw {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeTasks([]byte(input))
			assert.Error(t, err)
		})
	}

	records := map[string][]map[string]interface{}{
		"missing id":      {storedRecord(map[string]interface{}{"id": ""})},
		"duplicate id":    {storedRecord(nil), storedRecord(nil)},
		"bad weekday":     {storedRecord(map[string]interface{}{"repeatDays": []string{"Q"}})},
		"bad recurrence":  {storedRecord(map[string]interface{}{"monthlyPattern": "SOMETIMES"})},
		"blank title":     {storedRecord(map[string]interface{}{"title": "   "})},
		"non-ISO date":    {storedRecord(map[string]interface{}{"date": "not-a-date"})},
		"bad time goal":   {storedRecord(map[string]interface{}{"completionTimeGoal": "25:99"})},
		"no categories":   {storedRecord(map[string]interface{}{"categoryTags": []string{}})},
		"second bad only": {storedRecord(nil), storedRecord(map[string]interface{}{"id": "2", "title": ""})},
	}
	for name, input := range records {
		t.Run(name, func(t *testing.T) {
			data, err := json.Marshal(input)
			require.NoError(t, err)

			_, err = DecodeTasks(data)
			assert.Error(t, err)
		})
	}
}

func TestDecodeTasks_EmptyArray(t *testing.T) {
	tasks, err := DecodeTasks([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
