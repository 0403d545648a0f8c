package form

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/chores/domain"
)

var now = time.Date(2026, 10, 14, 15, 30, 0, 0, time.Local)

func validDraft() domain.Draft {
	d := domain.NewDraft("2026-10-14")
	d.Title = "Walk the dog"
	d.CategoryTags = []string{"Personal"}
	return d
}

func fieldErrors(t *testing.T, err error) domain.FieldErrors {
	t.Helper()
	fe, ok := err.(domain.FieldErrors)
	require.True(t, ok, "expected FieldErrors, got %T", err)
	return fe
}

func TestValidate_AcceptsValidDraft(t *testing.T) {
	d := validDraft()
	d.Title = "  Walk the dog  "
	d.URL = " https://example.com/walks "
	d.Description = "around the block"

	payload, err := Validate(d, now)
	require.NoError(t, err)
	assert.Equal(t, "Walk the dog", payload.Title)
	assert.Equal(t, "https://example.com/walks", payload.URL)
	assert.Equal(t, "around the block", payload.Notes)
	assert.Equal(t, "7:00 PM", payload.CompletionTimeGoal)
}

func TestValidate_Title(t *testing.T) {
	d := validDraft()
	d.Title = "   "
	_, err := Validate(d, now)
	assert.True(t, fieldErrors(t, err).Has(domain.FieldTitle, domain.ErrCodeRequiredField))

	d.Title = strings.Repeat("a", domain.MaxTitleLength)
	_, err = Validate(d, now)
	assert.NoError(t, err)

	d.Title = strings.Repeat("é", domain.MaxTitleLength+1)
	_, err = Validate(d, now)
	assert.True(t, fieldErrors(t, err).Has(domain.FieldTitle, domain.ErrCodeTooLong))
}

func TestValidate_CompletionTimeGoal(t *testing.T) {
	cases := map[string]domain.ErrorCode{
		"7:00 PM":  "",
		"07:45am":  "",
		"12:00 AM": "",
		"25:00":    domain.ErrCodeBadFormat,
		"7:00":     domain.ErrCodeBadFormat,
		"0:30 PM":  domain.ErrCodeBadFormat,
		"7:60 PM":  domain.ErrCodeBadFormat,
		"":         domain.ErrCodeRequiredField,
	}
	for input, want := range cases {
		t.Run(input, func(t *testing.T) {
			d := validDraft()
			d.CompletionTimeGoal = input
			_, err := Validate(d, now)
			if want == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, fieldErrors(t, err).Has(domain.FieldCompletionTimeGoal, want))
		})
	}
}

func TestValidate_URL(t *testing.T) {
	d := validDraft()

	d.URL = "not a url"
	_, err := Validate(d, now)
	assert.True(t, fieldErrors(t, err).Has(domain.FieldURL, domain.ErrCodeBadURL))

	d.URL = "example.com/no-scheme"
	_, err = Validate(d, now)
	assert.True(t, fieldErrors(t, err).Has(domain.FieldURL, domain.ErrCodeBadURL))

	d.URL = ""
	_, err = Validate(d, now)
	assert.NoError(t, err)
}

func TestValidate_Date(t *testing.T) {
	d := validDraft()

	d.Date = "2026-10-13"
	_, err := Validate(d, now)
	assert.True(t, fieldErrors(t, err).Has(domain.FieldDate, domain.ErrCodePastDate))

	d.Date = "10/14/2026"
	_, err = Validate(d, now)
	assert.True(t, fieldErrors(t, err).Has(domain.FieldDate, domain.ErrCodeBadFormat))

	d.Date = ""
	_, err = Validate(d, now)
	assert.True(t, fieldErrors(t, err).Has(domain.FieldDate, domain.ErrCodeRequiredField))

	d.Date = "2026-10-14"
	_, err = Validate(d, now)
	assert.NoError(t, err)
}

func TestValidate_CategoryRequired(t *testing.T) {
	d := validDraft()
	d.CategoryTags = nil

	_, err := Validate(d, now)
	assert.True(t, fieldErrors(t, err).Has(domain.FieldCategoryTags, domain.ErrCodeRequiredField))
}

func TestValidate_CollectsEveryFailureInFormOrder(t *testing.T) {
	d := domain.Draft{Title: "", Date: "2020-01-01", CompletionTimeGoal: "25:00", URL: "nope"}

	_, err := Validate(d, now)
	fe := fieldErrors(t, err)

	require.Len(t, fe, 5)
	got := make([]domain.Field, 0, len(fe))
	for _, e := range fe {
		got = append(got, e.Field)
	}
	assert.Equal(t, []domain.Field{
		domain.FieldTitle,
		domain.FieldDate,
		domain.FieldCompletionTimeGoal,
		domain.FieldURL,
		domain.FieldCategoryTags,
	}, got)
}

func TestValidateField_UncheckedFieldsNeverFail(t *testing.T) {
	d := domain.Draft{Location: strings.Repeat("x", 500)}

	assert.Empty(t, ValidateField(domain.FieldLocation, d, now))
	assert.Empty(t, ValidateField(domain.FieldDescription, d, now))
	assert.Empty(t, ValidateField(domain.FieldRepeatDays, d, now))
}

func TestValidateField_ReportsOnlyThatField(t *testing.T) {
	d := domain.Draft{Title: "", Date: "2020-01-01", CompletionTimeGoal: "25:00"}

	fe := ValidateField(domain.FieldDate, d, now)
	require.Len(t, fe, 1)
	assert.Equal(t, domain.FieldDate, fe[0].Field)
	assert.Equal(t, domain.ErrCodePastDate, fe[0].Code)
	assert.Equal(t, "date cannot be in the past", fe[0].Message)

	assert.Empty(t, ValidateField(domain.FieldTitle, validDraft(), now))
}

func TestValidate_PastDateFollowsClock(t *testing.T) {
	d := validDraft()
	d.Date = "2026-10-14"

	_, err := Validate(d, now.AddDate(0, 0, 1))
	assert.True(t, fieldErrors(t, err).Has(domain.FieldDate, domain.ErrCodePastDate))

	_, err = Validate(d, now.AddDate(0, 0, -1))
	assert.NoError(t, err)
}
