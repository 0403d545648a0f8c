package form

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/fastygo/chores/domain"
)

// draftInput is the trimmed view of a draft that the rules run against.
// Field order is the order errors are reported in.
type draftInput struct {
	Title              string   `json:"title" validate:"required,max=100"`
	Date               string   `json:"date" validate:"required,datetime=2006-01-02,notpast"`
	CompletionTimeGoal string   `json:"completionTimeGoal" validate:"required,timegoal"`
	URL                string   `json:"url" validate:"omitempty,absurl"`
	CategoryTags       []string `json:"categoryTags" validate:"min=1"`
}

type nowKey struct{}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	_ = v.RegisterValidation("timegoal", func(fl validator.FieldLevel) bool {
		return domain.IsTimeGoal(fl.Field().String())
	})
	_ = v.RegisterValidation("absurl", func(fl validator.FieldLevel) bool {
		u, err := url.Parse(fl.Field().String())
		return err == nil && u.IsAbs() && u.Host != ""
	})
	// ISO dates of equal width order lexicographically
	_ = v.RegisterValidationCtx("notpast", func(ctx context.Context, fl validator.FieldLevel) bool {
		now, ok := ctx.Value(nowKey{}).(time.Time)
		if !ok {
			now = time.Now()
		}
		return fl.Field().String() >= domain.Today(now)
	})
	return v
}

func inputFrom(d domain.Draft) draftInput {
	return draftInput{
		Title:              strings.TrimSpace(d.Title),
		Date:               strings.TrimSpace(d.Date),
		CompletionTimeGoal: strings.TrimSpace(d.CompletionTimeGoal),
		URL:                strings.TrimSpace(d.URL),
		CategoryTags:       d.CategoryTags,
	}
}

// Validate checks every field of d and returns either the payload or a
// domain.FieldErrors holding all failures. now decides what counts as a past date.
func Validate(d domain.Draft, now time.Time) (domain.Payload, error) {
	in := inputFrom(d)
	if errs := check(in, now); len(errs) > 0 {
		return domain.Payload{}, errs
	}

	return domain.Payload{
		Title:                in.Title,
		Date:                 in.Date,
		CompletionTimeGoal:   in.CompletionTimeGoal,
		RepeatDays:           d.RepeatDays,
		MonthlyPattern:       d.MonthlyPattern,
		CategoryTags:         slices.Clone(d.CategoryTags),
		Location:             d.Location,
		URL:                  in.URL,
		Notes:                d.Description,
		PreDeadlineAlerts:    domain.NormalizeAlerts(d.PreDeadlineAlerts),
		DefaultSnoozeMinutes: d.Clone().DefaultSnoozeMinutes,
	}, nil
}

// ValidateField runs the rules of a single field. Fields without rules never fail.
func ValidateField(field domain.Field, d domain.Draft, now time.Time) domain.FieldErrors {
	return check(inputFrom(d), now).For(field)
}

func check(in draftInput, now time.Time) domain.FieldErrors {
	ctx := context.WithValue(context.Background(), nowKey{}, now)
	err := validate.StructCtx(ctx, in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// only reachable if draftInput stops being a struct
		panic(err)
	}
	out := make(domain.FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, toFieldError(fe))
	}
	return out
}

func toFieldError(fe validator.FieldError) domain.FieldError {
	field := domain.Field(fe.Field())
	code, message := domain.ErrCodeBadFormat, fmt.Sprintf("%s is not valid", field)

	switch field {
	case domain.FieldTitle:
		code, message = domain.ErrCodeRequiredField, "please enter a task name"
		if fe.Tag() == "max" {
			code = domain.ErrCodeTooLong
			message = fmt.Sprintf("task name must be at most %d characters", domain.MaxTitleLength)
		}
	case domain.FieldDate:
		switch fe.Tag() {
		case "required":
			code, message = domain.ErrCodeRequiredField, "please choose a date"
		case "notpast":
			code, message = domain.ErrCodePastDate, "date cannot be in the past"
		default:
			message = "date must look like YYYY-MM-DD"
		}
	case domain.FieldCompletionTimeGoal:
		message = "time must look like 7:00 PM"
		if fe.Tag() == "required" {
			code, message = domain.ErrCodeRequiredField, "please enter a completion time goal"
		}
	case domain.FieldURL:
		code, message = domain.ErrCodeBadURL, "enter a full link such as https://example.com"
	case domain.FieldCategoryTags:
		code, message = domain.ErrCodeRequiredField, "choose at least one category"
	}
	return domain.FieldError{Field: field, Code: code, Message: message}
}
