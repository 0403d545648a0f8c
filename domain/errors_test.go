package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesWrappedSentinel(t *testing.T) {
	err := fmt.Errorf("toggle: %w", ErrTaskNotFound)

	assert.True(t, errors.Is(err, ErrTaskNotFound))
	assert.False(t, errors.Is(err, ErrInvalidPayload))
	assert.True(t, IsDomainError(err, ErrCodeNotFound))
}

func TestWrapError_Unwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := WrapError(ErrCodePersistence, "save tasks", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "save tasks: disk full", err.Error())
}

func TestFieldErrors(t *testing.T) {
	fe := FieldErrors{
		{Field: FieldTitle, Code: ErrCodeRequiredField, Message: "please enter a task name"},
		{Field: FieldURL, Code: ErrCodeBadURL, Message: "bad link"},
	}

	assert.True(t, fe.Has(FieldTitle, ErrCodeRequiredField))
	assert.False(t, fe.Has(FieldTitle, ErrCodeTooLong))
	assert.Len(t, fe.For(FieldURL), 1)
	assert.Equal(t, FieldErrors{fe[1]}, fe.Without(FieldTitle))
	assert.Contains(t, fe.Error(), "title: please enter a task name")

	var target FieldErrors
	assert.True(t, errors.As(fmt.Errorf("submit: %w", fe), &target))
}
