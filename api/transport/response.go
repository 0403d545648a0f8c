package transport

import (
	"encoding/json"

	"github.com/fastygo/chores/domain"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope wraps every API response, successful or not.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

// ValidationMeta lists the failing form fields in check order.
type ValidationMeta struct {
	Fields domain.FieldErrors `json:"fields"`
}

func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: StatusSuccess,
		Data:   data,
		Meta:   meta,
	}
}

// NewError returns an error envelope with optional metadata.
func NewError(code string, err interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: StatusError,
		Code:   code,
		Error:  err,
		Meta:   meta,
	}
}

// NewValidationError reports a rejected draft. The form stays open, so the
// client can show each message next to its field.
func NewValidationError(fields domain.FieldErrors) Envelope {
	return NewError(string(domain.ErrCodeInvalid), fields.Error(), ValidationMeta{Fields: fields})
}

// String is the JSON form for log lines; marshal failures yield "{}".
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
