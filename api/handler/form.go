package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/chores/api/transport"
	"github.com/fastygo/chores/domain"
	"github.com/fastygo/chores/pkg/httpcontext"
	"github.com/fastygo/chores/usecase/form"
	"github.com/fastygo/chores/usecase/session"
)

// FormHandler drives the create/edit task form.
type FormHandler struct {
	baseHandler
	session *session.Session
}

func NewFormHandler(s *session.Session, adapter *httpcontext.Adapter, logger *zap.Logger) *FormHandler {
	return &FormHandler{
		baseHandler: newBaseHandler(adapter, logger),
		session:     s,
	}
}

// @Summary Open a blank form
// @Tags form
// @Router /api/v1/form [post]
func (h *FormHandler) Open(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.session.OnCreateRequest())
}

// @Summary Change form fields
// @Tags form
// @Router /api/v1/form [patch]
func (h *FormHandler) Patch(ctx *fasthttp.RequestCtx) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(ctx.PostBody(), &raw); err != nil {
		h.badRequest(ctx, "invalid payload")
		return
	}
	changes, err := parsePatch(raw)
	if err != nil {
		h.badRequest(ctx, err.Error())
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	snap, err := h.session.OnFormChange(func(f *form.Session) error {
		return f.Batch(changes...)
	})
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, snap)
}

// @Summary Submit the form
// @Tags form
// @Router /api/v1/form/submit [post]
func (h *FormHandler) Submit(ctx *fasthttp.RequestCtx) {
	var req transport.SubmitRequest
	if body := ctx.PostBody(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			h.badRequest(ctx, "invalid payload")
			return
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.session.OnFormSubmit(stdCtx, req.Draft)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Cancel the form
// @Tags form
// @Router /api/v1/form/cancel [post]
func (h *FormHandler) Cancel(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.session.OnFormCancel())
}

// @Summary Dictate the title
// @Tags form
// @Router /api/v1/form/dictation [post]
func (h *FormHandler) Dictate(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.session.OnDictate(); err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusAccepted, map[string]string{"status": string(domain.DictationListening)})
}

type formChange = func(f *form.Session) error

// patchOrder fixes the order in which keys are applied so a set and a toggle
// of the same field in one request behave the same every time.
var patchOrder = []string{
	string(domain.FieldTitle),
	string(domain.FieldDate),
	string(domain.FieldCompletionTimeGoal),
	string(domain.FieldRepeatDays),
	transport.PatchToggleDay,
	string(domain.FieldMonthlyPattern),
	string(domain.FieldCategoryTags),
	transport.PatchToggleCategory,
	string(domain.FieldLocation),
	string(domain.FieldURL),
	string(domain.FieldDescription),
	string(domain.FieldPreDeadlineAlerts),
	transport.PatchToggleAlert,
	string(domain.FieldDefaultSnooze),
}

func parsePatch(raw map[string]json.RawMessage) ([]formChange, error) {
	known := make(map[string]struct{}, len(patchOrder))
	for _, key := range patchOrder {
		known[key] = struct{}{}
	}
	for key := range raw {
		if _, ok := known[key]; !ok {
			return nil, fmt.Errorf("unknown field %q", key)
		}
	}

	var changes []formChange
	for _, key := range patchOrder {
		value, ok := raw[key]
		if !ok {
			continue
		}
		change, err := parseChange(key, value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		changes = append(changes, change)
	}
	return changes, nil
}

func parseChange(key string, value json.RawMessage) (formChange, error) {
	switch key {
	case string(domain.FieldTitle):
		return stringChange(value, (*form.Session).SetTitle)
	case string(domain.FieldDate):
		return stringChange(value, (*form.Session).SetDate)
	case string(domain.FieldCompletionTimeGoal):
		return stringChange(value, (*form.Session).SetCompletionTimeGoal)
	case string(domain.FieldLocation):
		return stringChange(value, (*form.Session).SetLocation)
	case string(domain.FieldURL):
		return stringChange(value, (*form.Session).SetURL)
	case string(domain.FieldDescription):
		return stringChange(value, (*form.Session).SetDescription)
	case string(domain.FieldMonthlyPattern):
		var p domain.MonthlyPattern
		if err := json.Unmarshal(value, &p); err != nil {
			return nil, err
		}
		return func(f *form.Session) error { return f.SetMonthlyPattern(p) }, nil
	case string(domain.FieldRepeatDays):
		var days domain.WeekdaySet
		if err := json.Unmarshal(value, &days); err != nil {
			return nil, err
		}
		return func(f *form.Session) error { return f.SetRepeatDays(days) }, nil
	case transport.PatchToggleDay:
		var name string
		if err := json.Unmarshal(value, &name); err != nil {
			return nil, err
		}
		day, err := domain.ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		return func(f *form.Session) error { return f.ToggleDay(day) }, nil
	case string(domain.FieldCategoryTags):
		var tags []string
		if err := json.Unmarshal(value, &tags); err != nil {
			return nil, err
		}
		return func(f *form.Session) error { return f.SetCategoryTags(tags) }, nil
	case transport.PatchToggleCategory:
		return stringChange(value, (*form.Session).ToggleCategory)
	case string(domain.FieldPreDeadlineAlerts):
		var alerts []int
		if err := json.Unmarshal(value, &alerts); err != nil {
			return nil, err
		}
		return func(f *form.Session) error { return f.SetAlerts(alerts) }, nil
	case transport.PatchToggleAlert:
		var minutes int
		if err := json.Unmarshal(value, &minutes); err != nil {
			return nil, err
		}
		return func(f *form.Session) error { return f.ToggleAlert(minutes) }, nil
	case string(domain.FieldDefaultSnooze):
		var minutes *int
		if err := json.Unmarshal(value, &minutes); err != nil {
			return nil, err
		}
		return func(f *form.Session) error { return f.SetSnooze(minutes) }, nil
	}
	return nil, fmt.Errorf("unsupported field")
}

func stringChange(value json.RawMessage, set func(*form.Session, string) error) (formChange, error) {
	var v string
	if err := json.Unmarshal(value, &v); err != nil {
		return nil, err
	}
	return func(f *form.Session) error { return set(f, v) }, nil
}

