package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/chores/api/transport"
	"github.com/fastygo/chores/pkg/httpcontext"
	"github.com/fastygo/chores/usecase/session"
)

// ViewHandler serves the rendered frame and the list filters.
type ViewHandler struct {
	baseHandler
	session *session.Session
}

func NewViewHandler(s *session.Session, adapter *httpcontext.Adapter, logger *zap.Logger) *ViewHandler {
	return &ViewHandler{
		baseHandler: newBaseHandler(adapter, logger),
		session:     s,
	}
}

// @Summary Current view
// @Tags view
// @Router /api/v1/view [get]
func (h *ViewHandler) GetView(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.session.Snapshot())
}

// @Summary Category filter options
// @Tags view
// @Router /api/v1/categories [get]
func (h *ViewHandler) GetCategories(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.session.Categories())
}

// @Summary Select a date
// @Tags selection
// @Router /api/v1/selection/date [put]
func (h *ViewHandler) SetDate(ctx *fasthttp.RequestCtx) {
	var req transport.DateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.badRequest(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	sel, err := h.session.OnDateChange(req.Date)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, sel)
}

// @Summary Previous day
// @Tags selection
// @Router /api/v1/selection/date/previous [post]
func (h *ViewHandler) PreviousDay(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.session.OnPreviousDay())
}

// @Summary Next day
// @Tags selection
// @Router /api/v1/selection/date/next [post]
func (h *ViewHandler) NextDay(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.session.OnNextDay())
}

// @Summary Filter by category
// @Tags selection
// @Router /api/v1/selection/category [put]
func (h *ViewHandler) SetCategory(ctx *fasthttp.RequestCtx) {
	var req transport.CategoryRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.badRequest(ctx, "invalid payload")
		return
	}
	h.respondSuccess(ctx, http.StatusOK, h.session.OnCategoryFilterChange(req.Category))
}
