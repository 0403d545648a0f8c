package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/chores/api/handler"
)

type Handlers struct {
	View   *apiHandler.ViewHandler
	Task   *apiHandler.TaskHandler
	Form   *apiHandler.FormHandler
	Health *apiHandler.HealthHandler
}

// New wires every intent route. auth wraps all /api/v1 routes; nil means none.
func New(handlers Handlers, auth func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	if auth == nil {
		auth = func(next fasthttp.RequestHandler) fasthttp.RequestHandler { return next }
	}
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	r.GET("/api/v1/view", auth(handlers.View.GetView))
	r.GET("/api/v1/categories", auth(handlers.View.GetCategories))
	r.PUT("/api/v1/selection/date", auth(handlers.View.SetDate))
	r.POST("/api/v1/selection/date/previous", auth(handlers.View.PreviousDay))
	r.POST("/api/v1/selection/date/next", auth(handlers.View.NextDay))
	r.PUT("/api/v1/selection/category", auth(handlers.View.SetCategory))

	r.POST("/api/v1/tasks/{id}/toggle", auth(handlers.Task.Toggle))
	r.POST("/api/v1/tasks/{id}/edit", auth(handlers.Task.Edit))
	r.GET("/api/v1/tasks/{id}/notifications", auth(handlers.Task.Notifications))
	r.DELETE("/api/v1/tasks/{id}", auth(handlers.Task.Delete))

	r.POST("/api/v1/form", auth(handlers.Form.Open))
	r.PATCH("/api/v1/form", auth(handlers.Form.Patch))
	r.POST("/api/v1/form/submit", auth(handlers.Form.Submit))
	r.POST("/api/v1/form/cancel", auth(handlers.Form.Cancel))
	r.POST("/api/v1/form/dictation", auth(handlers.Form.Dictate))

	return r
}
