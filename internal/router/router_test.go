package router_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/taskboard/api/handler"
	"github.com/fastygo/taskboard/internal/infrastructure/monitor"
	"github.com/fastygo/taskboard/internal/router"
	"github.com/fastygo/taskboard/internal/testutil"
	"github.com/fastygo/taskboard/usecase/task"
)

type status struct{}

func (status) GetStatus() monitor.Status { return monitor.Status{Store: true} }

func newHandler(opts router.Options) fasthttp.RequestHandler {
	uc := task.New(testutil.NewMockTaskRepository(), nil, nil)
	handlers := router.Handlers{
		Task:   apiHandler.NewTaskHandler(uc, nil, nil),
		Board:  apiHandler.NewBoardHandler(uc, nil, nil),
		Health: apiHandler.NewHealthHandler(status{}, "sqlite", nil, nil),
	}
	deny := func(fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) { ctx.SetStatusCode(http.StatusUnauthorized) }
	}
	return router.New(handlers, deny, opts).Handler
}

func serve(h fasthttp.RequestHandler, method, uri string) int {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	h(ctx)
	return ctx.Response.StatusCode()
}

func TestRouter(t *testing.T) {
	h := newHandler(router.Options{EnableMetrics: true})

	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/health"))
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/metrics"))

	for _, route := range []struct{ method, uri string }{
		{http.MethodGet, "/api/v1/tasks"},
		{http.MethodPost, "/api/v1/tasks"},
		{http.MethodPatch, "/api/v1/tasks/abc"},
		{http.MethodDelete, "/api/v1/tasks/abc"},
		{http.MethodGet, "/api/v1/tasks/board"},
		{http.MethodPost, "/api/v1/tasks/board/drop"},
	} {
		assert.Equal(t, http.StatusUnauthorized, serve(h, route.method, route.uri), route.uri)
	}
}

func TestRouter_OptionalEndpoints(t *testing.T) {
	h := newHandler(router.Options{})

	assert.Equal(t, http.StatusNotFound, serve(h, http.MethodGet, "/metrics"))
	assert.Equal(t, http.StatusNotFound, serve(h, http.MethodGet, "/debug/pprof/"))
}
