package middleware

import (
	"strconv"
	"time"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/taskboard/pkg/metrics"
)

// Metrics records request latency labelled by the matched route pattern.
func Metrics(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		next(ctx)

		path, _ := ctx.UserValue(router.MatchedRoutePathParam).(string)
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequestDuration(
			string(ctx.Method()),
			path,
			strconv.Itoa(ctx.Response.StatusCode()),
			time.Since(start),
		)
	}
}
