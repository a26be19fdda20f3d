package httpcontext

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/taskboard/pkg/logger"
)

func TestAdapter_Attach(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set("X-Request-ID", "req-42")
	ctx.Request.Header.Set("X-User-ID", "alice")
	ctx.Request.Header.SetUserAgent("taskctl/1.0")

	stdCtx, cancel := NewAdapter(time.Second).Attach(ctx)
	defer cancel()

	assert.Equal(t, "req-42", appLogger.RequestID(stdCtx))
	assert.Equal(t, "req-42", string(ctx.Response.Header.Peek("X-Request-ID")))
	assert.Equal(t, "alice", UserID(stdCtx))
	assert.Equal(t, "taskctl/1.0", stdCtx.Value(KeyUserAgent))

	deadline, ok := stdCtx.Deadline()
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 500*time.Millisecond)
}

func TestAdapter_GeneratesRequestID(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}

	stdCtx, cancel := NewAdapter(0).Attach(ctx)
	defer cancel()

	_, err := uuid.Parse(appLogger.RequestID(stdCtx))
	assert.NoError(t, err)
	assert.Empty(t, UserID(stdCtx))
	assert.Empty(t, UserID(context.Background()))
}
