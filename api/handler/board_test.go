package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/usecase/board"
)

type dropResult struct {
	Changed bool        `json:"changed"`
	Board   board.Board `json:"board"`
}

func TestBoardHandler_GetBoard(t *testing.T) {
	h := newHarness()
	h.put("alice", "a", domain.PriorityUrgent)
	done := h.put("alice", "b", domain.PriorityUrgent)
	done.Completed = true
	h.repo.Put(done)
	h.put("alice", "c", domain.PriorityLow)

	ctx := request(http.MethodGet, "/api/v1/tasks/board", "alice", "")
	h.board.GetBoard(ctx)
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())

	var b board.Board
	require.NoError(t, json.Unmarshal(decode(t, ctx).Data, &b))
	require.Len(t, b.Columns, 4)
	assert.Equal(t, domain.PriorityLow, b.Columns[0].ID)
	assert.Equal(t, 1, b.Columns[0].Total)
	urgent := b.Columns[3]
	assert.Equal(t, domain.PriorityUrgent, urgent.ID)
	assert.Equal(t, 2, urgent.Total)
	assert.Equal(t, 1, urgent.Completed)
}

func TestBoardHandler_Drop(t *testing.T) {
	h := newHarness()
	moving := h.put("alice", "move me", domain.PriorityLow)
	anchor := h.put("alice", "anchor", domain.PriorityHigh)

	ctx := request(http.MethodPost, "/api/v1/tasks/board/drop", "alice", `{"task_id":"`+moving.ID+`","over_id":"`+anchor.ID+`"}`)
	h.board.Drop(ctx)
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())

	var res dropResult
	require.NoError(t, json.Unmarshal(decode(t, ctx).Data, &res))
	assert.True(t, res.Changed)
	assert.Equal(t, domain.PriorityHigh, h.repo.Tasks[moving.ID].Priority)
	high, ok := res.Board.Column(domain.PriorityHigh)
	require.True(t, ok)
	assert.Equal(t, 2, high.Total)
}

func TestBoardHandler_DropWithoutChange(t *testing.T) {
	h := newHarness()
	moving := h.put("alice", "stay", domain.PriorityLow)

	for _, over := range []string{"", "low", "nowhere"} {
		ctx := request(http.MethodPost, "/api/v1/tasks/board/drop", "alice", `{"task_id":"`+moving.ID+`","over_id":"`+over+`"}`)
		h.board.Drop(ctx)
		require.Equal(t, http.StatusOK, ctx.Response.StatusCode(), over)

		var res dropResult
		require.NoError(t, json.Unmarshal(decode(t, ctx).Data, &res))
		assert.False(t, res.Changed, over)
	}
	assert.NotContains(t, h.repo.Calls, "Update")
}

func TestBoardHandler_DropErrors(t *testing.T) {
	h := newHarness()
	theirs := h.put("bob", "not yours", domain.PriorityLow)

	ctx := request(http.MethodPost, "/api/v1/tasks/board/drop", "alice", `{"task_id":"`+theirs.ID+`","over_id":"urgent"}`)
	h.board.Drop(ctx)
	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
	assert.Equal(t, domain.PriorityLow, h.repo.Tasks[theirs.ID].Priority)

	ctx = request(http.MethodPost, "/api/v1/tasks/board/drop", "alice", `{"over_id":"urgent"}`)
	h.board.Drop(ctx)
	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())

	ctx = request(http.MethodPost, "/api/v1/tasks/board/drop", "alice", `{"task_id":"not-a-uuid","over_id":"urgent"}`)
	h.board.Drop(ctx)
	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	env := decode(t, ctx)
	require.Len(t, env.Meta.Fields, 1)
	assert.Equal(t, "task_id", env.Meta.Fields[0].Field)
	assert.Equal(t, "must be a UUID", env.Meta.Fields[0].Reason)

	mine := h.put("alice", "mine", domain.PriorityLow)
	h.repo.UpdateErr = errors.New("lock timeout")
	ctx = request(http.MethodPost, "/api/v1/tasks/board/drop", "alice", `{"task_id":"`+mine.ID+`","over_id":"urgent"}`)
	h.board.Drop(ctx)
	assert.Equal(t, http.StatusServiceUnavailable, ctx.Response.StatusCode())

	ctx = request(http.MethodPost, "/api/v1/tasks/board/drop", "alice", `{"task_id":"`+uuid.NewString()+`"}`)
	h.board.Drop(ctx)
	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
}
