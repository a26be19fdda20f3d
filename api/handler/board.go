package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskboard/api/transport"
	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/pkg/httpcontext"
	"github.com/fastygo/taskboard/usecase/board"
	taskUC "github.com/fastygo/taskboard/usecase/task"
)

type BoardHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewBoardHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *BoardHandler {
	return &BoardHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Kanban board of the filtered task list
// @Tags board
// @Router /api/v1/tasks/board [get]
func (h *BoardHandler) GetBoard(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	filter, err := parseListFilter(ctx.QueryArgs())
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.List(stdCtx, userID, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, board.Build(tasks))
}

// @Summary Drop a card on a column or another card
// @Tags board
// @Router /api/v1/tasks/board/drop [post]
func (h *BoardHandler) Drop(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.DropRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	if err := h.uc.ValidateID("task_id", req.TaskID); err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.List(stdCtx, userID, taskUC.ListFilter{})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	current := board.Build(tasks)
	if _, ok := current.Task(req.TaskID); !ok {
		h.respondError(ctx, domain.ErrTaskNotFound)
		return
	}

	var drag board.Drag
	if err := drag.PickUp(req.TaskID); err != nil {
		h.respondError(ctx, err)
		return
	}
	drag.Hover(req.OverID)

	changed, err := drag.Release(stdCtx, current, req.OverID, h.mutator(userID))
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	if changed {
		tasks, err = h.uc.List(stdCtx, userID, taskUC.ListFilter{})
		if err != nil {
			h.respondError(ctx, err)
			return
		}
		current = board.Build(tasks)
	}
	h.respondSuccess(ctx, http.StatusOK, transport.DropResponse{Changed: changed, Board: current})
}

func (h *BoardHandler) mutator(userID string) board.Mutator {
	return board.MutatorFunc(func(ctx context.Context, id string, patch domain.TaskPatch) error {
		_, err := h.uc.Update(ctx, userID, taskUC.PatchInput(id, patch))
		return err
	})
}
