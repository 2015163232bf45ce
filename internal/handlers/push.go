package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/kubev2v/taskrunner/api/v1"
)

// PushQueueItems sends every item to the target on its own
// (POST /queue/items)
func (h *Handler) PushQueueItems(c *gin.Context) {
	var req v1.PushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, v1.ErrorResponse{Error: err.Error()})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, v1.ErrorResponse{Error: "items must not be empty"})
		return
	}

	results, err := h.dispatcher.PushQueue(c.Request.Context(), req.Items)
	if err != nil {
		abortWithError(c, dispatchStatus(err), "queue_handler", "failed to dispatch queue items", err)
		return
	}

	c.JSON(http.StatusOK, v1.QueueResponse{Results: results})
}

// PushCargoItems sends the items to the target in sub-batches
// (POST /cargo/items)
func (h *Handler) PushCargoItems(c *gin.Context) {
	var req v1.PushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, v1.ErrorResponse{Error: err.Error()})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, v1.ErrorResponse{Error: "items must not be empty"})
		return
	}

	results, err := h.dispatcher.PushCargo(c.Request.Context(), req.Items)
	if err != nil {
		abortWithError(c, dispatchStatus(err), "cargo_handler", "failed to dispatch cargo items", err)
		return
	}

	c.JSON(http.StatusOK, v1.CargoResponse{Results: results})
}
