package handlers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/taskrunner/api/v1"
	"github.com/kubev2v/taskrunner/internal/services"
	srvErrors "github.com/kubev2v/taskrunner/pkg/errors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	maxPage         = math.MaxInt32 // keeps the offset far from overflow
)

// GetDispatches returns the dispatch journal with filtering and pagination
// (GET /dispatches)
func (h *Handler) GetDispatches(c *gin.Context, params v1.GetDispatchesParams) {
	// Parse pagination
	page := 1
	if params.Page != nil && *params.Page > 0 {
		page = min(*params.Page, maxPage)
	}
	pageSize := defaultPageSize
	if params.PageSize != nil && *params.PageSize > 0 {
		pageSize = min(*params.PageSize, maxPageSize)
	}

	// Build service params
	svcParams := services.DispatchListParams{
		Limit:  uint64(pageSize),
		Offset: uint64(page-1) * uint64(pageSize),
	}

	if params.From != nil {
		svcParams.From = *params.From
	}
	if params.To != nil {
		svcParams.To = *params.To
	}
	if params.From != nil && params.To != nil && !params.From.Before(*params.To) {
		c.JSON(http.StatusBadRequest, v1.ErrorResponse{Error: "from must be before to"})
		return
	}

	if params.Mode != nil {
		modes, err := v1.ParseDispatchModes(*params.Mode)
		if err != nil {
			c.JSON(http.StatusBadRequest, v1.ErrorResponse{Error: err.Error()})
			return
		}
		svcParams.Modes = modes
	}
	if params.Status != nil {
		statuses, err := v1.ParseDispatchStatuses(*params.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, v1.ErrorResponse{Error: err.Error()})
			return
		}
		svcParams.Statuses = statuses
	}
	if params.Sort != nil {
		sorts, err := v1.ParseSortParams(*params.Sort)
		if err != nil {
			c.JSON(http.StatusBadRequest, v1.ErrorResponse{Error: err.Error()})
			return
		}
		svcParams.Sort = sorts
	}

	result, err := h.dispatchSrv.List(c.Request.Context(), svcParams)
	if err != nil {
		zap.S().Named("dispatch_handler").Errorw("failed to list dispatches", "error", err)
		c.JSON(http.StatusInternalServerError, v1.ErrorResponse{Error: "failed to list dispatches"})
		return
	}

	// Calculate page count
	pageCount := (result.Total + pageSize - 1) / pageSize
	if pageCount == 0 {
		pageCount = 1
	}

	// Map to API response
	apiDispatches := make([]v1.Dispatch, 0, len(result.Dispatches))
	for _, d := range result.Dispatches {
		apiDispatches = append(apiDispatches, v1.NewDispatchFromModel(d))
	}

	c.JSON(http.StatusOK, v1.DispatchListResponse{
		Page:       page,
		PageCount:  pageCount,
		Total:      result.Total,
		Dispatches: apiDispatches,
	})
}

// GetDispatch returns a single journal entry
// (GET /dispatches/{id})
func (h *Handler) GetDispatch(c *gin.Context, id string) {
	dispatchID, err := uuid.Parse(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, v1.ErrorResponse{Error: "invalid dispatch id"})
		return
	}

	d, err := h.dispatchSrv.Get(c.Request.Context(), dispatchID)
	if err != nil {
		if srvErrors.IsResourceNotFoundError(err) {
			c.JSON(http.StatusNotFound, v1.ErrorResponse{Error: err.Error()})
			return
		}
		zap.S().Named("dispatch_handler").Errorw("failed to get dispatch", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, v1.ErrorResponse{Error: "failed to get dispatch"})
		return
	}

	c.JSON(http.StatusOK, v1.NewDispatchFromModel(*d))
}

// GetStats returns the runners state and the journal summary
// (GET /stats)
func (h *Handler) GetStats(c *gin.Context) {
	summaries, err := h.dispatchSrv.Summary(c.Request.Context())
	if err != nil {
		zap.S().Named("dispatch_handler").Errorw("failed to summarize dispatches", "error", err)
		c.JSON(http.StatusInternalServerError, v1.ErrorResponse{Error: "failed to get stats"})
		return
	}

	resp := v1.StatsResponse{
		Runners: []v1.RunnerStats{},
		Summary: make([]v1.DispatchSummary, 0, len(summaries)),
	}
	for _, s := range h.dispatcher.Stats() {
		resp.Runners = append(resp.Runners, v1.NewRunnerStatsFromModel(s))
	}
	for _, s := range summaries {
		resp.Summary = append(resp.Summary, v1.NewDispatchSummaryFromModel(s))
	}

	c.JSON(http.StatusOK, resp)
}
