package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/taskrunner/api/v1"
	"github.com/kubev2v/taskrunner/internal/services"
	srvErrors "github.com/kubev2v/taskrunner/pkg/errors"
)

type Handler struct {
	dispatcher  *services.Dispatcher
	dispatchSrv *services.DispatchService
}

func New(dispatcher *services.Dispatcher, dispatchSrv *services.DispatchService) *Handler {
	return &Handler{
		dispatcher:  dispatcher,
		dispatchSrv: dispatchSrv,
	}
}

var _ v1.ServerInterface = (*Handler)(nil)

// dispatchStatus maps a push failure to an HTTP status.
func dispatchStatus(err error) int {
	switch {
	case srvErrors.IsClosedError(err), srvErrors.IsDefectError(err):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func abortWithError(c *gin.Context, code int, logger string, msg string, err error) {
	zap.S().Named(logger).Errorw(msg, "error", err)
	c.JSON(code, v1.ErrorResponse{Error: err.Error()})
}
