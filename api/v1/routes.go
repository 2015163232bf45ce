package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface is implemented by the API handlers.
type ServerInterface interface {
	// (POST /queue/items)
	PushQueueItems(c *gin.Context)
	// (POST /cargo/items)
	PushCargoItems(c *gin.Context)
	// (GET /dispatches)
	GetDispatches(c *gin.Context, params GetDispatchesParams)
	// (GET /dispatches/{id})
	GetDispatch(c *gin.Context, id string)
	// (GET /stats)
	GetStats(c *gin.Context)
}

type serverWrapper struct {
	handler ServerInterface
}

// RegisterHandlers mounts every API route on router.
func RegisterHandlers(router gin.IRouter, si ServerInterface) {
	w := &serverWrapper{handler: si}

	router.POST("/queue/items", w.handler.PushQueueItems)
	router.POST("/cargo/items", w.handler.PushCargoItems)
	router.GET("/dispatches", w.GetDispatches)
	router.GET("/dispatches/:id", w.GetDispatch)
	router.GET("/stats", w.handler.GetStats)
}

func (w *serverWrapper) GetDispatches(c *gin.Context) {
	var params GetDispatchesParams

	query := c.Request.URL.Query()
	for _, p := range []struct {
		name string
		dest any
	}{
		{"mode", &params.Mode},
		{"status", &params.Status},
		{"sort", &params.Sort},
		{"page", &params.Page},
		{"pageSize", &params.PageSize},
		{"from", &params.From},
		{"to", &params.To},
	} {
		if err := runtime.BindQueryParameter("form", true, false, p.name, query, p.dest); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid format for parameter %s: %s", p.name, err)})
			return
		}
	}

	w.handler.GetDispatches(c, params)
}

func (w *serverWrapper) GetDispatch(c *gin.Context) {
	w.handler.GetDispatch(c, c.Param("id"))
}
