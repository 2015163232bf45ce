package v1

import (
	"encoding/json"
	"time"
)

// PushRequest is the body of POST /queue/items and POST /cargo/items.
type PushRequest struct {
	Items []json.RawMessage `json:"items" binding:"required"`
}

// QueueResponse holds one target reply per pushed item, in order.
type QueueResponse struct {
	Results []json.RawMessage `json:"results"`
}

// CargoResponse holds one result per pushed item, in order.
type CargoResponse struct {
	Results []any `json:"results"`
}

type Dispatch struct {
	Id         string    `json:"id"`
	Mode       string    `json:"mode"`
	Size       int       `json:"size"`
	Status     string    `json:"status"`
	Error      *string   `json:"error,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
	DurationMs int64     `json:"durationMs"`
}

type DispatchListResponse struct {
	Page       int        `json:"page"`
	PageCount  int        `json:"pageCount"`
	Total      int        `json:"total"`
	Dispatches []Dispatch `json:"dispatches"`
}

type GetDispatchesParams struct {
	Mode     *[]string  `form:"mode,omitempty" json:"mode,omitempty"`
	Status   *[]string  `form:"status,omitempty" json:"status,omitempty"`
	Sort     *[]string  `form:"sort,omitempty" json:"sort,omitempty"`
	Page     *int       `form:"page,omitempty" json:"page,omitempty"`
	PageSize *int       `form:"pageSize,omitempty" json:"pageSize,omitempty"`
	From     *time.Time `form:"from,omitempty" json:"from,omitempty"`
	To       *time.Time `form:"to,omitempty" json:"to,omitempty"`
}

type RunnerStats struct {
	Name      string `json:"name"`
	State     string `json:"state"`
	Capacity  int    `json:"capacity"`
	Queued    int    `json:"queued"`
	InFlight  int    `json:"inFlight"`
	Processed uint64 `json:"processed"`
	Groups    uint64 `json:"groups"`
}

type DispatchSummary struct {
	Mode          string `json:"mode"`
	Status        string `json:"status"`
	Count         int    `json:"count"`
	Items         int    `json:"items"`
	AvgDurationMs int64  `json:"avgDurationMs"`
}

type StatsResponse struct {
	Runners []RunnerStats     `json:"runners"`
	Summary []DispatchSummary `json:"summary"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
