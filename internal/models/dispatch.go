package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type DispatchMode string

const (
	DispatchModeQueue DispatchMode = "queue"
	DispatchModeCargo DispatchMode = "cargo"
)

func ParseDispatchMode(s string) (DispatchMode, error) {
	switch s {
	case "queue":
		return DispatchModeQueue, nil
	case "cargo":
		return DispatchModeCargo, nil
	default:
		return "", fmt.Errorf("invalid dispatch mode: %s", s)
	}
}

type DispatchStatus string

const (
	DispatchStatusSucceeded DispatchStatus = "succeeded"
	DispatchStatusFailed    DispatchStatus = "failed"
)

func ParseDispatchStatus(s string) (DispatchStatus, error) {
	switch s {
	case "succeeded":
		return DispatchStatusSucceeded, nil
	case "failed":
		return DispatchStatusFailed, nil
	default:
		return "", fmt.Errorf("invalid dispatch status: %s", s)
	}
}

// Dispatch is one worker invocation against the target: a single item for
// the queue, a whole sub-batch for the cargo.
type Dispatch struct {
	ID        uuid.UUID
	Mode      DispatchMode
	Size      int
	Status    DispatchStatus
	Error     string
	StartedAt time.Time
	Duration  time.Duration
}

// DispatchSummary aggregates dispatches sharing a mode and a status.
type DispatchSummary struct {
	Mode        DispatchMode
	Status      DispatchStatus
	Count       int
	Items       int
	AvgDuration time.Duration
}
