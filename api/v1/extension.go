package v1

import (
	"fmt"
	"strings"

	"github.com/kubev2v/taskrunner/internal/models"
	"github.com/kubev2v/taskrunner/internal/store"
)

// NewDispatchFromModel converts a models.Dispatch to an API Dispatch.
func NewDispatchFromModel(d models.Dispatch) Dispatch {
	apiDispatch := Dispatch{
		Id:         d.ID.String(),
		Mode:       string(d.Mode),
		Size:       d.Size,
		Status:     string(d.Status),
		StartedAt:  d.StartedAt,
		DurationMs: d.Duration.Milliseconds(),
	}

	if d.Error != "" {
		apiDispatch.Error = &d.Error
	}

	return apiDispatch
}

func NewRunnerStatsFromModel(s models.RunnerStats) RunnerStats {
	return RunnerStats{
		Name:      s.Name,
		State:     s.State,
		Capacity:  s.Capacity,
		Queued:    s.Queued,
		InFlight:  s.InFlight,
		Processed: s.Processed,
		Groups:    s.Groups,
	}
}

func NewDispatchSummaryFromModel(s models.DispatchSummary) DispatchSummary {
	return DispatchSummary{
		Mode:          string(s.Mode),
		Status:        string(s.Status),
		Count:         s.Count,
		Items:         s.Items,
		AvgDurationMs: s.AvgDuration.Milliseconds(),
	}
}

// ParseDispatchModes validates the mode query values.
func ParseDispatchModes(values []string) ([]models.DispatchMode, error) {
	modes := make([]models.DispatchMode, 0, len(values))
	for _, v := range values {
		m, err := models.ParseDispatchMode(v)
		if err != nil {
			return nil, err
		}
		modes = append(modes, m)
	}
	return modes, nil
}

// ParseDispatchStatuses validates the status query values.
func ParseDispatchStatuses(values []string) ([]models.DispatchStatus, error) {
	statuses := make([]models.DispatchStatus, 0, len(values))
	for _, v := range values {
		s, err := models.ParseDispatchStatus(v)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}
	return statuses, nil
}

var validSortFields = map[string]bool{
	"mode":      true,
	"size":      true,
	"status":    true,
	"startedAt": true,
	"duration":  true,
}

// ParseSortParams parses "field:direction" values, direction being asc or desc.
func ParseSortParams(values []string) ([]store.SortParam, error) {
	sorts := make([]store.SortParam, 0, len(values))
	for _, v := range values {
		field, dir, ok := strings.Cut(v, ":")
		if !ok {
			return nil, fmt.Errorf("invalid sort format %q, expected field:direction", v)
		}
		if !validSortFields[field] {
			return nil, fmt.Errorf("invalid sort field %q", field)
		}
		switch dir {
		case "asc":
			sorts = append(sorts, store.SortParam{Field: field})
		case "desc":
			sorts = append(sorts, store.SortParam{Field: field, Desc: true})
		default:
			return nil, fmt.Errorf("invalid sort direction %q", dir)
		}
	}
	return sorts, nil
}
