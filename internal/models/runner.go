package models

// RunnerStats is a point-in-time view of one runner.
type RunnerStats struct {
	Name      string
	State     string
	Capacity  int
	Queued    int
	InFlight  int
	Processed uint64
	Groups    uint64
}
