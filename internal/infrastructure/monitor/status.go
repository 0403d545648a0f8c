package monitor

import "time"

// Status is the last observed health of the persistence boundary.
type Status struct {
	Driver       string    `json:"driver"`
	Storage      bool      `json:"storage"`
	PendingFlush bool      `json:"pending_flush"`
	LastError    string    `json:"last_error,omitempty"`
	LastCheck    time.Time `json:"last_check"`
}
