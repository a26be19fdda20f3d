package monitor

import "time"

// Status is the last observed connectivity of the service's dependencies.
type Status struct {
	Store      bool      `json:"store"`
	Redis      bool      `json:"redis"`
	Buffer     bool      `json:"buffer"`
	BufferSize int       `json:"buffer_size"`
	LastCheck  time.Time `json:"last_check"`
}

// Healthy reports whether task operations can be served.
func (s Status) Healthy() bool {
	return s.Store
}
