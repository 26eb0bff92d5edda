package core

import "time"

// Record is a single structured log entry produced upstream of the filter.
type Record struct {
	Timestamp time.Time `json:"ts,omitzero"`
	Level     Level     `json:"level"`
	Tag       string    `json:"tag"`
	Process   string    `json:"process,omitempty"`
	Thread    string    `json:"thread,omitempty"`
	Message   string    `json:"message"`
	Raw       string    `json:"raw,omitempty"` // original line, if the producer kept it
}
