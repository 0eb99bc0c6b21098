package models

import "time"

// HistoryRecord is one completed request as kept in the local database.
type HistoryRecord struct {
	ID         string
	Action     string
	Method     string
	Endpoint   string
	StatusCode int // 0 when no response was received
	Error      string
	StartedAt  time.Time
	Duration   time.Duration
}

// Succeeded reports whether the request ended with a response payload.
func (r HistoryRecord) Succeeded() bool {
	return r.Error == ""
}
