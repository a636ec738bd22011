// internal/model/project_event.go
package model

import "time"

const (
	ProjectCreated = "created"
	ProjectUpdated = "updated"
	ProjectDeleted = "deleted"
)

// ProjectEvent is published whenever a project's schedule may have changed.
// Auto carries the encoded schedule and is empty for deletions.
type ProjectEvent struct {
	Type       string    `json:"type"`
	PID        int64     `json:"pid"`
	CID        int64     `json:"cid"`
	Auto       string    `json:"auto,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
