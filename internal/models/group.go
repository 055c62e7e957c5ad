package models

import "time"

// Group is a named node in the study-group tree. ParentID is nil for
// root-level groups.
type Group struct {
	ID        int64     `json:"id"`
	ParentID  *int64    `json:"parent_id,omitempty"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
