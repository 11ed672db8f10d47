// Package entity contains the core business objects of the project.
package entity

// CollabStatus represents the lifecycle state of a collaboration request.
type CollabStatus string

const (
	// CollabOpen means the creator still accepts responses.
	CollabOpen CollabStatus = "open"
	// CollabInProgress means a partner was chosen and work started.
	CollabInProgress CollabStatus = "in_progress"
	// CollabClosed means the request is finished or withdrawn.
	CollabClosed CollabStatus = "closed"
)

// String returns the string representation of the CollabStatus.
func (s CollabStatus) String() string {
	return string(s)
}

// IsValid checks if the CollabStatus is a valid value.
func (s CollabStatus) IsValid() bool {
	switch s {
	case CollabOpen, CollabInProgress, CollabClosed:
		return true
	default:
		return false
	}
}

// Collaboration is a partnership request between businesses or organizers.
type Collaboration struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Category      string       `json:"category"`
	Budget        *float64     `json:"budget,omitempty"` // Nil when the budget is negotiable.
	Status        CollabStatus `json:"status"`
	ResponseCount int          `json:"responseCount"`
	CreatorID     string       `json:"creatorId"`
	CreatorName   string       `json:"creatorName"`

	// HasResponded is viewer-scoped and must never survive a session change.
	HasResponded bool `json:"hasResponded,omitempty"`
}

// AcceptsResponses reports whether a viewer may still respond.
func (c *Collaboration) AcceptsResponses() bool {
	return c.Status == CollabOpen
}
