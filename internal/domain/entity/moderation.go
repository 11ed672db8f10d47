// Package entity contains the core business objects of the project.
package entity

// ModerationStatus tracks the approval lifecycle of business-submitted
// content before and after public visibility.
type ModerationStatus string

const (
	// ModerationPending indicates the submission awaits moderator review.
	ModerationPending ModerationStatus = "pending"
	// ModerationApproved indicates the submission is publicly visible.
	ModerationApproved ModerationStatus = "approved"
	// ModerationRejected indicates a moderator declined the submission.
	ModerationRejected ModerationStatus = "rejected"
	// ModerationExpired indicates the content's date has passed.
	ModerationExpired ModerationStatus = "expired"
)

// String returns the string representation of the ModerationStatus.
func (m ModerationStatus) String() string {
	return string(m)
}

// IsValid checks if the ModerationStatus is a valid value.
func (m ModerationStatus) IsValid() bool {
	switch m {
	case ModerationPending, ModerationApproved, ModerationRejected, ModerationExpired:
		return true
	default:
		return false
	}
}

// Public reports whether content in this status is visible in the catalog.
func (m ModerationStatus) Public() bool {
	return m == ModerationApproved
}
