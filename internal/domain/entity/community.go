// Package entity contains the core business objects of the project.
package entity

// Community is an interest group users can join. Membership is a
// many-to-many relation on the backend, exposed to the client only as the
// viewer-scoped IsMember flag plus a count.
type Community struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Image        string `json:"image"`
	CitySlug     string `json:"cityId"`
	MembersCount int    `json:"membersCount"`
	IsPrivate    bool   `json:"isPrivate"`

	// IsMember is viewer-scoped and must never survive a session change.
	IsMember bool `json:"isMember,omitempty"`
}
