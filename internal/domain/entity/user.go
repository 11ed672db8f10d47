// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

// User is the account object returned by the auth endpoints and cached as
// the current viewer. The backend remains the source of truth; the client
// copy is advisory and re-validated on every authenticated call.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Session pairs the opaque bearer token with the user it belongs to. The
// client owns this object outright: it is created at login and destroyed
// at logout.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Authenticated reports whether the session carries a usable identity.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != "" && s.User != nil
}
