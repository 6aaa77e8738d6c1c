package models

// Role is the authorization role returned by the backend on login. The role
// is trusted client-side for the duration of the session.
type Role string

// RoleAdmin unlocks the full dashboard; every other role gets the public
// consultation view.
const RoleAdmin Role = "ADMIN"

// IsAdmin reports whether the role selects the administrative layout.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Credentials is a login request.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is the backend's login response. Status is "ok" on success;
// a failed credential check still arrives as HTTP 200 with status "error".
type LoginResult struct {
	Status  string `json:"status"`
	Role    Role   `json:"role"`
	Message string `json:"message,omitempty"`
}

// OK reports whether the login was accepted.
func (r LoginResult) OK() bool {
	return r.Status == "ok"
}
