package domain

// Roles known to the system.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Session carries the authenticated caller through every operation instead
// of ambient global state. Zero value means anonymous.
type Session struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the session belongs to an administrator.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
