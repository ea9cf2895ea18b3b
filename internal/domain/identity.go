package domain

// Role distinguishes admin capability from driver capability.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleDriver Role = "driver"
)

// Identity is the authenticated principal attached to a session.
// Role is decided server-side at login and carried in a signed token;
// clients treat it purely as a UI hint.
type Identity struct {
	ID       string
	Email    string
	Name     string
	Role     Role
	DriverID string // set when Role is driver
}
