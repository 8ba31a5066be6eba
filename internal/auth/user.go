package auth

// Role is an ordered capability level.
type Role string

const (
	RoleUser    Role = "User"
	RoleEditor  Role = "Editor"
	RoleManager Role = "Manager"
	RoleAdmin   Role = "Admin"
)

// level maps roles onto their ordering. Unknown roles rank below User.
func level(r Role) int {
	switch r {
	case RoleUser:
		return 1
	case RoleEditor:
		return 2
	case RoleManager:
		return 3
	case RoleAdmin:
		return 4
	default:
		return 0
	}
}

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return level(r) > 0
}

// User is the acting principal for a session. It is resolved externally and
// flows through handlers as an explicit value; nothing here is persisted.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Role       Role   `json:"role"`
	Email      string `json:"email"`
	EmployeeID string `json:"employee_id,omitempty"`
}

// Anonymous is the terminal state of a failed identity handshake.
var Anonymous = User{Name: "Anônimo", Role: Role("")}
