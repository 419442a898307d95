/* models.go
 * This file contain the structs that are shared between sub packages
 * Authors: Zachary Bower
 */

package shared

// Role is the role the identity collaborator attaches to an authenticated user
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the authenticated caller of a mutating operation
type User struct {
	UserID   string
	Username string
	Role     Role
}

// IsAdmin reports whether the user may run admin-only operations
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Identity is the display identity of a user id as resolved by the user directory
type Identity struct {
	UserID string `json:"user"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}
