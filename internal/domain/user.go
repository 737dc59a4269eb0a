package domain

// RoleAdmin is the role name that unlocks admin affordances.
const RoleAdmin = "Admin"

// User is the signed-in principal as seen by the console
type User struct {
	UserID   string `json:"UserID"`
	RoleName string `json:"RoleName"`
}
