package auth

// Role según el tipo de usuario (ver users.Kind).
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleAdopter Role = "adopter"
	RoleStaff   Role = "staff"
)

// Claims es la información extraída del token.
type Claims struct {
	UserID string
	Email  string
	Role   Role
}
