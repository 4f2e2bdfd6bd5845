package entity

import "time"

// Roles de usuario.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User representa una cuenta de la tienda.
// PasswordHash nunca se serializa hacia la API: el hash sale del servidor
// solo en dirección a la base de datos.
type User struct {
	ID           string    `json:"_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name,omitempty"`
	Role         string    `json:"role"` // "user" | "admin"
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsAdmin indica si la cuenta tiene rol de administración.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
