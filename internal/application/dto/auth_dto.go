package dto

import "github.com/jhoicas/likeus-api/internal/domain/entity"

// RegisterRequest alta de cuenta desde la tienda.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse token JWT más el usuario autenticado (sin hash de password).
type AuthResponse struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}
