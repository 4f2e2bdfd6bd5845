package dto

// CreateUserRequest alta directa de usuario (admin). El password llega en
// claro y se hashea con bcrypt antes de persistir.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"`
}

// UpdateUserRequest parche parcial de usuario.
type UpdateUserRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Name     *string `json:"name"`
	Role     *string `json:"role"`
}
