package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,max=200"`
	Role     string `json:"role" validate:"omitempty,oneof=Admin KAM"`
}

// UpdateUserRequest actualización parcial de un usuario; nil = no modificar.
type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitnil,nonblank,email"`
	Password *string `json:"password" validate:"omitnil,min=8"`
	Name     *string `json:"name" validate:"omitnil,nonblank,max=200"`
	Role     *string `json:"role" validate:"omitnil,oneof=Admin KAM"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
