package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "Admin"
	RoleKAM   = "KAM"
)

// User representa un usuario interno: key-account manager (KAM) o administrador.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // Admin, KAM
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
