package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleContador = "contador"
	RoleVendedor = "vendedor"
)

// User representa un usuario de la aplicación.
type User struct {
	ID           string
	Username     string // único
	PasswordHash string
	Role         string
	Status       string // active, disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
