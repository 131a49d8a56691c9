package entity

import (
	"strings"
	"time"
)

// Role variante de autorización derivada de User.IsAdmin.
type Role string

// Roles válidos.
const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// MinPasswordLength longitud mínima del password en texto plano.
const MinPasswordLength = 6

// User representa una cuenta de la tienda (cliente o administrador).
type User struct {
	ID           string
	Name         string
	Email        string // siempre en minúsculas
	PasswordHash string // bcrypt, nunca plano después de persistir
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Role devuelve la variante de rol del usuario.
func (u *User) Role() Role {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleCustomer
}

// NormalizeEmail recorta espacios y pasa a minúsculas.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
