package entity

// Identity es el usuario autenticado de una petición, resuelto una sola vez por el middleware.
type Identity struct {
	UserID string
	Name   string
	Email  string
	Role   Role
}

// IdentityOf construye la identidad a partir del usuario persistido.
func IdentityOf(u *User) Identity {
	return Identity{UserID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role()}
}

// IsAdmin indica si la identidad tiene la variante admin.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// CanAccess permite al dueño del recurso o a un admin.
func (i Identity) CanAccess(ownerID string) bool {
	return i.IsAdmin() || (i.UserID != "" && i.UserID == ownerID)
}
