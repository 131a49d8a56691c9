package auth

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// BcryptCost costo de hashing de passwords.
const BcryptCost = 10

// HashPassword genera el hash bcrypt de un password en texto plano.
func HashPassword(plain string) (string, error) {
	if len(plain) < entity.MinPasswordLength {
		return "", fmt.Errorf("%w: el password debe tener al menos %d caracteres", domain.ErrInvalidInput, entity.MinPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword verifica plain contra el hash; ErrUnauthorized si no coincide.
func ComparePassword(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return domain.ErrUnauthorized
	}
	return err
}

// ValidateEmail normaliza y valida el formato del email.
func ValidateEmail(email string) (string, error) {
	email = entity.NormalizeEmail(email)
	if email == "" {
		return "", fmt.Errorf("%w: email es requerido", domain.ErrInvalidInput)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email, "@") {
		return "", fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	return email, nil
}
