package http

import (
	"context"
	"errors"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/tienda-api/pkg/jwt"
)

// Locals keys.
const (
	LocalToken    = "jwt"
	LocalIdentity = "identity"
)

// IdentityResolver carga el usuario referenciado por el token; (nil, nil) si ya no existe.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, userID string) (*entity.User, error)
}

// AuthMiddleware valida el Bearer Token (firma HS256 y expiración) y luego resuelve el usuario,
// dejando entity.Identity en c.Locals. 401 si falta el header, el token es inválido o el usuario ya no existe.
func AuthMiddleware(jwtSecret string, resolver IdentityResolver) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(jwtSecret)},
		Claims:     &pkgjwt.Claims{},
		ContextKey: LocalToken,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization: Bearer <token> requerido"})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		},
		SuccessHandler: func(c *fiber.Ctx) error {
			token, _ := c.Locals(LocalToken).(*jwt.Token)
			userID, err := pkgjwt.SubjectOf(token)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token sin usuario"})
			}
			user, err := resolver.ResolveIdentity(c.UserContext(), userID)
			if err != nil {
				return writeError(c, err)
			}
			if user == nil {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "el usuario del token ya no existe"})
			}
			c.Locals(LocalIdentity, entity.IdentityOf(user))
			return c.Next()
		},
	})
}

// RequireRole debe ir después de AuthMiddleware: 401 sin identidad, 403 si el rol no está permitido.
func RequireRole(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := GetIdentity(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "autenticación requerida"})
		}
		for _, r := range roles {
			if id.Role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "se requiere rol de administrador"})
	}
}

// RequireAdmin gate de rutas de administración.
func RequireAdmin() fiber.Handler {
	return RequireRole(entity.RoleAdmin)
}

// GetIdentity devuelve la identidad resuelta por AuthMiddleware.
func GetIdentity(c *fiber.Ctx) (entity.Identity, bool) {
	id, ok := c.Locals(LocalIdentity).(entity.Identity)
	return id, ok
}
