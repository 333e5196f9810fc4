package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/greenstore-api/internal/domain"
	"github.com/jhoicas/greenstore-api/internal/domain/entity"
	"github.com/jhoicas/greenstore-api/pkg/jwt"
)

// Locals keys para la identidad del operador en Fiber.
const (
	LocalUserID   = "user_id"
	LocalUserName = "user_name"
	LocalRole     = "role"
)

var (
	errMissingToken = domain.NewBusinessError(domain.KindUnauthorized, "Authorization header requerido")
	errTokenFormat  = domain.NewBusinessError(domain.KindUnauthorized, "formato: Bearer <token>")
	errInvalidToken = domain.NewBusinessError(domain.KindUnauthorized, "token inválido o expirado")
	errMissingRole  = domain.NewBusinessError(domain.KindUnauthorized, "el token no incluye rol")
)

// AuthMiddleware valida el Bearer Token JWT y deja user_id, nombre y rol en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return errMissingToken
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return errTokenFormat
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return errMissingToken
		}
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil || id.UserID == "" {
			return errInvalidToken
		}
		c.Locals(LocalUserID, id.UserID)
		c.Locals(LocalUserName, id.Name)
		c.Locals(LocalRole, id.Role)
		return c.Next()
	}
}

// RequireRole exige un rol de nivel >= min (operator < supervisor < manager < admin).
// Debe usarse después de AuthMiddleware.
func RequireRole(min string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return errMissingRole
		}
		if !entity.RoleAtLeast(role, min) {
			return domain.ErrForbidden
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetRole devuelve el rol del contexto.
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}
