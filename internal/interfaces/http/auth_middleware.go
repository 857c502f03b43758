package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/reefet/reefet-api/internal/domain"
	"github.com/reefet/reefet-api/internal/domain/entity"
)

// LocalPrincipal key de c.Locals con la identidad verificada.
const LocalPrincipal = "principal"

// TokenVerifier lo implementa *auth.AuthUseCase.
type TokenVerifier interface {
	Verify(token string) (*entity.Principal, error)
}

// AuthMiddleware valida el Bearer Token y deja el Principal en c.Locals.
// Todos los fallos responden el mismo 401.
func AuthMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scheme, token, ok := strings.Cut(strings.TrimSpace(c.Get(fiber.HeaderAuthorization)), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return domain.ErrUnauthorized
		}
		token = strings.TrimSpace(token)
		if token == "" {
			return domain.ErrUnauthorized
		}
		p, err := verifier.Verify(token)
		if err != nil || p == nil {
			return domain.ErrUnauthorized
		}
		c.Locals(LocalPrincipal, *p)
		return c.Next()
	}
}

// GetPrincipal devuelve la identidad del contexto (después de AuthMiddleware).
func GetPrincipal(c *fiber.Ctx) (entity.Principal, bool) {
	p, ok := c.Locals(LocalPrincipal).(entity.Principal)
	return p, ok
}

// RequireAdmin deja pasar solo a administradores. Va después de AuthMiddleware
// y responde el mismo 401 que cualquier otro fallo de autorización.
func RequireAdmin(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok || !p.IsAdmin {
		return domain.ErrUnauthorized
	}
	return c.Next()
}
