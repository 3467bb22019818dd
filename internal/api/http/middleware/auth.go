package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	pasetotoken "github.com/Alijeyrad/mindwell_backend/pkg/paseto"
	"github.com/Alijeyrad/mindwell_backend/pkg/reqctx"
)

// AuthRequired validates a Bearer PASETO token issued by the identity service.
// On success, stores *pasetotoken.Claims in c.Locals(pasetotoken.CtxKeyClaims)
// and in the request context.
func AuthRequired(mgr *pasetotoken.Manager) fiber.Handler {
	return func(c fiber.Ctx) error {
		h := c.Get("Authorization")
		if h == "" {
			return fiber.ErrUnauthorized
		}

		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.ErrUnauthorized
		}

		claims, err := mgr.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			return fiber.ErrUnauthorized
		}

		c.Locals(pasetotoken.CtxKeyClaims, claims)
		c.SetContext(reqctx.WithClaims(c.Context(), claims))
		return c.Next()
	}
}
