package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/mindwell_backend/pkg/authorize"
	pasetotoken "github.com/Alijeyrad/mindwell_backend/pkg/paseto"
)

// RequirePermission checks the role claim of the authenticated caller against
// the policy. Unknown roles are forbidden.
func RequirePermission(auth authorize.IAuthorization, resource authorize.Resource, action authorize.Action) fiber.Handler {
	return func(c fiber.Ctx) error {
		claims, ok := pasetotoken.ClaimsFromFiber(c)
		if !ok {
			return fiber.ErrUnauthorized
		}

		role, err := authorize.ParseRole(claims.Role)
		if err != nil {
			return fiber.ErrForbidden
		}

		if err := auth.MustEnforce(c.Context(), role, resource, action); err != nil {
			if errors.Is(err, authorize.ErrForbidden) {
				return fiber.ErrForbidden
			}
			return err
		}

		return c.Next()
	}
}
