package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
)

// RBAC restricts a route to the given marketplace roles. Admin accounts pass
// every check. The central error handler translates the sentinel into a 403.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if role == domain.RoleAdmin {
				return next(c)
			}
			if _, ok := allowed[role]; !ok {
				return domain.ErrAccessDenied
			}
			return next(c)
		}
	}
}
