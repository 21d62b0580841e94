package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/usermgmt/user-system/internal/api/metrics"
	"github.com/usermgmt/user-system/internal/core/domain"
	"github.com/usermgmt/user-system/internal/core/ports"
)

// CredentialHeader carries the bearer credential: the digest handed back by
// POST /login.
const CredentialHeader = "hashed_pass"

// mutationPolicy maps gated HTTP verbs to the roles allowed to use them.
// Verbs absent from the table pass through unchecked.
var mutationPolicy = map[string][]domain.Role{
	http.MethodPut:    {domain.RoleAdmin, domain.RoleDev},
	http.MethodDelete: {domain.RoleAdmin},
}

// AccessControl gates mutating requests by role before any handler runs.
// The caller is identified by looking up the CredentialHeader value in the
// store on every request; there is no signature, expiry, or nonce. That weak
// model is deliberate and matches the service's bearer-digest contract.
func AccessControl(resolver ports.CredentialResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, gated := mutationPolicy[c.Request().Method]
			if !gated {
				return next(c)
			}

			credential := c.Request().Header.Get(CredentialHeader)
			user, err := resolver.Identify(c.Request().Context(), credential)
			if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
				// store failure, not a privilege problem
				return err
			}
			if user != nil {
				for _, role := range allowed {
					if user.Role == role {
						return next(c)
					}
				}
			}

			metrics.AccessDeniedTotal.WithLabelValues(c.Request().Method).Inc()
			return c.JSON(http.StatusForbidden, map[string]string{
				"detail": domain.ErrForbidden.Error(),
			})
		}
	}
}
