package middleware

import (
	"fmt"
	"net/http"

	"github.com/bellastudio/studio-backend-go/internal/handler/http/response"
	"github.com/bellastudio/studio-backend-go/internal/pkg/permission"
	"github.com/go-chi/jwtauth/v5"
)

// RequirePermission checks the caller's role against the policy set before
// letting the request through. The role comes from the access token claims.
func RequirePermission(checker permission.Checker, module, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s:%s'", module, action))
				return
			}

			role, ok := claims["role"].(string)
			if !ok {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s:%s'", module, action))
				return
			}

			allowed, err := checker.Allow(role, module, action)
			if err != nil || !allowed {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s:%s', but user role is '%s'", module, action, role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
