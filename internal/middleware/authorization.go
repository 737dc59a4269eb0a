package middleware

import (
	"net/http"

	"catalog-console/internal/domain"

	"go.uber.org/zap"
)

// RequireAdmin lets only Admin callers through. It must sit behind
// AuthMiddleware; a request with no user in context is answered 401.
func RequireAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return RequireRole(logger, domain.RoleAdmin)
}

// RequireRole lets through callers whose role exactly matches one of roles
func RequireRole(logger *zap.Logger, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				logger.Warn("Role check without an authenticated user", zap.String("path", r.URL.Path))
				RespondWithError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			if _, ok := allowed[user.RoleName]; !ok {
				logger.Warn("User role not authorized",
					zap.String("user_id", user.UserID),
					zap.String("role", user.RoleName),
					zap.Strings("allowed_roles", roles),
					zap.String("path", r.URL.Path),
				)
				RespondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
