package middleware

import (
	"net/http"

	"stats-impact-backend/internal/domain/entity"
	"stats-impact-backend/internal/stats"
	"stats-impact-backend/pkg/response"
)

// RequireCapability creates a middleware that passes when the user's role
// grants at least one of the listed capabilities. The role comes from context
// (set by AuthMiddleware from JWT claims).
func RequireCapability(capabilities ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleID, ok := GetRoleIDFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			granted := entity.CapabilitiesForRole(roleID)
			allowed := false
			for _, c := range capabilities {
				if granted[c] {
					allowed = true
					break
				}
			}

			if !allowed {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireStatsView guards the statistics endpoints: any role that can read
// stats at all, sector-restricted or not.
func RequireStatsView(next http.Handler) http.Handler {
	return RequireCapability(stats.CapStatsView, stats.CapStatsViewAll)(next)
}
