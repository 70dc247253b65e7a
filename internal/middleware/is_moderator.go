package middleware

import (
	context "khola-chithi/engine/internal/auth"
	"khola-chithi/engine/internal/constants"
	"net/http"
)

func IsModeratorMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := context.GetUserClaims(r.Context())

			if claims.Role() == string(constants.RoleModerator) || claims.Role() == string(constants.RoleAdmin) {
				next.ServeHTTP(w, r)
				return
			}
			http.Error(w, "Unauthorized. Need moderator perms", http.StatusUnauthorized)
		})
	}
}
