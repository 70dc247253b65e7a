package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"khola-chithi/engine/internal/auth"
	context "khola-chithi/engine/internal/auth"
	"khola-chithi/engine/internal/common"
	"khola-chithi/engine/internal/constants"
)

// resolveClaims checks the three credential sources in order: bearer token,
// service API key, session id. Session logins also return the session
// record so handlers can act on it.
func resolveClaims(r *http.Request, tokens *auth.TokenService, sessions *common.SessionService, serviceKey string) (auth.UserClaims, *common.SessionData) {
	authHeader := r.Header.Get("Authorization")
	apiKey := r.Header.Get("X-API-Key")
	sessionID := r.Header.Get("X-Session-Id")

	switch {
	case strings.HasPrefix(authHeader, "Bearer "):
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			return nil, nil
		}
		return claims, nil

	case apiKey != "" && serviceKey != "":
		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(serviceKey)) != 1 {
			return nil, nil
		}
		// Service callers act with admin rights on behalf of the user
		// named in X-User-Id, if any.
		return &auth.APIKeyClaims{
			UserUUID:  r.Header.Get("X-User-Id"),
			RoleValue: constants.RoleAdmin,
		}, nil

	case sessionID != "" && sessions != nil:
		session, err := sessions.GetSession(r.Context(), sessionID)
		if err != nil {
			return nil, nil
		}
		return &auth.SessionClaims{
			UserUUID:  session.UserID,
			RoleValue: session.Role,
			SessionID: session.SessionID,
		}, session
	}
	return nil, nil
}

// AuthMiddleware rejects requests that carry no valid bearer token, API
// key, or session.
func AuthMiddleware(tokens *auth.TokenService, sessions *common.SessionService, serviceKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims, session := resolveClaims(r, tokens, sessions, serviceKey)
			if claims == nil {
				http.Error(w, "Unauthorized. Missing or invalid credentials", http.StatusUnauthorized)
				return
			}

			ctx := context.SetUserClaims(r.Context(), claims)
			if session != nil {
				ctx = context.SetSessionData(ctx, session)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthMiddleware attaches claims when present but lets anonymous
// requests through. Ad selection treats those viewers as public.
func OptionalAuthMiddleware(tokens *auth.TokenService, sessions *common.SessionService, serviceKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			if claims, session := resolveClaims(r, tokens, sessions, serviceKey); claims != nil {
				ctx := context.SetUserClaims(r.Context(), claims)
				if session != nil {
					ctx = context.SetSessionData(ctx, session)
				}
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}
