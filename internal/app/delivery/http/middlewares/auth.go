package middlewares

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"vetcare-service/internal/pkg/constvars"
	"vetcare-service/internal/pkg/exceptions"
	"vetcare-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// Authenticate verifies the bearer token issued by the auth service and stores the
// caller's id and role in the request context.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" || !strings.HasPrefix(authHeader, constvars.HeaderBearerPrefix) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, constvars.HeaderBearerPrefix))
		claims, err := utils.ParseJWT(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			m.Log.Warn("Middlewares.Authenticate invalid token",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_AUTH_USER_ID_KEY, claims.Subject)
		ctx = context.WithValue(ctx, constvars.CONTEXT_AUTH_ROLE_KEY, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole must run after Authenticate.
func (m *Middlewares) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := utils.GetAuthRole(r.Context())
			if !slices.Contains(roles, role) {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrRoleNotAllowed(role))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
