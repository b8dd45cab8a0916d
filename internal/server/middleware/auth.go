package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dnfxyg-commits/fanfei-uav-platform/internal/model"
	"github.com/dnfxyg-commits/fanfei-uav-platform/internal/service"
)

type contextKeyAuth string

// principalKey is the context key for the authenticated principal.
const principalKey contextKeyAuth = "auth_principal"

// Principal is the verified identity making the request, derived from the
// bearer token on every call. Nothing about it is cached between requests.
type Principal struct {
	Username string
	Role     model.Role
}

// Authenticate returns an HTTP middleware that verifies the Authorization
// bearer token and attaches a Principal to the request context. A missing,
// malformed, expired, or forged token yields a uniform 401.
func Authenticate(authSvc *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeAuthError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			claims, err := authSvc.VerifyToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			principal := &Principal{
				Username: claims.Subject,
				Role:     claims.Role,
			}
			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole returns an HTTP middleware that enforces a minimum role under
// the role ordering. It must be chained after Authenticate.
func RequireRole(min model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := GetPrincipal(r.Context())
			if principal == nil {
				writeAuthError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			if !principal.Role.Meets(min) {
				writeAuthError(w, http.StatusForbidden, min.String()+" access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetPrincipal extracts the authenticated principal from the context.
// Returns nil for unauthenticated requests.
func GetPrincipal(ctx context.Context) *Principal {
	if p, ok := ctx.Value(principalKey).(*Principal); ok {
		return p
	}
	return nil
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{
		Error: model.ErrorDetail{Code: status, Message: message},
	})
}
