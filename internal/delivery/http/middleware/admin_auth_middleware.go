package middleware

import (
	"net/http"
	"strings"

	"adrd-care-system/pkg/jwt"
	"adrd-care-system/pkg/response"
)

// AdminAuthMiddleware protects the operational audit endpoints. Tokens are
// issued out-of-band; there is no end-user login flow in this service.
type AdminAuthMiddleware struct {
	jwtService *jwt.JWTService
}

func NewAdminAuthMiddleware(jwtService *jwt.JWTService) *AdminAuthMiddleware {
	return &AdminAuthMiddleware{
		jwtService: jwtService,
	}
}

func (m *AdminAuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		if !claims.Admin {
			response.Error(w, http.StatusForbidden, "Admin access required", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
