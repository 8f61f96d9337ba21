package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/groovecharts/groovecharts-server/internal/domain"
	"github.com/groovecharts/groovecharts-server/internal/http/response"
	"github.com/groovecharts/groovecharts-server/internal/ratelimit"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	contextKeyUserID  contextKey = "user_id"
	contextKeyEmail   contextKey = "email"
	contextKeyIsAdmin contextKey = "is_admin"
)

// requireAuth validates the Bearer token and attaches user context.
// Requests without a valid token are rejected with 401.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := bearerToken(r)
		if !ok {
			response.Unauthorized(w, "Missing or malformed authorization header", s.logger)
			return
		}

		claims, err := s.authService.VerifyToken(tokenString)
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token", s.logger)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, contextKeyEmail, claims.Email)
		ctx = context.WithValue(ctx, contextKeyIsAdmin, claims.IsAdmin)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// optionalAuth attaches user context when a valid token is present and
// continues anonymously otherwise. Used on public reads that personalize
// output for logged-in viewers.
func (s *Server) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := s.authService.VerifyToken(tokenString)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, contextKeyEmail, claims.Email)
		ctx = context.WithValue(ctx, contextKeyIsAdmin, claims.IsAdmin)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin ensures the authenticated user is an admin.
// Must be used after requireAuth.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isAdmin(r.Context()) {
			response.Forbidden(w, "Admin access required", s.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// rateLimitByUser limits requests per authenticated user, falling back to
// the client IP for anonymous requests. Returns 429 when exceeded.
func (s *Server) rateLimitByUser(limiter *ratelimit.KeyedRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := getUserID(r.Context())
			if key == "" {
				key = getClientIP(r)
			}

			if !limiter.Allow(key) {
				s.logger.Warn("Rate limit exceeded",
					"key", key,
					"path", r.URL.Path,
				)
				response.TooManyRequests(w, "Too many requests. Please try again later.", s.logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// getUserID extracts the authenticated user ID from request context.
// Returns empty string if not authenticated.
func getUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(contextKeyUserID).(string); ok {
		return userID
	}
	return ""
}

// isAdmin checks if the authenticated user is an admin.
// Returns false if not authenticated.
func isAdmin(ctx context.Context) bool {
	if admin, ok := ctx.Value(contextKeyIsAdmin).(bool); ok {
		return admin
	}
	return false
}

// requestUser fetches the full user record for the authenticated request.
func (s *Server) requestUser(ctx context.Context) (*domain.User, error) {
	return s.authService.GetUser(ctx, getUserID(ctx))
}
