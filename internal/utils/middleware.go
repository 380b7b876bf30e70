package utils

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"event-crm/internal/models"
)

const principalKey = "principal"

// PrincipalSource resolves a token subject into the acting principal,
// whether that is the environment admin or a stored user.
type PrincipalSource interface {
	ResolvePrincipal(ctx context.Context, subject string) (*models.Principal, error)
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// RequireAuth rejects requests without a valid, non-revoked access token
// and stores the resolved principal in the request context.
func RequireAuth(jwtUtil *JWTUtil, source PrincipalSource, redis *RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access denied. No token provided."})
			return
		}

		claims, err := jwtUtil.ValidateAccessToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access denied. Invalid token."})
			return
		}
		if jwtUtil.IsTokenBlacklisted(c.Request.Context(), token, redis) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access denied. Token revoked."})
			return
		}

		principal, err := source.ResolvePrincipal(c.Request.Context(), claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access denied. Invalid token."})
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// OptionalAuth resolves a principal when a valid token is present but
// never blocks the request. Used by the public intake path.
func OptionalAuth(jwtUtil *JWTUtil, source PrincipalSource, redis *RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := jwtUtil.ValidateAccessToken(token)
		if err != nil || jwtUtil.IsTokenBlacklisted(c.Request.Context(), token, redis) {
			c.Next()
			return
		}
		if principal, err := source.ResolvePrincipal(c.Request.Context(), claims.Subject); err == nil {
			c.Set(principalKey, principal)
		}
		c.Next()
	}
}

// AdminOnly requires the resolved principal to carry the admin role.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := CurrentPrincipal(c)
		if principal == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access denied. Authentication required."})
			return
		}
		if !principal.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied. Admin privileges required."})
			return
		}
		c.Next()
	}
}

// CurrentPrincipal returns the principal stored by the auth middleware,
// or nil for anonymous requests.
func CurrentPrincipal(c *gin.Context) *models.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	principal, ok := v.(*models.Principal)
	if !ok {
		return nil
	}
	return principal
}
