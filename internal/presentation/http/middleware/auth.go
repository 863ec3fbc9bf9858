package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/presentation/http/dto/response"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/utils"
)

// AuthMiddleware validates the bearer token and loads the signed-in
// user into the request context. Password logins and PIN shift logins
// both end up here; the token claims carry roles and permissions so
// route guards need no extra queries.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, "Missing or malformed authorization header")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		setAuthContext(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware loads the user when a valid token is present
// and stays silent otherwise.
func OptionalAuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := jwtManager.ValidateAccessToken(token); err == nil {
				setAuthContext(c, claims)
			}
		}
		c.Next()
	}
}

// RequirePermission gates a route group on one permission, for example
// manage-sales on the register routes.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !contextHas(c, "user_permissions", func(p string) bool { return p == permission }) {
			response.Forbidden(c, "You do not have permission to perform this action")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole gates a route group on any of the given roles. Settings
// mutations use it to stay owner-only.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok := contextHas(c, "user_roles", func(r string) bool {
			for _, want := range roles {
				if r == want {
					return true
				}
			}
			return false
		})
		if !ok {
			response.Forbidden(c, "Insufficient role privileges")
			c.Abort()
			return
		}
		c.Next()
	}
}

// bearerToken pulls the token out of "Bearer <token>". The scheme
// match is case-insensitive; anything else malformed is rejected.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

func setAuthContext(c *gin.Context, claims *utils.JWTClaims) {
	c.Set("user_id", claims.UserID)
	c.Set("user_email", claims.Email)
	c.Set("user_roles", claims.Roles)
	c.Set("user_permissions", claims.Permissions)
}

// contextHas reports whether the named []string context value contains
// an element matching the predicate. A missing or mistyped value fails
// closed.
func contextHas(c *gin.Context, key string, match func(string) bool) bool {
	v, exists := c.Get(key)
	if !exists {
		return false
	}
	values, ok := v.([]string)
	if !ok {
		return false
	}
	for _, s := range values {
		if match(s) {
			return true
		}
	}
	return false
}
