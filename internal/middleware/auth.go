package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pulsefit/core/internal/models"
	"github.com/pulsefit/core/internal/pkg/apperr"
	"github.com/pulsefit/core/internal/pkg/jwt"
	"github.com/pulsefit/core/internal/pkg/response"
	"gorm.io/gorm"
)

const (
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "user_role"
)

// Identity is the resolved caller of a request.
type Identity struct {
	UserID uint
	Role   string
}

// ResolveCaller validates the bearer token and re-resolves the user row,
// so a deleted user fails even with a structurally valid token.
func ResolveCaller(db *gorm.DB, rawToken string) (*Identity, error) {
	token := NormalizeToken(rawToken)
	if token == "" {
		return nil, apperr.ErrTokenInvalid
	}

	claims, err := jwt.Parse(token)
	if err != nil {
		return nil, err
	}

	var u models.UserModel
	if err := db.Select("id, role").First(&u, "id = ?", claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, err
	}
	return &Identity{UserID: u.ID, Role: u.Role}, nil
}

// Auth returns a middleware that rejects requests without a valid token.
func Auth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, err := ResolveCaller(db, extractToken(c))
		if err != nil {
			if errors.Is(err, apperr.ErrTokenExpired) {
				response.Forbidden(c, err.Error())
				return
			}
			response.Unauthorized(c, "authentication required")
			return
		}
		c.Set(ContextKeyUserID, ident.UserID)
		c.Set(ContextKeyRole, ident.Role)
		c.Next()
	}
}

// OptionalAuth resolves the caller identity if a valid token is present,
// but never blocks the request. Read paths consume the result through
// IsAuthenticated.
func OptionalAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ident, err := ResolveCaller(db, extractToken(c)); err == nil {
			c.Set(ContextKeyUserID, ident.UserID)
			c.Set(ContextKeyRole, ident.Role)
		}
		c.Next()
	}
}

// RequireRole gates a route group to the given roles. Runs after Auth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := CurrentRole(c)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		response.Forbidden(c, "insufficient role")
	}
}

// CurrentUserID returns the authenticated user ID, or nil.
func CurrentUserID(c *gin.Context) *uint {
	v, ok := c.Get(ContextKeyUserID)
	if !ok {
		return nil
	}
	id, ok := v.(uint)
	if !ok {
		return nil
	}
	return &id
}

// CurrentRole returns the authenticated user's role, or "".
func CurrentRole(c *gin.Context) string {
	v, _ := c.Get(ContextKeyRole)
	role, _ := v.(string)
	return role
}

// IsAuthenticated reports whether the request carries a resolved identity.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUserID(c) != nil
}

func extractToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth != "" {
		return NormalizeToken(auth)
	}
	return NormalizeToken(c.Query("token"))
}

// NormalizeToken trims spaces and strips an optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
