package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Lewin99/BuddyGet/internal/models"
	"github.com/Lewin99/BuddyGet/internal/util"

	"github.com/gin-gonic/gin"
)

const (
	// CurrentUserKey holds the authenticated *models.User in the gin context.
	CurrentUserKey = "currentUser"
	// TokenCookie is the cookie checked when no Authorization header is sent.
	TokenCookie = "buddyget_token"
)

// UserLookup loads the user a token was issued for.
type UserLookup interface {
	Get(ctx context.Context, id uint) (*models.User, error)
}

// AuthMiddleware verifies the bearer token and puts the current user in the
// context. A missing token is 401; a bad, expired or orphaned one is 403.
func AuthMiddleware(jwtSecret string, users UserLookup) gin.HandlerFunc {
	return authenticate(jwtSecret, users, true)
}

// OptionalAuth behaves like AuthMiddleware but lets anonymous requests through.
func OptionalAuth(jwtSecret string, users UserLookup) gin.HandlerFunc {
	return authenticate(jwtSecret, users, false)
}

func authenticate(jwtSecret string, users UserLookup, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			if required {
				util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
				c.Abort()
				return
			}
			c.Next()
			return
		}

		claims, err := util.ParseToken(jwtSecret, tokenStr)
		if err != nil {
			_ = c.Error(err)
			util.Error(c, http.StatusForbidden, util.CodeInvalidToken, "invalid or expired token")
			c.Abort()
			return
		}

		user, err := users.Get(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, util.ErrNotFound) {
				_ = c.Error(err)
				util.Error(c, http.StatusForbidden, util.CodeInvalidToken, "invalid or expired token")
			} else {
				util.Fail(c, err, "failed to load user")
			}
			c.Abort()
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// bearerToken reads "Authorization: Bearer <t>", then the token cookie.
func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie
	}
	return ""
}

// CurrentUser returns the user set by AuthMiddleware or OptionalAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}
