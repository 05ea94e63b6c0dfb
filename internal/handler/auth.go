package handler

import (
	"net/http"

	"github.com/Lewin99/BuddyGet/internal/config"
	"github.com/Lewin99/BuddyGet/internal/middleware"
	"github.com/Lewin99/BuddyGet/internal/models"
	"github.com/Lewin99/BuddyGet/internal/store"
	"github.com/Lewin99/BuddyGet/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves registration, login and the current-user endpoint.
type AuthHandler struct {
	Users *store.UserStore
	JWT   config.JWTConfig
}

func NewAuthHandler(users *store.UserStore, jwtCfg config.JWTConfig) *AuthHandler {
	return &AuthHandler{Users: users, JWT: jwtCfg}
}

type registerReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func userView(u *models.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"email":     u.Email,
		"name":      u.Name,
		"createdAt": u.CreatedAt,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.Users.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		util.Fail(c, err, "failed to create user")
		return
	}

	util.Success(c, util.Response{
		"message": "user created",
		"user":    userView(user),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		util.Fail(c, err, "invalid email or password")
		return
	}

	token, err := util.GenerateToken(h.JWT.Secret, h.JWT.Issuer, user.ID, h.JWT.TTL())
	if err != nil {
		util.Fail(c, err, "failed to issue token")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, token, int(h.JWT.TTL().Seconds()), "/", "", false, true)

	util.Success(c, util.Response{
		"token": token,
		"user":  userView(user),
	})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	util.Success(c, util.Response{"user": userView(user)})
}
