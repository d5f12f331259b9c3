package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/devfinds/devfinds/internal/auth"
	"github.com/devfinds/devfinds/internal/dto"
	"github.com/devfinds/devfinds/internal/util"
	"github.com/gin-gonic/gin"
)

// Register creates an account and starts a session
// POST /api/v1/auth/register
func (h *Handlers) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "Name, a valid email and a password of at least 6 characters are required")
		return
	}

	resp, err := h.auth.Register(c.Request.Context(), req)
	if errors.Is(err, auth.ErrUserExists) {
		util.RespondBadRequest(c, "User already exists")
		return
	}
	if err != nil {
		util.RespondInternalError(c, err)
		return
	}

	h.setSessionCookie(c, resp.Token)
	util.RespondSuccess(c, http.StatusCreated, gin.H{
		"message": "Registered successfully",
		"user":    dto.ToUserResponse(resp.User),
		"token":   resp.Token,
	})
}

// Login starts a session
// POST /api/v1/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "Email and password are required")
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		util.RespondBadRequest(c, "Invalid email or password")
		return
	}
	if err != nil {
		util.RespondInternalError(c, err)
		return
	}

	h.setSessionCookie(c, resp.Token)
	util.RespondSuccess(c, http.StatusOK, gin.H{
		"message": fmt.Sprintf("Welcome back %s", resp.User.Name),
		"user":    dto.ToUserResponse(resp.User),
		"token":   resp.Token,
	})
}

// Logout ends the session
// GET /api/v1/auth/logout
func (h *Handlers) Logout(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	user, err := h.auth.Logout(c.Request.Context(), userID)
	if err != nil {
		util.RespondInternalError(c, err)
		return
	}

	h.clearSessionCookie(c)
	util.RespondSuccess(c, http.StatusOK, gin.H{"user": dto.ToUserResponse(user)})
}

// Me returns the caller's profile
// GET /api/v1/users/me
func (h *Handlers) Me(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}
	util.RespondSuccess(c, http.StatusOK, gin.H{"user": dto.ToUserResponse(user)})
}

func (h *Handlers) setSessionCookie(c *gin.Context, token string) {
	h.applySameSite(c)
	c.SetCookie(auth.CookieName, token, int(h.auth.TokenTTL().Seconds()), "/", "", h.secureCookies, true)
}

func (h *Handlers) clearSessionCookie(c *gin.Context) {
	h.applySameSite(c)
	c.SetCookie(auth.CookieName, "", -1, "/", "", h.secureCookies, true)
}

func (h *Handlers) applySameSite(c *gin.Context) {
	if h.secureCookies {
		// the web client is served from another origin in production
		c.SetSameSite(http.SameSiteNoneMode)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
}
