package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/grandshipper/grandshipper-api/internal/apperr"
	"github.com/grandshipper/grandshipper-api/internal/sessions"
	"github.com/grandshipper/grandshipper-api/internal/tokens"
	"github.com/grandshipper/grandshipper-api/internal/users"
	"github.com/grandshipper/grandshipper-api/internal/validation"
	"github.com/grandshipper/grandshipper-api/pkg/middleware"
)

const msgInvalidRefresh = "Invalid refresh token."

// Revoker records logged-out access tokens until they expire.
type Revoker interface {
	Add(ctx context.Context, token string, ttl time.Duration) error
}

// AuthHandler holds dependencies
type AuthHandler struct {
	usersSvc    *users.Service
	sessionsSvc *sessions.Service
	issuer      *tokens.Issuer
	revoker     Revoker
}

func NewAuthHandler(u *users.Service, s *sessions.Service, issuer *tokens.Issuer, revoker Revoker) *AuthHandler {
	return &AuthHandler{usersSvc: u, sessionsSvc: s, issuer: issuer, revoker: revoker}
}

// Register routes under /auth
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	a := rg.Group("/auth")
	a.POST("", middleware.Validate(checkLogin), h.Login)
	a.POST("/refresh", h.Refresh)
	a.POST("/logout", h.Logout)
}

func checkLogin(_ *gin.Context, v validation.LoginRequest) validation.Result {
	return validation.ValidateLogin(v)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Login checks credentials and returns an access token plus a refresh token.
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	req := middleware.Body[validation.LoginRequest](c)
	u, err := h.usersSvc.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	access, err := h.issuer.Issue(u)
	if err != nil {
		middleware.Fail(c, apperr.Wrap("issue token", err))
		return
	}
	refresh, err := h.sessionsSvc.CreateSession(ctx, u.ID.Hex())
	if err != nil {
		middleware.Fail(c, apperr.Wrap("create session", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": access, "refreshToken": refresh})
}

// Refresh exchanges a live refresh token for a new access token. The admin
// flag is re-read from the user record.
func (h *AuthHandler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()
	var req refreshRequest
	_ = c.ShouldBindJSON(&req)

	sess, err := h.sessionsSvc.ValidateRefresh(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, sessions.ErrNotFound) {
			middleware.Fail(c, apperr.Unauthenticated(msgInvalidRefresh))
			return
		}
		middleware.Fail(c, apperr.Wrap("validate refresh", err))
		return
	}
	u, err := h.usersSvc.GetByID(ctx, sess.UserID)
	if err != nil {
		if apperr.KindOf(err) != apperr.Internal {
			middleware.Fail(c, apperr.Unauthenticated(msgInvalidRefresh))
			return
		}
		middleware.Fail(c, err)
		return
	}
	access, err := h.issuer.Issue(u)
	if err != nil {
		middleware.Fail(c, apperr.Wrap("issue token", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": access})
}

// Logout drops the refresh session and, when a valid bearer token is
// presented, revokes it for the rest of its lifetime.
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	var req refreshRequest
	_ = c.ShouldBindJSON(&req)

	if raw, ok := middleware.BearerToken(c); ok {
		if claims, err := h.issuer.Verify(raw); err == nil {
			ttl := time.Until(claims.ExpiresAt.Time)
			if err := h.revoker.Add(ctx, raw, ttl); err != nil {
				middleware.Fail(c, apperr.Wrap("revoke access token", err))
				return
			}
		}
	}
	if req.RefreshToken != "" {
		if err := h.sessionsSvc.DeleteRefresh(ctx, req.RefreshToken); err != nil {
			middleware.Fail(c, apperr.Wrap("delete session", err))
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out."})
}
