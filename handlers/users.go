package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grandshipper/grandshipper-api/internal/apperr"
	"github.com/grandshipper/grandshipper-api/internal/models"
	"github.com/grandshipper/grandshipper-api/internal/tokens"
	"github.com/grandshipper/grandshipper-api/internal/users"
	"github.com/grandshipper/grandshipper-api/internal/validation"
	"github.com/grandshipper/grandshipper-api/pkg/middleware"
)

const authTokenHeader = "x-auth-token"

// UsersHandler serves /api/users.
type UsersHandler struct {
	svc    *users.Service
	issuer *tokens.Issuer
	auth   gin.HandlerFunc
}

func NewUsersHandler(svc *users.Service, issuer *tokens.Issuer, auth gin.HandlerFunc) *UsersHandler {
	return &UsersHandler{svc: svc, issuer: issuer, auth: auth}
}

// Register routes under /users
func (h *UsersHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/users")
	g.POST("", middleware.Validate(checkUser), h.Create)
	g.GET("/me", h.auth, h.Me)
}

func checkUser(_ *gin.Context, v validation.UserRequest) validation.Result {
	return validation.ValidateUser(v)
}

// userView is the public shape of a user; the password hash never leaves the service.
type userView struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

func viewOf(u *models.User) userView {
	return userView{ID: u.ID.Hex(), Name: u.Name, Email: u.Email, IsAdmin: u.IsAdmin}
}

// Create registers a user and returns its access token in the x-auth-token header.
func (h *UsersHandler) Create(c *gin.Context) {
	u, err := h.svc.Register(c.Request.Context(), middleware.Body[validation.UserRequest](c))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	token, err := h.issuer.Issue(u)
	if err != nil {
		middleware.Fail(c, apperr.Wrap("issue token", err))
		return
	}
	c.Header(authTokenHeader, token)
	c.JSON(http.StatusOK, viewOf(u))
}

func (h *UsersHandler) Me(c *gin.Context) {
	id, _ := middleware.Identity(c)
	u, err := h.svc.GetByID(c.Request.Context(), id.ID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(u))
}
