package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grandshipper/grandshipper-api/internal/types"
	"github.com/grandshipper/grandshipper-api/internal/validation"
	"github.com/grandshipper/grandshipper-api/pkg/middleware"
)

// TypesHandler serves /api/types.
type TypesHandler struct {
	svc  *types.Service
	auth gin.HandlerFunc
}

func NewTypesHandler(svc *types.Service, auth gin.HandlerFunc) *TypesHandler {
	return &TypesHandler{svc: svc, auth: auth}
}

// Register routes under /types
func (h *TypesHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/types")
	g.GET("", h.List)
	g.GET("/:id", middleware.ValidateObjectID("type"), h.Get)
	g.POST("", h.auth, middleware.Validate(checkType), h.Create)
	g.PUT("/:id", middleware.Validate(checkTypeUpdate), h.Update)
	g.DELETE("/:id", h.auth, middleware.Admin(), middleware.ValidateObjectID("type"), h.Delete)
}

func checkType(_ *gin.Context, v validation.TypeRequest) validation.Result {
	return validation.ValidateType(v)
}

func checkTypeUpdate(c *gin.Context, v validation.TypeRequest) validation.Result {
	return validation.ValidateTypeUpdate(c.Param("id"), v)
}

func (h *TypesHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *TypesHandler) Get(c *gin.Context) {
	t, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TypesHandler) Create(c *gin.Context) {
	req := middleware.Body[validation.TypeRequest](c)
	t, err := h.svc.Create(c.Request.Context(), req.Name)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TypesHandler) Update(c *gin.Context) {
	req := middleware.Body[validation.TypeRequest](c)
	t, err := h.svc.Update(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TypesHandler) Delete(c *gin.Context) {
	t, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}
