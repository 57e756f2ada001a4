package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grandshipper/grandshipper-api/internal/archive"
	"github.com/grandshipper/grandshipper-api/internal/blogs"
	"github.com/grandshipper/grandshipper-api/internal/validation"
	"github.com/grandshipper/grandshipper-api/pkg/middleware"
)

// BlogsHandler serves /api/blogs. archiver may be nil, in which case the
// archive route is not mounted.
type BlogsHandler struct {
	svc      *blogs.Service
	archiver *archive.Archiver
	auth     gin.HandlerFunc
}

func NewBlogsHandler(svc *blogs.Service, archiver *archive.Archiver, auth gin.HandlerFunc) *BlogsHandler {
	return &BlogsHandler{svc: svc, archiver: archiver, auth: auth}
}

// Register routes under /blogs
func (h *BlogsHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/blogs")
	g.GET("", h.List)
	g.GET("/:id", middleware.ValidateObjectID("blog"), h.Get)
	g.POST("", h.auth, middleware.Validate(checkBlog), h.Create)
	g.PUT("/:id", middleware.ValidateObjectID("blog"), middleware.Validate(checkBlog), h.Update)
	g.DELETE("/:id", middleware.ValidateObjectID("blog"), h.Delete)
	if h.archiver != nil {
		g.POST("/archive", h.auth, middleware.Admin(), h.Archive)
	}
}

func checkBlog(_ *gin.Context, v validation.BlogRequest) validation.Result {
	return validation.ValidateBlog(v)
}

func (h *BlogsHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *BlogsHandler) Get(c *gin.Context) {
	b, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BlogsHandler) Create(c *gin.Context) {
	b, err := h.svc.Create(c.Request.Context(), middleware.Body[validation.BlogRequest](c))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BlogsHandler) Update(c *gin.Context) {
	b, err := h.svc.Update(c.Request.Context(), c.Param("id"), middleware.Body[validation.BlogRequest](c))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BlogsHandler) Delete(c *gin.Context) {
	b, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// Archive uploads a JSON snapshot of every blog and returns a short-lived link to it.
func (h *BlogsHandler) Archive(c *gin.Context) {
	res, err := h.archiver.Snapshot(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
