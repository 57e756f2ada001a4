package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/grandshipper/grandshipper-api/internal/archive"
	"github.com/grandshipper/grandshipper-api/internal/blogs"
	"github.com/grandshipper/grandshipper-api/internal/sessions"
	"github.com/grandshipper/grandshipper-api/internal/tokens"
	"github.com/grandshipper/grandshipper-api/internal/types"
	"github.com/grandshipper/grandshipper-api/internal/users"
	"github.com/grandshipper/grandshipper-api/pkg/logger"
	"github.com/grandshipper/grandshipper-api/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps is everything the HTTP surface needs. Archiver and Limiter are optional.
type Deps struct {
	Log         *logger.Logger
	Types       *types.Service
	Blogs       *blogs.Service
	Users       *users.Service
	Sessions    *sessions.Service
	Tokens      *tokens.Issuer
	Revocations *sessions.Revocations
	Archiver    *archive.Archiver
	Limiter     gin.HandlerFunc
	CORSOrigins []string
	Ready       map[string]Pinger
}

// NewRouter builds the engine. Middleware order: metrics, request log, error
// handler, CORS, rate limit. The error handler sits inside metrics and logging
// so both see the final status.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Metrics(),
		middleware.RequestLogging(d.Log),
		middleware.Errors(d.Log),
		middleware.CORS(d.CORSOrigins),
	)
	if d.Limiter != nil {
		r.Use(d.Limiter)
	}

	RegisterHealth(r, d.Ready)
	RegisterSwagger(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := middleware.Auth(d.Tokens, d.Revocations)
	api := r.Group("/api")
	NewTypesHandler(d.Types, auth).Register(api)
	NewBlogsHandler(d.Blogs, d.Archiver, auth).Register(api)
	NewUsersHandler(d.Users, d.Tokens, auth).Register(api)
	NewAuthHandler(d.Users, d.Sessions, d.Tokens, d.Revocations).Register(api)
	return r
}
