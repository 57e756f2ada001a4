package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grandshipper/grandshipper-api/internal/apperr"
	"github.com/grandshipper/grandshipper-api/pkg/logger"
	"go.uber.org/zap"
)

const msgInternal = "Something went wrong."

// Fail writes err as the response. Internal errors are only attached to the
// context; Errors turns them into a generic 500.
func Fail(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.Internal {
		_ = c.Error(err)
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(apperr.Status(kind), gin.H{"error": apperr.Message(err)})
}

// Errors is the terminal error handler. It must be the first middleware so it
// sees every handler's errors and panics.
func Errors(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("panic while handling request",
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"panic", fmt.Sprint(r),
					zap.Stack("stack"),
				)
				if !c.Writer.Written() {
					c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
				}
			}
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		for _, e := range c.Errors {
			stack := zap.Stack("stack")
			if origin := apperr.StackOf(e.Err); origin != "" {
				stack = zap.String("stack", origin)
			}
			log.Errorw("request failed",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				zap.Error(e.Err),
				stack,
			)
		}
		if !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
		}
	}
}
