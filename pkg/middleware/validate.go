package middleware

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/grandshipper/grandshipper-api/internal/apperr"
	"github.com/grandshipper/grandshipper-api/internal/validation"
)

const bodyKey = "body"

// ValidateObjectID rejects requests whose :id parameter is not a well-formed
// identifier of the named entity, before any handler runs.
func ValidateObjectID(entity string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if res := validation.ValidateID(entity, c.Param("id")); !res.IsValid {
			Fail(c, apperr.Invalid(res.ErrorMessage))
			return
		}
		c.Next()
	}
}

// Normalizer is implemented by request bodies that clean up their fields
// (trimming, for instance) before they are checked.
type Normalizer[T any] interface {
	Normalize() T
}

// Validate decodes the JSON body into T, normalizes it, runs check on it and
// stores the result for Body. An empty body decodes to the zero value so the
// validator reports the first missing field.
func Validate[T any](check func(c *gin.Context, v T) validation.Result) gin.HandlerFunc {
	return func(c *gin.Context) {
		var v T
		if err := c.ShouldBindJSON(&v); err != nil && !errors.Is(err, io.EOF) {
			Fail(c, apperr.InvalidCause("Invalid JSON body.", err))
			return
		}
		if n, ok := any(v).(Normalizer[T]); ok {
			v = n.Normalize()
		}
		if res := check(c, v); !res.IsValid {
			Fail(c, apperr.Invalid(res.ErrorMessage))
			return
		}
		c.Set(bodyKey, v)
		c.Next()
	}
}

// Body returns the value decoded by Validate.
func Body[T any](c *gin.Context) T {
	v, _ := c.Get(bodyKey)
	out, _ := v.(T)
	return out
}
