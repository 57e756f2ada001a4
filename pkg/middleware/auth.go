package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/grandshipper/grandshipper-api/internal/apperr"
	"github.com/grandshipper/grandshipper-api/internal/tokens"
	"github.com/grandshipper/grandshipper-api/pkg/metrics"
)

const (
	identityKey = "identity"
	rawTokenKey = "rawToken"

	msgNoToken      = "Access denied. No token provided."
	msgInvalidToken = "Invalid token."
	msgDenied       = "Access denied."
)

// Verifier checks a raw bearer token and returns its claims.
type Verifier interface {
	Verify(raw string) (*tokens.Claims, error)
}

// RevocationChecker reports tokens that were logged out before expiry.
type RevocationChecker interface {
	Contains(ctx context.Context, token string) (bool, error)
}

// Auth requires an "Authorization: Bearer <token>" header. A missing header or
// empty token is a 401; a token that fails verification or was revoked is a 400.
// revoked may be nil.
func Auth(ver Verifier, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := BearerToken(c)
		if !ok {
			metrics.AuthFailures.WithLabelValues("missing_token").Inc()
			Fail(c, apperr.Unauthenticated(msgNoToken))
			return
		}

		claims, err := ver.Verify(raw)
		if err != nil {
			metrics.AuthFailures.WithLabelValues("invalid_token").Inc()
			Fail(c, apperr.InvalidToken(msgInvalidToken, err))
			return
		}

		if revoked != nil {
			gone, err := revoked.Contains(c.Request.Context(), raw)
			if err != nil {
				Fail(c, apperr.Wrap("revocation lookup", err))
				return
			}
			if gone {
				metrics.AuthFailures.WithLabelValues("revoked_token").Inc()
				Fail(c, apperr.InvalidToken(msgInvalidToken, nil))
				return
			}
		}

		c.Set(identityKey, claims)
		c.Set(rawTokenKey, raw)
		c.Next()
	}
}

// Admin requires a prior Auth and an identity with the admin flag.
func Admin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := Identity(c)
		if !ok {
			Fail(c, apperr.Unauthenticated(msgNoToken))
			return
		}
		if !id.IsAdmin {
			metrics.AuthFailures.WithLabelValues("not_admin").Inc()
			Fail(c, apperr.Denied(msgDenied))
			return
		}
		c.Next()
	}
}

// Identity returns the claims attached by Auth.
func Identity(c *gin.Context) (*tokens.Claims, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*tokens.Claims)
	return claims, ok && claims != nil
}

// BearerToken extracts the token from the Authorization header. It reports
// false when the header is absent, uses another scheme or carries no token.
func BearerToken(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(h) < len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	raw := strings.TrimSpace(h[len(prefix):])
	return raw, raw != ""
}
