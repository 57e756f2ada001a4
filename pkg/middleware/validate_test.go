package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/grandshipper/grandshipper-api/internal/validation"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidateObjectID(t *testing.T) {
	r := gin.New()
	r.GET("/types/:id", ValidateObjectID("type"), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/types/abc", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Invalid type Id abc.", errorOf(t, w))

	w = serve(r, http.MethodGet, "/types/"+primitive.NewObjectID().Hex(), "")
	require.Equal(t, http.StatusOK, w.Code)
}

func typeRouter() *gin.Engine {
	r := gin.New()
	r.POST("/", Validate(func(c *gin.Context, v validation.TypeRequest) validation.Result {
		return validation.ValidateType(v)
	}), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"name": Body[validation.TypeRequest](c).Name})
	})
	return r
}

func post(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestValidate(t *testing.T) {
	r := typeRouter()

	w := post(r, `{"name":"ab"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Invalid parameter name (Must be at least 5 and maximum 50 characters length).", errorOf(t, w))

	w = post(r, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Parameter name is required.", errorOf(t, w))

	w = post(r, `{"name":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Invalid JSON body.", errorOf(t, w))

	w = post(r, `{"name":"essays"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"name":"essays"}`, w.Body.String())
}

func TestValidate_ChecksNormalizedBody(t *testing.T) {
	r := typeRouter()

	w := post(r, `{"name":"   ab   "}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Invalid parameter name (Must be at least 5 and maximum 50 characters length).", errorOf(t, w))

	w = post(r, `{"name":"          "}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Parameter name is required.", errorOf(t, w))

	// Body hands the handler the same trimmed value that was checked
	w = post(r, `{"name":"  essays\t"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"name":"essays"}`, w.Body.String())
}
