package middleware

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/grandshipper/grandshipper-api/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountsFinalStatus(t *testing.T) {
	log, _ := observed()
	r := gin.New()
	r.Use(Metrics(), Errors(log))
	r.GET("/api/types/:id", func(c *gin.Context) { panic("x") })

	counter := metrics.HTTPRequests.WithLabelValues(http.MethodGet, "/api/types/:id", "500")
	before := testutil.ToFloat64(counter)
	serve(r, http.MethodGet, "/api/types/1", "")
	require.Equal(t, before+1, testutil.ToFloat64(counter))

	unmatched := metrics.HTTPRequests.WithLabelValues(http.MethodGet, "unmatched", "404")
	before = testutil.ToFloat64(unmatched)
	serve(r, http.MethodGet, "/nope", "")
	require.Equal(t, before+1, testutil.ToFloat64(unmatched))
}
