package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/grandshipper/grandshipper-api/internal/archive"
	"github.com/grandshipper/grandshipper-api/internal/blogs"
	"github.com/grandshipper/grandshipper-api/internal/models"
	"github.com/grandshipper/grandshipper-api/internal/sessions"
	"github.com/grandshipper/grandshipper-api/internal/tokens"
	"github.com/grandshipper/grandshipper-api/internal/types"
	"github.com/grandshipper/grandshipper-api/internal/users"
	"github.com/grandshipper/grandshipper-api/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

func init() { gin.SetMode(gin.TestMode) }

type testServer struct {
	t      *testing.T
	r      *gin.Engine
	deps   Deps
	issuer *tokens.Issuer
	store  *memObjects
}

type serverConfig struct {
	typesRepo types.Repository
	noArchive bool
}

type serverOption func(*serverConfig)

func withTypesRepo(repo types.Repository) serverOption {
	return func(c *serverConfig) { c.typesRepo = repo }
}

func withoutArchive() serverOption {
	return func(c *serverConfig) { c.noArchive = true }
}

func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()
	cfg := serverConfig{typesRepo: types.NewMemoryRepository()}
	for _, o := range opts {
		o(&cfg)
	}

	m, err := mr.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)

	log := logger.NewNop()
	issuer, err := tokens.NewIssuer("handler-test-secret", time.Hour)
	require.NoError(t, err)

	typeSvc := types.NewService(cfg.typesRepo, log)
	blogSvc := blogs.NewService(blogs.NewMemoryRepository(), typeSvc, log)
	store := &memObjects{objects: map[string][]byte{}}

	d := Deps{
		Log:         log,
		Types:       typeSvc,
		Blogs:       blogSvc,
		Users:       users.NewService(users.NewMemoryUserRepository(), log, users.WithHashCost(bcrypt.MinCost)),
		Sessions:    sessions.NewService(sessions.NewMemoryRepository(), 24*time.Hour),
		Tokens:      issuer,
		Revocations: sessions.NewRevocations(redis.NewClient(&redis.Options{Addr: m.Addr()})),
		CORSOrigins: []string{"http://localhost:3001"},
		Ready: map[string]Pinger{
			"mongo": PingFunc(func(context.Context) error { return nil }),
		},
	}
	if !cfg.noArchive {
		d.Archiver = archive.New(store, blogSvc, log)
	}
	return &testServer{t: t, r: NewRouter(d), deps: d, issuer: issuer, store: store}
}

type memObjects struct {
	objects map[string][]byte
}

func (m *memObjects) Put(ctx context.Context, key string, data []byte, contentType string) error {
	m.objects[key] = data
	return nil
}

func (m *memObjects) PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	return "http://minio.local/bucket/" + key + "?X-Amz-Expires=900", nil
}

func (s *testServer) token(admin bool) string {
	s.t.Helper()
	tok, err := s.issuer.Issue(&models.User{ID: primitive.NewObjectID(), IsAdmin: admin})
	require.NoError(s.t, err)
	return tok
}

func (s *testServer) do(method, path, body, token string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	msg, _ := decode(t, w)["error"].(string)
	return msg
}

// createType posts a type as a regular user and returns its id.
func (s *testServer) createType(name string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/types", `{"name":"`+name+`"}`, s.token(false))
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	return decode(s.t, w)["_id"].(string)
}
