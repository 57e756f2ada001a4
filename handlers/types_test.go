package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/grandshipper/grandshipper-api/internal/models"
	"github.com/grandshipper/grandshipper-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTypes_RoundTrip(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/types", `{"name":"validname"}`, s.token(false))
	require.Equal(t, http.StatusOK, w.Code)
	created := decode(t, w)
	id, _ := created["_id"].(string)
	require.True(t, primitive.IsValidObjectID(id))
	assert.Equal(t, "validname", created["name"])

	w = s.do(http.MethodGet, "/api/types/"+id, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, decode(t, w))

	w = s.do(http.MethodPut, "/api/types/"+id, `{"name":"renamed"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "renamed", decode(t, w)["name"])

	// non-admin and anonymous deletes are denied with different statuses
	w = s.do(http.MethodDelete, "/api/types/"+id, "", s.token(false))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Access denied.", errorMessage(t, w))
	w = s.do(http.MethodDelete, "/api/types/"+id, "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodDelete, "/api/types/"+id, "", s.token(true))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "renamed", decode(t, w)["name"])

	w = s.do(http.MethodGet, "/api/types/"+id, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, fmt.Sprintf("Failed to get the type (Id: %s) from the database.", id), errorMessage(t, w))
}

func TestTypes_ListSortedByName(t *testing.T) {
	s := newTestServer(t)
	for _, n := range []string{"travel", "cooking", "music"} {
		s.createType(n)
	}
	w := s.do(http.MethodGet, "/api/types", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["cooking","music","travel"]`, namesOf(t, w.Body.Bytes()))
}

func TestTypes_EmptyList(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/api/types", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestTypes_NameBounds(t *testing.T) {
	s := newTestServer(t)
	token := s.token(false)
	const bounds = "Invalid parameter name (Must be at least 5 and maximum 50 characters length)."
	cases := []struct {
		name string
		body string
		code int
		msg  string
	}{
		{"missing", `{}`, http.StatusBadRequest, "Parameter name is required."},
		{"empty", `{"name":""}`, http.StatusBadRequest, "Parameter name is required."},
		{"too short", `{"name":"ab"}`, http.StatusBadRequest, bounds},
		{"four", `{"name":"abcd"}`, http.StatusBadRequest, bounds},
		{"five", `{"name":"abcde"}`, http.StatusOK, ""},
		{"fifty", `{"name":"` + strings.Repeat("x", 50) + `"}`, http.StatusOK, ""},
		{"fifty-one", `{"name":"` + strings.Repeat("x", 51) + `"}`, http.StatusBadRequest, bounds},
		{"runes not bytes", `{"name":"` + strings.Repeat("é", 50) + `"}`, http.StatusOK, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := s.do(http.MethodPost, "/api/types", tc.body, token)
			require.Equal(t, tc.code, w.Code, w.Body.String())
			if tc.msg != "" {
				assert.Equal(t, tc.msg, errorMessage(t, w))
			}
		})
	}

	id := s.createType("original")
	w := s.do(http.MethodPut, "/api/types/"+id, `{"name":"abc"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, bounds, errorMessage(t, w))
}

func TestTypes_MalformedIDs(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(true)
	for _, bad := range []string{"abc", "123", "zzzzzzzzzzzzzzzzzzzzzzzz", "507f1f77bcf86cd79943901"} {
		want := "Invalid type Id " + bad + "."

		w := s.do(http.MethodGet, "/api/types/"+bad, "", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, want, errorMessage(t, w))

		w = s.do(http.MethodPut, "/api/types/"+bad, `{"name":"validname"}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, want, errorMessage(t, w))

		w = s.do(http.MethodDelete, "/api/types/"+bad, "", admin)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, want, errorMessage(t, w))
	}
}

func TestTypes_WriteMissIsBadRequest(t *testing.T) {
	s := newTestServer(t)
	id := primitive.NewObjectID().Hex()

	w := s.do(http.MethodPut, "/api/types/"+id, `{"name":"validname"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, fmt.Sprintf("Failed to update the type (Id: %s) on the database.", id), errorMessage(t, w))

	w = s.do(http.MethodDelete, "/api/types/"+id, "", s.token(true))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, fmt.Sprintf("Failed to delete the type (Id: %s) from the database.", id), errorMessage(t, w))
}

func TestTypes_CreateRequiresToken(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/types", `{"name":"ab"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Access denied. No token provided.", errorMessage(t, w))

	w = s.do(http.MethodPost, "/api/types", `{"name":"validname"}`, "not.a.jwt")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid token.", errorMessage(t, w))

	w = s.do(http.MethodGet, "/api/types", "", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

type unreachableTypes struct{ *types.MemoryRepository }

func (unreachableTypes) List(ctx context.Context) ([]models.Type, error) {
	return nil, errors.New("server selection error: mongo-0:27017")
}

func (unreachableTypes) Insert(ctx context.Context, t *models.Type) error {
	return errors.New("not primary")
}

func TestTypes_StoreFailures(t *testing.T) {
	s := newTestServer(t, withTypesRepo(unreachableTypes{types.NewMemoryRepository()}))

	// uncaught failures escalate to a generic 500
	w := s.do(http.MethodGet, "/api/types", "", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Something went wrong.", errorMessage(t, w))
	assert.NotContains(t, w.Body.String(), "mongo-0")

	// save failures are downgraded to 400
	w = s.do(http.MethodPost, "/api/types", `{"name":"validname"}`, s.token(false))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Failed to save the type on the database.", errorMessage(t, w))
}

func TestTypes_NameIsTrimmedBeforeLengthCheck(t *testing.T) {
	s := newTestServer(t)
	id := s.createType("travel")
	token := s.token(false)
	tooShort := "Invalid parameter name (Must be at least 5 and maximum 50 characters length)."
	cases := []struct {
		body string
		msg  string
	}{
		{`{"name":"   ab   "}`, tooShort},
		{`{"name":"` + strings.Repeat(" ", 20) + `"}`, "Parameter name is required."},
		{`{"name":"\t\n "}`, "Parameter name is required."},
	}
	for _, tc := range cases {
		w := s.do(http.MethodPost, "/api/types", tc.body, token)
		assert.Equal(t, http.StatusBadRequest, w.Code, "POST "+tc.body)
		assert.Equal(t, tc.msg, errorMessage(t, w))

		w = s.do(http.MethodPut, "/api/types/"+id, tc.body, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, "PUT "+tc.body)
		assert.Equal(t, tc.msg, errorMessage(t, w))
	}

	// the stored name is untouched by the rejected updates
	w := s.do(http.MethodGet, "/api/types/"+id, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "travel", decode(t, w)["name"])

	// the trimmed value is the one persisted
	w = s.do(http.MethodPost, "/api/types", `{"name":"  cooking  "}`, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cooking", decode(t, w)["name"])

	w = s.do(http.MethodPut, "/api/types/"+id, `{"name":"  journeys "}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "journeys", decode(t, w)["name"])
	w = s.do(http.MethodGet, "/api/types/"+id, "", "")
	assert.Equal(t, "journeys", decode(t, w)["name"])
}
