package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		query   string
		want    store.Page
		wantErr bool
	}{
		{name: "defaults", query: "", want: store.Page{Limit: 10}},
		{name: "explicit window", query: "limit=3&offset=6", want: store.Page{Limit: 3, Offset: 6}},
		{name: "clamped to max", query: "limit=500", want: store.Page{Limit: 100}},
		{name: "zero limit", query: "limit=0", wantErr: true},
		{name: "non-numeric limit", query: "limit=ten", wantErr: true},
		{name: "negative offset", query: "offset=-2", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q, err := url.ParseQuery(tc.query)
			require.NoError(t, err)

			got, err := pageParams(q, 10, 100)
			if tc.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewPageResponse_Links(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		target   string
		page     store.Page
		count    int
		wantNext string
		wantPrev string
	}{
		{
			name:     "first page",
			target:   "/api/todos/?project=2",
			page:     store.Page{Limit: 2},
			count:    5,
			wantNext: "http://example.com/api/todos/?limit=2&offset=2&project=2",
		},
		{
			name:     "middle page",
			target:   "/api/todos/?limit=2&offset=2",
			page:     store.Page{Limit: 2, Offset: 2},
			count:    5,
			wantNext: "http://example.com/api/todos/?limit=2&offset=4",
			wantPrev: "http://example.com/api/todos/?limit=2",
		},
		{
			name:     "last page with offset not aligned",
			target:   "/api/todos/?limit=2&offset=3",
			page:     store.Page{Limit: 2, Offset: 3},
			count:    5,
			wantPrev: "http://example.com/api/todos/?limit=2&offset=1",
		},
		{
			name:   "empty",
			target: "/api/todos/",
			page:   store.Page{Limit: 2},
			count:  0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tc.target, nil)
			resp := newPageResponse[int](r, tc.page, tc.count, nil)

			assert.Equal(t, tc.count, resp.Count)
			assert.NotNil(t, resp.Results)
			assertLink(t, tc.wantNext, resp.Next)
			assertLink(t, tc.wantPrev, resp.Previous)
		})
	}
}

func TestPageURL_ForwardedProto(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/api/users/", nil)
	r.Header.Set("X-Forwarded-Proto", "https")
	assert.Equal(t, "https://example.com/api/users/?limit=5&offset=5", pageURL(r, 5, 5))
}

func assertLink(t *testing.T, want string, got *string) {
	t.Helper()
	if want == "" {
		assert.Nil(t, got)
		return
	}
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func TestTodoFilterFromQuery(t *testing.T) {
	t.Parallel()

	q := url.Values{
		"project":        {"3"},
		"user":           {"4"},
		"text":           {"ship"},
		"created_after":  {"2024-01-01"},
		"created_before": {"2024-02-01T10:00:00Z"},
	}
	f, err := todoFilterFromQuery(q)
	require.NoError(t, err)

	assert.Equal(t, int64(3), f.ProjectID)
	assert.Equal(t, int64(4), f.UserID)
	assert.Equal(t, "ship", f.Text)
	require.NotNil(t, f.CreatedAfter)
	assert.True(t, f.CreatedAfter.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, f.CreatedBefore)
	assert.True(t, f.CreatedBefore.Equal(time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)))

	for _, bad := range []url.Values{
		{"project": {"x"}},
		{"user": {"-1"}},
		{"created_after": {"yesterday"}},
	} {
		_, err := todoFilterFromQuery(bad)
		assert.ErrorIs(t, err, domain.ErrValidation, bad.Encode())
	}
}

func TestUserFilterFromQuery(t *testing.T) {
	t.Parallel()

	f, err := userFilterFromQuery(url.Values{"login": {"adm"}, "is_superuser": {"true"}})
	require.NoError(t, err)
	require.NotNil(t, f.Login)
	assert.Equal(t, "adm", *f.Login)
	require.NotNil(t, f.IsSuperuser)
	assert.True(t, *f.IsSuperuser)

	f, err = userFilterFromQuery(url.Values{})
	require.NoError(t, err)
	assert.Nil(t, f.IsSuperuser)
	assert.Nil(t, f.Login)

	f, err = userFilterFromQuery(url.Values{"login": {""}})
	require.NoError(t, err)
	require.NotNil(t, f.Login, "an empty login is still a login search")
	assert.Empty(t, *f.Login)
}

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{auth.ErrExpiredToken, http.StatusUnauthorized},
		{fmt.Errorf("wrapped: %w", store.ErrProjectNotFound), http.StatusNotFound},
		{store.ErrUsernameExists, http.StatusConflict},
		{errMalformedBody, http.StatusBadRequest},
		{domain.ErrNoWriteRepresentation, http.StatusMethodNotAllowed},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err), tc.err.Error())
	}
}

func TestGetSafeErrorMessage_HidesInternals(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("query failed: postgres://app:secret@db/todo: %w", errors.New("boom"))
	msg := GetSafeErrorMessage(err)
	assert.Equal(t, "An unexpected error occurred.", msg)
	assert.NotContains(t, msg, "secret")
}

func TestSerializerSelection(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Read, capabilityFor(http.MethodGet))
	assert.Equal(t, Write, capabilityFor(http.MethodPatch))
	assert.Equal(t, Write, capabilityFor(http.MethodPost))

	u := &domain.User{ID: 1, Username: "a", Lifecycle: domain.Active}
	assert.IsType(t, UserReadResponse{}, userSerializer(Read)(u))
	assert.IsType(t, UserWriteResponse{}, userSerializer(Write)(u))

	_, err := groupSerializer(Write)
	assert.ErrorIs(t, err, domain.ErrNoWriteRepresentation)
}
