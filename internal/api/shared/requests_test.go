package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email" validate:"omitempty,email"`
	Repo     string `json:"repository" validate:"omitempty,url"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "valid", body: `{"username":"alice"}`},
		{name: "empty body", body: ``, wantErr: ErrEmptyBody},
		{name: "malformed", body: `{"username":`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/users/", strings.NewReader(tc.body))
			var dst sampleRequest
			err := DecodeJSON(req, &dst)
			switch {
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
			case tc.name == "malformed":
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, "alice", dst.Username)
			}
		})
	}
}

func TestValidateRequestFieldErrors(t *testing.T) {
	err := ValidateRequest(&sampleRequest{Email: "nope", Repo: "not a url"})
	require.Error(t, err)

	fields := FieldErrors(err)
	assert.Equal(t, "This field is required.", fields["username"])
	assert.Equal(t, "Enter a valid email address.", fields["email"])
	assert.Equal(t, "Enter a valid URL.", fields["repository"])

	assert.NoError(t, ValidateRequest(&sampleRequest{Username: "alice"}))
	assert.Nil(t, FieldErrors(assert.AnError))
}
