package authbackend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *IdentityToolkit {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(context.Background(), "test-key", "", option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestSignUpThenSignInSameUID(t *testing.T) {
	accounts := map[string]string{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		email, _ := body["email"].(string)
		password, _ := body["password"].(string)

		switch {
		case strings.HasSuffix(r.URL.Path, "/signupNewUser"):
			accounts[email] = password
			writeJSON(w, http.StatusOK, map[string]string{"localId": "uid-" + email, "email": email, "idToken": "tok"})
		case strings.HasSuffix(r.URL.Path, "/verifyPassword"):
			if accounts[email] != password {
				writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": map[string]interface{}{"code": 400, "message": "INVALID_PASSWORD"}})
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"localId": "uid-" + email, "email": email, "idToken": "tok"})
		default:
			http.NotFound(w, r)
		}
	})

	ctx := context.Background()
	created, err := c.SignUp(ctx, "ada@example.com", "longenough", "Ada L")
	require.NoError(t, err)
	assert.True(t, created.IsNewUser)

	signedIn, err := c.SignIn(ctx, "ada@example.com", "longenough")
	require.NoError(t, err)
	assert.Equal(t, created.UID, signedIn.UID)

	_, err = c.SignIn(ctx, "ada@example.com", "wrong")
	var authErr *Error
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "INVALID_PASSWORD", authErr.Message)
}

func TestSendPasswordResetSurfacesBackendMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": map[string]interface{}{"code": 400, "message": "EMAIL_NOT_FOUND"}})
	})

	err := c.SendPasswordReset(context.Background(), "ghost@example.com")
	require.Error(t, err)
	assert.Equal(t, "EMAIL_NOT_FOUND", err.Error())
}

func TestSignInWithIdP(t *testing.T) {
	var postBody string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		postBody, _ = body["postBody"].(string)
		writeJSON(w, http.StatusOK, map[string]interface{}{"localId": "uid-1", "email": "a@example.com", "firstName": "Ada", "isNewUser": true})
	})

	id, err := c.SignInWithIdP(context.Background(), ProviderGoogle, "google-token")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", id.UID)
	assert.Equal(t, "Ada", id.FirstName)
	assert.True(t, id.IsNewUser)
	assert.Contains(t, postBody, "providerId=google.com")

	_, err = c.SignInWithIdP(context.Background(), "facebook.com", "x")
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}
