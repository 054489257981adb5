package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coaching-backend/internal/db"
	"coaching-backend/internal/models"
)

func newAuthFixture() (AuthService, *fakeAuthBackend, db.UserRepository) {
	repo := db.NewUserRepository(db.NewMemoryStore())
	backend := newFakeAuthBackend()
	return NewAuthService(backend, NewUserService(repo), repo, nil, nil), backend, repo
}

func TestSignUpThenSignInSameUser(t *testing.T) {
	ctx := context.Background()
	svc, _, repo := newAuthFixture()

	pairs := []struct{ email, password string }{
		{"ada@example.com", "password1"},
		{"grace@example.org", "12345678"},
		{"x@y.io", "a long passphrase"},
	}
	for _, p := range pairs {
		id, user, err := svc.SignUp(ctx, models.SignUpRequest{
			FirstName: "First", LastName: "Last",
			Email: p.email, Password: p.password, ConfirmPassword: p.password,
		})
		require.NoError(t, err, p.email)
		assert.Equal(t, "First", user.FirstName)

		id2, user2, err := svc.SignIn(ctx, models.SignInRequest{Email: p.email, Password: p.password})
		require.NoError(t, err, p.email)
		assert.Equal(t, id.UID, id2.UID)
		assert.Equal(t, user.ID, user2.ID)
		assert.Equal(t, "Last", user2.LastName)

		stored, err := repo.GetByID(ctx, id.UID)
		require.NoError(t, err)
		assert.Equal(t, models.UserTypeDefault, stored.Type)
		assert.Empty(t, stored.Subscription)
	}
}

func TestSignUpValidationMessages(t *testing.T) {
	svc, _, _ := newAuthFixture()

	tests := []struct {
		name string
		req  models.SignUpRequest
		want map[string]string
	}{
		{
			name: "empty form",
			req:  models.SignUpRequest{},
			want: map[string]string{
				"firstName": "First name is required",
				"lastName":  "Last name is required",
				"email":     "Email is required",
				"password":  "Password is required",
			},
		},
		{
			name: "bad email short password mismatch",
			req:  models.SignUpRequest{FirstName: "A", LastName: "B", Email: "nope", Password: "short", ConfirmPassword: "other"},
			want: map[string]string{
				"email":           "Please enter a valid email",
				"password":        "Password must be at least 8 characters",
				"confirmPassword": "Passwords do not match",
			},
		},
		{
			name: "blank names",
			req:  models.SignUpRequest{FirstName: "  ", LastName: " ", Email: "a@b.co", Password: "password1", ConfirmPassword: "password1"},
			want: map[string]string{
				"firstName": "First name is required",
				"lastName":  "Last name is required",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.SignUp(context.Background(), tt.req)
			require.ErrorIs(t, err, ErrValidation)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.want, verr.Fields)
		})
	}
}

func TestSignInSurfacesBackendMessage(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuthFixture()
	_, _, err := svc.SignUp(ctx, models.SignUpRequest{FirstName: "A", LastName: "B", Email: "a@b.co", Password: "password1", ConfirmPassword: "password1"})
	require.NoError(t, err)

	_, _, err = svc.SignIn(ctx, models.SignInRequest{Email: "a@b.co", Password: "wrong-pass"})
	require.Error(t, err)
	assert.Equal(t, "INVALID_PASSWORD", err.Error())
}

func TestSignInWithOAuthCreatesRecord(t *testing.T) {
	ctx := context.Background()
	svc, backend, repo := newAuthFixture()
	backend.SignInWithIdPFunc = func(_ context.Context, provider, idToken string) (*models.Identity, error) {
		assert.Equal(t, "google.com", provider)
		return &models.Identity{UID: "g-1", Email: "g@example.com", DisplayName: "Grace Hopper", PhotoURL: "https://p/x.png"}, nil
	}

	_, user, err := svc.SignInWithOAuth(ctx, models.OAuthRequest{Provider: "google.com", IDToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, "Grace", user.FirstName)

	stored, err := repo.GetByID(ctx, "g-1")
	require.NoError(t, err)
	assert.Equal(t, "Hopper", stored.LastName)
	assert.Equal(t, "https://p/x.png", stored.ProfilePicURL)
}

func TestResetPassword(t *testing.T) {
	svc, backend, _ := newAuthFixture()
	backend.SendPasswordResetFunc = func(_ context.Context, email string) error {
		return errors.New("EMAIL_NOT_FOUND")
	}

	err := svc.ResetPassword(context.Background(), "nobody@example.com")
	require.Error(t, err)
	assert.Equal(t, "EMAIL_NOT_FOUND", err.Error())

	err = svc.ResetPassword(context.Background(), " ")
	assert.ErrorIs(t, err, ErrValidation)

	unconfigured := NewAuthService(nil, nil, nil, nil, nil)
	assert.ErrorIs(t, unconfigured.ResetPassword(context.Background(), "a@b.co"), ErrAuthUnavailable)
}

func TestGetOrCreate(t *testing.T) {
	ctx := context.Background()
	repo := db.NewUserRepository(db.NewMemoryStore())
	svc := NewUserService(repo)

	user, created, err := svc.GetOrCreate(ctx, models.Identity{UID: "u1", Email: "u1@example.com"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.NewDefaultUser("u1", "u1@example.com"), user)

	require.NoError(t, repo.Merge(ctx, "u1", map[string]interface{}{"firstName": "Zed"}))
	user, created, err = svc.GetOrCreate(ctx, models.Identity{UID: "u1", Email: "changed@example.com"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Zed", user.FirstName)
	assert.Equal(t, "u1@example.com", user.Email, "existing record is returned as-is")

	_, err = svc.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
