// Package authbackend performs email/password and OAuth sign-in through the
// Identity Toolkit REST API using the project's web API key.
package authbackend

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"coaching-backend/internal/models"
)

// Supported OAuth providers.
const (
	ProviderGoogle = "google.com"
	ProviderApple  = "apple.com"
)

// ErrUnsupportedProvider is returned for OAuth providers other than Google and Apple.
var ErrUnsupportedProvider = errors.New("unsupported identity provider")

// Error carries the backend's message verbatim, e.g. "EMAIL_EXISTS" or
// "INVALID_PASSWORD".
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string { return e.Message }

// IdentityToolkit is the auth backend client.
type IdentityToolkit struct {
	svc        *identitytoolkit.Service
	requestURI string
}

// New builds a client. Extra options are appended after the API key, which
// lets tests point the client at a local endpoint.
func New(ctx context.Context, apiKey, requestURI string, opts ...option.ClientOption) (*IdentityToolkit, error) {
	if apiKey == "" {
		return nil, errors.New("firebase web API key is required")
	}
	if requestURI == "" {
		requestURI = "http://localhost"
	}
	svc, err := identitytoolkit.NewService(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("identitytoolkit.NewService: %w", err)
	}
	return &IdentityToolkit{svc: svc, requestURI: requestURI}, nil
}

// SignIn verifies an email/password pair.
func (t *IdentityToolkit) SignIn(ctx context.Context, email, password string) (*models.Identity, error) {
	resp, err := t.svc.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return nil, wrap(err)
	}
	return &models.Identity{
		UID:          resp.LocalId,
		Email:        resp.Email,
		DisplayName:  resp.DisplayName,
		PhotoURL:     resp.PhotoUrl,
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
	}, nil
}

// SignUp creates an email/password account.
func (t *IdentityToolkit) SignUp(ctx context.Context, email, password, displayName string) (*models.Identity, error) {
	resp, err := t.svc.Relyingparty.SignupNewUser(&identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest{
		Email:       email,
		Password:    password,
		DisplayName: displayName,
	}).Context(ctx).Do()
	if err != nil {
		return nil, wrap(err)
	}
	return &models.Identity{
		UID:          resp.LocalId,
		Email:        resp.Email,
		DisplayName:  resp.DisplayName,
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
		IsNewUser:    true,
	}, nil
}

// SendPasswordReset asks the backend to email a password reset link.
func (t *IdentityToolkit) SendPasswordReset(ctx context.Context, email string) error {
	_, err := t.svc.Relyingparty.GetOobConfirmationCode(&identitytoolkit.Relyingparty{
		RequestType: "PASSWORD_RESET",
		Email:       email,
	}).Context(ctx).Do()
	if err != nil {
		return wrap(err)
	}
	return nil
}

// SignInWithIdP exchanges a Google or Apple ID token for a Firebase identity.
func (t *IdentityToolkit) SignInWithIdP(ctx context.Context, provider, idToken string) (*models.Identity, error) {
	if provider != ProviderGoogle && provider != ProviderApple {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, provider)
	}
	body := url.Values{}
	body.Set("id_token", idToken)
	body.Set("providerId", provider)

	resp, err := t.svc.Relyingparty.VerifyAssertion(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyAssertionRequest{
		PostBody:            body.Encode(),
		RequestUri:          t.requestURI,
		ReturnSecureToken:   true,
		ReturnIdpCredential: true,
	}).Context(ctx).Do()
	if err != nil {
		return nil, wrap(err)
	}
	if resp.ErrorMessage != "" {
		return nil, &Error{Message: resp.ErrorMessage}
	}
	return &models.Identity{
		UID:          resp.LocalId,
		Email:        resp.Email,
		DisplayName:  resp.DisplayName,
		PhotoURL:     resp.PhotoUrl,
		FirstName:    resp.FirstName,
		LastName:     resp.LastName,
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
		IsNewUser:    resp.IsNewUser,
	}, nil
}

func wrap(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		msg := gerr.Message
		if msg == "" {
			msg = gerr.Error()
		}
		return &Error{Code: gerr.Code, Message: msg}
	}
	return fmt.Errorf("auth backend: %w", err)
}
