package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"coaching-backend/internal/db"
	"coaching-backend/internal/mailer"
	"coaching-backend/internal/models"
	"coaching-backend/internal/payments"
)

// fakeAuthBackend keeps accounts in memory, keyed by email.
type fakeAuthBackend struct {
	mu       sync.Mutex
	accounts map[string]fakeAccount
	next     int

	SendPasswordResetFunc func(ctx context.Context, email string) error
	SignInWithIdPFunc     func(ctx context.Context, provider, idToken string) (*models.Identity, error)
}

type fakeAccount struct {
	uid      string
	password string
	name     string
}

func newFakeAuthBackend() *fakeAuthBackend {
	return &fakeAuthBackend{accounts: map[string]fakeAccount{}}
}

func (f *fakeAuthBackend) SignUp(_ context.Context, email, password, displayName string) (*models.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := strings.ToLower(email)
	if _, ok := f.accounts[key]; ok {
		return nil, errors.New("EMAIL_EXISTS")
	}
	f.next++
	acc := fakeAccount{uid: fmt.Sprintf("uid-%d", f.next), password: password, name: displayName}
	f.accounts[key] = acc
	return &models.Identity{UID: acc.uid, Email: email, DisplayName: displayName, IsNewUser: true}, nil
}

func (f *fakeAuthBackend) SignIn(_ context.Context, email, password string) (*models.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.accounts[strings.ToLower(email)]
	if !ok {
		return nil, errors.New("EMAIL_NOT_FOUND")
	}
	if acc.password != password {
		return nil, errors.New("INVALID_PASSWORD")
	}
	return &models.Identity{UID: acc.uid, Email: email, DisplayName: acc.name}, nil
}

func (f *fakeAuthBackend) SendPasswordReset(ctx context.Context, email string) error {
	if f.SendPasswordResetFunc != nil {
		return f.SendPasswordResetFunc(ctx, email)
	}
	return nil
}

func (f *fakeAuthBackend) SignInWithIdP(ctx context.Context, provider, idToken string) (*models.Identity, error) {
	if f.SignInWithIdPFunc != nil {
		return f.SignInWithIdPFunc(ctx, provider, idToken)
	}
	return nil, errors.New("not implemented")
}

type fakeProcessor struct {
	FindOrCreateCustomerFunc func(ctx context.Context, email, userID string) (string, error)
	CreateSubscriptionFunc   func(ctx context.Context, customerID, priceID string) (*payments.SubscriptionResult, error)
	ParseWebhookFunc         func(payload []byte, signature string) (*payments.WebhookEvent, error)
}

func (f *fakeProcessor) FindOrCreateCustomer(ctx context.Context, email, userID string) (string, error) {
	if f.FindOrCreateCustomerFunc != nil {
		return f.FindOrCreateCustomerFunc(ctx, email, userID)
	}
	return "cus_123", nil
}

func (f *fakeProcessor) CreateSubscription(ctx context.Context, customerID, priceID string) (*payments.SubscriptionResult, error) {
	if f.CreateSubscriptionFunc != nil {
		return f.CreateSubscriptionFunc(ctx, customerID, priceID)
	}
	return &payments.SubscriptionResult{ID: "sub_123", Status: "incomplete", ClientSecret: "pi_secret_123"}, nil
}

func (f *fakeProcessor) ParseWebhook(payload []byte, signature string) (*payments.WebhookEvent, error) {
	if f.ParseWebhookFunc != nil {
		return f.ParseWebhookFunc(payload, signature)
	}
	return nil, errors.New("not implemented")
}

type fakePublisher struct {
	PublishFunc func(ctx context.Context, queueName string, body []byte) error
}

func (f *fakePublisher) Publish(ctx context.Context, queueName string, body []byte) error {
	return f.PublishFunc(ctx, queueName, body)
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

// failingTestimonialRepo returns err from every call.
type failingTestimonialRepo struct{ err error }

func (r failingTestimonialRepo) List(context.Context) ([]*models.Testimonial, error) {
	return nil, r.err
}

func (r failingTestimonialRepo) Create(context.Context, *models.Testimonial) (string, error) {
	return "", r.err
}

var _ db.TestimonialRepository = failingTestimonialRepo{}

// fakeUserRepo wraps a real repository and lets tests fail single calls.
type fakeUserRepo struct {
	db.UserRepository
	GetByIDFunc func(ctx context.Context, userID string) (*models.User, error)
	CreateFunc  func(ctx context.Context, user *models.User) error
}

func (f fakeUserRepo) GetByID(ctx context.Context, userID string) (*models.User, error) {
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, userID)
	}
	return f.UserRepository.GetByID(ctx, userID)
}

func (f fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, user)
	}
	return f.UserRepository.Create(ctx, user)
}
