package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coaching-backend/internal/db"
	"coaching-backend/internal/models"
	"coaching-backend/internal/payments"
)

var testPrices = map[models.PlanID]string{
	models.PlanPayPerService: "price_pps",
	models.PlanBasic:         "price_basic",
	models.PlanStandard:      "price_standard",
	models.PlanPremium:       "price_premium",
}

type billingFixture struct {
	svc      BillingService
	subs     db.SubscriptionRepository
	users    db.UserRepository
	proc     *fakeProcessor
	userID   string
	fixedNow time.Time
}

func newBillingFixture(t *testing.T) *billingFixture {
	t.Helper()
	store := db.NewMemoryStore()
	f := &billingFixture{
		subs:     db.NewSubscriptionRepository(store),
		users:    db.NewUserRepository(store),
		proc:     &fakeProcessor{},
		userID:   "u1",
		fixedNow: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, f.users.Create(context.Background(), models.NewDefaultUser(f.userID, "u1@example.com")))
	f.svc = NewBillingService(models.DefaultPlans(testPrices), f.proc, f.subs, f.users, fixedClock(f.fixedNow), nil)
	return f
}

func TestSelectPlan(t *testing.T) {
	ctx := context.Background()
	f := newBillingFixture(t)

	sel, err := f.svc.SelectPlan(ctx, f.userID, models.PlanPremium)
	require.NoError(t, err)
	assert.Equal(t, NextRoutePayment, sel.NextRoute)
	assert.Equal(t, "price_premium", sel.Plan.PriceID)

	u, err := f.users.GetByID(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, "premium", u.Subscription)

	sel, err = f.svc.SelectPlan(ctx, f.userID, models.PlanFree)
	require.NoError(t, err)
	assert.Equal(t, NextRouteAssessment, sel.NextRoute)

	_, err = f.svc.SelectPlan(ctx, f.userID, "gold")
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestCreateSubscription(t *testing.T) {
	ctx := context.Background()
	f := newBillingFixture(t)

	var gotEmail, gotPrice string
	f.proc.FindOrCreateCustomerFunc = func(_ context.Context, email, userID string) (string, error) {
		gotEmail = email
		return "cus_42", nil
	}
	f.proc.CreateSubscriptionFunc = func(_ context.Context, customerID, priceID string) (*payments.SubscriptionResult, error) {
		gotPrice = priceID
		assert.Equal(t, "cus_42", customerID)
		return &payments.SubscriptionResult{ID: "sub_42", Status: "incomplete", ClientSecret: "pi_42_secret"}, nil
	}

	_, err := f.svc.GetSubscription(ctx, f.userID)
	assert.ErrorIs(t, err, ErrNoSubscription)

	secret, err := f.svc.CreateSubscription(ctx, f.userID, "", models.CreateSubscriptionRequest{PlanID: models.PlanPremium})
	require.NoError(t, err)
	assert.Equal(t, "pi_42_secret", secret)
	assert.Equal(t, "u1@example.com", gotEmail, "falls back to the stored email")
	assert.Equal(t, "price_premium", gotPrice)

	sub, err := f.svc.GetSubscription(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, "cus_42", sub.StripeCustomerID)
	assert.Equal(t, "sub_42", sub.StripeSubscriptionID)
	assert.Equal(t, "incomplete", sub.Status)
	assert.Equal(t, "premium", sub.PlanID)
	assert.Equal(t, f.fixedNow, sub.CreatedAt)

	// a raw price id resolves back to its plan
	_, err = f.svc.CreateSubscription(ctx, f.userID, "x@example.com", models.CreateSubscriptionRequest{PriceID: "price_basic"})
	require.NoError(t, err)
	sub, err = f.subs.GetByUserID(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, "basic", sub.PlanID)
}

func TestCreateSubscriptionErrors(t *testing.T) {
	ctx := context.Background()
	f := newBillingFixture(t)

	_, err := f.svc.CreateSubscription(ctx, f.userID, "", models.CreateSubscriptionRequest{PlanID: models.PlanFree})
	assert.ErrorIs(t, err, ErrPlanNotFound)

	_, err = f.svc.CreateSubscription(ctx, f.userID, "", models.CreateSubscriptionRequest{})
	assert.ErrorIs(t, err, ErrPlanNotFound)

	_, err = f.svc.CreateSubscription(ctx, "ghost", "", models.CreateSubscriptionRequest{PlanID: models.PlanBasic})
	assert.ErrorIs(t, err, ErrEmailRequired)

	f.proc.CreateSubscriptionFunc = func(context.Context, string, string) (*payments.SubscriptionResult, error) {
		return nil, errors.New("No such price: 'price_basic'")
	}
	_, err = f.svc.CreateSubscription(ctx, f.userID, "", models.CreateSubscriptionRequest{PlanID: models.PlanBasic})
	assert.ErrorIs(t, err, ErrPaymentProvider)
	assert.Contains(t, err.Error(), "No such price: 'price_basic'")

	disabled := NewBillingService(models.DefaultPlans(testPrices), nil, f.subs, f.users, nil, nil)
	_, err = disabled.CreateSubscription(ctx, f.userID, "", models.CreateSubscriptionRequest{PlanID: models.PlanBasic})
	assert.ErrorIs(t, err, ErrPaymentsDisabled)
}

func TestRouteCheckoutResult(t *testing.T) {
	f := newBillingFixture(t)

	route := f.svc.RouteCheckoutResult(models.CheckoutResult{PlanID: models.PlanPremium, Succeeded: true})
	assert.Equal(t, CheckoutRoute{Succeeded: true, NextRoute: NextRouteMainTabs}, route)

	route = f.svc.RouteCheckoutResult(models.CheckoutResult{PlanID: models.PlanPremium, ErrorCode: "card_declined"})
	assert.Equal(t, NextRoutePayment, route.NextRoute)
	assert.Equal(t, "card_declined", route.Message)

	route = f.svc.RouteCheckoutResult(models.CheckoutResult{ErrorCode: "card_declined", ErrorMessage: "Your card was declined."})
	assert.False(t, route.Succeeded)
	assert.Equal(t, "Your card was declined.", route.Message)
}

func TestHandleStripeWebhook(t *testing.T) {
	ctx := context.Background()
	f := newBillingFixture(t)
	require.NoError(t, f.subs.Save(ctx, &models.Subscription{
		UserID:               f.userID,
		StripeCustomerID:     "cus_1",
		StripeSubscriptionID: "sub_1",
		Status:               "incomplete",
		PriceID:              "price_premium",
		PlanID:               "premium",
		CreatedAt:            f.fixedNow.Add(-time.Hour),
		UpdatedAt:            f.fixedNow.Add(-time.Hour),
	}))

	next := &payments.WebhookEvent{Type: payments.EventInvoicePaymentSucceeded, SubscriptionID: "sub_1", Status: "active"}
	f.proc.ParseWebhookFunc = func(payload []byte, signature string) (*payments.WebhookEvent, error) {
		if signature != "good" {
			return nil, payments.ErrSignature
		}
		return next, nil
	}

	require.NoError(t, f.svc.HandleStripeWebhook(ctx, "good", []byte(`{}`)))
	sub, err := f.subs.GetByUserID(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, "active", sub.Status)
	assert.Equal(t, f.fixedNow.Add(-time.Hour), sub.CreatedAt)
	u, err := f.users.GetByID(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, "premium", u.Subscription)

	next = &payments.WebhookEvent{Type: payments.EventSubscriptionDeleted, SubscriptionID: "sub_1", Status: "canceled"}
	require.NoError(t, f.svc.HandleStripeWebhook(ctx, "good", []byte(`{}`)))
	u, err = f.users.GetByID(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, "free", u.Subscription)

	next = &payments.WebhookEvent{Type: payments.EventSubscriptionUpdated, SubscriptionID: "sub_unknown", Status: "active"}
	assert.NoError(t, f.svc.HandleStripeWebhook(ctx, "good", []byte(`{}`)))

	next = &payments.WebhookEvent{Type: "charge.refunded"}
	assert.NoError(t, f.svc.HandleStripeWebhook(ctx, "good", []byte(`{}`)))

	err = f.svc.HandleStripeWebhook(ctx, "forged", []byte(`{}`))
	assert.ErrorIs(t, err, ErrWebhookSignature)
}
