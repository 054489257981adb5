package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"coaching-backend/internal/db"
	"coaching-backend/internal/models"
	"coaching-backend/internal/payments"
)

var (
	ErrPlanNotFound      = errors.New("plan not found")
	ErrNoSubscription    = errors.New("no subscription")
	ErrEmailRequired     = errors.New("user must have an email address")
	ErrPaymentProvider   = errors.New("payment provider error")
	ErrPaymentsDisabled  = errors.New("payments are not configured")
	ErrWebhookSignature  = errors.New("invalid webhook signature")
	ErrWebhookProcessing = errors.New("failed to process webhook")
)

// Screens the client is routed to after plan selection or checkout.
const (
	NextRoutePayment    = "payment"
	NextRouteAssessment = "assessment"
)

// PlanSelection is returned after a plan is chosen during onboarding.
type PlanSelection struct {
	Plan      models.Plan `json:"plan"`
	NextRoute string      `json:"nextRoute"`
}

// CheckoutRoute tells the client where to go after the payment sheet closed.
// Message holds the processor-supplied error text, unchanged.
type CheckoutRoute struct {
	Succeeded bool   `json:"succeeded"`
	NextRoute string `json:"nextRoute"`
	Message   string `json:"message,omitempty"`
}

type billingService struct {
	plans     []models.Plan
	processor PaymentProcessor
	subRepo   db.SubscriptionRepository
	userRepo  db.UserRepository
	now       Clock
	logger    *zap.Logger
}

// NewBillingService creates a BillingService. processor may be nil, in
// which case checkout and webhooks fail with ErrPaymentsDisabled.
func NewBillingService(plans []models.Plan, processor PaymentProcessor, subRepo db.SubscriptionRepository, userRepo db.UserRepository, now Clock, logger *zap.Logger) BillingService {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &billingService{
		plans:     plans,
		processor: processor,
		subRepo:   subRepo,
		userRepo:  userRepo,
		now:       now,
		logger:    logger,
	}
}

func (s *billingService) Plans() []models.Plan {
	out := make([]models.Plan, len(s.plans))
	copy(out, s.plans)
	return out
}

func (s *billingService) plan(id models.PlanID) (models.Plan, bool) {
	for _, p := range s.plans {
		if p.ID == id {
			return p, true
		}
	}
	return models.Plan{}, false
}

func (s *billingService) planForPrice(priceID string) (models.Plan, bool) {
	for _, p := range s.plans {
		if p.PriceID != "" && p.PriceID == priceID {
			return p, true
		}
	}
	return models.Plan{}, false
}

// SelectPlan stores the chosen tier on the user record. Paid plans continue
// to the payment screen, the rest to the assessment.
func (s *billingService) SelectPlan(ctx context.Context, userID string, planID models.PlanID) (*PlanSelection, error) {
	p, ok := s.plan(planID)
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrPlanNotFound, planID)
	}
	fields := map[string]interface{}{
		"subscription": string(p.ID),
		"updatedAt":    s.now().UTC(),
	}
	if err := s.userRepo.Merge(ctx, userID, fields); err != nil {
		return nil, fmt.Errorf("failed to store plan for user '%s': %w", userID, err)
	}

	next := NextRouteAssessment
	if p.RequiresPayment() {
		next = NextRoutePayment
	}
	return &PlanSelection{Plan: p, NextRoute: next}, nil
}

// GetSubscription returns the stored processor state for userID.
func (s *billingService) GetSubscription(ctx context.Context, userID string) (*models.Subscription, error) {
	sub, err := s.subRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: user '%s'", ErrNoSubscription, userID)
		}
		return nil, fmt.Errorf("failed to load subscription for user '%s': %w", userID, err)
	}
	return sub, nil
}

// CreateSubscription opens an incomplete subscription for the plan (or raw
// price) and returns the payment intent client secret.
func (s *billingService) CreateSubscription(ctx context.Context, userID, email string, req models.CreateSubscriptionRequest) (string, error) {
	if s.processor == nil {
		return "", ErrPaymentsDisabled
	}

	priceID := req.PriceID
	planID := req.PlanID
	if planID != "" {
		p, ok := s.plan(planID)
		if !ok || !p.RequiresPayment() {
			return "", fmt.Errorf("%w: '%s'", ErrPlanNotFound, planID)
		}
		priceID = p.PriceID
	} else if p, ok := s.planForPrice(priceID); ok {
		planID = p.ID
	}
	if priceID == "" {
		return "", fmt.Errorf("%w: a plan or price is required", ErrPlanNotFound)
	}

	if email == "" {
		if user, err := s.userRepo.GetByID(ctx, userID); err == nil {
			email = user.Email
		}
	}
	if email == "" {
		return "", ErrEmailRequired
	}

	customerID, err := s.processor.FindOrCreateCustomer(ctx, email, userID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}
	res, err := s.processor.CreateSubscription(ctx, customerID, priceID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}

	now := s.now().UTC()
	sub := &models.Subscription{
		UserID:               userID,
		StripeCustomerID:     customerID,
		StripeSubscriptionID: res.ID,
		Status:               res.Status,
		PriceID:              priceID,
		PlanID:               string(planID),
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.subRepo.Save(ctx, sub); err != nil {
		return "", fmt.Errorf("failed to store subscription for user '%s': %w", userID, err)
	}
	s.logger.Info("Subscription created",
		zap.String("userID", userID),
		zap.String("subscriptionID", res.ID),
		zap.String("status", res.Status),
	)
	return res.ClientSecret, nil
}

// RouteCheckoutResult maps the payment sheet outcome to the next screen.
// Failures keep the user on the payment screen with the processor message.
func (s *billingService) RouteCheckoutResult(result models.CheckoutResult) CheckoutRoute {
	if result.Succeeded {
		return CheckoutRoute{Succeeded: true, NextRoute: NextRouteMainTabs}
	}
	msg := result.ErrorMessage
	if msg == "" {
		msg = result.ErrorCode
	}
	return CheckoutRoute{Succeeded: false, NextRoute: NextRoutePayment, Message: msg}
}

// HandleStripeWebhook verifies the event and mirrors the subscription status
// into subscriptions/{uid}. An active subscription sets the user's tier to
// the stored plan; a deleted one drops it back to free.
func (s *billingService) HandleStripeWebhook(ctx context.Context, signature string, payload []byte) error {
	if s.processor == nil {
		return ErrPaymentsDisabled
	}
	event, err := s.processor.ParseWebhook(payload, signature)
	if err != nil {
		if errors.Is(err, payments.ErrSignature) {
			return fmt.Errorf("%w: %v", ErrWebhookSignature, err)
		}
		return fmt.Errorf("%w: %v", ErrWebhookProcessing, err)
	}

	switch event.Type {
	case payments.EventInvoicePaymentSucceeded, payments.EventInvoicePaymentFailed,
		payments.EventSubscriptionUpdated, payments.EventSubscriptionDeleted:
	default:
		s.logger.Debug("Ignoring Stripe event", zap.String("type", event.Type), zap.String("eventID", event.ID))
		return nil
	}
	if event.SubscriptionID == "" {
		return nil
	}

	sub, err := s.subRepo.FindByStripeSubscriptionID(ctx, event.SubscriptionID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			s.logger.Warn("Stripe event for unknown subscription",
				zap.String("type", event.Type),
				zap.String("subscriptionID", event.SubscriptionID),
			)
			return nil
		}
		return fmt.Errorf("%w: %v", ErrWebhookProcessing, err)
	}

	status := event.Status
	if event.Type == payments.EventSubscriptionDeleted {
		status = "canceled"
	}
	sub.Status = status
	sub.UpdatedAt = s.now().UTC()
	if event.PriceID != "" {
		sub.PriceID = event.PriceID
		if p, ok := s.planForPrice(event.PriceID); ok {
			sub.PlanID = string(p.ID)
		}
	}
	sub.CreatedAt = time.Time{} // merge keeps the stored value
	if err := s.subRepo.Save(ctx, sub); err != nil {
		return fmt.Errorf("%w: %v", ErrWebhookProcessing, err)
	}

	var tier string
	switch {
	case event.Type == payments.EventSubscriptionDeleted:
		tier = string(models.PlanFree)
	case status == "active" && sub.PlanID != "":
		tier = sub.PlanID
	default:
		return nil
	}
	if err := s.userRepo.Merge(ctx, sub.UserID, map[string]interface{}{
		"subscription": tier,
		"updatedAt":    s.now().UTC(),
	}); err != nil {
		return fmt.Errorf("%w: %v", ErrWebhookProcessing, err)
	}
	s.logger.Info("Subscription status updated",
		zap.String("userID", sub.UserID),
		zap.String("status", status),
		zap.String("tier", tier),
	)
	return nil
}
