// Package payments talks to Stripe. Card data never reaches this service:
// it only creates customers and incomplete subscriptions and hands the
// payment intent client secret back to the hosted payment sheet.
package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// Webhook event types handled by the service.
const (
	EventInvoicePaymentSucceeded = "invoice.payment_succeeded"
	EventInvoicePaymentFailed    = "invoice.payment_failed"
	EventSubscriptionUpdated     = "customer.subscription.updated"
	EventSubscriptionDeleted     = "customer.subscription.deleted"
)

// ErrSignature is returned when a webhook payload fails verification.
var ErrSignature = errors.New("invalid webhook signature")

// SubscriptionResult is what the client needs to finish payment.
type SubscriptionResult struct {
	ID           string
	Status       string
	ClientSecret string
}

// WebhookEvent is the subset of a Stripe event the service reacts to.
type WebhookEvent struct {
	ID             string
	Type           string
	SubscriptionID string
	CustomerID     string
	Status         string
	PriceID        string
}

// StripeProcessor implements subscription checkout against the Stripe API.
type StripeProcessor struct {
	sc            *client.API
	webhookSecret string
}

// NewStripeProcessor builds a processor using a per-instance API client.
func NewStripeProcessor(secretKey, webhookSecret string) (*StripeProcessor, error) {
	if secretKey == "" {
		return nil, errors.New("stripe secret key is required")
	}
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &StripeProcessor{sc: sc, webhookSecret: webhookSecret}, nil
}

// FindOrCreateCustomer returns the first customer with the given email, or
// creates one tagged with the Firebase UID.
func (p *StripeProcessor) FindOrCreateCustomer(ctx context.Context, email, userID string) (string, error) {
	listParams := &stripe.CustomerListParams{Email: stripe.String(email)}
	listParams.Limit = stripe.Int64(1)
	listParams.Context = ctx
	iter := p.sc.Customers.List(listParams)
	if iter.Next() {
		return iter.Customer().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", fmt.Errorf("list customers: %w", err)
	}

	params := &stripe.CustomerParams{Email: stripe.String(email)}
	params.Context = ctx
	params.AddMetadata("firebaseUID", userID)
	c, err := p.sc.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("create customer: %w", err)
	}
	return c.ID, nil
}

// CreateSubscription creates an incomplete subscription whose first invoice
// carries the payment intent used by the payment sheet.
func (p *StripeProcessor) CreateSubscription(ctx context.Context, customerID, priceID string) (*SubscriptionResult, error) {
	params := &stripe.SubscriptionParams{
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(priceID)},
		},
		PaymentBehavior: stripe.String("default_incomplete"),
		PaymentSettings: &stripe.SubscriptionPaymentSettingsParams{
			SaveDefaultPaymentMethod: stripe.String("on_subscription"),
		},
	}
	params.Context = ctx
	params.AddExpand("latest_invoice.payment_intent")

	sub, err := p.sc.Subscriptions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create subscription: %w", err)
	}

	res := &SubscriptionResult{ID: sub.ID, Status: string(sub.Status)}
	if sub.LatestInvoice != nil && sub.LatestInvoice.PaymentIntent != nil {
		res.ClientSecret = sub.LatestInvoice.PaymentIntent.ClientSecret
	}
	if res.ClientSecret == "" {
		return nil, fmt.Errorf("subscription %s has no payment intent client secret", sub.ID)
	}
	return res, nil
}

// ParseWebhook verifies the Stripe-Signature header and extracts the fields
// the service needs. Unknown event types are returned with only ID and Type set.
func (p *StripeProcessor) ParseWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	return parseWebhook(payload, signature, p.webhookSecret)
}

func parseWebhook(payload []byte, signature, secret string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignature, err)
	}

	out := &WebhookEvent{ID: event.ID, Type: string(event.Type)}
	switch out.Type {
	case EventSubscriptionUpdated, EventSubscriptionDeleted:
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("decode subscription event: %w", err)
		}
		out.SubscriptionID = sub.ID
		out.Status = string(sub.Status)
		if sub.Customer != nil {
			out.CustomerID = sub.Customer.ID
		}
		if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
			out.PriceID = sub.Items.Data[0].Price.ID
		}
	case EventInvoicePaymentSucceeded, EventInvoicePaymentFailed:
		var inv stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			return nil, fmt.Errorf("decode invoice event: %w", err)
		}
		if inv.Subscription != nil {
			out.SubscriptionID = inv.Subscription.ID
		}
		if inv.Customer != nil {
			out.CustomerID = inv.Customer.ID
		}
		if out.Type == EventInvoicePaymentSucceeded {
			out.Status = string(stripe.SubscriptionStatusActive)
		} else {
			out.Status = string(stripe.SubscriptionStatusPastDue)
		}
	}
	return out, nil
}
