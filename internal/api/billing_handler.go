package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"coaching-backend/internal/core"
	"coaching-backend/internal/middleware"
	"coaching-backend/internal/models"
)

// maxWebhookBytes bounds the Stripe webhook body.
const maxWebhookBytes = 65536

// BillingHandler handles plan selection, checkout and processor webhooks.
type BillingHandler struct {
	billingService core.BillingService
	logger         *zap.Logger
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(bs core.BillingService, logger *zap.Logger) *BillingHandler {
	return &BillingHandler{billingService: bs, logger: logger}
}

// mapBillingErrorToStatus maps errors from core.BillingService to HTTP status codes and ErrorResponse.
func (h *BillingHandler) mapBillingErrorToStatus(c *gin.Context, err error) {
	var statusCode int
	var errResponse ErrorResponse

	switch {
	case errors.Is(err, core.ErrPlanNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: "Plan or Price not found", Details: err.Error()}
	case errors.Is(err, core.ErrNoSubscription):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: "No subscription found"}
	case errors.Is(err, core.ErrEmailRequired):
		statusCode = http.StatusBadRequest
		errResponse = ErrorResponse{Error: "An email address is required for checkout"}
	case errors.Is(err, core.ErrPaymentsDisabled):
		statusCode = http.StatusServiceUnavailable
		errResponse = ErrorResponse{Error: "Payments are not available"}
	case errors.Is(err, core.ErrPaymentProvider):
		// The processor's message is shown to the user verbatim.
		statusCode = http.StatusBadGateway
		errResponse = ErrorResponse{Error: "Payment provider error", Details: err.Error()}
		h.logger.Warn("Payment provider error", zap.Error(err))
	case errors.Is(err, core.ErrWebhookSignature):
		statusCode = http.StatusBadRequest
		errResponse = ErrorResponse{Error: "Webhook signature verification failed"}
	case errors.Is(err, core.ErrWebhookProcessing):
		statusCode = http.StatusBadRequest
		errResponse = ErrorResponse{Error: "Webhook processing error", Details: err.Error()}
	default:
		h.logger.Error("Internal Server Error in BillingHandler", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errResponse = ErrorResponse{Error: "An unexpected internal server error occurred."}
	}
	c.JSON(statusCode, errResponse)
}

// ListPlans handles GET /billing/plans.
func (h *BillingHandler) ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"plans": h.billingService.Plans()})
}

// SelectPlan handles POST /billing/plan.
func (h *BillingHandler) SelectPlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.SelectPlanRequest
	if !BindJSON(c, &req) {
		return
	}
	sel, err := h.billingService.SelectPlan(c.Request.Context(), userID, req.PlanID)
	if err != nil {
		h.mapBillingErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, sel)
}

// GetSubscription handles GET /billing/subscription. It returns the caller's
// subscription as last reported by the payment processor.
func (h *BillingHandler) GetSubscription(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sub, err := h.billingService.GetSubscription(c.Request.Context(), userID)
	if err != nil {
		h.mapBillingErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// CreateSubscription handles POST /billing/subscriptions and returns the
// client secret for the hosted payment sheet.
func (h *BillingHandler) CreateSubscription(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.CreateSubscriptionRequest
	if !BindJSON(c, &req) {
		return
	}
	if req.PlanID == "" && req.PriceID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "planId or priceId is required"})
		return
	}

	secret, err := h.billingService.CreateSubscription(c.Request.Context(), userID, c.GetString(middleware.ContextUserEmail), req)
	if err != nil {
		h.mapBillingErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, CreateSubscriptionResponse{ClientSecret: secret})
}

// CheckoutResult handles POST /billing/checkout-result. The payment sheet
// outcome is routed to main tabs on success or back to payment with the
// processor's message.
func (h *BillingHandler) CheckoutResult(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	var req models.CheckoutResult
	if !BindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.billingService.RouteCheckoutResult(req))
}

// HandleStripeWebhook handles POST /billing/webhooks/stripe.
// This endpoint is public; Stripe authenticates it with the Stripe-Signature header.
func (h *BillingHandler) HandleStripeWebhook(c *gin.Context) {
	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing Stripe-Signature header"})
		return
	}

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBytes))
	if err != nil {
		h.logger.Error("Stripe Webhook: error reading request body", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to read webhook payload", Details: err.Error()})
		return
	}

	if err := h.billingService.HandleStripeWebhook(c.Request.Context(), signature, payload); err != nil {
		h.mapBillingErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Webhook received successfully"})
}
