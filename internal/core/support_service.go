package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"

	"coaching-backend/internal/mailer"
	"coaching-backend/internal/models"
)

var (
	ErrEmptySupportMessage = errors.New("support message cannot be empty")
	ErrSupportUnavailable  = errors.New("support email is not configured")
)

// SupportResult mirrors the success flag returned to the help screen.
type SupportResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SupportDelivery turns a SupportMessage into an email to the support inbox.
// It is used inline by the API and by the queue worker.
type SupportDelivery struct {
	mailer mailer.Mailer
	to     string
	from   string
}

// NewSupportDelivery creates a delivery sending to the inbox address to.
func NewSupportDelivery(m mailer.Mailer, to, from string) *SupportDelivery {
	return &SupportDelivery{mailer: m, to: to, from: from}
}

// Deliver sends msg. The reply-to header is set to the member's address.
func (d *SupportDelivery) Deliver(ctx context.Context, msg models.SupportMessage) error {
	subject := msg.Subject
	if subject == "" {
		subject = "Support request"
	}
	if msg.Category != "" {
		subject = fmt.Sprintf("[%s] %s", msg.Category, subject)
	}

	var b strings.Builder
	b.WriteString("<html><body>")
	fmt.Fprintf(&b, "<p><strong>From:</strong> %s (%s)</p>", html.EscapeString(msg.Email), html.EscapeString(msg.UserID))
	if msg.Category != "" {
		fmt.Fprintf(&b, "<p><strong>Category:</strong> %s</p>", html.EscapeString(msg.Category))
	}
	fmt.Fprintf(&b, "<p>%s</p>", strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>"))
	b.WriteString("</body></html>")

	return d.mailer.Send(ctx, mailer.Message{
		To:      d.to,
		From:    d.from,
		Subject: subject,
		Body:    b.String(),
		ReplyTo: msg.Email,
	})
}

// HandleQueued decodes a queued SupportMessage and delivers it.
func (d *SupportDelivery) HandleQueued(ctx context.Context, body []byte) error {
	var msg models.SupportMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("decode support message: %w", err)
	}
	return d.Deliver(ctx, msg)
}

type supportService struct {
	publisher Publisher
	queue     string
	delivery  *SupportDelivery
	logger    *zap.Logger
}

// NewSupportService creates a SupportService. When publisher is set messages
// are queued on queue; otherwise they are delivered inline. Either may be nil
// but not both.
func NewSupportService(publisher Publisher, queue string, delivery *SupportDelivery, logger *zap.Logger) SupportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &supportService{publisher: publisher, queue: queue, delivery: delivery, logger: logger}
}

func (s *supportService) SendSupportMessage(ctx context.Context, userID, email string, req models.SupportRequest) (*SupportResult, error) {
	text := strings.TrimSpace(req.Message)
	if text == "" {
		return nil, ErrEmptySupportMessage
	}
	msg := models.SupportMessage{
		UserID:   userID,
		Email:    email,
		Category: req.Category,
		Subject:  strings.TrimSpace(req.Subject),
		Message:  text,
	}

	switch {
	case s.publisher != nil:
		body, err := json.Marshal(msg)
		if err != nil {
			return nil, fmt.Errorf("encode support message: %w", err)
		}
		if err := s.publisher.Publish(ctx, s.queue, body); err != nil {
			return nil, fmt.Errorf("failed to queue support message: %w", err)
		}
		s.logger.Info("Support message queued", zap.String("userID", userID), zap.String("queue", s.queue))
	case s.delivery != nil:
		if err := s.delivery.Deliver(ctx, msg); err != nil {
			return nil, fmt.Errorf("failed to send support message: %w", err)
		}
		s.logger.Info("Support message sent", zap.String("userID", userID))
	default:
		return nil, ErrSupportUnavailable
	}

	return &SupportResult{Success: true, Message: "Your message has been sent. We'll get back to you soon."}, nil
}
