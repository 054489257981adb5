package mailer

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTPMailerRequiresCredentials(t *testing.T) {
	_, err := NewSMTPMailer(Config{Host: "smtp.example.com", Port: "25"})
	assert.Error(t, err)
}

func TestSendBuildsMessage(t *testing.T) {
	m, err := NewSMTPMailer(Config{Host: "smtp.example.com", Port: "2525", User: "u", Pass: "p"})
	require.NoError(t, err)

	var gotAddr string
	var gotTo []string
	var gotBody string
	m.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotBody = addr, to, string(msg)
		return nil
	}

	err = m.Send(context.Background(), Message{
		To: "support@example.com", From: "noreply@example.com", ReplyTo: "user@example.com",
		Subject: "Billing", Body: "I was charged twice",
	})
	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com:2525", gotAddr)
	assert.Equal(t, []string{"support@example.com"}, gotTo)
	assert.Contains(t, gotBody, "Reply-To: user@example.com\r\n")
	assert.Contains(t, gotBody, "Content-Type: text/plain; charset=UTF-8\r\n")
	assert.Contains(t, gotBody, "\r\n\r\nI was charged twice\r\n")
}

func TestSendHTMLAndErrors(t *testing.T) {
	m, err := NewSMTPMailer(Config{Host: "h", Port: "1", User: "u", Pass: "p"})
	require.NoError(t, err)
	m.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("relay down") }

	err = m.Send(context.Background(), Message{To: "a@b.c", From: "d@e.f", Subject: "s", Body: "<p>x</p>"})
	assert.ErrorContains(t, err, "relay down")

	assert.Contains(t, string(buildMessage(Message{Body: "<p>x</p>"})), "text/html")

	err = m.Send(context.Background(), Message{From: "d@e.f", Subject: "s"})
	assert.ErrorContains(t, err, "recipient")
}
