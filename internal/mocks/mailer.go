package mocks

import (
	"context"
	"sync"
)

// SentMail is one message captured by MockMailer.
type SentMail struct {
	To      string
	Subject string
	Body    string
}

// MockMailer implements mailer.Mailer by recording messages.
type MockMailer struct {
	// SendFn allows test cases to mock the Send behavior
	SendFn func(ctx context.Context, to, subject, body string) error

	// Err is returned by Send when SendFn is nil
	Err error

	mu   sync.Mutex
	sent []SentMail
}

// Send implements the mailer.Mailer interface
func (m *MockMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.SendFn != nil {
		return m.SendFn(ctx, to, subject, body)
	}
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SentMail{To: to, Subject: subject, Body: body})
	return nil
}

// Sent returns the captured messages.
func (m *MockMailer) Sent() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentMail(nil), m.sent...)
}
