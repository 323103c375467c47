package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	apperrors "storefront/internal/errors"
)

// Message is an outbound email.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Mailer sends email on behalf of the application.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer delivers mail through an SMTP relay.
type SMTPMailer struct {
	client *gomail.Client
}

// NewSMTPMailer builds an SMTP-backed mailer.
func NewSMTPMailer(host string, port int, username, password string) (*SMTPMailer, error) {
	opts := []gomail.Option{
		gomail.WithPort(port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(username),
			gomail.WithPassword(password),
		)
	}
	client, err := gomail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPMailer{client: client}, nil
}

// Send delivers msg, surfacing any transport failure as a delivery error.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	mail := gomail.NewMsg()
	if err := mail.From(msg.From); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrMailDelivery, err)
	}
	if err := mail.To(msg.To); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrMailDelivery, err)
	}
	mail.Subject(msg.Subject)
	mail.SetBodyString(gomail.TypeTextHTML, msg.HTML)

	if err := m.client.DialAndSendWithContext(ctx, mail); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrMailDelivery, err)
	}
	return nil
}
