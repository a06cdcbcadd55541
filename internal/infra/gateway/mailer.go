package gateway

import (
	"context"
	"fmt"
	"html"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends transactional mail through SendGrid.
type Mailer struct {
	client *sendgrid.Client
	from   *mail.Email
}

func NewMailer(apiKey, fromAddress, fromName string) *Mailer {
	return &Mailer{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(fromName, fromAddress),
	}
}

func (m *Mailer) SendDiscoveryLink(ctx context.Context, to, name, link string) error {
	ctx, span := tracer.Start(ctx, "Mail.Gateway.SendDiscoveryLink")
	defer span.End()

	message := mail.NewV3Mail()
	message.SetFrom(m.from)
	message.Subject = "Let's get started: a few quick questions"

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail(name, to))
	message.AddPersonalizations(p)

	plain := fmt.Sprintf("Hi %s,\n\nBefore our first meeting we'd love to learn a little about your business. "+
		"It takes about five minutes:\n\n%s\n\nThanks!", name, link)
	body := fmt.Sprintf("<p>Hi %s,</p><p>Before our first meeting we'd love to learn a little about your business. "+
		"It takes about five minutes:</p><p><a href=\"%s\">Start the discovery chat</a></p><p>Thanks!</p>",
		html.EscapeString(name), html.EscapeString(link))
	message.AddContent(mail.NewContent("text/plain", plain), mail.NewContent("text/html", body))

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if resp.StatusCode >= 300 {
		err := fmt.Errorf("sendgrid returned %d: %s", resp.StatusCode, resp.Body)
		span.RecordError(err)
		return err
	}
	return nil
}
