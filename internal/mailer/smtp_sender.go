package mailer

import (
	"context"
	"fmt"
	"html"
	"strings"
	
	"github.com/jplus/jstore-api/internal/util"
	"github.com/wneessen/go-mail"
)

type Sender interface {
	SendOrderConfirmation(ctx context.Context, confirmation OrderConfirmation) error
}

type SMTPSender struct {
	client      *mail.Client
	senderName  string
	senderEmail string
	siteURL     string
}

func NewSMTPSender(config util.Config) (*SMTPSender, error) {
	client, err := mail.NewClient(config.SMTPHost,
		mail.WithPort(config.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
		mail.WithUsername(config.SMTPUsername),
		mail.WithPassword(config.SMTPPassword),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}
	
	return &SMTPSender{
		client:      client,
		senderName:  config.SenderName,
		senderEmail: config.SenderEmail,
		siteURL:     config.SiteURL,
	}, nil
}

func (sender *SMTPSender) SendOrderConfirmation(ctx context.Context, confirmation OrderConfirmation) error {
	msg := mail.NewMsg()
	
	if err := msg.FromFormat(sender.senderName, sender.senderEmail); err != nil {
		return fmt.Errorf("failed to set From address: %w", err)
	}
	
	if err := msg.To(confirmation.Email); err != nil {
		return fmt.Errorf("failed to set To address: %w", err)
	}
	
	msg.Subject(confirmationSubject(confirmation.OrderCode))
	
	body := RenderOrderConfirmation(confirmation, sender.siteURL)
	msg.SetBodyString(mail.TypeTextPlain, body)
	msg.AddAlternativeString(mail.TypeTextHTML, htmlBody(body))
	
	if err := sender.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	
	return nil
}

func htmlBody(text string) string {
	escaped := strings.ReplaceAll(html.EscapeString(text), "\n", "<br>")
	return `<pre style="font-family: Arial, sans-serif; line-height: 1.6;">` + escaped + `</pre>`
}
