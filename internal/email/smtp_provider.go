package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"guzo_backend/internal/config"
)

// SMTPProvider реализует Provider поверх gomail.
type SMTPProvider struct {
	dialer    *gomail.Dialer
	from      string
	fromName  string
	verifyURL string
	templates *TemplateManager
}

// NewSMTPProvider создает SMTP провайдер из конфига приложения.
func NewSMTPProvider(cfg *config.Config) *SMTPProvider {
	return &SMTPProvider{
		dialer: gomail.NewDialer(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUsername,
			cfg.Email.SMTPPassword,
		),
		from:      cfg.Email.FromEmail,
		fromName:  cfg.Email.FromName,
		verifyURL: fmt.Sprintf("http://%s:%d/api/v1/auth/verify-email", cfg.Server.Host, cfg.Server.Port),
		templates: NewTemplateManager(),
	}
}

// Send отправляет email сообщение
func (p *SMTPProvider) Send(email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	m := gomail.NewMessage()

	from := email.From
	if from == "" {
		from = p.from
	}
	m.SetAddressHeader("From", from, p.fromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	if email.HTMLBody != "" {
		m.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			m.AddAlternative("text/plain", email.Body)
		}
	} else {
		m.SetBody("text/plain", email.Body)
	}

	return p.dialer.DialAndSend(m)
}

// SendTemplate отправляет email используя шаблон
func (p *SMTPProvider) SendTemplate(to []string, subject, templateName string, data TemplateData) error {
	htmlBody, err := p.templates.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	return p.Send(&Email{
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
	})
}

// SendVerification отправляет письмо для верификации email
func (p *SMTPProvider) SendVerification(email, token string) error {
	data := TemplateData{
		"ActionURL":  fmt.Sprintf("%s?token=%s", p.verifyURL, token),
		"ActionText": "Confirm email",
	}

	return p.SendTemplate([]string{email}, "Confirm your email", "verification", data)
}

// SendBookingStatus уведомляет туриста о смене статуса бронирования
func (p *SMTPProvider) SendBookingStatus(email, offeringTitle, status, note string) error {
	data := TemplateData{
		"OfferingTitle": offeringTitle,
		"Status":        status,
		"Note":          note,
	}

	return p.SendTemplate([]string{email}, "Booking update", "booking_status", data)
}

// Close закрывает соединение с провайдером.
// gomail открывает соединение на каждую отправку, закрывать нечего.
func (p *SMTPProvider) Close() error {
	return nil
}
