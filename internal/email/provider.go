package email

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Send отправляет простое email сообщение
	Send(email *Email) error

	// SendTemplate отправляет email по шаблону
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error

	// SendVerification отправляет email верификации
	SendVerification(email string, token string) error

	// SendBookingStatus уведомляет туриста о смене статуса бронирования
	SendBookingStatus(email, offeringTitle, status, note string) error

	// Close закрывает соединение с провайдером
	Close() error
}

// Email представляет структуру email сообщения
type Email struct {
	From     string
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData представляет данные для шаблонов писем
type TemplateData map[string]interface{}
