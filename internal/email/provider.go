package email

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Send отправляет простое email сообщение
	Send(email *Email) error

	// SendTemplate отправляет email по шаблону
	SendTemplate(to []string, subject, templateName string, data TemplateData) error

	// Validate проверяет конфигурацию провайдера
	Validate() error
}

// TemplateRenderer определяет интерфейс для рендеринга шаблонов
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
}

// NoopProvider - почта не настроена, письма никуда не уходят
type NoopProvider struct{}

func (NoopProvider) Send(*Email) error { return nil }
func (NoopProvider) SendTemplate([]string, string, string, TemplateData) error {
	return nil
}
func (NoopProvider) Validate() error { return nil }
