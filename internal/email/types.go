package email

// Email представляет структуру email сообщения
type Email struct {
	From     string
	To       []string
	ReplyTo  string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData представляет данные для шаблонов писем
type TemplateData map[string]interface{}
