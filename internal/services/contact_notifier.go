package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"irrigation_backend/internal/email"
	"irrigation_backend/internal/logger"
	"irrigation_backend/internal/models"
)

// ContactNotifier сообщает менеджеру о новой заявке. Вызов не блокирует запрос.
type ContactNotifier interface {
	NotifyContact(ctx context.Context, contact *models.ContactSubmission)
}

type NoopContactNotifier struct{}

func (NoopContactNotifier) NotifyContact(context.Context, *models.ContactSubmission) {}

// EmailContactNotifier отправляет письмо в фоне; повторных попыток нет
type EmailContactNotifier struct {
	provider email.Provider
	to       []string
	wg       sync.WaitGroup
}

func NewEmailContactNotifier(provider email.Provider, to ...string) *EmailContactNotifier {
	return &EmailContactNotifier{provider: provider, to: to}
}

func (n *EmailContactNotifier) NotifyContact(ctx context.Context, contact *models.ContactSubmission) {
	data := email.TemplateData{
		"ID":        contact.ID,
		"Name":      contact.Name,
		"Email":     contact.Email,
		"Subject":   contact.Subject,
		"Message":   contact.Message,
		"Company":   contact.Company,
		"Phone":     contact.Phone,
		"CreatedAt": contact.CreatedAt.Format(time.RFC1123),
	}
	subject := fmt.Sprintf("Новая заявка: %s", contact.Subject)
	log := logger.FromContext(ctx).With("contact_id", contact.ID)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.provider.SendTemplate(n.to, subject, email.TemplateContactSubmission, data); err != nil {
			log.Error("Failed to send contact notification", "error", err.Error())
			return
		}
		log.Info("Contact notification sent")
	}()
}

// Wait дожидается отправки всех писем (graceful shutdown, тесты)
func (n *EmailContactNotifier) Wait() {
	n.wg.Wait()
}
