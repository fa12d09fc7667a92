package mailingservices

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/lqitha/lqitha-backend/config"
)

// Mailgun sends transactional mail through the Mailgun API.
type Mailgun struct {
	Client *mailgun.MailgunImpl
	From   string
}

// Init configures the client from the loaded config.
func (m *Mailgun) Init(conf *config.Config) {
	m.Client = mailgun.NewMailgun(conf.MgDomain, conf.MailgunApiKey)
	m.From = conf.MgEmailFrom
}

// SendWelcomeMessage mails the signup welcome note and returns the Mailgun
// message id.
func (m *Mailgun) SendWelcomeMessage(recipient, subject string) (string, error) {
	if m.Client == nil {
		return "", fmt.Errorf("mailgun client not initialized")
	}

	body := "Welcome to Lqitha! Post what you lost or found and help your neighbours reunite with their belongings."
	message := m.Client.NewMessage(m.From, subject, body, recipient)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, id, err := m.Client.Send(ctx, message)
	if err != nil {
		return "", fmt.Errorf("failed to send welcome message: %w", err)
	}
	return id, nil
}
