package mailer

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/jugehoerig/vereinsapi/internal/models"
)

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	NotifyTo string
	// UnsubscribeURL is the page newsletter recipients are sent to; the
	// token is appended as query parameter.
	UnsubscribeURL string
}

// Enabled reports whether enough is configured to notify the board.
func (c Config) Enabled() bool {
	return c.Host != "" && c.NotifyTo != ""
}

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type MailService struct {
	cfg    Config
	dialer sender
}

func NewMailService(cfg Config) *MailService {
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	return &MailService{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

// NotifyAnfrage sends the inquiry to the board. Without SMTP settings the
// mail is skipped and only logged.
func (m *MailService) NotifyAnfrage(ctx context.Context, anfrage models.Anfrage) error {
	if !m.cfg.Enabled() {
		zerolog.Ctx(ctx).Debug().Uint("anfrage_id", anfrage.ID).Msg("smtp not configured, skipping inquiry mail")
		return nil
	}

	message := gomail.NewMessage()
	message.SetHeader("From", m.cfg.From)
	message.SetHeader("To", m.cfg.NotifyTo)
	message.SetHeader("Reply-To", anfrage.Email)
	message.SetHeader("Subject", "Neue Anfrage von "+anfrage.Name)
	message.SetBody("text/plain", anfrageText(anfrage))
	message.AddAlternative("text/html", anfrageHTML(anfrage))

	if err := m.dialer.DialAndSend(message); err != nil {
		return errors.Wrapf(err, "sending inquiry %d to %s", anfrage.ID, m.cfg.NotifyTo)
	}
	return nil
}

func anfrageText(anfrage models.Anfrage) string {
	return fmt.Sprintf("Name: %s\nE-Mail: %s\n\n%s\n", anfrage.Name, anfrage.Email, anfrage.Message)
}

func anfrageHTML(anfrage models.Anfrage) string {
	message := strings.ReplaceAll(html.EscapeString(anfrage.Message), "\n", "<br>")
	return `
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; padding: 20px; border: 1px solid #ddd; border-radius: 8px;">
			<h2 style="color: #333;">Neue Anfrage</h2>
			<p><strong>Name:</strong> ` + html.EscapeString(anfrage.Name) + `</p>
			<p><strong>E-Mail:</strong> ` + html.EscapeString(anfrage.Email) + `</p>
			<p>` + message + `</p>
		</div>
	`
}
