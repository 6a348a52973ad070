package mailer

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"io"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/jugehoerig/vereinsapi/internal/models"
)

// ErrSMTPDisabled is returned when a newsletter is sent without an SMTP host.
var ErrSMTPDisabled = errors.New("smtp is not configured")

type sectionImage struct {
	name string
	png  []byte
}

// SendNewsletter delivers one message per subscriber in a single SMTP
// session. Section images are embedded inline.
func (m *MailService) SendNewsletter(ctx context.Context, newsletter models.Newsletter, subscribers []models.Subscriber) error {
	if m.cfg.Host == "" {
		return ErrSMTPDisabled
	}

	images := make(map[int]sectionImage, len(newsletter.Sections))
	for i, section := range newsletter.Sections {
		if section.Image == nil || *section.Image == "" {
			continue
		}
		raw, err := base64.StdEncoding.DecodeString(*section.Image)
		if err != nil {
			return errors.Wrapf(err, "decoding image of section %d", section.ID)
		}
		images[i] = sectionImage{name: fmt.Sprintf("abschnitt-%d.png", i+1), png: raw}
	}

	messages := make([]*gomail.Message, 0, len(subscribers))
	for _, subscriber := range subscribers {
		unsubscribe := m.unsubscribeLink(subscriber.UnsubscribeToken)

		message := gomail.NewMessage()
		message.SetHeader("From", m.cfg.From)
		message.SetAddressHeader("To", subscriber.Email, subscriber.FirstName+" "+subscriber.LastName)
		message.SetHeader("Subject", newsletter.Title)
		if unsubscribe != "" {
			message.SetHeader("List-Unsubscribe", "<"+unsubscribe+">")
		}
		message.SetBody("text/plain", newsletterText(newsletter, subscriber, unsubscribe))
		message.AddAlternative("text/html", newsletterHTML(newsletter, images, subscriber, unsubscribe))
		for _, image := range images {
			message.Embed(image.name, gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(image.png)
				return err
			}))
		}
		messages = append(messages, message)
	}

	if err := m.dialer.DialAndSend(messages...); err != nil {
		return errors.Wrapf(err, "sending newsletter %d to %d subscribers", newsletter.ID, len(subscribers))
	}
	zerolog.Ctx(ctx).Info().Uint("newsletter_id", newsletter.ID).Int("recipients", len(messages)).Msg("newsletter sent")
	return nil
}

func (m *MailService) unsubscribeLink(token string) string {
	if m.cfg.UnsubscribeURL == "" {
		return ""
	}
	separator := "?"
	if strings.Contains(m.cfg.UnsubscribeURL, "?") {
		separator = "&"
	}
	return m.cfg.UnsubscribeURL + separator + "token=" + url.QueryEscape(token)
}

func newsletterText(newsletter models.Newsletter, subscriber models.Subscriber, unsubscribe string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hallo %s\n\n%s\n", subscriber.FirstName, newsletter.Title)
	for _, section := range newsletter.Sections {
		b.WriteString("\n")
		if section.Subtitle != "" {
			b.WriteString(section.Subtitle + "\n\n")
		}
		if section.Text != "" {
			b.WriteString(section.Text + "\n")
		}
	}
	if unsubscribe != "" {
		fmt.Fprintf(&b, "\nAbmelden: %s\n", unsubscribe)
	}
	return b.String()
}

func newsletterHTML(newsletter models.Newsletter, images map[int]sectionImage, subscriber models.Subscriber, unsubscribe string) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; padding: 20px;">`)
	b.WriteString(`<p>Hallo ` + html.EscapeString(subscriber.FirstName) + `</p>`)
	b.WriteString(`<h1 style="color: #333;">` + html.EscapeString(newsletter.Title) + `</h1>`)
	for i, section := range newsletter.Sections {
		if section.Subtitle != "" {
			b.WriteString(`<h2 style="color: #333;">` + html.EscapeString(section.Subtitle) + `</h2>`)
		}
		if image, ok := images[i]; ok {
			b.WriteString(`<img src="cid:` + image.name + `" style="max-width: 100%;" alt="">`)
		}
		if section.Text != "" {
			b.WriteString(`<p>` + strings.ReplaceAll(html.EscapeString(section.Text), "\n", "<br>") + `</p>`)
		}
	}
	if unsubscribe != "" {
		b.WriteString(`<p style="font-size: 12px; color: #888;"><a href="` + html.EscapeString(unsubscribe) + `">Vom Newsletter abmelden</a></p>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}
