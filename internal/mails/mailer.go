package mails

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/go-mail/mail/v2"
)

//go:embed "templates"
var templateFS embed.FS

// Template names under templates/.
const (
	TmplUserWelcome = "user_welcome.html"
)

// Mailer delivers templated emails over SMTP. Every template must define the
// "subject", "plainBody" and "htmlBody" blocks.
type Mailer struct {
	Dialer       *mail.Dialer
	Sender       string
	RetriesCount int
	RetryDelay   time.Duration
}

func New(host string, port int, timeout time.Duration, username, password, sender string, retriesCount int) *Mailer {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = timeout
	if retriesCount < 1 {
		retriesCount = 1
	}
	return &Mailer{
		Dialer:       dialer,
		Sender:       sender,
		RetriesCount: retriesCount,
		RetryDelay:   500 * time.Millisecond,
	}
}

type rendered struct {
	Subject   string
	PlainBody string
	HTMLBody  string
}

func render(tmplName string, data any) (*rendered, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/"+tmplName)
	if err != nil {
		return nil, fmt.Errorf("mails: parsing %s: %w", tmplName, err)
	}
	exec := func(block string) (string, error) {
		var buf bytes.Buffer
		if err := tmpl.ExecuteTemplate(&buf, block, data); err != nil {
			return "", fmt.Errorf("mails: rendering %s/%s: %w", tmplName, block, err)
		}
		return buf.String(), nil
	}
	var out rendered
	if out.Subject, err = exec("subject"); err != nil {
		return nil, err
	}
	if out.PlainBody, err = exec("plainBody"); err != nil {
		return nil, err
	}
	if out.HTMLBody, err = exec("htmlBody"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Send renders tmplName with tmplData and delivers it, retrying up to RetriesCount times.
func (m *Mailer) Send(recipient string, tmplName string, tmplData any) error {
	content, err := render(tmplName, tmplData)
	if err != nil {
		return err
	}
	msg := mail.NewMessage()
	msg.SetHeader("To", recipient)
	msg.SetHeader("From", m.Sender)
	msg.SetHeader("Subject", content.Subject)
	msg.SetBody("text/plain", content.PlainBody)
	msg.AddAlternative("text/html", content.HTMLBody)
	for attempt := 1; ; attempt++ {
		err = m.Dialer.DialAndSend(msg)
		if err == nil {
			return nil
		}
		if attempt >= m.RetriesCount {
			return fmt.Errorf("mails: sending to %s after %d attempts: %w", recipient, attempt, err)
		}
		time.Sleep(m.RetryDelay)
	}
}
