package mailer

import (
	"fmt"

	"teasupply-backend/internal/config"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional mail over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func New(cfg *config.Config) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.SMTPFrom,
	}
}

// SendOTP mails a one-time login code. The code expires in five minutes.
func (m *Mailer) SendOTP(to, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your login code")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Your one-time login code is %s. It expires in 5 minutes.", code))

	return m.dialer.DialAndSend(msg)
}
