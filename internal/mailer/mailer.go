package mailer

import (
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/colorra-dev/colorra/internal/config"
)

// Mailer sends account mail. Without SMTP configuration it only logs the
// links, which is the development behavior.
type Mailer struct {
	cfg    *config.Config
	logger *zap.Logger
}

func New(cfg *config.Config, logger *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, logger: logger}
}

func (m *Mailer) SendPasswordResetEmail(to, token string) {
	link := m.cfg.ClientURL + "/reset-password?token=" + token

	if m.cfg.SMTPHost == "" {
		m.logger.Info("SMTP not configured, logging password reset link",
			zap.String("email", to),
			zap.String("link", link))
		return
	}

	body := `<h1>Password Reset Request</h1>
		<p>You requested a password reset. Click the link below to set a new password:</p>
		<a href="` + link + `">Reset Password</a>
		<p>If you did not request this, please ignore this email.</p>`

	// Fire and forget; a delivery failure must not change the API response.
	go m.send(to, "Reset your password", body)
}

func (m *Mailer) send(to, subject, body string) {
	port, err := strconv.Atoi(m.cfg.SMTPPort)
	if err != nil {
		port = 587
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.MailFrom)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.cfg.SMTPHost, port, m.cfg.SMTPUser, m.cfg.SMTPPass)

	if err := d.DialAndSend(msg); err != nil {
		m.logger.Error("could not send email", zap.String("email", to), zap.Error(err))
	}
}
