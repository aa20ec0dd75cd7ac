package email

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"github.com/abhikadam2003/Ecommerce/config"
)

// Sender delivers notification mail on a best-effort basis. Messages go
// out on their own goroutine and a delivery failure is logged, never
// returned, so no request can fail on a mail problem.
type Sender struct {
	dialer *gomail.Dialer
	from   string
	log    *logrus.Logger
}

// NewSender builds a Sender from config. Without SMTP credentials the
// sender stays disabled and every send is a logged no-op.
func NewSender(cfg *config.Config, log *logrus.Logger) *Sender {
	s := &Sender{from: cfg.EmailUser, log: log}
	if cfg.EmailHost == "" || cfg.EmailUser == "" || cfg.EmailPass == "" {
		log.Warn("Email credentials not provided, notifications are disabled")
		return s
	}
	s.dialer = gomail.NewDialer(cfg.EmailHost, cfg.EmailPort, cfg.EmailUser, cfg.EmailPass)
	return s
}

func (s *Sender) send(to, subject, htmlBody string) {
	if s.dialer == nil {
		return
	}
	go func() {
		m := gomail.NewMessage()
		m.SetHeader("From", s.from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", subject)
		m.SetBody("text/html", htmlBody)

		if err := s.dialer.DialAndSend(m); err != nil {
			s.log.WithError(err).WithField("to", to).Warn("Failed to send email")
		}
	}()
}

// SendWelcome greets a freshly registered user.
func (s *Sender) SendWelcome(to, name string) {
	s.send(to, "Welcome to our store 🎉",
		fmt.Sprintf("<p>Hi %s,</p><p>Welcome to our store, happy shopping ✨</p>", name))
}

// SendOrderConfirmation confirms a placed order.
func (s *Sender) SendOrderConfirmation(to, orderRef string, total float64) {
	s.send(to, "Order Confirmed",
		fmt.Sprintf("<p>Your order %s has been received. Total: %.2f</p>", orderRef, total))
}
