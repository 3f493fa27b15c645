package notifier

import (
	"fmt"
	"log"

	"github.com/wneessen/go-mail"
)

// EmailNotifier sends order confirmation emails over SMTP. It runs on
// the event-consumer side of the order pipeline; its failures never
// reach the checkout path.
type EmailNotifier struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// Config holds the SMTP settings for the email notifier.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// NewEmailNotifier creates a new EmailNotifier.
func NewEmailNotifier(cfg Config) *EmailNotifier {
	return &EmailNotifier{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
	}
}

// SendOrderConfirmation emails the customer that their order was placed.
func (n *EmailNotifier) SendOrderConfirmation(to, username, orderID string, total float64) error {
	msg := mail.NewMsg()
	if err := msg.From(n.from); err != nil {
		return fmt.Errorf("invalid sender address %s: %w", n.from, err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address %s: %w", to, err)
	}
	msg.Subject(fmt.Sprintf("Order %s confirmation", orderID))
	msg.SetBodyString(mail.TypeTextHTML, orderConfirmationHTML(username, orderID, total))

	client, err := mail.NewClient(n.host,
		mail.WithPort(n.port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(n.username),
		mail.WithPassword(n.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}

	log.Printf("Sending order confirmation for order %s to %s", orderID, to)
	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send order confirmation for order %s: %w", orderID, err)
	}
	return nil
}

func orderConfirmationHTML(username, orderID string, total float64) string {
	return fmt.Sprintf(`
<html>
<body style="font-family: Arial, sans-serif;">
	<h2>Thank you for your order</h2>
	<p>Hi %s,</p>
	<p>Your order <strong>%s</strong> has been placed successfully.</p>
	<p>Order total: <strong>%.2f</strong></p>
	<p>We will let you know when your payment is processed.</p>
</body>
</html>`, username, orderID, total)
}
