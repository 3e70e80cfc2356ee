package services

import (
	"fmt"
	"os"

	"ssplt10-backend/logger"
	"ssplt10-backend/utils"

	"gopkg.in/gomail.v2"
)

// PaymentNotifier emails a payment confirmation with the PDF receipt
// attached. Strictly best-effort: callers run it off the request goroutine
// and only log failures.
type PaymentNotifier struct {
	host string
	port int
	user string
	pass string
	from string
}

// NewPaymentNotifier returns nil when SMTP credentials are not configured,
// which disables notifications cleanly.
func NewPaymentNotifier(host string, port int, user, pass, from string) *PaymentNotifier {
	if user == "" || pass == "" {
		logger.Info("SMTP credentials not configured, payment emails disabled")
		return nil
	}
	if from == "" {
		from = user
	}
	return &PaymentNotifier{host: host, port: port, user: user, pass: pass, from: from}
}

// SendReceipt generates the receipt PDF and mails it to the player.
func (n *PaymentNotifier) SendReceipt(name, email, registrationID, paymentID, orderID string, amount float64) error {
	if err := utils.ValidateEmail(email); err != nil {
		return fmt.Errorf("cannot send receipt: %w", err)
	}

	receiptPath, err := GenerateReceipt(name, registrationID, paymentID, orderID, amount)
	if err != nil {
		return err
	}
	defer os.Remove(receiptPath)

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "SSPL T10 Registration - Payment Confirmed")
	m.SetBody("text/html", fmt.Sprintf(
		"<p>Dear %s,</p><p>Your registration payment of INR %.2f has been confirmed.</p>"+
			"<p>Payment ID: %s<br>Order ID: %s</p><p>Your receipt is attached.</p>"+
			"<p>SSPL T10 Team</p>",
		name, amount, paymentID, orderID))
	m.Attach(receiptPath)

	d := gomail.NewDialer(n.host, n.port, n.user, n.pass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send receipt email: %w", err)
	}

	logger.Info("payment receipt emailed - Registration: %s, Recipient: %s", registrationID, email)
	return nil
}
