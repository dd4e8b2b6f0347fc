package mailer

import (
	"bytes"
	"html/template"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// TrackingMail is one rendered-and-dispatched tracking notification.
type TrackingMail struct {
	To          string
	Subject     string
	Message     string
	BLNo        string
	ContainerNo string
	ETD         string
	ETA         string
}

// Sender dispatches tracking notifications. It is an injected capability with
// its own verify/send lifecycle rather than a process-wide transport.
type Sender interface {
	Send(mail TrackingMail) error
}

// SMTPSender sends tracking mail over SMTP.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSenderFromEnv builds a sender from MAIL_HOST, MAIL_PORT, MAIL_USER,
// MAIL_PASS and MAIL_FROM.
func NewSMTPSenderFromEnv() *SMTPSender {
	port, err := strconv.Atoi(os.Getenv("MAIL_PORT"))
	if err != nil || port == 0 {
		port = 587
	}
	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = "no-reply@shipmenttracking.com"
	}
	return &SMTPSender{
		dialer: gomail.NewDialer(os.Getenv("MAIL_HOST"), port, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS")),
		from:   from,
	}
}

// Verify opens and closes an SMTP connection so a misconfigured transport is
// reported at startup instead of on the first notification.
func (s *SMTPSender) Verify() error {
	closer, err := s.dialer.Dial()
	if err != nil {
		return err
	}
	return closer.Close()
}

// Send renders the tracking HTML and dispatches it.
func (s *SMTPSender) Send(mail TrackingMail) error {
	body, err := RenderTrackingHTML(mail)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", s.from, "Logistics ERP")
	msg.SetHeader("To", mail.To)
	msg.SetHeader("Subject", mail.Subject)
	msg.SetBody("text/html", body)

	return s.dialer.DialAndSend(msg)
}

var trackingTemplate = template.Must(template.New("tracking").Parse(`
<h3>Shipment Tracking Details</h3>
<table border="1" cellpadding="8">
  <tr><td><b>BL No</b></td><td>{{.BLNo}}</td></tr>
  <tr><td><b>Container No</b></td><td>{{.ContainerNo}}</td></tr>
  <tr><td><b>ETD</b></td><td>{{.ETD}}</td></tr>
  <tr><td><b>ETA</b></td><td>{{.ETA}}</td></tr>
</table>
<p>{{.Message}}</p>
`))

// RenderTrackingHTML renders the notification body for the given mail.
func RenderTrackingHTML(mail TrackingMail) (string, error) {
	var buf bytes.Buffer
	if err := trackingTemplate.Execute(&buf, mail); err != nil {
		return "", err
	}
	return buf.String(), nil
}
