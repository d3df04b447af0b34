package utils

import (
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// senderName is the display name on outgoing clinic mail. Override with
// CLINIC_NAME for white-label deployments.
func senderName() string {
	if name := os.Getenv("CLINIC_NAME"); name != "" {
		return name
	}
	return "Clinic Appointments"
}

// SendEmail delivers one transactional email (confirmation, reminder,
// verification code) over SMTP. The environment is loaded once at startup by
// db.Init, so there is no per-call dotenv reload here.
func SendEmail(to, subject, body string) error {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", os.Getenv("EMAIL_USER"), senderName())
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		port,
		os.Getenv("EMAIL_USER"),
		os.Getenv("EMAIL_PASS"),
	)
	return d.DialAndSend(m)
}
