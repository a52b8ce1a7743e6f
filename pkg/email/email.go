package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"mock-interview-backend/config"
)

// EmailService sends account emails via SMTP
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	appURL    string
	send      func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// WelcomeEmailData holds the data for the signup welcome email
type WelcomeEmailData struct {
	FirstName string
	Email     string
	AppURL    string
}

// NewEmailService creates a new email service from the SMTP settings
func NewEmailService(cfg *config.Config) *EmailService {
	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUsername // Most relays use the login email as from address
	}
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: from,
		appURL:    cfg.FrontendURL,
		send:      smtp.SendMail,
	}
}

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Welcome to Mock Interview</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #4f46e5; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Welcome, {{.FirstName}}!</h1>
        </div>
        <div class="content">
            <p>Your account is ready. Upload your CV, paste a job description and
            practise with questions tailored to the role.</p>
            <p><a href="{{.AppURL}}">Start a mock interview</a></p>
        </div>
        <div class="footer">
            <p>This email was sent to {{.Email}} because an account was created with it.</p>
        </div>
    </div>
</body>
</html>`))

// RenderWelcome builds the MIME message for a welcome email.
func (s *EmailService) RenderWelcome(data WelcomeEmailData) ([]byte, error) {
	if data.AppURL == "" {
		data.AppURL = s.appURL
	}

	var body bytes.Buffer
	if err := welcomeTemplate.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to execute email template: %w", err)
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		data.Email,
		"Welcome to Mock Interview",
		body.String(),
	))
	return msg, nil
}

// SendWelcome sends the signup welcome email to the new user
func (s *EmailService) SendWelcome(firstName, to string) error {
	msg, err := s.RenderWelcome(WelcomeEmailData{FirstName: firstName, Email: to})
	if err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := s.send(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}
