package email

import (
	"errors"
	"net/smtp"
	"testing"

	"mock-interview-backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService() *EmailService {
	return NewEmailService(&config.Config{
		SMTPHost:     "smtp.example.com",
		SMTPPort:     "587",
		SMTPUsername: "noreply@example.com",
		SMTPPassword: "secret",
		FrontendURL:  "https://app.example.com",
	})
}

func TestRenderWelcomeEscapesInput(t *testing.T) {
	msg, err := testService().RenderWelcome(WelcomeEmailData{FirstName: "<b>Ada</b>", Email: "ada@example.com"})
	require.NoError(t, err)

	body := string(msg)
	assert.Contains(t, body, "From: noreply@example.com\r\n")
	assert.Contains(t, body, "To: ada@example.com\r\n")
	assert.Contains(t, body, "&lt;b&gt;Ada&lt;/b&gt;")
	assert.Contains(t, body, `href="https://app.example.com"`)
}

func TestSendWelcome(t *testing.T) {
	svc := testService()

	var gotAddr string
	var gotTo []string
	svc.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo = addr, to
		return nil
	}

	require.NoError(t, svc.SendWelcome("Ada", "ada@example.com"))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"ada@example.com"}, gotTo)

	svc.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("relay down") }
	err := svc.SendWelcome("Ada", "ada@example.com")
	assert.ErrorContains(t, err, "relay down")
}

func TestIsConfigured(t *testing.T) {
	assert.True(t, testService().IsConfigured())
	assert.False(t, NewEmailService(&config.Config{}).IsConfigured())
}
