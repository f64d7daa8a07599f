package email

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"jobkit-backend/config"

	"gopkg.in/gomail.v2"
)

// EmailService sends transactional mail over SMTP.
type EmailService struct {
	dialer    *gomail.Dialer
	host      string
	fromEmail string
}

// OTPEmailData holds the data for verification code emails
type OTPEmailData struct {
	Username     string
	Email        string
	Code         string
	ValidMinutes int
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		dialer:    gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		host:      cfg.SMTPHost,
		fromEmail: cfg.SMTPFromEmail,
	}
}

const otpSubject = "Your verification code"

const otpHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Verify your account</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .code { font-size: 32px; letter-spacing: 8px; font-weight: bold; text-align: center; padding: 16px; background: white; border-left: 4px solid #0066cc; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Verify your account</h1>
        </div>
        <div class="content">
            <p>Hi {{.Username}},</p>
            <p>Use the code below to finish creating your account.</p>
            <div class="code">{{.Code}}</div>
            <p>The code expires in {{.ValidMinutes}} minutes.</p>
        </div>
        <div class="footer">
            <p>If you did not sign up, you can ignore this email.</p>
        </div>
    </div>
</body>
</html>`

const otpTextTemplate = `Hi {{.Username}},

Your verification code is {{.Code}}.
It expires in {{.ValidMinutes}} minutes.

If you did not sign up, you can ignore this email.
`

var (
	otpHTML = htmltemplate.Must(htmltemplate.New("otp_html").Parse(otpHTMLTemplate))
	otpText = texttemplate.Must(texttemplate.New("otp_text").Parse(otpTextTemplate))
)

// RenderOTP returns the HTML body and its plaintext alternative.
func RenderOTP(data OTPEmailData) (html string, plain string, err error) {
	var hb, tb bytes.Buffer
	if err := otpHTML.Execute(&hb, data); err != nil {
		return "", "", fmt.Errorf("failed to execute html template: %w", err)
	}
	if err := otpText.Execute(&tb, data); err != nil {
		return "", "", fmt.Errorf("failed to execute text template: %w", err)
	}
	return hb.String(), tb.String(), nil
}

// SendOTPEmail mails a verification code to data.Email.
func (s *EmailService) SendOTPEmail(data OTPEmailData) error {
	html, plain, err := RenderOTP(data)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.fromEmail)
	m.SetHeader("To", data.Email)
	m.SetHeader("Subject", otpSubject)
	m.SetBody("text/plain", plain)
	m.AddAlternative("text/html", html)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// IsConfigured checks if the email service has a usable SMTP host and sender.
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.fromEmail != ""
}
