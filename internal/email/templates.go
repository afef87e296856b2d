package email

import (
	"fmt"
	"html/template"
	"strings"
)

const otpTemplate = `
<div style="font-family: Arial, sans-serif; max-width: 480px; margin: 0 auto;">
  <h2>Welcome to SmartLearn, {{.Name}}!</h2>
  <p>Use the code below to verify your email address. It expires in {{.ExpiresMin}} minutes.</p>
  <p style="font-size: 28px; letter-spacing: 6px; font-weight: bold;">{{.OTP}}</p>
  <p>If you did not sign up, you can safely ignore this email.</p>
</div>`

const resetTemplate = `
<div style="font-family: Arial, sans-serif; max-width: 480px; margin: 0 auto;">
  <h2>Password reset</h2>
  <p>Hi {{.Name}},</p>
  <p>We received a request to reset your SmartLearn password. Click the link below to choose a new one. The link expires in {{.ExpiresMin}} minutes.</p>
  <p><a href="{{.ResetURL}}">Reset your password</a></p>
  <p>If you did not request this, ignore this email and your password will stay unchanged.</p>
</div>`

var (
	otpTpl   = template.Must(template.New("otp").Parse(otpTemplate))
	resetTpl = template.Must(template.New("reset").Parse(resetTemplate))
)

func render(tpl *template.Template, data TemplateData) (string, error) {
	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// NewOTPMessage builds the signup verification email.
func NewOTPMessage(to, name, otp string, expiresMin int) (*Message, error) {
	body, err := render(otpTpl, TemplateData{"Name": name, "OTP": otp, "ExpiresMin": expiresMin})
	if err != nil {
		return nil, err
	}
	return &Message{
		To:       to,
		Subject:  "Your SmartLearn verification code",
		HTMLBody: body,
	}, nil
}

// NewResetMessage builds the password reset email.
func NewResetMessage(to, name, resetURL string, expiresMin int) (*Message, error) {
	body, err := render(resetTpl, TemplateData{"Name": name, "ResetURL": resetURL, "ExpiresMin": expiresMin})
	if err != nil {
		return nil, err
	}
	return &Message{
		To:       to,
		Subject:  "Reset your SmartLearn password",
		HTMLBody: body,
	}, nil
}
