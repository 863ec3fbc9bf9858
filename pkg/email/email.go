package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"net/url"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	FrontendURL  string
	AppName      string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	if config.AppName == "" {
		config.AppName = "Ice & Gas POS"
	}
	return &EmailService{config: config}
}

// SendPasswordResetEmail sends a password reset email
func (s *EmailService) SendPasswordResetEmail(toEmail, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s&email=%s",
		s.config.FrontendURL,
		url.QueryEscape(token),
		url.QueryEscape(toEmail),
	)

	htmlContent, err := s.renderPasswordResetEmail(toEmail, resetURL)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Reset Your Password - %s", s.config.AppName)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// MeltAlertData carries the figures for an abnormal melt loss alert.
type MeltAlertData struct {
	ProductName string
	CountDate   string
	LossQty     float64
	LossValue   float64
	MeltPct     float64
	ExpectedPct float64
}

// SendAbnormalMeltAlert notifies the owner that a daily count recorded
// melt loss above the product's expected rate.
func (s *EmailService) SendAbnormalMeltAlert(toEmail string, data MeltAlertData) error {
	tmpl, err := template.New("melt_alert").Parse(meltAlertTemplate)
	if err != nil {
		return err
	}

	payload := struct {
		MeltAlertData
		AppName string
	}{MeltAlertData: data, AppName: s.config.AppName}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, payload); err != nil {
		return err
	}

	subject := fmt.Sprintf("Abnormal melt loss: %s - %s", data.ProductName, s.config.AppName)
	message := s.buildHTMLEmail(toEmail, subject, buf.String())

	return s.sendEmail(toEmail, message)
}

// LowStockItem is one product line in a low stock alert.
type LowStockItem struct {
	Name      string
	Stock     float64
	Threshold float64
	Unit      string
}

// SendLowStockAlert notifies the owner which products have reached their
// alert threshold.
func (s *EmailService) SendLowStockAlert(toEmail string, items []LowStockItem) error {
	tmpl, err := template.New("low_stock").Parse(lowStockTemplate)
	if err != nil {
		return err
	}

	payload := struct {
		Items   []LowStockItem
		AppName string
	}{Items: items, AppName: s.config.AppName}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, payload); err != nil {
		return err
	}

	subject := fmt.Sprintf("Low stock alert - %s", s.config.AppName)
	message := s.buildHTMLEmail(toEmail, subject, buf.String())

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

// renderPasswordResetEmail renders the password reset email template
func (s *EmailService) renderPasswordResetEmail(email, resetURL string) (string, error) {
	tmpl, err := template.New("password_reset").Parse(passwordResetTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		Email    string
		ResetURL string
		AppName  string
	}{
		Email:    email,
		ResetURL: resetURL,
		AppName:  s.config.AppName,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// passwordResetTemplate is the HTML template for password reset emails
const passwordResetTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Reset Your Password</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden;">
                    <tr>
                        <td style="background: #1a6baf; padding: 40px 30px; text-align: center;">
                            <h1 style="color: #ffffff; margin: 0; font-size: 28px; font-weight: 600;">{{.AppName}}</h1>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 40px 30px;">
                            <h2 style="color: #1a1a2e; margin: 0 0 20px 0; font-size: 24px; font-weight: 600;">Reset Your Password</h2>
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 20px 0;">
                                We received a request to reset the password for the account associated with <strong>{{.Email}}</strong>.
                            </p>
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 30px 0;">
                                Click the button below to reset your password. This link will expire in <strong>1 hour</strong>.
                            </p>
                            <table role="presentation" style="margin: 0 auto 30px auto;">
                                <tr>
                                    <td style="background: #1a6baf; border-radius: 8px;">
                                        <a href="{{.ResetURL}}" style="display: inline-block; padding: 16px 32px; color: #ffffff; text-decoration: none; font-size: 16px; font-weight: 600;">
                                            Reset Password
                                        </a>
                                    </td>
                                </tr>
                            </table>
                            <p style="color: #718096; font-size: 14px; line-height: 1.6; margin: 0 0 20px 0;">
                                If you didn't request this password reset, you can safely ignore this email.
                            </p>
                            <p style="color: #667eea; font-size: 14px; line-height: 1.6; margin: 10px 0 0 0; word-break: break-all;">
                                <a href="{{.ResetURL}}" style="color: #667eea;">{{.ResetURL}}</a>
                            </p>
                        </td>
                    </tr>
                    <tr>
                        <td style="background-color: #f8fafc; padding: 30px; text-align: center; border-top: 1px solid #e2e8f0;">
                            <p style="color: #a0aec0; font-size: 14px; margin: 0;">
                                This email was sent by {{.AppName}}
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`

// meltAlertTemplate is the HTML template for abnormal melt loss alerts
const meltAlertTemplate = `
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Abnormal Melt Loss</title></head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="max-width: 600px; margin: 40px auto; background-color: #ffffff; border-radius: 12px; overflow: hidden;">
        <tr>
            <td style="background: #b91c1c; padding: 30px; text-align: center;">
                <h1 style="color: #ffffff; margin: 0; font-size: 24px;">Abnormal Melt Loss</h1>
            </td>
        </tr>
        <tr>
            <td style="padding: 30px;">
                <p style="color: #4a5568; font-size: 16px;">The daily count on {{.CountDate}} recorded melt loss above the expected rate:</p>
                <table style="width: 100%; border-collapse: collapse; font-size: 15px; color: #1a1a2e;">
                    <tr><td style="padding: 6px 0;">Product</td><td style="text-align: right;"><strong>{{.ProductName}}</strong></td></tr>
                    <tr><td style="padding: 6px 0;">Loss quantity</td><td style="text-align: right;"><strong>{{printf "%.2f" .LossQty}}</strong></td></tr>
                    <tr><td style="padding: 6px 0;">Loss value</td><td style="text-align: right;"><strong>{{printf "%.2f" .LossValue}}</strong></td></tr>
                    <tr><td style="padding: 6px 0;">Melt rate</td><td style="text-align: right;"><strong>{{printf "%.1f" .MeltPct}}%</strong></td></tr>
                    <tr><td style="padding: 6px 0;">Expected rate</td><td style="text-align: right;">{{printf "%.1f" .ExpectedPct}}%</td></tr>
                </table>
            </td>
        </tr>
        <tr>
            <td style="background-color: #f8fafc; padding: 20px; text-align: center; border-top: 1px solid #e2e8f0;">
                <p style="color: #a0aec0; font-size: 13px; margin: 0;">Sent by {{.AppName}}</p>
            </td>
        </tr>
    </table>
</body>
</html>
`

// lowStockTemplate is the HTML template for low stock alerts
const lowStockTemplate = `
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Low Stock Alert</title></head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="max-width: 600px; margin: 40px auto; background-color: #ffffff; border-radius: 12px; overflow: hidden;">
        <tr>
            <td style="background: #b45309; padding: 30px; text-align: center;">
                <h1 style="color: #ffffff; margin: 0; font-size: 24px;">Low Stock</h1>
            </td>
        </tr>
        <tr>
            <td style="padding: 30px;">
                <p style="color: #4a5568; font-size: 16px;">These products have reached their alert threshold:</p>
                <table style="width: 100%; border-collapse: collapse; font-size: 15px; color: #1a1a2e;">
                    <tr style="border-bottom: 1px solid #e2e8f0;">
                        <th style="text-align: left; padding: 6px 0;">Product</th>
                        <th style="text-align: right; padding: 6px 0;">Stock</th>
                        <th style="text-align: right; padding: 6px 0;">Threshold</th>
                    </tr>
                    {{range .Items}}
                    <tr>
                        <td style="padding: 6px 0;">{{.Name}}</td>
                        <td style="text-align: right;">{{printf "%.2f" .Stock}} {{.Unit}}</td>
                        <td style="text-align: right;">{{printf "%.2f" .Threshold}}</td>
                    </tr>
                    {{end}}
                </table>
            </td>
        </tr>
        <tr>
            <td style="background-color: #f8fafc; padding: 20px; text-align: center; border-top: 1px solid #e2e8f0;">
                <p style="color: #a0aec0; font-size: 13px; margin: 0;">Sent by {{.AppName}}</p>
            </td>
        </tr>
    </table>
</body>
</html>
`
