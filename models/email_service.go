package models

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/gomail.v2"
)

type EmailService struct {
	dialer *gomail.Dialer
}

func NewEmailService() (*EmailService, error) {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	if smtpHost == "" || smtpUser == "" || smtpPass == "" {
		return nil, fmt.Errorf("SMTP configuration missing")
	}

	port, err := strconv.Atoi(smtpPort)
	if err != nil {
		port = 587
	}

	dialer := gomail.NewDialer(smtpHost, port, smtpUser, smtpPass)

	return &EmailService{dialer: dialer}, nil
}

func (s *EmailService) SendOrderReceipt(toEmail string, orderID int, lines []CheckoutLine, total float64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Order Receipt #%d - WakeUp Cafe", orderID))

	var rows strings.Builder
	for _, line := range lines {
		rows.WriteString(fmt.Sprintf(
			`<tr><td>%s</td><td style="text-align:center;">%d</td><td style="text-align:right;">$%.2f</td></tr>`,
			line.ProductName, line.Quantity, line.ProductPrice*float64(line.Quantity)))
	}

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; }
        .logo { font-size: 24px; font-weight: bold; color: #04764e; text-align: center; }
        table { width: 100%%; border-collapse: collapse; margin: 20px 0; }
        th, td { padding: 8px; border-bottom: 1px solid #eee; text-align: left; }
        .total { font-size: 18px; font-weight: bold; color: #04764e; text-align: right; }
        .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="logo">WakeUp Cafe</div>
        <h2>Thank you for your order!</h2>
        <p>Your order #%d has been received.</p>
        <table>
            <tr><th>Product</th><th style="text-align:center;">Qty</th><th style="text-align:right;">Total</th></tr>
            %s
        </table>
        <p class="total">Total: $%.2f</p>
        <div class="footer">WakeUp Cafe - see you soon</div>
    </div>
</body>
</html>`, orderID, rows.String(), total)

	m.SetBody("text/html", body)

	return s.dialer.DialAndSend(m)
}
