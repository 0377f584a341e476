package service

import (
	"fmt"

	"saralevents-backend/internal/domain"
	"saralevents-backend/internal/logger"
	"saralevents-backend/internal/money"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendGridEmailService struct {
	apiKey        string
	fromEmail     string
	fromName      string
	operatorEmail string
}

func NewSendGridEmailService(apiKey, fromEmail, fromName, operatorEmail string) EmailService {
	return &sendGridEmailService{
		apiKey:        apiKey,
		fromEmail:     fromEmail,
		fromName:      fromName,
		operatorEmail: operatorEmail,
	}
}

func (s *sendGridEmailService) SendReconciliationAlert(rec *domain.WalletCreditReconciliation) error {
	subject := fmt.Sprintf("Wallet credit abandoned after %d attempts (vendor %d)", rec.Attempts, rec.VendorID)
	plainText := fmt.Sprintf(
		"A vendor wallet credit could not be applied and has been abandoned.\n\n"+
			"Vendor: %d\nAmount: INR %s\nSource: %s\nDedup key: %s\nLast error: %s\n\n"+
			"Credit it manually and resolve the reconciliation entry (id %d).",
		rec.VendorID, money.FormatINR(rec.AmountPaise), rec.Source, rec.DedupKey, rec.LastError, rec.ID)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Wallet Credit Abandoned</h2>
				<p>Vendor <strong>%d</strong> is owed <strong>INR %s</strong> (%s).</p>
				<p>Dedup key: <code>%s</code></p>
				<p>Last error: %s</p>
				<p>Credit it manually and resolve reconciliation entry %d.</p>
			</body>
		</html>
	`, rec.VendorID, money.FormatINR(rec.AmountPaise), rec.Source, rec.DedupKey, rec.LastError, rec.ID)

	return s.send(subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendAuditAlert(audit *domain.WalletAudit) error {
	subject := fmt.Sprintf("Wallet ledger drift detected (vendor %d)", audit.VendorID)
	plainText := fmt.Sprintf(
		"Nightly wallet audit found a mismatch.\n\n"+
			"Vendor: %d\nStored balance: INR %s\nReplayed balance: INR %s\n"+
			"Transactions: %d\nFirst broken transaction: %s\n",
		audit.VendorID, money.FormatINR(audit.BalancePaise), money.FormatINR(audit.ReplayedBalancePaise),
		audit.TransactionCount, audit.BrokenAtTransactionID)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Wallet Ledger Drift</h2>
				<p>Vendor <strong>%d</strong>: stored balance INR %s, ledger replay gives INR %s over %d transactions.</p>
				<p>First broken transaction: <code>%s</code></p>
			</body>
		</html>
	`, audit.VendorID, money.FormatINR(audit.BalancePaise), money.FormatINR(audit.ReplayedBalancePaise),
		audit.TransactionCount, audit.BrokenAtTransactionID)

	return s.send(subject, plainText, htmlContent)
}

func (s *sendGridEmailService) send(subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("Settlement Operator", s.operatorEmail)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	logger.ExternalServiceCall("sendgrid", "Send", "subject", subject)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "Send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "Send", err)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "Send", nil)
	return nil
}
