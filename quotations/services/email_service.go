package services

import (
	"fmt"
	"os"
	"time"

	"quotation-backend/config"
	"quotation-backend/db/models"
	"quotation-backend/internal/pricing"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// MailDialer is the part of gomail.Dialer the service needs; tests substitute
// a recorder.
type MailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// QuotationEmail describes one outgoing quotation email.
type QuotationEmail struct {
	Recipients []string
	CC         []string
	Message    string
	AttachDocx bool
	AttachPdf  bool
}

// EmailService sends quotation documents to clients. The sender address is
// resolved from the quotation's creator, falling back to the configured
// default; with neither available the send is rejected so mail never goes out
// with a forged origin.
type EmailService struct {
	dialer MailDialer
	cfg    config.AppConfig
	calc   pricing.Calculator
	logger *zap.Logger
}

func NewEmailService(dialer MailDialer, cfg config.AppConfig) *EmailService {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailService{
		dialer: dialer,
		cfg:    cfg,
		calc:   pricing.NewCalculator(cfg.GSTRate),
		logger: logger,
	}
}

// ResolveSender returns the address quotation mail goes out from.
func (s *EmailService) ResolveSender(quotation models.Quotation) (string, error) {
	if quotation.CreatedByEmail != nil && *quotation.CreatedByEmail != "" {
		return *quotation.CreatedByEmail, nil
	}
	if s.cfg.DefaultFromEmail != "" {
		return s.cfg.DefaultFromEmail, nil
	}
	creator := "unknown user"
	if quotation.CreatedBy != nil && *quotation.CreatedBy != "" {
		creator = *quotation.CreatedBy
	}
	return "", fmt.Errorf("no sender address available: %s has no email and no default sender is configured", creator)
}

// Compose builds the message without sending it. Attachment paths that do not
// exist are skipped with a warning rather than failing the whole send.
func (s *EmailService) Compose(quotation models.Quotation, email QuotationEmail, docxPath, pdfPath string) (*gomail.Message, error) {
	sender, err := s.ResolveSender(quotation)
	if err != nil {
		return nil, err
	}

	recipients := email.Recipients
	if len(recipients) == 0 && quotation.Client != nil && quotation.Client.Email != "" {
		recipients = []string{quotation.Client.Email}
	}
	if len(recipients) == 0 {
		return nil, fmt.Errorf("no recipients for quotation %s", quotation.QuotationNumber)
	}

	body := email.Message
	if body == "" {
		body = s.defaultBody(quotation)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", sender)
	m.SetHeader("To", recipients...)
	if len(email.CC) > 0 {
		m.SetHeader("Cc", email.CC...)
	}
	m.SetHeader("Subject", fmt.Sprintf("Quotation %s from %s", quotation.QuotationNumber, s.cfg.OrganisationName))
	m.SetBody("text/plain", body)

	if email.AttachDocx {
		s.attachIfPresent(m, docxPath, quotation.QuotationNumber)
	}
	if email.AttachPdf {
		s.attachIfPresent(m, pdfPath, quotation.QuotationNumber)
	}
	return m, nil
}

// SendQuotation composes and delivers the email over SMTP.
func (s *EmailService) SendQuotation(quotation models.Quotation, email QuotationEmail, docxPath, pdfPath string) error {
	m, err := s.Compose(quotation, email, docxPath, pdfPath)
	if err != nil {
		return err
	}
	if s.dialer == nil {
		return fmt.Errorf("mailer is not initialized")
	}
	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("Failed to send quotation email",
			zap.String("quotation_number", quotation.QuotationNumber),
			zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}
	s.logger.Info("Quotation email sent",
		zap.String("quotation_number", quotation.QuotationNumber),
		zap.Strings("to", m.GetHeader("To")))
	return nil
}

func (s *EmailService) attachIfPresent(m *gomail.Message, path, quotationNumber string) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		s.logger.Warn("Attachment not found for quotation email",
			zap.String("quotation_number", quotationNumber),
			zap.String("filepath", path),
			zap.Error(err))
		return
	}
	m.Attach(path)
}

// defaultBody renders the standard covering text when the caller supplies no
// message of their own.
func (s *EmailService) defaultBody(quotation models.Quotation) string {
	const dateLayout = "02 January 2006"
	totals := s.calc.QuotationTotals(quotation)
	return fmt.Sprintf(
		"Dear %s,\n\n"+
			"Please find attached quotation %s for your review.\n\n"+
			"Date: %s\n"+
			"Valid Until: %s\n"+
			"Grand Total: %s\n\n"+
			"For any queries, please reach out to %s.\n\n"+
			"Regards,\n%s",
		clientName(quotation),
		quotation.QuotationNumber,
		time.Time(quotation.Date).Format(dateLayout),
		quotation.ValidityDate().Format(dateLayout),
		pricing.FormatINR(totals.GrandTotal),
		quotation.PointOfContact,
		s.cfg.OrganisationName)
}

func clientName(quotation models.Quotation) string {
	if quotation.Client != nil && quotation.Client.ClientName != "" {
		return quotation.Client.ClientName
	}
	return "Sir/Madam"
}
