package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"quotation-backend/config"
	"quotation-backend/db/models"
	"quotation-backend/quotations/repositories"
	"quotation-backend/quotations/services"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeQuotationEmail = "quotation:send_email"

// QuotationEmailPayload carries everything the worker needs to deliver a
// deferred quotation email. Artifact paths are resolved at enqueue time so
// the worker does not regenerate documents.
type QuotationEmailPayload struct {
	QuotationID string   `json:"quotation_id"`
	Recipients  []string `json:"recipients"`
	CC          []string `json:"cc"`
	Message     string   `json:"message"`
	AttachDocx  bool     `json:"attach_docx"`
	AttachPdf   bool     `json:"attach_pdf"`
	DocxPath    string   `json:"docx_path"`
	PdfPath     string   `json:"pdf_path"`
	UserID      *string  `json:"user_id"`
}

func NewQuotationEmailTask(payload QuotationEmailPayload) (*asynq.Task, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode quotation email payload: %w", err)
	}
	return asynq.NewTask(TypeQuotationEmail, raw, asynq.MaxRetry(3)), nil
}

// EmailTaskHandler processes deferred quotation emails off the queue.
type EmailTaskHandler struct {
	repo   repositories.QuotationRepository
	email  *services.EmailService
	audit  *services.AuditService
	logger *zap.Logger
}

func NewEmailTaskHandler(repo repositories.QuotationRepository, email *services.EmailService, audit *services.AuditService) *EmailTaskHandler {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailTaskHandler{repo: repo, email: email, audit: audit, logger: logger}
}

func (h *EmailTaskHandler) HandleQuotationEmail(ctx context.Context, t *asynq.Task) error {
	var payload QuotationEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("malformed quotation email payload: %v: %w", err, asynq.SkipRetry)
	}

	quotation, err := h.repo.GetQuotationByID(payload.QuotationID)
	if err != nil {
		return fmt.Errorf("failed to load quotation %s: %w", payload.QuotationID, err)
	}

	email := services.QuotationEmail{
		Recipients: payload.Recipients,
		CC:         payload.CC,
		Message:    payload.Message,
		AttachDocx: payload.AttachDocx,
		AttachPdf:  payload.AttachPdf,
	}
	if err := h.email.SendQuotation(*quotation, email, payload.DocxPath, payload.PdfPath); err != nil {
		h.logger.Error("Deferred quotation email failed",
			zap.String("quotation_id", payload.QuotationID),
			zap.Error(err))
		return err
	}

	if id, parseErr := uuid.Parse(payload.QuotationID); parseErr == nil {
		h.audit.LogAction(id, models.QuotationEmailSent, payload.UserID, nil, nil, map[string]interface{}{
			"recipients": payload.Recipients,
			"cc":         payload.CC,
			"deferred":   true,
		})
	}
	return nil
}
