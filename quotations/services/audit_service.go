package services

import (
	"encoding/json"
	"strings"

	"quotation-backend/config"
	"quotation-backend/db/models"
	"quotation-backend/quotations/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// FieldChange records one tracked field's transition for the audit trail.
type FieldChange struct {
	Old interface{} `json:"old"`
	New interface{} `json:"new"`
}

// AuditService writes the append-only quotation audit trail. Logging failures
// never abort the action being audited; they are reported and swallowed.
type AuditService struct {
	repo   repositories.QuotationRepository
	logger *zap.Logger
}

func NewAuditService(repo repositories.QuotationRepository) *AuditService {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{repo: repo, logger: logger}
}

// LogAction appends an audit entry for a quotation.
func (s *AuditService) LogAction(quotationID uuid.UUID, action models.QuotationAction, userID, ip *string, changes map[string]FieldChange, metadata map[string]interface{}) {
	entry := models.QuotationAuditLog{
		QuotationID: quotationID,
		Action:      action,
		UserID:      userID,
		IPAddress:   ip,
	}
	if len(changes) > 0 {
		if raw, err := json.Marshal(changes); err == nil {
			entry.Changes = datatypes.JSON(raw)
		}
	}
	if len(metadata) > 0 {
		if raw, err := json.Marshal(metadata); err == nil {
			entry.Metadata = datatypes.JSON(raw)
		}
	}
	if err := s.repo.CreateAuditLog(&entry); err != nil {
		s.logger.Error("Failed to write quotation audit log",
			zap.String("quotation_id", quotationID.String()),
			zap.String("action", string(action)),
			zap.Error(err))
	}
}

// TrackChanges diffs the fields the audit trail cares about and returns the
// transitions, keyed by field name. An empty map means nothing tracked moved.
func (s *AuditService) TrackChanges(before, after models.Quotation) map[string]FieldChange {
	changes := make(map[string]FieldChange)
	if before.ClientID != after.ClientID {
		changes["client"] = FieldChange{Old: before.ClientID.String(), New: after.ClientID.String()}
	}
	if before.ValidityPeriod != after.ValidityPeriod {
		changes["validity_period"] = FieldChange{Old: before.ValidityPeriod, New: after.ValidityPeriod}
	}
	if before.PointOfContact != after.PointOfContact {
		changes["point_of_contact"] = FieldChange{Old: before.PointOfContact, New: after.PointOfContact}
	}
	if before.Status != after.Status {
		changes["status"] = FieldChange{Old: string(before.Status), New: string(after.Status)}
	}
	return changes
}

// GetClientIP resolves the caller's address, preferring the first hop in
// X-Forwarded-For when the request came through a proxy.
func GetClientIP(c *fiber.Ctx) *string {
	forwarded := c.Get("X-Forwarded-For")
	if forwarded != "" {
		parts := strings.Split(forwarded, ",")
		ip := strings.TrimSpace(parts[0])
		if ip != "" {
			return &ip
		}
	}
	ip := c.IP()
	if ip == "" {
		return nil
	}
	return &ip
}
