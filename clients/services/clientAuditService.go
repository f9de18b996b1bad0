package services

import (
	"encoding/json"

	"quotation-backend/clients/repositories"
	"quotation-backend/config"
	"quotation-backend/db/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// FieldChange records one tracked field's transition for the audit trail.
type FieldChange struct {
	Old interface{} `json:"old"`
	New interface{} `json:"new"`
}

// ClientAuditService writes the append-only client audit trail. Logging
// failures never abort the action being audited.
type ClientAuditService struct {
	repo   repositories.ClientRepository
	logger *zap.Logger
}

func NewClientAuditService(repo repositories.ClientRepository) *ClientAuditService {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClientAuditService{repo: repo, logger: logger}
}

func (s *ClientAuditService) LogAction(clientID uuid.UUID, action models.ClientAction, userID, ip *string, changes map[string]FieldChange) {
	entry := models.ClientAuditLog{
		ClientID:  clientID,
		Action:    action,
		UserID:    userID,
		IPAddress: ip,
	}
	if len(changes) > 0 {
		if raw, err := json.Marshal(changes); err == nil {
			entry.Changes = datatypes.JSON(raw)
		}
	}
	if err := s.repo.CreateAuditLog(&entry); err != nil {
		s.logger.Error("Failed to write client audit log",
			zap.String("client_id", clientID.String()),
			zap.String("action", string(action)),
			zap.Error(err))
	}
}

// TrackChanges diffs the editable client fields.
func (s *ClientAuditService) TrackChanges(before, after models.Client) map[string]FieldChange {
	changes := make(map[string]FieldChange)
	if before.ClientName != after.ClientName {
		changes["client_name"] = FieldChange{Old: before.ClientName, New: after.ClientName}
	}
	if before.CompanyName != after.CompanyName {
		changes["company_name"] = FieldChange{Old: before.CompanyName, New: after.CompanyName}
	}
	if before.Email != after.Email {
		changes["email"] = FieldChange{Old: before.Email, New: after.Email}
	}
	if before.ContactNumber != after.ContactNumber {
		changes["contact_number"] = FieldChange{Old: before.ContactNumber, New: after.ContactNumber}
	}
	if before.Address != after.Address {
		changes["address"] = FieldChange{Old: before.Address, New: after.Address}
	}
	if before.IsActive != after.IsActive {
		changes["is_active"] = FieldChange{Old: before.IsActive, New: after.IsActive}
	}
	return changes
}
