package repositories

import (
	"errors"
	"fmt"
	"time"

	"quotation-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	quotationNumberPrefix = "GW-Q"
	numberingMaxAttempts  = 5
)

// timeNow supplies the date segment of generated quotation numbers; tests
// pin it.
var timeNow = time.Now

type QuotationRepository interface {
	CreateQuotation(quotation *models.Quotation) (*models.Quotation, error)
	UpdateQuotation(quotation *models.Quotation) (*models.Quotation, error)
	UpdateStatus(id uuid.UUID, status models.QuotationStatus) (*models.Quotation, error)
	GetQuotationByID(id string) (*models.Quotation, error)
	GetFilteredQuotations(pageSize int, offset int, filters map[string]string) ([]models.Quotation, int64, error)
	CreateAuditLog(entry *models.QuotationAuditLog) error
	GetAuditLogs(quotationID string) ([]models.QuotationAuditLog, error)
}

type quotationRepository struct {
	db *gorm.DB
}

func NewQuotationRepository(db *gorm.DB) QuotationRepository {
	return &quotationRepository{db: db}
}

// CreateQuotation persists a quotation with its locations and items. When no
// quotation number is supplied one is generated as GW-Q-YYYYMMDD-NNNN where
// YYYYMMDD is the date of issue (today, not the quotation's own date) and
// NNNN continues that day's sequence. The number column carries a unique
// index; if two transactions race to the same sequence value the insert that
// loses is retried with a bumped counter. Caller-supplied numbers are never
// retried, a duplicate there is the caller's error.
func (r *quotationRepository) CreateQuotation(quotation *models.Quotation) (*models.Quotation, error) {
	generated := quotation.QuotationNumber == ""

	for attempt := 0; attempt < numberingMaxAttempts; attempt++ {
		err := r.db.Transaction(func(tx *gorm.DB) error {
			if generated {
				number, numErr := nextQuotationNumber(tx, timeNow(), attempt)
				if numErr != nil {
					return numErr
				}
				quotation.QuotationNumber = number
			}
			return tx.Create(quotation).Error
		})
		if err == nil {
			return quotation, nil
		}
		if generated && errors.Is(err, gorm.ErrDuplicatedKey) {
			quotation.ID = uuid.Nil
			quotation.QuotationNumber = ""
			continue
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("quotation number %s already exists", quotation.QuotationNumber)
		}
		return nil, err
	}
	return nil, fmt.Errorf("failed to allocate a quotation number after %d attempts", numberingMaxAttempts)
}

// nextQuotationNumber derives the next sequence value for the given issue
// date from the count of numbers already issued under that date's prefix.
func nextQuotationNumber(tx *gorm.DB, date time.Time, attempt int) (string, error) {
	prefix := fmt.Sprintf("%s-%s", quotationNumberPrefix, date.Format("20060102"))
	var count int64
	if err := tx.Model(&models.Quotation{}).
		Where("quotation_number LIKE ?", prefix+"-%").
		Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%04d", prefix, count+1+int64(attempt)), nil
}

// UpdateQuotation replaces the quotation's scalar fields and its whole
// location tree in one transaction. Locations and items are easier to replace
// wholesale than to diff; the audit trail captures what changed.
func (r *quotationRepository) UpdateQuotation(quotation *models.Quotation) (*models.Quotation, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Quotation
		if err := tx.Preload("Locations").First(&existing, "id = ?", quotation.ID).Error; err != nil {
			return err
		}

		for _, location := range existing.Locations {
			if err := tx.Where("location_id = ?", location.ID).Delete(&models.QuotationItem{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("quotation_id = ?", quotation.ID).Delete(&models.QuotationLocation{}).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"client_id":        quotation.ClientID,
			"date":             quotation.Date,
			"validity_period":  quotation.ValidityPeriod,
			"point_of_contact": quotation.PointOfContact,
			"status":           quotation.Status,
		}
		if err := tx.Model(&models.Quotation{}).Where("id = ?", quotation.ID).Updates(updates).Error; err != nil {
			return err
		}

		for i := range quotation.Locations {
			quotation.Locations[i].ID = uuid.Nil
			quotation.Locations[i].QuotationID = quotation.ID
			for j := range quotation.Locations[i].Items {
				quotation.Locations[i].Items[j].ID = uuid.Nil
			}
			if err := tx.Create(&quotation.Locations[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetQuotationByID(quotation.ID.String())
}

func (r *quotationRepository) UpdateStatus(id uuid.UUID, status models.QuotationStatus) (*models.Quotation, error) {
	if err := r.db.Model(&models.Quotation{}).
		Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return nil, err
	}
	return r.GetQuotationByID(id.String())
}

// GetQuotationByID loads the full tree with locations and items in display
// sequence.
func (r *quotationRepository) GetQuotationByID(id string) (*models.Quotation, error) {
	var quotation models.Quotation
	err := r.db.
		Preload("Client").
		Preload("Locations", func(db *gorm.DB) *gorm.DB {
			return db.Order("\"order\", id")
		}).
		Preload("Locations.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("\"order\", created_at")
		}).
		First(&quotation, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quotation, nil
}

// GetFilteredQuotations pages through quotations newest first. The search
// filter matches quotation number, client name and company name; status
// narrows to one lifecycle state.
func (r *quotationRepository) GetFilteredQuotations(pageSize int, offset int, filters map[string]string) ([]models.Quotation, int64, error) {
	query := r.db.Model(&models.Quotation{}).
		Joins("LEFT JOIN clients ON clients.id = quotations.client_id")

	if search := filters["search"]; search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"quotations.quotation_number ILIKE ? OR clients.client_name ILIKE ? OR clients.company_name ILIKE ?",
			pattern, pattern, pattern)
	}
	if status := filters["status"]; status != "" {
		query = query.Where("quotations.status = ?", status)
	}
	if clientID := filters["client_id"]; clientID != "" {
		query = query.Where("quotations.client_id = ?", clientID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var quotations []models.Quotation
	err := query.
		Preload("Client").
		Order("quotations.created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&quotations).Error
	if err != nil {
		return nil, 0, err
	}
	return quotations, total, nil
}

func (r *quotationRepository) CreateAuditLog(entry *models.QuotationAuditLog) error {
	return r.db.Create(entry).Error
}

func (r *quotationRepository) GetAuditLogs(quotationID string) ([]models.QuotationAuditLog, error) {
	var logs []models.QuotationAuditLog
	err := r.db.
		Where("quotation_id = ?", quotationID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}
