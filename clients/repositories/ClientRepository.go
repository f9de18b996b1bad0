package repositories

import (
	"quotation-backend/db/models"

	"gorm.io/gorm"
)

type ClientRepository interface {
	CreateClient(client *models.Client) (*models.Client, error)
	UpdateClient(client *models.Client) (*models.Client, error)
	GetClientByID(id string) (*models.Client, error)
	GetClientByEmail(email string) (*models.Client, error)
	GetFilteredClients(pageSize int, offset int, filters map[string]string) ([]models.Client, int64, error)
	GetAllActiveClients() ([]models.Client, error)
	SetActive(id string, active bool) (*models.Client, error)
	HasQuotations(id string) (bool, error)
	DeleteClient(id string) error
	CreateAuditLog(entry *models.ClientAuditLog) error
	GetAuditLogs(clientID string) ([]models.ClientAuditLog, error)
}

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) CreateClient(client *models.Client) (*models.Client, error) {
	if err := r.db.Create(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

func (r *clientRepository) UpdateClient(client *models.Client) (*models.Client, error) {
	if err := r.db.Save(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

func (r *clientRepository) GetClientByID(id string) (*models.Client, error) {
	var client models.Client
	if err := r.db.First(&client, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) GetClientByEmail(email string) (*models.Client, error) {
	var client models.Client
	if err := r.db.First(&client, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// GetFilteredClients pages through clients, optionally narrowing by a search
// term over name, company and email, and by active state.
func (r *clientRepository) GetFilteredClients(pageSize int, offset int, filters map[string]string) ([]models.Client, int64, error) {
	query := r.db.Model(&models.Client{})

	if search := filters["search"]; search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"client_name ILIKE ? OR company_name ILIKE ? OR email ILIKE ?",
			pattern, pattern, pattern)
	}
	if active := filters["is_active"]; active != "" {
		query = query.Where("is_active = ?", active == "true")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []models.Client
	err := query.
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&clients).Error
	if err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

func (r *clientRepository) GetAllActiveClients() ([]models.Client, error) {
	var clients []models.Client
	err := r.db.Where("is_active = ?", true).Order("client_name").Find(&clients).Error
	return clients, err
}

// SetActive flips the client's active flag. Clients are never hard-deleted;
// quotation history must keep resolving.
func (r *clientRepository) SetActive(id string, active bool) (*models.Client, error) {
	if err := r.db.Model(&models.Client{}).
		Where("id = ?", id).
		Update("is_active", active).Error; err != nil {
		return nil, err
	}
	return r.GetClientByID(id)
}

func (r *clientRepository) HasQuotations(id string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Quotation{}).Where("client_id = ?", id).Count(&count).Error
	return count > 0, err
}

// DeleteClient removes the row outright. Callers must have already verified
// no quotations reference it; the database RESTRICT constraint backstops.
func (r *clientRepository) DeleteClient(id string) error {
	return r.db.Delete(&models.Client{}, "id = ?", id).Error
}

func (r *clientRepository) CreateAuditLog(entry *models.ClientAuditLog) error {
	return r.db.Create(entry).Error
}

func (r *clientRepository) GetAuditLogs(clientID string) ([]models.ClientAuditLog, error) {
	var logs []models.ClientAuditLog
	err := r.db.
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}
