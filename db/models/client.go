package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ClientAction enumerates the auditable client events.
type ClientAction string

const (
	ClientCreated       ClientAction = "created"
	ClientModified      ClientAction = "modified"
	ClientStatusChanged ClientAction = "status_changed"
)

// Client represents a customer the quotations are issued to. Clients are
// never hard-deleted; IsActive is flipped off instead so quotation history
// keeps pointing at a real record.
type Client struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	ClientName    string    `gorm:"not null" json:"client_name"`
	CompanyName   string    `gorm:"not null" json:"company_name"`
	Email         string    `gorm:"not null" json:"email"`
	ContactNumber string    `gorm:"not null" json:"contact_number"`
	Address       string    `gorm:"type:text;not null" json:"address"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`

	// Relationships
	Quotations []Quotation      `gorm:"foreignKey:ClientID" json:"quotations,omitempty"`
	AuditLogs  []ClientAuditLog `gorm:"foreignKey:ClientID" json:"audit_logs,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ClientAuditLog is an append-only record of client actions. Created by the
// service layer only; no update or delete path exists.
type ClientAuditLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;" json:"id"`
	ClientID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"client_id"`
	Action    ClientAction   `gorm:"type:varchar(50);not null" json:"action"`
	UserID    *string        `json:"user_id"`
	Changes   datatypes.JSON `json:"changes"`
	IPAddress *string        `json:"ip_address"`

	Client *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (cal *ClientAuditLog) BeforeCreate(tx *gorm.DB) error {
	if cal.ID == uuid.Nil {
		cal.ID = uuid.New()
	}
	return nil
}
