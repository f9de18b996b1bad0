package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

//
// ENUM DEFINITIONS
//

type QuotationStatus string

const (
	DraftQuotation    QuotationStatus = "draft"
	SentQuotation     QuotationStatus = "sent"
	AcceptedQuotation QuotationStatus = "accepted"
	RejectedQuotation QuotationStatus = "rejected"
)

// QuotationAction enumerates the auditable quotation events.
type QuotationAction string

const (
	QuotationCreated       QuotationAction = "created"
	QuotationModified      QuotationAction = "modified"
	QuotationDocxGenerated QuotationAction = "docx_generated"
	QuotationPdfGenerated  QuotationAction = "pdf_generated"
	QuotationEmailSent     QuotationAction = "email_sent"
	QuotationStatusChanged QuotationAction = "status_changed"
	QuotationDownloaded    QuotationAction = "downloaded"
)

// ItemDescription is the fixed enumeration of service types a line item can
// carry.
type ItemDescription string

const (
	StorageCharges    ItemDescription = "storage_charges"
	InboundHandling   ItemDescription = "inbound_handling"
	OutboundHandling  ItemDescription = "outbound_handling"
	PickPack          ItemDescription = "pick_pack"
	PackagingMaterial ItemDescription = "packaging_material"
	LabellingServices ItemDescription = "labelling_services"
	WMSPlatform       ItemDescription = "wms_platform"
	ValueAdded        ItemDescription = "value_added"
)

var itemDescriptionLabels = map[ItemDescription]string{
	StorageCharges:    "Storage Charges (per pallet per month)",
	InboundHandling:   "Inbound Handling (per unit)",
	OutboundHandling:  "Outbound Handling (per unit)",
	PickPack:          "Pick & Pack (per order)",
	PackagingMaterial: "Packaging Material",
	LabellingServices: "Labelling Services",
	WMSPlatform:       "WMS Platform Access (monthly per pallet)",
	ValueAdded:        "Value-Added Services",
}

// Label returns the human-readable form used in documents and emails.
func (d ItemDescription) Label() string {
	if label, ok := itemDescriptionLabels[d]; ok {
		return label
	}
	return string(d)
}

// Valid reports whether the description is part of the fixed enumeration.
func (d ItemDescription) Valid() bool {
	_, ok := itemDescriptionLabels[d]
	return ok
}

//
// MODELS
//

// Quotation is the master quotation record. The quotation number is assigned
// on first create and never changes afterwards; the unique index backs the
// numbering retry in the repository.
type Quotation struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;" json:"id"`
	QuotationNumber string          `gorm:"uniqueIndex;not null" json:"quotation_number"`
	ClientID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"client_id"`
	Date            DateOnly        `gorm:"type:date;not null" json:"date"`
	ValidityPeriod  int             `gorm:"default:30" json:"validity_period"` // days, 1-365
	PointOfContact  string          `gorm:"not null" json:"point_of_contact"`
	Status          QuotationStatus `gorm:"type:varchar(20);default:'draft'" json:"status"`
	CreatedBy       *string         `json:"created_by"`
	CreatedByEmail  *string         `json:"created_by_email"`

	// Relationships
	Client    *Client             `gorm:"foreignKey:ClientID;constraint:OnDelete:RESTRICT" json:"client,omitempty"`
	Locations []QuotationLocation `gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE" json:"locations,omitempty"`
	AuditLogs []QuotationAuditLog `gorm:"foreignKey:QuotationID" json:"audit_logs,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ValidityDate returns the last day the quotation remains valid.
func (q *Quotation) ValidityDate() time.Time {
	return time.Time(q.Date).AddDate(0, 0, q.ValidityPeriod)
}

// QuotationLocation is a sub-quotation scoped to one service site. Render
// sequence within a quotation is Order then ID; duplicate Order values are
// tolerated.
type QuotationLocation struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	QuotationID  uuid.UUID `gorm:"type:uuid;not null;index" json:"quotation_id"`
	LocationName string    `gorm:"not null" json:"location_name"` // e.g. NCR, Bhiwandi, Mumbai
	Order        int       `gorm:"default:0" json:"order"`

	Items []QuotationItem `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE" json:"items,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// QuotationItem is a line item under a location. UnitCost and Quantity hold
// either a non-negative decimal literal or the sentinel "at actual" (stored
// lowercase); parsing and totals live in internal/pricing.
type QuotationItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;" json:"id"`
	LocationID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"location_id"`
	ItemDescription ItemDescription `gorm:"type:varchar(100);not null" json:"item_description"`
	UnitCost        string          `gorm:"type:varchar(50);not null" json:"unit_cost"`
	Quantity        string          `gorm:"type:varchar(50);not null" json:"quantity"`
	Order           int             `gorm:"default:0" json:"order"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// QuotationAuditLog is an append-only record of quotation actions. Created by
// the service layer only; no update or delete path exists.
type QuotationAuditLog struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;" json:"id"`
	QuotationID uuid.UUID       `gorm:"type:uuid;not null;index" json:"quotation_id"`
	Action      QuotationAction `gorm:"type:varchar(50);not null" json:"action"`
	UserID      *string         `json:"user_id"`
	Changes     datatypes.JSON  `json:"changes"`
	Metadata    datatypes.JSON  `json:"metadata"`
	IPAddress   *string         `json:"ip_address"`

	Quotation *Quotation `gorm:"foreignKey:QuotationID" json:"quotation,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

//
// HOOKS
//

func (q *Quotation) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

func (l *QuotationLocation) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (i *QuotationItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (qal *QuotationAuditLog) BeforeCreate(tx *gorm.DB) error {
	if qal.ID == uuid.Nil {
		qal.ID = uuid.New()
	}
	return nil
}
