package services

import (
	"fmt"
	"strings"
	"time"

	"quotation-backend/db/models"
	"quotation-backend/internal/pricing"
	"quotation-backend/quotations/requests"

	"github.com/google/uuid"
)

const (
	minValidityDays     = 1
	maxValidityDays     = 365
	defaultValidityDays = 30
)

// ValidateCreateQuotation checks the create payload and, when it is valid,
// builds the model tree with normalized money fields and positional ordering.
// A non-empty string is the validation error to report.
func ValidateCreateQuotation(req *requests.CreateQuotationRequest) (*models.Quotation, string) {
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, "client_id must be a valid UUID"
	}

	date := models.Today()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, "date must be in YYYY-MM-DD format"
		}
		date = models.DateOnly(parsed)
	}

	validity := req.ValidityPeriod
	if validity == 0 {
		validity = defaultValidityDays
	}
	if validity < minValidityDays || validity > maxValidityDays {
		return nil, fmt.Sprintf("validity_period must be between %d and %d days", minValidityDays, maxValidityDays)
	}

	if strings.TrimSpace(req.PointOfContact) == "" {
		return nil, "point_of_contact is required"
	}

	locations, msg := buildLocations(req.Locations)
	if msg != "" {
		return nil, msg
	}

	return &models.Quotation{
		QuotationNumber: strings.TrimSpace(req.QuotationNumber),
		ClientID:        clientID,
		Date:            date,
		ValidityPeriod:  validity,
		PointOfContact:  strings.TrimSpace(req.PointOfContact),
		Status:          models.DraftQuotation,
		Locations:       locations,
	}, ""
}

// ValidateUpdateQuotation checks the update payload against the stored
// quotation and returns the replacement model tree.
func ValidateUpdateQuotation(existing *models.Quotation, req *requests.UpdateQuotationRequest) (*models.Quotation, string) {
	updated := *existing

	if req.ClientID != "" {
		clientID, err := uuid.Parse(req.ClientID)
		if err != nil {
			return nil, "client_id must be a valid UUID"
		}
		updated.ClientID = clientID
	}
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, "date must be in YYYY-MM-DD format"
		}
		updated.Date = models.DateOnly(parsed)
	}
	if req.ValidityPeriod != 0 {
		if req.ValidityPeriod < minValidityDays || req.ValidityPeriod > maxValidityDays {
			return nil, fmt.Sprintf("validity_period must be between %d and %d days", minValidityDays, maxValidityDays)
		}
		updated.ValidityPeriod = req.ValidityPeriod
	}
	if req.PointOfContact != "" {
		updated.PointOfContact = strings.TrimSpace(req.PointOfContact)
	}
	if req.Status != "" {
		status, msg := ValidateStatus(req.Status)
		if msg != "" {
			return nil, msg
		}
		updated.Status = status
	}

	locations, msg := buildLocations(req.Locations)
	if msg != "" {
		return nil, msg
	}
	updated.Locations = locations
	return &updated, ""
}

// ValidateStatus parses a lifecycle state name.
func ValidateStatus(raw string) (models.QuotationStatus, string) {
	status := models.QuotationStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch status {
	case models.DraftQuotation, models.SentQuotation, models.AcceptedQuotation, models.RejectedQuotation:
		return status, ""
	default:
		return "", "status must be one of draft, sent, accepted, rejected"
	}
}

// buildLocations validates and normalizes the location tree. Money fields go
// through the pricing normalizers so only clean numerics or the at-actual
// sentinel reach storage.
func buildLocations(reqs []requests.QuotationLocationRequest) ([]models.QuotationLocation, string) {
	if len(reqs) == 0 {
		return nil, "at least one location is required"
	}

	locations := make([]models.QuotationLocation, 0, len(reqs))
	for i, loc := range reqs {
		name := strings.TrimSpace(loc.LocationName)
		if name == "" {
			return nil, fmt.Sprintf("locations[%d]: location_name is required", i)
		}

		items := make([]models.QuotationItem, 0, len(loc.Items))
		for j, item := range loc.Items {
			description := models.ItemDescription(strings.TrimSpace(item.ItemDescription))
			if !description.Valid() {
				return nil, fmt.Sprintf("locations[%d].items[%d]: unknown item_description %q", i, j, item.ItemDescription)
			}

			cost, err := pricing.NormalizeCost(item.UnitCost)
			if err != nil {
				return nil, fmt.Sprintf("locations[%d].items[%d]: %v", i, j, err)
			}
			qty := pricing.NormalizeQuantity(item.Quantity)

			items = append(items, models.QuotationItem{
				ItemDescription: description,
				UnitCost:        cost.Storage(),
				Quantity:        qty.Storage(),
				Order:           j,
			})
		}

		locations = append(locations, models.QuotationLocation{
			LocationName: name,
			Order:        i,
			Items:        items,
		})
	}
	return locations, ""
}
