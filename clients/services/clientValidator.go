package services

import (
	"errors"
	"regexp"
	"strings"

	"quotation-backend/clients/repositories"
	"quotation-backend/db/models"

	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateClient checks the required client fields. A non-empty return is the
// validation error to report.
func ValidateClient(client *models.Client) string {
	if strings.TrimSpace(client.ClientName) == "" {
		return "client_name is required"
	}
	if strings.TrimSpace(client.CompanyName) == "" {
		return "company_name is required"
	}
	if strings.TrimSpace(client.Email) == "" {
		return "email is required"
	}
	if !emailPattern.MatchString(client.Email) {
		return "email is not a valid address"
	}
	if strings.TrimSpace(client.ContactNumber) == "" {
		return "contact_number is required"
	}
	if strings.TrimSpace(client.Address) == "" {
		return "address is required"
	}
	return ""
}

// ValidateUniqueEmail rejects a second client on the same address. The
// current client's own record is ignored on update.
func ValidateUniqueEmail(email string, selfID string, repo repositories.ClientRepository) string {
	existing, err := repo.GetClientByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ""
		}
		return "failed to verify email uniqueness"
	}
	if existing.ID.String() != selfID {
		return "a client with that email already exists"
	}
	return ""
}
