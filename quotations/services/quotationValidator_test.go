package services

import (
	"testing"

	"quotation-backend/db/models"
	"quotation-backend/quotations/requests"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() requests.CreateQuotationRequest {
	return requests.CreateQuotationRequest{
		ClientID:       uuid.NewString(),
		Date:           "2026-08-15",
		ValidityPeriod: 30,
		PointOfContact: "Priya Nair",
		Locations: []requests.QuotationLocationRequest{
			{
				LocationName: "Bhiwandi",
				Items: []requests.QuotationItemRequest{
					{ItemDescription: "storage_charges", UnitCost: "100", Quantity: "5"},
				},
			},
		},
	}
}

func TestValidateCreateQuotationBuildsTree(t *testing.T) {
	req := validCreateRequest()
	quotation, msg := ValidateCreateQuotation(&req)
	require.Empty(t, msg)

	assert.Equal(t, models.DraftQuotation, quotation.Status)
	require.Len(t, quotation.Locations, 1)
	assert.Equal(t, 0, quotation.Locations[0].Order)
	require.Len(t, quotation.Locations[0].Items, 1)
	assert.Equal(t, "100", quotation.Locations[0].Items[0].UnitCost)
	assert.Equal(t, "5", quotation.Locations[0].Items[0].Quantity)
}

func TestValidateCreateQuotationNormalizesMoney(t *testing.T) {
	req := validCreateRequest()
	req.Locations[0].Items = []requests.QuotationItemRequest{
		{ItemDescription: "storage_charges", UnitCost: "", Quantity: "0"},
		{ItemDescription: "pick_pack", UnitCost: "0.00", Quantity: "-3"},
	}

	quotation, msg := ValidateCreateQuotation(&req)
	require.Empty(t, msg)

	items := quotation.Locations[0].Items
	assert.Equal(t, "at actual", items[0].UnitCost)
	assert.Equal(t, "at actual", items[0].Quantity)
	assert.Equal(t, "at actual", items[1].UnitCost)
	assert.Equal(t, "at actual", items[1].Quantity)
}

func TestValidateCreateQuotationNegativeCost(t *testing.T) {
	req := validCreateRequest()
	req.Locations[0].Items[0].UnitCost = "-10"

	_, msg := ValidateCreateQuotation(&req)
	assert.Contains(t, msg, "positive")
}

func TestValidateCreateQuotationValidityBounds(t *testing.T) {
	for _, validity := range []int{-1, 366, 1000} {
		req := validCreateRequest()
		req.ValidityPeriod = validity
		_, msg := ValidateCreateQuotation(&req)
		assert.Contains(t, msg, "validity_period")
	}

	req := validCreateRequest()
	req.ValidityPeriod = 0
	quotation, msg := ValidateCreateQuotation(&req)
	require.Empty(t, msg)
	assert.Equal(t, 30, quotation.ValidityPeriod)
}

func TestValidateCreateQuotationUnknownItemDescription(t *testing.T) {
	req := validCreateRequest()
	req.Locations[0].Items[0].ItemDescription = "space_rent"

	_, msg := ValidateCreateQuotation(&req)
	assert.Contains(t, msg, "item_description")
}

func TestValidateCreateQuotationRequiresLocation(t *testing.T) {
	req := validCreateRequest()
	req.Locations = nil

	_, msg := ValidateCreateQuotation(&req)
	assert.Contains(t, msg, "location")
}

func TestValidateCreateQuotationBadClientID(t *testing.T) {
	req := validCreateRequest()
	req.ClientID = "not-a-uuid"

	_, msg := ValidateCreateQuotation(&req)
	assert.Contains(t, msg, "client_id")
}

func TestValidateStatus(t *testing.T) {
	status, msg := ValidateStatus("Accepted")
	require.Empty(t, msg)
	assert.Equal(t, models.AcceptedQuotation, status)

	_, msg = ValidateStatus("archived")
	assert.NotEmpty(t, msg)
}

func TestValidateUpdateQuotationPreservesUnsetFields(t *testing.T) {
	existing := testQuotation()
	existing.ID = uuid.New()
	existing.ClientID = uuid.New()

	req := requests.UpdateQuotationRequest{
		PointOfContact: "Amit Shah",
		Locations: []requests.QuotationLocationRequest{
			{
				LocationName: "Nagpur",
				Items: []requests.QuotationItemRequest{
					{ItemDescription: "inbound_handling", UnitCost: "50", Quantity: "2"},
				},
			},
		},
	}

	updated, msg := ValidateUpdateQuotation(&existing, &req)
	require.Empty(t, msg)
	assert.Equal(t, existing.ClientID, updated.ClientID)
	assert.Equal(t, existing.ValidityPeriod, updated.ValidityPeriod)
	assert.Equal(t, "Amit Shah", updated.PointOfContact)
	require.Len(t, updated.Locations, 1)
	assert.Equal(t, "Nagpur", updated.Locations[0].LocationName)
}
