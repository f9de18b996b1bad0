package requests

// CreateQuotationRequest is the payload for creating a quotation. Locations
// and items arrive in display order; the server assigns Order from position.
type CreateQuotationRequest struct {
	ClientID        string                     `json:"client_id"`
	QuotationNumber string                     `json:"quotation_number"`
	Date            string                     `json:"date"`
	ValidityPeriod  int                        `json:"validity_period"`
	PointOfContact  string                     `json:"point_of_contact"`
	Locations       []QuotationLocationRequest `json:"locations"`
}

// UpdateQuotationRequest replaces the quotation's editable fields and its
// whole location tree.
type UpdateQuotationRequest struct {
	ClientID       string                     `json:"client_id"`
	Date           string                     `json:"date"`
	ValidityPeriod int                        `json:"validity_period"`
	PointOfContact string                     `json:"point_of_contact"`
	Status         string                     `json:"status"`
	Locations      []QuotationLocationRequest `json:"locations"`
}

type QuotationLocationRequest struct {
	LocationName string                 `json:"location_name"`
	Items        []QuotationItemRequest `json:"items"`
}

type QuotationItemRequest struct {
	ItemDescription string `json:"item_description"`
	UnitCost        string `json:"unit_cost"`
	Quantity        string `json:"quantity"`
}

// UpdateStatusRequest moves a quotation to a new lifecycle state.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// SendEmailRequest controls one outgoing quotation email.
type SendEmailRequest struct {
	Recipients []string `json:"recipients"`
	CC         []string `json:"cc"`
	Message    string   `json:"message"`
	AttachDocx bool     `json:"attach_docx"`
	AttachPdf  bool     `json:"attach_pdf"`
	Deferred   bool     `json:"deferred"`
}
