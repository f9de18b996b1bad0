package repositories

import (
	"quotation-backend/config"
	"quotation-backend/db/models"

	"github.com/blevesearch/bleve/v2"
	"go.uber.org/zap"
)

// quotationDocument is the indexed shape of a quotation: the number plus the
// client fields people actually search by.
type quotationDocument struct {
	ID              string `json:"id"`
	QuotationNumber string `json:"quotation_number"`
	ClientName      string `json:"client_name"`
	CompanyName     string `json:"company_name"`
	PointOfContact  string `json:"point_of_contact"`
	Status          string `json:"status"`
	Date            string `json:"date"`
}

func newQuotationDocument(quotation models.Quotation) quotationDocument {
	doc := quotationDocument{
		ID:              quotation.ID.String(),
		QuotationNumber: quotation.QuotationNumber,
		PointOfContact:  quotation.PointOfContact,
		Status:          string(quotation.Status),
		Date:            quotation.Date.Format("2006-01-02"),
	}
	if quotation.Client != nil {
		doc.ClientName = quotation.Client.ClientName
		doc.CompanyName = quotation.Client.CompanyName
	}
	return doc
}

// SearchQuotations combines exact, prefix and fuzzy matching across the
// indexed fields so both full quotation numbers and partial client names hit.
func (r *BleveRepository) SearchQuotations(queryString string) (*bleve.SearchResult, error) {
	booleanQuery := bleve.NewBooleanQuery()
	fieldsToSearch := []string{"quotation_number", "client_name", "company_name", "point_of_contact"}

	for _, field := range fieldsToSearch {
		matchQuery := bleve.NewMatchQuery(queryString)
		matchQuery.SetField(field)
		matchQuery.SetBoost(3.0)
		booleanQuery.AddShould(matchQuery)

		prefixQuery := bleve.NewPrefixQuery(queryString)
		prefixQuery.SetField(field)
		prefixQuery.SetBoost(2.0)
		booleanQuery.AddShould(prefixQuery)

		fuzzyQuery := bleve.NewFuzzyQuery(queryString)
		fuzzyQuery.SetField(field)
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetBoost(1.0)
		booleanQuery.AddShould(fuzzyQuery)
	}
	booleanQuery.SetMinShould(1)

	return r.indexer.SearchIndex(quotationIndex, booleanQuery, 20)
}

func (r *BleveRepository) GetQuotationDocument(id string) (interface{}, error) {
	return r.indexer.GetDocument(quotationIndex, id)
}

func (r *BleveRepository) IndexSingleQuotation(quotation models.Quotation) error {
	err := r.indexer.IndexDocument(quotationIndex, quotation.ID.String(), newQuotationDocument(quotation))
	if err != nil {
		config.Logger.Error("Failed to index quotation into Bleve",
			zap.Error(err), zap.String("quotation_id", quotation.ID.String()))
		return err
	}
	return nil
}

func (r *BleveRepository) IndexExistingQuotations(quotations []models.Quotation) error {
	if len(quotations) == 0 {
		config.Logger.Info("No existing quotations to index into Bleve")
		return nil
	}

	docs := make(map[string]interface{}, len(quotations))
	for _, quotation := range quotations {
		docs[quotation.ID.String()] = newQuotationDocument(quotation)
	}
	if err := r.indexer.BulkIndexDocuments(quotationIndex, docs); err != nil {
		config.Logger.Error("Failed to bulk index existing quotations into Bleve", zap.Error(err))
		return err
	}
	return nil
}

// UpdateQuotation re-indexes the quotation so stale fields do not linger.
func (r *BleveRepository) UpdateQuotation(quotation models.Quotation) error {
	return r.indexer.UpdateDocument(quotationIndex, quotation.ID.String(), newQuotationDocument(quotation))
}

func (r *BleveRepository) DeleteQuotation(quotationID string) error {
	return r.indexer.DeleteDocument(quotationIndex, quotationID)
}
