package repositories

import (
	"quotation-backend/config"
	"quotation-backend/db/models"

	"github.com/blevesearch/bleve/v2"
	"go.uber.org/zap"
)

type clientDocument struct {
	ID            string `json:"id"`
	ClientName    string `json:"client_name"`
	CompanyName   string `json:"company_name"`
	Email         string `json:"email"`
	ContactNumber string `json:"contact_number"`
	IsActive      bool   `json:"is_active"`
}

func newClientDocument(client models.Client) clientDocument {
	return clientDocument{
		ID:            client.ID.String(),
		ClientName:    client.ClientName,
		CompanyName:   client.CompanyName,
		Email:         client.Email,
		ContactNumber: client.ContactNumber,
		IsActive:      client.IsActive,
	}
}

func (r *BleveRepository) SearchClients(queryString string) (*bleve.SearchResult, error) {
	booleanQuery := bleve.NewBooleanQuery()
	fieldsToSearch := []string{"client_name", "company_name", "email", "contact_number"}

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

	return r.indexer.SearchIndex(clientIndex, booleanQuery, 20)
}

func (r *BleveRepository) GetClientDocument(id string) (interface{}, error) {
	return r.indexer.GetDocument(clientIndex, id)
}

func (r *BleveRepository) IndexSingleClient(client models.Client) error {
	err := r.indexer.IndexDocument(clientIndex, client.ID.String(), newClientDocument(client))
	if err != nil {
		config.Logger.Error("Failed to index client into Bleve",
			zap.Error(err), zap.String("client_id", client.ID.String()))
		return err
	}
	return nil
}

func (r *BleveRepository) IndexExistingClients(clients []models.Client) error {
	if len(clients) == 0 {
		config.Logger.Info("No existing clients to index into Bleve")
		return nil
	}

	docs := make(map[string]interface{}, len(clients))
	for _, client := range clients {
		docs[client.ID.String()] = newClientDocument(client)
	}
	if err := r.indexer.BulkIndexDocuments(clientIndex, docs); err != nil {
		config.Logger.Error("Failed to bulk index existing clients into Bleve", zap.Error(err))
		return err
	}
	return nil
}

func (r *BleveRepository) UpdateClient(client models.Client) error {
	return r.indexer.UpdateDocument(clientIndex, client.ID.String(), newClientDocument(client))
}

func (r *BleveRepository) DeleteClient(clientID string) error {
	return r.indexer.DeleteDocument(clientIndex, clientID)
}
