package repositories

import (
	"context"

	bleveindex "quotation-backend/bleve/services"
	"quotation-backend/db/models"
)

const (
	quotationIndex = "quotations"
	clientIndex    = "clients"
)

type BleveRepository struct {
	indexer *bleveindex.IndexingService
}

type BleveRepositoryInterface interface {
	DeleteAllIndices(ctx context.Context) error

	// ==== Quotation Indexing ====
	IndexSingleQuotation(quotation models.Quotation) error
	IndexExistingQuotations(quotations []models.Quotation) error
	UpdateQuotation(quotation models.Quotation) error
	DeleteQuotation(quotationID string) error

	// ==== Client Indexing ====
	IndexSingleClient(client models.Client) error
	IndexExistingClients(clients []models.Client) error
	UpdateClient(client models.Client) error
	DeleteClient(clientID string) error
}

// Constructor returning both the struct and the interface
func NewBleveRepository(indexer *bleveindex.IndexingService) (*BleveRepository, BleveRepositoryInterface) {
	repo := &BleveRepository{indexer: indexer}
	return repo, repo
}

func (r *BleveRepository) DeleteAllIndices(ctx context.Context) error {
	return r.indexer.DeleteAllIndices()
}
