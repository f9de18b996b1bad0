package controllers

import (
	indexing_repository "quotation-backend/bleve/repositories"
	"quotation-backend/clients/repositories"
	"quotation-backend/clients/services"
)

type ClientController struct {
	ClientRepo repositories.ClientRepository
	BleveRepo  indexing_repository.BleveRepositoryInterface
	Audit      *services.ClientAuditService
}

func NewClientController(clientRepo repositories.ClientRepository, bleveRepo indexing_repository.BleveRepositoryInterface, audit *services.ClientAuditService) *ClientController {
	return &ClientController{
		ClientRepo: clientRepo,
		BleveRepo:  bleveRepo,
		Audit:      audit,
	}
}
