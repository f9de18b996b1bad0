package controllers

import (
	indexing_repository "quotation-backend/bleve/repositories"
	client_repositories "quotation-backend/clients/repositories"
	"quotation-backend/config"
	"quotation-backend/quotations/repositories"
	"quotation-backend/quotations/services"

	"github.com/hibiken/asynq"
)

type QuotationController struct {
	QuotationRepo repositories.QuotationRepository
	ClientRepo    client_repositories.ClientRepository
	BleveRepo     indexing_repository.BleveRepositoryInterface
	Audit         *services.AuditService
	Template      *services.TemplateService
	Pdf           *services.PdfGenerator
	Email         *services.EmailService
	Export        *services.ExportService
	AsynqClient   *asynq.Client
	Cfg           config.AppConfig
}
