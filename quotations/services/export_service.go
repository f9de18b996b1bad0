package services

import (
	"bytes"
	"fmt"

	"quotation-backend/config"
	"quotation-backend/db/models"
	"quotation-backend/internal/pricing"

	"github.com/xuri/excelize/v2"
)

// ExportService renders the quotation register as an XLSX workbook for the
// sales team.
type ExportService struct {
	calc pricing.Calculator
}

func NewExportService(cfg config.AppConfig) *ExportService {
	return &ExportService{calc: pricing.NewCalculator(cfg.GSTRate)}
}

var registerHeaders = []string{
	"Quotation Number", "Client", "Company", "Date", "Validity (days)",
	"Point of Contact", "Status", "Subtotal", "GST", "Grand Total",
}

// QuotationRegister writes one row per quotation with its derived totals.
// Quotations must arrive with locations and items preloaded for the totals
// to be meaningful.
func (s *ExportService) QuotationRegister(quotations []models.Quotation) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Quotations"
	f.SetSheetName("Sheet1", sheet)

	for col, header := range registerHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		endCell, _ := excelize.CoordinatesToCellName(len(registerHeaders), 1)
		f.SetCellStyle(sheet, "A1", endCell, style)
	}

	for i, quotation := range quotations {
		totals := s.calc.QuotationTotals(quotation)
		clientName, companyName := "", ""
		if quotation.Client != nil {
			clientName = quotation.Client.ClientName
			companyName = quotation.Client.CompanyName
		}
		row := []interface{}{
			quotation.QuotationNumber,
			clientName,
			companyName,
			quotation.Date.Format("02-01-2006"),
			quotation.ValidityPeriod,
			quotation.PointOfContact,
			string(quotation.Status),
			totals.Subtotal.StringFixed(2),
			totals.GST.StringFixed(2),
			totals.GrandTotal.StringFixed(2),
		}
		startCell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, startCell, &row); err != nil {
			return nil, fmt.Errorf("failed to write export row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render quotation export: %w", err)
	}
	return buf, nil
}
