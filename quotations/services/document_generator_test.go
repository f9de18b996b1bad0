package services

import (
	"path/filepath"
	"testing"
	"time"

	"quotation-backend/config"
	"quotation-backend/db/models"
	"quotation-backend/internal/docx"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func testAppConfig(t *testing.T) config.AppConfig {
	t.Helper()
	return config.AppConfig{
		GSTRate:          decimal.RequireFromString("0.18"),
		OutputDir:        t.TempDir(),
		OrganisationName: "Godamwale",
	}
}

// buildTemplate assembles the minimal company template shape: client table,
// summary table, pricing heading and one styled pricing table with a header
// row, four item rows and three totals rows.
func buildTemplate(t *testing.T) string {
	t.Helper()

	doc := docx.New()

	doc.AddTable(3, 2)
	doc.AddTable(2, 2)

	doc.AddParagraph("PRICING DETAILS – LOCATION")

	pricing := doc.AddTable(8, 4)
	rows := pricing.Rows()
	headers := []string{"Service", "Unit Cost", "Quantity", "Total"}
	for i, h := range headers {
		rows[0].Cells()[i].SetText(h)
	}
	rows[5].Cells()[0].SetText("Subtotal")
	rows[6].Cells()[0].SetText("GST @ 18%")
	rows[7].Cells()[0].SetText("Grand Total")

	path := filepath.Join(t.TempDir(), "template.docx")
	require.NoError(t, doc.Save(path))
	return path
}

func testQuotation() models.Quotation {
	return models.Quotation{
		QuotationNumber: "GW-Q-20260815-0001",
		Date:            models.DateOnly(mustDate(2026, 8, 15)),
		ValidityPeriod:  30,
		PointOfContact:  "Priya Nair",
		Status:          models.DraftQuotation,
		Client: &models.Client{
			ClientName:    "Rahul Mehta",
			CompanyName:   "Acme Traders",
			Email:         "rahul@acmetraders.in",
			ContactNumber: "+91 98200 12345",
			Address:       "14 MG Road, Pune",
		},
		Locations: []models.QuotationLocation{
			{
				LocationName: "Bhiwandi",
				Order:        0,
				Items: []models.QuotationItem{
					{ItemDescription: models.StorageCharges, UnitCost: "100", Quantity: "5", Order: 0},
				},
			},
			{
				LocationName: "Nagpur",
				Order:        1,
				Items: []models.QuotationItem{
					{ItemDescription: models.InboundHandling, UnitCost: "50", Quantity: "2", Order: 0},
					{ItemDescription: models.ValueAdded, UnitCost: "at actual", Quantity: "1", Order: 1},
				},
			},
		},
	}
}

func cellText(table docx.Table, row, col int) string {
	return table.Rows()[row].Cells()[col].Text()
}

func TestGenerateBuildsOneSectionPerLocation(t *testing.T) {
	cfg := testAppConfig(t)
	templatePath := buildTemplate(t)
	quotation := testQuotation()

	generator := NewDocxGenerator(quotation, cfg)
	outPath, err := generator.Generate(templatePath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "docx", "GW-Q-20260815-0001.docx"), outPath)

	doc, err := docx.Open(outPath)
	require.NoError(t, err)

	tables := doc.Tables()
	require.Len(t, tables, 4)

	// Client details
	assert.Equal(t, "Client Name: Rahul Mehta", cellText(tables[0], 0, 0))
	assert.Equal(t, "Company Name: Acme Traders", cellText(tables[0], 0, 1))
	assert.Equal(t, "Email: rahul@acmetraders.in", cellText(tables[0], 1, 0))
	assert.Equal(t, "Address: 14 MG Road, Pune", cellText(tables[0], 2, 0))

	// Summary
	assert.Equal(t, "Date: 15-08-2026", cellText(tables[1], 0, 0))
	assert.Equal(t, "Validity Period: 30 days (Until 14-09-2026)", cellText(tables[1], 1, 0))
	assert.Equal(t, "Point of Contact: Priya Nair", cellText(tables[1], 1, 1))

	// First section shrank to one item row: header + 1 item + 3 totals.
	first := tables[2]
	require.Len(t, first.Rows(), 5)
	assert.Equal(t, "Storage Charges (per pallet per month)", cellText(first, 1, 0))
	assert.Equal(t, "₹ 100.00", cellText(first, 1, 1))
	assert.Equal(t, "5", cellText(first, 1, 2))
	assert.Equal(t, "₹ 500.00", cellText(first, 1, 3))
	assert.Equal(t, "₹ 500.00", cellText(first, 2, 3))
	assert.Equal(t, "₹ 90.00", cellText(first, 3, 3))
	assert.Equal(t, "₹ 590.00", cellText(first, 4, 3))

	// Second section grew back to two item rows.
	second := tables[3]
	require.Len(t, second.Rows(), 6)
	assert.Equal(t, "Inbound Handling (per unit)", cellText(second, 1, 0))
	assert.Equal(t, "₹ 100.00", cellText(second, 1, 3))
	assert.Equal(t, "Value-Added Services", cellText(second, 2, 0))
	assert.Equal(t, "At Actual", cellText(second, 2, 1))
	assert.Equal(t, "N/A", cellText(second, 2, 3))
	assert.Equal(t, "₹ 100.00", cellText(second, 3, 3))
	assert.Equal(t, "₹ 18.00", cellText(second, 4, 3))
	assert.Equal(t, "₹ 118.00", cellText(second, 5, 3))

	// Headings renamed per location, clone carries its own heading.
	var headings []string
	for _, p := range doc.Paragraphs() {
		if p.Text() != "" {
			headings = append(headings, p.Text())
		}
	}
	assert.Equal(t, []string{"PRICING DETAILS – BHIWANDI", "PRICING DETAILS – NAGPUR"}, headings)
}

func TestGenerateRemovesSurplusPricingTables(t *testing.T) {
	cfg := testAppConfig(t)

	doc := docx.New()
	doc.AddTable(3, 2)
	doc.AddTable(2, 2)
	doc.AddParagraph("PRICING DETAILS – LOCATION")
	for i := 0; i < 3; i++ {
		pricing := doc.AddTable(8, 4)
		rows := pricing.Rows()
		rows[5].Cells()[0].SetText("Subtotal")
		rows[6].Cells()[0].SetText("GST")
		rows[7].Cells()[0].SetText("Grand Total")
	}
	templatePath := filepath.Join(t.TempDir(), "template.docx")
	require.NoError(t, doc.Save(templatePath))

	quotation := testQuotation()
	quotation.Locations = quotation.Locations[:1]

	generator := NewDocxGenerator(quotation, cfg)
	outPath, err := generator.Generate(templatePath)
	require.NoError(t, err)

	out, err := docx.Open(outPath)
	require.NoError(t, err)
	assert.Len(t, out.Tables(), 3)
}

func TestGenerateNoLocationsLeavesTemplateSections(t *testing.T) {
	cfg := testAppConfig(t)
	templatePath := buildTemplate(t)

	quotation := testQuotation()
	quotation.Locations = nil

	generator := NewDocxGenerator(quotation, cfg)
	outPath, err := generator.Generate(templatePath)
	require.NoError(t, err)

	out, err := docx.Open(outPath)
	require.NoError(t, err)
	tables := out.Tables()
	require.Len(t, tables, 3)
	assert.Len(t, tables[2].Rows(), 8)
	assert.Equal(t, "Client Name: Rahul Mehta", cellText(tables[0], 0, 0))
}

func TestGenerateLocationWithNoItems(t *testing.T) {
	cfg := testAppConfig(t)
	templatePath := buildTemplate(t)

	quotation := testQuotation()
	quotation.Locations = []models.QuotationLocation{
		{LocationName: "Bhiwandi", Order: 0},
	}

	generator := NewDocxGenerator(quotation, cfg)
	outPath, err := generator.Generate(templatePath)
	require.NoError(t, err)

	out, err := docx.Open(outPath)
	require.NoError(t, err)
	section := out.Tables()[2]
	// Header plus three totals rows, zero item rows.
	require.Len(t, section.Rows(), 4)
	assert.Equal(t, "₹ 0.00", cellText(section, 1, 3))
	assert.Equal(t, "₹ 0.00", cellText(section, 3, 3))
}

func TestGenerateLocationsRenderInOrder(t *testing.T) {
	cfg := testAppConfig(t)
	templatePath := buildTemplate(t)

	quotation := testQuotation()
	quotation.Locations[0].Order = 1
	quotation.Locations[1].Order = 0

	generator := NewDocxGenerator(quotation, cfg)
	outPath, err := generator.Generate(templatePath)
	require.NoError(t, err)

	out, err := docx.Open(outPath)
	require.NoError(t, err)
	var headings []string
	for _, p := range out.Paragraphs() {
		if p.Text() != "" {
			headings = append(headings, p.Text())
		}
	}
	assert.Equal(t, []string{"PRICING DETAILS – NAGPUR", "PRICING DETAILS – BHIWANDI"}, headings)
}
