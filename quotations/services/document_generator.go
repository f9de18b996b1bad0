package services

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"quotation-backend/config"
	"quotation-backend/db/models"
	"quotation-backend/internal/docx"
	"quotation-backend/internal/pricing"

	"go.uber.org/zap"
)

const (
	headerRowCount = 1
	footerRowCount = 3
	pricingColumns = 4
	pricingMinRows = 8
)

// DocxGenerator assembles a quotation document by mutating a copy of the
// company template in place. The template carries a client details table,
// a quotation summary table and one fully styled pricing section; the
// generator fills the fixed tables and replicates the pricing section per
// location.
type DocxGenerator struct {
	quotation models.Quotation
	calc      pricing.Calculator
	cfg       config.AppConfig
	logger    *zap.Logger
}

func NewDocxGenerator(quotation models.Quotation, cfg config.AppConfig) *DocxGenerator {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocxGenerator{
		quotation: quotation,
		calc:      pricing.NewCalculator(cfg.GSTRate),
		cfg:       cfg,
		logger:    logger,
	}
}

// Generate loads the template, populates it for the quotation and writes the
// result to <outputDir>/docx/<quotation_number>.docx, returning the path.
func (g *DocxGenerator) Generate(templatePath string) (string, error) {
	doc, err := docx.Open(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to load quotation template: %w", err)
	}

	g.populateClientDetails(doc)
	g.populateQuotationSummary(doc)
	g.populatePricingSections(doc)

	outputPath := filepath.Join(g.cfg.OutputDir, "docx", g.quotation.QuotationNumber+".docx")
	if err := doc.Save(outputPath); err != nil {
		return "", fmt.Errorf("failed to save quotation document: %w", err)
	}

	g.logger.Info("Quotation document generated",
		zap.String("quotation_number", g.quotation.QuotationNumber),
		zap.String("path", outputPath))
	return outputPath, nil
}

// populateClientDetails fills the first table in the document. The template
// lays the client block out as a 2x3 grid of labelled cells.
func (g *DocxGenerator) populateClientDetails(doc *docx.Document) {
	tables := doc.Tables()
	if len(tables) == 0 {
		return
	}
	client := g.quotation.Client
	if client == nil {
		return
	}
	table := tables[0]
	setCell(table, 0, 0, "Client Name: "+client.ClientName)
	setCell(table, 0, 1, "Company Name: "+client.CompanyName)
	setCell(table, 1, 0, "Email: "+client.Email)
	setCell(table, 1, 1, "Contact Number: "+client.ContactNumber)
	setCell(table, 2, 0, "Address: "+client.Address)
	setCell(table, 2, 1, "")
}

// populateQuotationSummary fills the second table with date, validity and
// point of contact.
func (g *DocxGenerator) populateQuotationSummary(doc *docx.Document) {
	tables := doc.Tables()
	if len(tables) < 2 {
		return
	}
	table := tables[1]
	date := g.quotation.Date.Format("02-01-2006")
	until := g.quotation.ValidityDate().Format("02-01-2006")
	setCell(table, 0, 0, "Date: "+date)
	setCell(table, 1, 0, fmt.Sprintf("Validity Period: %d days (Until %s)", g.quotation.ValidityPeriod, until))
	setCell(table, 1, 1, "Point of Contact: "+g.quotation.PointOfContact)
}

// populatePricingSections replicates the template's single pricing section
// into one section per location. The first matching table in the template is
// kept as the master; any further pricing tables and their headings are
// leftovers from earlier edits and get removed before replication.
func (g *DocxGenerator) populatePricingSections(doc *docx.Document) {
	locations := orderedLocations(g.quotation.Locations)
	if len(locations) == 0 {
		return
	}

	body := doc.Body()
	tables := doc.Tables()
	pricingIndexes := findPricingTables(tables)
	if len(pricingIndexes) == 0 {
		if len(tables) <= 2 {
			g.logger.Warn("Template has no pricing table, skipping pricing sections",
				zap.String("quotation_number", g.quotation.QuotationNumber))
			return
		}
		// No table matches the shape heuristic; fall back to the first
		// table after the client and summary blocks.
		pricingIndexes = []int{2}
	}

	master := tables[pricingIndexes[0]]
	for i := len(pricingIndexes) - 1; i >= 1; i-- {
		body.Remove(tables[pricingIndexes[i]].Elem)
	}

	headingIndex := findPricingHeading(doc.Paragraphs())
	clearDuplicateHeadings(doc.Paragraphs(), headingIndex)

	first := locations[0]
	var headingElem *docx.Node
	if headingIndex >= 0 {
		heading := doc.Paragraphs()[headingIndex]
		heading.SetText(pricingHeading(first.LocationName))
		headingElem = heading.Elem
	}
	g.fillLocationTable(master, first)

	anchor := master.Elem
	for _, location := range locations[1:] {
		if headingElem != nil {
			headingClone := headingElem.Clone()
			docx.Paragraph{Elem: headingClone}.SetText(pricingHeading(location.LocationName))
			body.InsertAfter(headingClone, anchor)
			anchor = headingClone
		}
		tableClone := docx.Table{Elem: master.Elem.Clone()}
		body.InsertAfter(tableClone.Elem, anchor)
		anchor = tableClone.Elem
		g.fillLocationTable(tableClone, location)
	}
}

// fillLocationTable resizes the item rows to match the location's item count
// and rewrites the item and totals rows. Extra item rows are cloned from the
// first one so the template styling carries over.
func (g *DocxGenerator) fillLocationTable(table docx.Table, location models.QuotationLocation) {
	items := orderedItems(location.Items)

	rows := table.Rows()
	if len(rows) < headerRowCount+footerRowCount {
		return
	}
	available := len(rows) - headerRowCount - footerRowCount
	if len(items) > available {
		reference := rows[headerRowCount].Elem
		insertAt := len(rows) - footerRowCount
		for n := available; n < len(items); n++ {
			clone := docx.Row{Elem: reference.Clone()}
			clone.ClearText()
			table.InsertRowAt(insertAt, clone.Elem)
			insertAt++
		}
	} else if len(items) < available {
		table.RemoveRows(headerRowCount+len(items), headerRowCount+available)
	}

	rows = table.Rows()
	for i, item := range items {
		g.fillItemRow(rows[headerRowCount+i], item)
	}
	g.updateTotals(table, g.calc.LocationTotals(location))
}

func (g *DocxGenerator) fillItemRow(row docx.Row, item models.QuotationItem) {
	if pricing.Malformed(item) {
		g.logger.Warn("Item value failed to parse, rendering zero total",
			zap.String("quotation_number", g.quotation.QuotationNumber),
			zap.String("item_description", string(item.ItemDescription)),
			zap.String("unit_cost", item.UnitCost),
			zap.String("quantity", item.Quantity))
	}
	cells := row.Cells()
	if len(cells) < pricingColumns {
		return
	}
	cells[0].SetText(item.ItemDescription.Label())
	cells[1].SetText(pricing.DisplayUnitCost(item.UnitCost))
	cells[2].SetText(pricing.DisplayQuantity(item.Quantity))
	cells[3].SetText(pricing.DisplayTotal(item))
}

// updateTotals rewrites the last cell of the subtotal, GST and grand total
// rows, located by their label text rather than position.
func (g *DocxGenerator) updateTotals(table docx.Table, totals pricing.Totals) {
	for _, row := range table.Rows() {
		cells := row.Cells()
		if len(cells) == 0 {
			continue
		}
		last := cells[len(cells)-1]
		for _, cell := range cells {
			text := strings.ToLower(cell.Text())
			switch {
			case strings.Contains(text, "grand total"):
				last.SetText(pricing.FormatINR(totals.GrandTotal))
			case strings.Contains(text, "subtotal") || strings.Contains(text, "sub-total"):
				last.SetText(pricing.FormatINR(totals.Subtotal))
			case strings.Contains(text, "gst"):
				last.SetText(pricing.FormatINR(totals.GST))
			default:
				continue
			}
			break
		}
	}
}

func setCell(table docx.Table, row, col int, text string) {
	rows := table.Rows()
	if row >= len(rows) {
		return
	}
	cells := rows[row].Cells()
	if col >= len(cells) {
		return
	}
	cells[col].SetText(text)
}

// findPricingTables returns the indexes of tables after the client and
// summary blocks whose shape matches the pricing layout.
func findPricingTables(tables []docx.Table) []int {
	var indexes []int
	for i := 2; i < len(tables); i++ {
		if tables[i].ColumnCount() == pricingColumns && len(tables[i].Rows()) >= pricingMinRows {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

// findPricingHeading locates the section heading paragraph in the template.
func findPricingHeading(paragraphs []docx.Paragraph) int {
	for i, p := range paragraphs {
		text := strings.ToUpper(p.Text())
		if !strings.Contains(text, "PRICING") {
			continue
		}
		if strings.Contains(text, "DETAILS") || strings.Contains(text, "NCR") || strings.Contains(text, "REGION") {
			return i
		}
	}
	return -1
}

// clearDuplicateHeadings blanks any pricing heading other than the one kept
// for the first location.
func clearDuplicateHeadings(paragraphs []docx.Paragraph, keep int) {
	for i, p := range paragraphs {
		if i == keep {
			continue
		}
		text := strings.ToUpper(p.Text())
		if strings.Contains(text, "PRICING") &&
			(strings.Contains(text, "DETAILS") || strings.Contains(text, "NCR") || strings.Contains(text, "REGION")) {
			p.SetText("")
		}
	}
}

func pricingHeading(locationName string) string {
	return "PRICING DETAILS – " + strings.ToUpper(locationName)
}

func orderedLocations(locations []models.QuotationLocation) []models.QuotationLocation {
	sorted := make([]models.QuotationLocation, len(locations))
	copy(sorted, locations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return sorted
}

func orderedItems(items []models.QuotationItem) []models.QuotationItem {
	sorted := make([]models.QuotationItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return sorted
}
