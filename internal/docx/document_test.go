package docx

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocumentRoundTrip(t *testing.T) {
	doc := New()
	doc.AddParagraph("QUOTATION")
	table := doc.AddTable(3, 2)
	table.Rows()[0].Cells()[0].SetText("Client Name: Acme")

	data, err := doc.Bytes()
	require.NoError(t, err)

	reopened, err := OpenBytes(data)
	require.NoError(t, err)

	paragraphs := reopened.Paragraphs()
	require.Len(t, paragraphs, 1)
	assert.Equal(t, "QUOTATION", paragraphs[0].Text())

	tables := reopened.Tables()
	require.Len(t, tables, 1)
	assert.Equal(t, 2, tables[0].ColumnCount())
	require.Len(t, tables[0].Rows(), 3)
	assert.Equal(t, "Client Name: Acme", tables[0].Rows()[0].Cells()[0].Text())
}

func TestSaveAndOpen(t *testing.T) {
	doc := New()
	doc.AddParagraph("saved")

	path := filepath.Join(t.TempDir(), "out", "test.docx")
	require.NoError(t, doc.Save(path))

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "saved", reopened.Paragraphs()[0].Text())
}

func TestInsertRowAtPreservesRowStyling(t *testing.T) {
	doc := New()
	table := doc.AddTable(3, 4)

	// Clone a styled row, clear it, and insert before the last row.
	reference := table.Rows()[1]
	clone := Row{Elem: reference.Elem.Clone()}
	clone.Cells()[0].SetText("styled")
	clone.ClearText()
	table.InsertRowAt(2, clone.Elem)

	rows := table.Rows()
	require.Len(t, rows, 4)
	assert.Equal(t, "", rows[2].Cells()[0].Text())
	require.Len(t, rows[2].Cells(), 4)
}

func TestRemoveRows(t *testing.T) {
	doc := New()
	table := doc.AddTable(6, 2)

	table.RemoveRows(2, 4)
	assert.Len(t, table.Rows(), 4)

	// Out-of-range bounds clamp instead of panicking.
	table.RemoveRows(3, 99)
	assert.Len(t, table.Rows(), 3)
}

func TestCellSetTextDropsSurplusParagraphs(t *testing.T) {
	root, err := ParseXML([]byte(`<w:tc><w:tcPr/><w:p><w:r><w:t>one</w:t></w:r></w:p><w:p><w:r><w:t>two</w:t></w:r></w:p></w:tc>`))
	require.NoError(t, err)

	cell := Cell{Elem: root}
	assert.Equal(t, "one\ntwo", cell.Text())

	cell.SetText("merged")
	assert.Equal(t, "merged", cell.Text())
	assert.NotNil(t, root.FirstChild("w:tcPr"))
}

func TestParagraphSetTextKeepsRunStyling(t *testing.T) {
	root, err := ParseXML([]byte(`<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:rPr><w:b/></w:rPr><w:t>old</w:t></w:r></w:p>`))
	require.NoError(t, err)

	p := Paragraph{Elem: root}
	p.SetText("new heading")

	assert.Equal(t, "new heading", p.Text())
	require.NotNil(t, root.FirstChild("w:pPr"), "paragraph properties survive")
	run := root.FirstChild("w:r")
	require.NotNil(t, run)
	assert.NotNil(t, run.FirstChild("w:rPr"), "run styling survives")
}
