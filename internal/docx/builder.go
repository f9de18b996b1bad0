package docx

const wordprocessingmlNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

// New creates an empty document with the minimal part set. Template fixtures
// for tests are assembled with this plus AddParagraph/AddTable.
func New() *Document {
	root := &Node{
		Name:  "w:document",
		Attrs: []Attr{{Name: "xmlns:w", Value: wordprocessingmlNS}},
	}
	root.Children = append(root.Children, &Node{Name: "w:body"})

	return &Document{
		partOrder: []string{"[Content_Types].xml", "_rels/.rels", documentPart},
		parts: map[string][]byte{
			"[Content_Types].xml": []byte(contentTypesXML),
			"_rels/.rels":         []byte(relsXML),
			documentPart:          nil, // rendered from the tree on save
		},
		root: root,
	}
}

// AddParagraph appends a paragraph of text to the body.
func (d *Document) AddParagraph(text string) Paragraph {
	p := &Node{Name: "w:p"}
	d.Body().Children = append(d.Body().Children, p)
	paragraph := Paragraph{Elem: p}
	paragraph.SetText(text)
	return paragraph
}

// AddTable appends a bordered rows×cols table with empty cells to the body.
func (d *Document) AddTable(rows, cols int) Table {
	tbl := &Node{Name: "w:tbl"}

	tblPr := &Node{Name: "w:tblPr"}
	borders := &Node{Name: "w:tblBorders"}
	for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		border := &Node{Name: "w:" + side}
		border.SetAttr("w:val", "single")
		border.SetAttr("w:sz", "4")
		borders.Children = append(borders.Children, border)
	}
	tblPr.Children = append(tblPr.Children, borders)
	tbl.Children = append(tbl.Children, tblPr)

	grid := &Node{Name: "w:tblGrid"}
	for i := 0; i < cols; i++ {
		col := &Node{Name: "w:gridCol"}
		col.SetAttr("w:w", "2400")
		grid.Children = append(grid.Children, col)
	}
	tbl.Children = append(tbl.Children, grid)

	for r := 0; r < rows; r++ {
		tr := &Node{Name: "w:tr"}
		for c := 0; c < cols; c++ {
			tc := &Node{Name: "w:tc"}
			tc.Children = append(tc.Children, &Node{Name: "w:tcPr"})
			tc.Children = append(tc.Children, &Node{Name: "w:p"})
			tr.Children = append(tr.Children, tc)
		}
		tbl.Children = append(tbl.Children, tr)
	}

	d.Body().Children = append(d.Body().Children, tbl)
	return Table{Elem: tbl}
}
