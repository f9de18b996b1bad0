package docx

import "strings"

// Table wraps a w:tbl element.
type Table struct {
	Elem *Node
}

// Row wraps a w:tr element.
type Row struct {
	Elem *Node
}

// Cell wraps a w:tc element.
type Cell struct {
	Elem *Node
}

// Paragraph wraps a w:p element.
type Paragraph struct {
	Elem *Node
}

// Rows returns the table rows in order.
func (t Table) Rows() []Row {
	var rows []Row
	for _, node := range t.Elem.ChildrenNamed("w:tr") {
		rows = append(rows, Row{Elem: node})
	}
	return rows
}

// ColumnCount reports the grid width of the table: the w:gridCol count when
// a grid is declared, otherwise the cell count of the first row.
func (t Table) ColumnCount() int {
	if grid := t.Elem.FirstChild("w:tblGrid"); grid != nil {
		if cols := grid.ChildrenNamed("w:gridCol"); len(cols) > 0 {
			return len(cols)
		}
	}
	rows := t.Rows()
	if len(rows) == 0 {
		return 0
	}
	return len(rows[0].Cells())
}

// InsertRowAt inserts a w:tr node so it becomes row index i. Row indices are
// mapped onto node positions because w:tblPr and w:tblGrid precede the rows.
func (t Table) InsertRowAt(i int, row *Node) {
	rows := t.Elem.ChildrenNamed("w:tr")
	if len(rows) == 0 || i >= len(rows) {
		t.Elem.Children = append(t.Elem.Children, row)
		return
	}
	if i < 0 {
		i = 0
	}
	t.Elem.InsertAt(t.Elem.Index(rows[i]), row)
}

// RemoveRows detaches the rows with indices in [start, end).
func (t Table) RemoveRows(start, end int) {
	rows := t.Elem.ChildrenNamed("w:tr")
	if start < 0 {
		start = 0
	}
	if end > len(rows) {
		end = len(rows)
	}
	if start >= end {
		return
	}
	// Sibling w:tr nodes are contiguous, so a child-index range removal holds.
	t.Elem.RemoveRange(t.Elem.Index(rows[start]), t.Elem.Index(rows[end-1])+1)
}

// Cells returns the row's cells in order.
func (r Row) Cells() []Cell {
	var cells []Cell
	for _, node := range r.Elem.ChildrenNamed("w:tc") {
		cells = append(cells, Cell{Elem: node})
	}
	return cells
}

// ClearText blanks every text run in the row while leaving run and cell
// properties in place, so cloned rows keep their styling.
func (r Row) ClearText() {
	for _, t := range r.Elem.Descendants("w:t") {
		t.Text = ""
	}
}

// Text concatenates the cell's paragraph texts, newline-separated.
func (c Cell) Text() string {
	var parts []string
	for _, p := range c.Elem.ChildrenNamed("w:p") {
		parts = append(parts, Paragraph{Elem: p}.Text())
	}
	return strings.Join(parts, "\n")
}

// SetText replaces the cell content with a single paragraph of text. The
// first paragraph's properties and run styling are preserved; surplus
// paragraphs are dropped.
func (c Cell) SetText(text string) {
	paragraphs := c.Elem.ChildrenNamed("w:p")
	if len(paragraphs) == 0 {
		p := &Node{Name: "w:p"}
		c.Elem.Children = append(c.Elem.Children, p)
		paragraphs = []*Node{p}
	}
	Paragraph{Elem: paragraphs[0]}.SetText(text)
	for _, extra := range paragraphs[1:] {
		c.Elem.Remove(extra)
	}
}

// Text concatenates all text runs in the paragraph.
func (p Paragraph) Text() string {
	var b strings.Builder
	for _, t := range p.Elem.Descendants("w:t") {
		b.WriteString(t.Text)
	}
	return b.String()
}

// SetText replaces the paragraph content with a single run of text,
// preserving the paragraph properties and the first run's styling.
func (p Paragraph) SetText(text string) {
	pPr := p.Elem.FirstChild("w:pPr")

	var rPr *Node
	if run := p.Elem.FirstChild("w:r"); run != nil {
		if props := run.FirstChild("w:rPr"); props != nil {
			rPr = props.Clone()
		}
	}

	run := &Node{Name: "w:r"}
	if rPr != nil {
		run.Children = append(run.Children, rPr)
	}
	t := &Node{Name: "w:t", Text: text}
	t.SetAttr("xml:space", "preserve")
	run.Children = append(run.Children, t)

	p.Elem.Children = nil
	if pPr != nil {
		p.Elem.Children = append(p.Elem.Children, pPr)
	}
	p.Elem.Children = append(p.Elem.Children, run)
}
