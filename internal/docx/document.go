package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const documentPart = "word/document.xml"

// Document is an open DOCX container. Only word/document.xml is parsed into
// a node tree; every other part (styles, themes, media, relationships) is
// carried through byte-identical so template styling survives generation.
type Document struct {
	partOrder []string
	parts     map[string][]byte
	root      *Node
}

// Open reads a DOCX file from disk.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}
	doc, err := OpenBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open document %s: %w", path, err)
	}
	return doc, nil
}

// OpenBytes reads a DOCX container from memory.
func OpenBytes(data []byte) (*Document, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("not a docx container: %w", err)
	}

	doc := &Document{parts: make(map[string][]byte)}
	for _, file := range reader.File {
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open part %s: %w", file.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read part %s: %w", file.Name, err)
		}
		doc.partOrder = append(doc.partOrder, file.Name)
		doc.parts[file.Name] = content
	}

	raw, ok := doc.parts[documentPart]
	if !ok {
		return nil, fmt.Errorf("container has no %s part", documentPart)
	}
	root, err := ParseXML(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", documentPart, err)
	}
	doc.root = root
	return doc, nil
}

// Bytes serializes the container, re-rendering only the document part.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for _, name := range d.partOrder {
		content := d.parts[name]
		if name == documentPart {
			content = d.root.Serialize()
		}
		w, err := writer.Create(name)
		if err != nil {
			return nil, fmt.Errorf("failed to create part %s: %w", name, err)
		}
		if _, err := w.Write(content); err != nil {
			return nil, fmt.Errorf("failed to write part %s: %w", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize container: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the container to disk, creating parent directories as needed.
func (d *Document) Save(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to save document %s: %w", path, err)
	}
	return nil
}

// Root returns the w:document element.
func (d *Document) Root() *Node {
	return d.root
}

// Body returns the w:body element.
func (d *Document) Body() *Node {
	return d.root.FirstChild("w:body")
}

// Tables returns the body-level tables in document order.
func (d *Document) Tables() []Table {
	var tables []Table
	for _, node := range d.Body().ChildrenNamed("w:tbl") {
		tables = append(tables, Table{Elem: node})
	}
	return tables
}

// Paragraphs returns the body-level paragraphs in document order.
func (d *Document) Paragraphs() []Paragraph {
	var paragraphs []Paragraph
	for _, node := range d.Body().ChildrenNamed("w:p") {
		paragraphs = append(paragraphs, Paragraph{Elem: node})
	}
	return paragraphs
}
