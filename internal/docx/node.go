package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Attr is a raw XML attribute. Names keep their prefixes ("w:val",
// "xml:space") exactly as they appear in the part.
type Attr struct {
	Name  string
	Value string
}

// Node is one element in a WordprocessingML part. The tree is parsed with
// raw tokens so prefixes and attribute order survive a round trip untouched;
// styling carried in w:tblPr/w:trPr/w:rPr subtrees is preserved byte-for-byte
// through clone and re-serialize.
type Node struct {
	Name     string
	Attrs    []Attr
	Children []*Node
	Text     string
}

// ParseXML builds a node tree from a serialized XML part.
func ParseXML(data []byte) (*Node, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	var root *Node
	var stack []*Node

	for {
		token, err := decoder.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed xml: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			node := &Node{Name: rawName(t.Name)}
			for _, a := range t.Attr {
				node.Attrs = append(node.Attrs, Attr{Name: rawName(a.Name), Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("multiple root elements")
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("unexpected end element %s", rawName(t.Name))
			}
			top := stack[len(stack)-1]
			// Drop indentation noise from container elements; real character
			// data only lives in leaves like w:t.
			if len(top.Children) > 0 && strings.TrimSpace(top.Text) == "" {
				top.Text = ""
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("empty document part")
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("unclosed element %s", stack[len(stack)-1].Name)
	}
	return root, nil
}

func rawName(name xml.Name) string {
	if name.Space != "" {
		return name.Space + ":" + name.Local
	}
	return name.Local
}

// Serialize writes the tree back out with an XML declaration.
func (n *Node) Serialize() []byte {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	n.write(&buf)
	return buf.Bytes()
}

func (n *Node) write(buf *bytes.Buffer) {
	buf.WriteByte('<')
	buf.WriteString(n.Name)
	for _, a := range n.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		_ = xml.EscapeText(buf, []byte(a.Value))
		buf.WriteByte('"')
	}

	if len(n.Children) == 0 && n.Text == "" {
		buf.WriteString("/>")
		return
	}

	buf.WriteByte('>')
	if n.Text != "" {
		_ = xml.EscapeText(buf, []byte(n.Text))
	}
	for _, child := range n.Children {
		child.write(buf)
	}
	buf.WriteString("</")
	buf.WriteString(n.Name)
	buf.WriteByte('>')
}

// Clone deep-copies the node and its entire subtree, styling included.
func (n *Node) Clone() *Node {
	clone := &Node{Name: n.Name, Text: n.Text}
	if len(n.Attrs) > 0 {
		clone.Attrs = make([]Attr, len(n.Attrs))
		copy(clone.Attrs, n.Attrs)
	}
	for _, child := range n.Children {
		clone.Children = append(clone.Children, child.Clone())
	}
	return clone
}

// Index returns the position of child among n's children, or -1.
func (n *Node) Index(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// InsertAt inserts child at position i, clamped to the valid range.
func (n *Node) InsertAt(i int, child *Node) {
	if i < 0 {
		i = 0
	}
	if i > len(n.Children) {
		i = len(n.Children)
	}
	n.Children = append(n.Children, nil)
	copy(n.Children[i+1:], n.Children[i:])
	n.Children[i] = child
}

// InsertAfter inserts node into parent immediately after anchor. A nil or
// foreign anchor appends.
func (n *Node) InsertAfter(node, anchor *Node) {
	idx := -1
	if anchor != nil {
		idx = n.Index(anchor)
	}
	if idx < 0 {
		n.Children = append(n.Children, node)
		return
	}
	n.InsertAt(idx+1, node)
}

// Remove detaches child from n, reporting whether it was found.
func (n *Node) Remove(child *Node) bool {
	idx := n.Index(child)
	if idx < 0 {
		return false
	}
	n.Children = append(n.Children[:idx], n.Children[idx+1:]...)
	return true
}

// RemoveRange detaches children in [start, end), clamped to the valid range.
func (n *Node) RemoveRange(start, end int) {
	if start < 0 {
		start = 0
	}
	if end > len(n.Children) {
		end = len(n.Children)
	}
	if start >= end {
		return
	}
	n.Children = append(n.Children[:start], n.Children[end:]...)
}

// ChildrenNamed returns the direct children with the given raw name.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, child := range n.Children {
		if child.Name == name {
			out = append(out, child)
		}
	}
	return out
}

// FirstChild returns the first direct child with the given name, or nil.
func (n *Node) FirstChild(name string) *Node {
	for _, child := range n.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// Descendants returns every node below n with the given name, depth-first.
func (n *Node) Descendants(name string) []*Node {
	var out []*Node
	for _, child := range n.Children {
		if child.Name == name {
			out = append(out, child)
		}
		out = append(out, child.Descendants(name)...)
	}
	return out
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets or replaces the named attribute.
func (n *Node) SetAttr(name, value string) {
	for i, a := range n.Attrs {
		if a.Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}
