package docx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseXMLKeepsPrefixesAndAttributes(t *testing.T) {
	raw := []byte(`<?xml version="1.0"?><w:document xmlns:w="ns"><w:body><w:p><w:r><w:t xml:space="preserve">hello &amp; goodbye</w:t></w:r></w:p></w:body></w:document>`)

	root, err := ParseXML(raw)
	require.NoError(t, err)
	assert.Equal(t, "w:document", root.Name)

	body := root.FirstChild("w:body")
	require.NotNil(t, body)

	texts := body.Descendants("w:t")
	require.Len(t, texts, 1)
	assert.Equal(t, "hello & goodbye", texts[0].Text)

	space, ok := texts[0].Attr("xml:space")
	assert.True(t, ok)
	assert.Equal(t, "preserve", space)
}

func TestSerializeRoundTrip(t *testing.T) {
	raw := []byte(`<?xml version="1.0"?><w:p><w:pPr><w:jc w:val="right"/></w:pPr><w:r><w:t>x &lt; y</w:t></w:r></w:p>`)

	root, err := ParseXML(raw)
	require.NoError(t, err)

	again, err := ParseXML(root.Serialize())
	require.NoError(t, err)

	jc := again.FirstChild("w:pPr").FirstChild("w:jc")
	require.NotNil(t, jc)
	val, _ := jc.Attr("w:val")
	assert.Equal(t, "right", val)
	assert.Equal(t, "x < y", again.Descendants("w:t")[0].Text)
}

func TestCloneIsDeep(t *testing.T) {
	root, err := ParseXML([]byte(`<w:tr><w:tc><w:p><w:r><w:t>original</w:t></w:r></w:p></w:tc></w:tr>`))
	require.NoError(t, err)

	clone := root.Clone()
	clone.Descendants("w:t")[0].Text = "changed"

	assert.Equal(t, "original", root.Descendants("w:t")[0].Text)
	assert.Equal(t, "changed", clone.Descendants("w:t")[0].Text)
}

func TestInsertAfterAndRemoveRange(t *testing.T) {
	parent := &Node{Name: "w:body"}
	a := &Node{Name: "w:p", Text: "a"}
	b := &Node{Name: "w:p", Text: "b"}
	c := &Node{Name: "w:p", Text: "c"}
	parent.Children = []*Node{a, c}

	parent.InsertAfter(b, a)
	require.Len(t, parent.Children, 3)
	assert.Equal(t, "b", parent.Children[1].Text)

	// Nil anchor appends.
	d := &Node{Name: "w:p", Text: "d"}
	parent.InsertAfter(d, nil)
	assert.Equal(t, "d", parent.Children[3].Text)

	parent.RemoveRange(1, 3)
	require.Len(t, parent.Children, 2)
	assert.Equal(t, "a", parent.Children[0].Text)
	assert.Equal(t, "d", parent.Children[1].Text)
}

func TestRemove(t *testing.T) {
	parent := &Node{Name: "w:body"}
	child := &Node{Name: "w:p"}
	parent.Children = []*Node{child}

	assert.True(t, parent.Remove(child))
	assert.Empty(t, parent.Children)
	assert.False(t, parent.Remove(child))
}
