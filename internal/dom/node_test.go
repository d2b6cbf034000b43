package dom_test

import (
	"testing"

	"github.com/parsoid-go/wtserialize/internal/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func p(tag string, children ...*dom.Node) *dom.Node {
	n := &dom.Node{Kind: dom.ElementNode, Tag: tag}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func text(s string) *dom.Node {
	return &dom.Node{Kind: dom.TextNode, Text: s}
}

func TestNodeTreeNavigation(t *testing.T) {
	root := p("p", text("a"), text("b"), text("c"))

	require.Equal(t, 3, root.ChildCount())
	b := root.Child(1)
	require.NotNil(t, b)
	assert.Equal(t, "b", b.Text)
	assert.Equal(t, "a", b.PrevSibling().Text)
	assert.Equal(t, "c", b.NextSibling().Text)
	assert.Nil(t, root.Child(1).NextSibling().NextSibling())
}

func TestForEachVisitsInDocumentOrder(t *testing.T) {
	root := p("p", text("a"), text("b"), text("c"))
	var seen []string
	root.ForEach(func(child *dom.Node, index int) {
		seen = append(seen, child.Text)
	})
	assert.Equal(t, []string{"a", "b", "c"}, seen)
}

func TestSameMarkup(t *testing.T) {
	a := &dom.Node{Kind: dom.ElementNode, Tag: "i", Attrs: []dom.Attr{{Key: "class", Val: "x"}}}
	b := &dom.Node{Kind: dom.ElementNode, Tag: "i", Attrs: []dom.Attr{{Key: "class", Val: "x"}}}
	c := &dom.Node{Kind: dom.ElementNode, Tag: "b", Attrs: []dom.Attr{{Key: "class", Val: "x"}}}

	assert.True(t, a.SameMarkup(b))
	assert.False(t, a.SameMarkup(c))
	assert.False(t, a.SameMarkup(nil))
}

func TestTextContent(t *testing.T) {
	root := p("i", text("foo"), p("b", text("bar")))
	assert.Equal(t, "foobar", root.TextContent())
}

func TestLookupByID(t *testing.T) {
	target := p("span", text("x"))
	target.Attrs = append(target.Attrs, dom.Attr{Key: "id", Val: "mwAB"})
	root := p("body", p("p", target))

	lookup := dom.NewLookup(root)
	assert.Equal(t, target, lookup.ByID("mwAB"))
	assert.Nil(t, lookup.ByID("missing"))
}
