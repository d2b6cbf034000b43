// Package dom implements the read-only tree the wikitext serializer walks:
// elements, text, and comment nodes, each carrying the provenance metadata
// a wiki parser attaches to link the node back to byte offsets in the
// original source.
//
// Like the document model it is descended from, a Node is meant to be
// treated as persistent once handed to the serializer: handlers may attach
// transient annotations through SetMeta, but must not alter Tag, Kind, or
// Children.
package dom

// Kind distinguishes the three node shapes the core understands.
type Kind int

const (
	ElementNode Kind = iota
	TextNode
	CommentNode
)

// Attr is a single HTML-style attribute.
type Attr struct {
	Key string
	Val string
}

// Node is one element, text run, or comment in the annotated DOM.
type Node struct {
	Kind     Kind
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Node
	Parent   *Node

	Prov *Provenance

	meta map[string]interface{}
}

func (n *Node) IsText() bool    { return n.Kind == TextNode }
func (n *Node) IsComment() bool { return n.Kind == CommentNode }
func (n *Node) IsElement() bool { return n.Kind == ElementNode }

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	if n == nil {
		return 0
	}
	return len(n.Children)
}

// Child returns the child at index, or nil if out of range.
func (n *Node) Child(index int) *Node {
	if n == nil || index < 0 || index >= len(n.Children) {
		return nil
	}
	return n.Children[index]
}

// ForEach visits each child in document order.
func (n *Node) ForEach(fn func(child *Node, index int)) {
	if n == nil {
		return
	}
	for i, c := range n.Children {
		fn(c, i)
	}
}

// IndexInParent returns this node's index among its parent's children, or
// -1 if it has no parent or is not found (should not happen for a tree
// built by AppendChild).
func (n *Node) IndexInParent() int {
	if n == nil || n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}

// NextSibling returns the following sibling, or nil at the end of the
// child list.
func (n *Node) NextSibling() *Node {
	i := n.IndexInParent()
	if i < 0 {
		return nil
	}
	return n.Parent.Child(i + 1)
}

// PrevSibling returns the preceding sibling, or nil at the start of the
// child list.
func (n *Node) PrevSibling() *Node {
	i := n.IndexInParent()
	if i <= 0 {
		return nil
	}
	return n.Parent.Child(i - 1)
}

// AppendChild adds child to n's children and sets its Parent.
func (n *Node) AppendChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Attr looks up an attribute by key.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetMeta attaches a transient, non-semantic annotation to the node (e.g. a
// diff mark computed by the caller). It does not count as mutating the
// tree's structure.
func (n *Node) SetMeta(key string, val interface{}) {
	if n.meta == nil {
		n.meta = map[string]interface{}{}
	}
	n.meta[key] = val
}

// Meta retrieves a transient annotation set with SetMeta.
func (n *Node) Meta(key string) (interface{}, bool) {
	if n.meta == nil {
		return nil, false
	}
	v, ok := n.meta[key]
	return v, ok
}

// SameMarkup reports whether two nodes would open with the same markup:
// same kind, same tag, same attributes, in order.
func (n *Node) SameMarkup(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Kind != other.Kind || n.Tag != other.Tag {
		return false
	}
	if len(n.Attrs) != len(other.Attrs) {
		return false
	}
	for i := range n.Attrs {
		if n.Attrs[i] != other.Attrs[i] {
			return false
		}
	}
	return true
}

// TextContent concatenates the text of this node and all its text
// descendants, ignoring markup.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	if n.IsText() {
		return n.Text
	}
	out := ""
	for _, c := range n.Children {
		out += c.TextContent()
	}
	return out
}

// Lookup resolves a node by its id attribute, searching a document (used to
// resolve data_mw.body.id extension-body references against either the
// current document or the caller-supplied edited document).
type Lookup interface {
	ByID(id string) *Node
}

// simpleLookup is a trivial Lookup built by indexing a tree once.
type simpleLookup struct {
	byID map[string]*Node
}

// NewLookup indexes root and its descendants by their "id" attribute.
func NewLookup(root *Node) Lookup {
	idx := &simpleLookup{byID: map[string]*Node{}}
	idx.index(root)
	return idx
}

func (l *simpleLookup) index(n *Node) {
	if n == nil {
		return
	}
	if id, ok := n.Attr("id"); ok && id != "" {
		l.byID[id] = n
	}
	for _, c := range n.Children {
		l.index(c)
	}
}

func (l *simpleLookup) ByID(id string) *Node {
	return l.byID[id]
}
