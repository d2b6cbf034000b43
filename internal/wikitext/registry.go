package wikitext

import "github.com/parsoid-go/wtserialize/internal/dom"

// WrapperReuse carries source-derived open/close markup for a node whose
// own markup is unmodified but whose descendants changed — the
// wrapper_unmodified partial selser reuse case. A handler that receives one
// may emit these literal strings for the node itself instead of re-deriving
// them from its live tag/attributes, while still recursing into children
// normally so modified content gets re-serialized.
type WrapperReuse struct {
	Open  string
	Close string
}

// HandleFunc serializes one node. It may emit chunks through state and
// recursively serialize its children; returning a non-nil node tells the
// walker to resume from that node instead of the node's natural next
// sibling. wrapper is non-nil when the node qualifies for wrapper_unmodified
// reuse; handlers that have no notion of reusable open/close markup (e.g.
// encapsulation) simply ignore it.
type HandleFunc func(ctx *walkContext, node, parent *dom.Node, index int, wrapper *WrapperReuse) *dom.Node

// HandlerSpec pairs a node handler with its declared separator contracts
// for the whitespace on each side of the node.
type HandlerSpec struct {
	Handle HandleFunc
	Before SeparatorContract
	After  SeparatorContract
}

type registryKey struct{ tag, stx string }

// Registry maps (tag, syntax-variant) to a handler.
type Registry struct {
	byKey         map[registryKey]*HandlerSpec
	byTag         map[string]*HandlerSpec
	genericHTML   *HandlerSpec
	encapsulation *HandlerSpec
}

// NewRegistry returns an empty registry; use DefaultRegistry for one with
// the built-in encapsulation and generic HTML handlers installed.
func NewRegistry() *Registry {
	return &Registry{
		byKey: map[registryKey]*HandlerSpec{},
		byTag: map[string]*HandlerSpec{},
	}
}

// Register installs a handler for a specific (tag, syntax-variant) pair.
func (r *Registry) Register(tag, stx string, spec *HandlerSpec) {
	r.byKey[registryKey{tag, stx}] = spec
}

// RegisterDefault installs a handler as the fallback for tag regardless of
// syntax variant.
func (r *Registry) RegisterDefault(tag string, spec *HandlerSpec) {
	r.byTag[tag] = spec
}

// SetGenericHTML installs the generic HTML element handler,
// used whenever no more specific handler applies.
func (r *Registry) SetGenericHTML(spec *HandlerSpec) {
	r.genericHTML = spec
}

// SetEncapsulation installs the template/extension encapsulation handler,
// used for any node carrying a DataMW envelope.
func (r *Registry) SetEncapsulation(spec *HandlerSpec) {
	r.encapsulation = spec
}

// Resolve selects a handler for node, following this five-step procedure:
//
//  1. Encapsulation wrapper -> the encapsulation handler.
//  2. (tag, stx) registered -> that handler.
//  3. stx == "html" and tag != "a" -> generic HTML handler.
//  4. No DSR and parent has HTML-syntax list/table structure -> generic
//     HTML handler (keeps wiki-syntax children out of HTML-syntax
//     lists/tables).
//  5. Registry default for tag, else generic HTML handler.
func (r *Registry) Resolve(node *dom.Node, parentHasHTMLStructure bool) *HandlerSpec {
	if node.Prov.IsEncapsulated() && r.encapsulation != nil {
		return r.encapsulation
	}

	stx := ""
	if node.Prov != nil {
		stx = node.Prov.Stx
	}
	if h, ok := r.byKey[registryKey{node.Tag, stx}]; ok {
		return h
	}
	if stx == "html" && node.Tag != "a" && r.genericHTML != nil {
		return r.genericHTML
	}

	noDSR := node.Prov == nil || !node.Prov.DSR.Valid()
	if noDSR && parentHasHTMLStructure && r.genericHTML != nil {
		return r.genericHTML
	}

	if h, ok := r.byTag[node.Tag]; ok {
		return h
	}
	return r.genericHTML
}
