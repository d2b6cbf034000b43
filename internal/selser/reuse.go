// Package selser implements the selective-serialization reuse path:
// detecting unmodified subtrees with valid DSR and handing back
// the original source bytes verbatim as a constrained chunk, so the caller
// never has to invoke the node's handler at all.
//
// The eligibility check answers the same underlying question
// FindDiffStart/FindDiffEnd-style unmodified-region detection does —
// "is this region of the tree identical to what it was before" — but by
// trusting a precomputed diff mark plus DSR validity instead of re-diffing
// on every serialize.
package selser

import "github.com/parsoid-go/wtserialize/internal/dom"

// Env supplies what the reuse path needs from the caller.
type Env struct {
	Source string
	// SourceStillValid reports whether source[start:end] is still a valid
	// reuse for node in the edited context. May be nil, meaning "always
	// valid".
	SourceStillValid func(node *dom.Node, start, end int) bool
}

// Result is a verbatim chunk of reused source plus the boundary characters
// it begins/ends with, for the caller to build a constrained-text chunk
// from.
type Result struct {
	Text          string
	LeftBoundary  string
	RightBoundary string
}

// zeroWidthEligibleTags are the tags zero-width-DSR reuse is allowed for:
// implicit paragraphs, line breaks, and auto-inserted references.
var zeroWidthEligibleTags = map[string]bool{"p": true, "br": true, "ol": true}

func dsrOf(node *dom.Node) *dom.DSR {
	if node == nil || node.Prov == nil {
		return nil
	}
	return node.Prov.DSR
}

// Eligible reports whether node qualifies for verbatim selser reuse (its
// four conditions), given whether selser is on and whether node sits
// inside a modified-content span.
func Eligible(node *dom.Node, selserMode, inModifiedContent bool) bool {
	if !selserMode || inModifiedContent || node == nil {
		return false
	}
	if node.Prov == nil {
		return false
	}
	if node.Prov.HasDiffMarks() {
		return false
	}
	dsr := dsrOf(node)
	if !dsr.Valid() {
		return false
	}
	start, end := dsr.Span()
	if end > start {
		return true
	}
	if end == start && zeroWidthEligibleTags[node.Tag] {
		return true
	}
	if node.Prov.Fostered || node.Prov.Misnested {
		return true
	}
	return false
}

// Reuse extracts source[start:end] for node, assuming Eligible already
// returned true. It returns ok=false if the caller's SourceStillValid
// oracle rejects the reuse or the DSR indexes outside the source.
func Reuse(env *Env, node *dom.Node) (Result, bool) {
	if env == nil {
		return Result{}, false
	}
	dsr := dsrOf(node)
	if !dsr.Valid() {
		return Result{}, false
	}
	start, end := dsr.Span()
	if start < 0 || end > len(env.Source) || start > end {
		return Result{}, false
	}
	if env.SourceStillValid != nil && !env.SourceStillValid(node, start, end) {
		return Result{}, false
	}
	text := env.Source[start:end]
	left, right := boundaryChars(text)
	return Result{Text: text, LeftBoundary: left, RightBoundary: right}, true
}

func boundaryChars(text string) (left, right string) {
	if text == "" {
		return "", ""
	}
	return string(text[0]), string(text[len(text)-1])
}

// OnlySubtreeChanged reports whether node's own diff mark indicates only
// its descendants changed and not the node's own markup — the same
// distinction FindDiffStart/FindDiffEnd draw between "these nodes differ"
// and "these nodes match but their content below doesn't".
func OnlySubtreeChanged(node *dom.Node) bool {
	if node == nil || node.Prov == nil || node.Prov.Diff == nil {
		return false
	}
	return node.Prov.Diff.Kind == "children-changed"
}

// WrapperUnmodified implements the "only the subtree below the node
// changed" case: the node's own open/close markup may be reused from
// source while its modified children are recursively re-serialized,
// provided the DSR widths are valid and the node isn't auto-inserted
// (except TD/TH/TR, whose widths are always trustworthy — this exception
// is probably only needed for bold/italic fixups, kept as-is regardless).
func WrapperUnmodified(node *dom.Node, onlySubtreeChanged bool) bool {
	if !onlySubtreeChanged || node == nil || node.Prov == nil {
		return false
	}
	dsr := node.Prov.DSR
	if dsr == nil || !dsr.Valid() || dsr.OpenWidth == nil || dsr.CloseWidth == nil {
		return false
	}
	if node.Prov.AutoInsertedStart || node.Prov.AutoInsertedEnd {
		switch node.Tag {
		case "td", "th", "tr":
			// widths are always trustworthy for these tags.
		default:
			return false
		}
	}
	return true
}

// ReuseWrapper extracts node's open/close markup substrings from env.Source
// using its DSR, for the wrapper_unmodified partial-reuse case: the
// caller emits these literal strings for the node itself while recursing
// into its (modified) children through the ordinary walk instead of
// reusing the node's full source span.
func ReuseWrapper(env *Env, node *dom.Node) (open, close string, ok bool) {
	if env == nil || node == nil || node.Prov == nil {
		return "", "", false
	}
	dsr := node.Prov.DSR
	if dsr == nil || !dsr.Valid() || dsr.OpenWidth == nil || dsr.CloseWidth == nil {
		return "", "", false
	}
	start, end := dsr.Span()
	openEnd := start + *dsr.OpenWidth
	closeStart := end - *dsr.CloseWidth
	if start < 0 || end > len(env.Source) || openEnd > closeStart || closeStart < start {
		return "", "", false
	}
	return env.Source[start:openEnd], env.Source[closeStart:end], true
}

// SuppressSingleLineContext reports whether node's selser reuse should
// temporarily disable single-line context: encapsulation
// wrappers, top-level list/definition structures, and a <table> that is
// the sole child of <dd>.
func SuppressSingleLineContext(node *dom.Node) bool {
	if node == nil {
		return false
	}
	if node.Prov.IsEncapsulated() {
		return true
	}
	switch node.Tag {
	case "ul", "ol", "dl":
		return true
	case "table":
		parent := node.Parent
		return parent != nil && parent.Tag == "dd" && parent.ChildCount() == 1
	}
	return false
}
