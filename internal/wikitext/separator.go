package wikitext

import (
	"strings"

	"github.com/parsoid-go/wtserialize/internal/dom"
)

// SeparatorContract is one handler's declared requirement for the
// whitespace on one side of the node it serializes.
type SeparatorContract struct {
	Min      int
	Max      int
	ForceSOL bool
	// NeedsSpace asks for a single literal space when no newline ends up
	// being emitted and the preceding line is non-empty.
	NeedsSpace bool
}

// SepKind is the constraint-info "sepType" a separator carries: which two
// kinds of neighboring node produced it.
type SepKind int

const (
	SepSibling SepKind = iota
	SepParentChild
	SepChildParent
)

// Separator is the logical inter-node whitespace pending between the last
// emitted node and the next one. Its Min/Max/ForceSOL/NeedsSpace fields are
// the already-combined contract — one concrete whitespace string distilled
// from two handlers' declared contracts; it carries the candidate source
// text alongside so the engine can prefer reusing it.
type Separator struct {
	Min, Max   int
	ForceSOL   bool
	NeedsSpace bool

	// Src is a candidate literal text (original whitespace/comments)
	// reused from source, when available.
	Src    string
	HasSrc bool

	Kind         SepKind
	NodeA, NodeB *dom.Node
	OnSOL        bool
}

// NewSeparator builds a pending separator from a combined contract plus
// optional candidate source text.
func NewSeparator(contract SeparatorContract, kind SepKind, nodeA, nodeB *dom.Node) *Separator {
	return &Separator{
		Min: contract.Min, Max: contract.Max,
		ForceSOL: contract.ForceSOL, NeedsSpace: contract.NeedsSpace,
		Kind: kind, NodeA: nodeA, NodeB: nodeB,
	}
}

// WithSrc attaches candidate source text (original whitespace/comments
// between NodeA and NodeB) to the separator.
func (sep *Separator) WithSrc(src string) *Separator {
	sep.Src = src
	sep.HasSrc = true
	return sep
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CombineContracts merges two handlers' declared contracts for the shared
// separator between them. On infeasibility (min > max), min
// wins: correctness over aesthetics.
func CombineContracts(after, before SeparatorContract) SeparatorContract {
	minFinal := max(after.Min, before.Min)
	maxFinal := min(after.Max, before.Max)
	if minFinal > maxFinal {
		maxFinal = minFinal
	}
	return SeparatorContract{
		Min:        minFinal,
		Max:        maxFinal,
		ForceSOL:   after.ForceSOL || before.ForceSOL,
		NeedsSpace: after.NeedsSpace || before.NeedsSpace,
	}
}

// countNewlines counts '\n' occurrences in s.
func countNewlines(s string) int {
	return strings.Count(s, "\n")
}

// satisfiesContract reports whether src itself already satisfies sep's
// combined contract, so the engine can keep reused source whitespace
// verbatim rather than synthesizing.
func satisfiesContract(src string, sep *Separator) bool {
	n := countNewlines(src)
	if n < sep.Min || n > sep.Max {
		return false
	}
	if sep.ForceSOL && !strings.HasSuffix(src, "\n") {
		return false
	}
	return true
}

// Resolve turns a pending separator into its literal output string, the
// separator engine's central operation. atLineStart reports
// whether the preceding output already ends at start-of-line, which
// suppresses a synthesized leading space.
func Resolve(sep *Separator, atLineStart bool) string {
	if sep == nil {
		return ""
	}
	if sep.HasSrc && satisfiesContract(sep.Src, sep) {
		return sep.Src
	}

	n := clamp(countNewlines(sep.Src), sep.Min, sep.Max)
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte('\n')
	}
	if sep.ForceSOL && n == 0 {
		b.WriteByte('\n')
		n = 1
	}
	if n == 0 && sep.NeedsSpace && !atLineStart {
		b.WriteByte(' ')
	}
	return b.String()
}

// RewriteForZeroWidthParent handles the zero-width parent-child case: when
// node has zero DSR width and children, the
// sibling constraint between predecessor and node is instead applied
// between node and its first child, so surrounding whitespace still
// constrains the child directly. It returns the node the next separator
// should actually be measured against.
func RewriteForZeroWidthParent(node *dom.Node) *dom.Node {
	if node == nil || node.Prov == nil || !node.Prov.DSR.ZeroWidth() {
		return node
	}
	if node.ChildCount() == 0 {
		return node
	}
	return node.Child(0)
}
