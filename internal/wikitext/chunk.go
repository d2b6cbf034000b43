package wikitext

import "github.com/parsoid-go/wtserialize/internal/dom"

// Chunk is one emission unit appended to a State's output. A Plain chunk
// carries no neighbor constraints; a Bounded chunk (produced by the selser
// reuse path) additionally records which characters it begins and
// ends with, so the emit layer can tell whether an adjacent chunk would
// form spurious markup by simply being written next to it (e.g. a reused
// fragment ending in "'" followed by a synthesized "'" would read as
// italics).
type Chunk struct {
	Text string

	// Constrained is true for chunks produced by selser reuse; Plain
	// chunks leave LeftBoundary/RightBoundary empty.
	Constrained   bool
	LeftBoundary  string
	RightBoundary string

	// Source is the node that produced this chunk, when known.
	Source *dom.Node
}

// Plain wraps a string with no boundary constraints.
func Plain(text string) Chunk {
	return Chunk{Text: text}
}

// Bounded wraps reused source text with its boundary characters.
func Bounded(text, leftBoundary, rightBoundary string, source *dom.Node) Chunk {
	return Chunk{
		Text:          text,
		Constrained:   true,
		LeftBoundary:  leftBoundary,
		RightBoundary: rightBoundary,
		Source:        source,
	}
}

// conflictsWith reports whether appending next directly after c's text
// would create an ambiguous run of characters a wikitext parser would read
// as a single piece of markup: specifically,
// quote-marker runs ("'") or bracket pairs merging across the boundary.
// When next carries no LeftBoundary, its first character is used instead.
func (c Chunk) conflictsWith(next Chunk) bool {
	if !c.Constrained && !next.Constrained {
		return false
	}
	left := c.RightBoundary
	right := next.LeftBoundary
	if right == "" && next.Text != "" {
		right = next.Text[:1]
	}
	if left == "" || right == "" {
		return false
	}
	if left == "'" && right == "'" {
		return true
	}
	if left == "[" && right == "[" {
		return true
	}
	if left == "]" && right == "]" {
		return true
	}
	return false
}
