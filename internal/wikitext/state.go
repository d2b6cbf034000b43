package wikitext

import (
	"strings"

	"github.com/parsoid-go/wtserialize/internal/dom"
	"github.com/parsoid-go/wtserialize/internal/escape"
)

// State is the serializer state: one instance per top-level
// Serialize call, discarded on completion. It is the only place chunks are
// appended to the output; every chunk passes through the pending separator
// first.
type State struct {
	out strings.Builder

	// onSOL is true iff the last emitted character was '\n', or out is
	// still empty.
	onSOL bool

	// Mode flags.
	inNoWiki    bool
	inHTMLPre   bool
	inIndentPre bool
	inAttribute bool

	// Selser bookkeeping.
	SelserMode         bool
	InModifiedContent  bool
	CurrNodeUnmodified bool
	PrevNodeUnmodified bool

	// sep is the pending separator awaiting resolution against the next
	// chunk's contract.
	sep *Separator

	// singleLineStack tracks nested "single-line-only" regions (table-cell
	// attributes, headings, ...) that suppress newline expansion.
	singleLineStack []bool

	// Post-pass triggers.
	HasIndentPreNowikis   bool
	HasQuoteNowikis       bool
	HasSelfClosingNowikis bool

	Oracle escape.Oracle
	Log    logFn

	lastWasConstrained bool
	lastRightBoundary  string
}

type logFn func(level string, msg string, fields map[string]interface{})

// NewState constructs a fresh serializer state.
func NewState(oracle escape.Oracle, log logFn) *State {
	return &State{onSOL: true, Oracle: oracle, Log: log}
}

// Out returns the accumulated output so far.
func (s *State) Out() string { return s.out.String() }

// OnSOL reports whether the next character would appear at start-of-line.
func (s *State) OnSOL() bool { return s.onSOL }

// InSingleLineContext reports whether the innermost active context
// suppresses newline expansion.
func (s *State) InSingleLineContext() bool {
	return len(s.singleLineStack) > 0 && s.singleLineStack[len(s.singleLineStack)-1]
}

// PushSingleLine enters a region (e.g. a table-cell attribute or heading)
// where newline expansion is suppressed.
func (s *State) PushSingleLine(active bool) {
	s.singleLineStack = append(s.singleLineStack, active)
}

// PopSingleLine exits the innermost single-line region. Balanced with
// PushSingleLine even if the handler that pushed it panics, because the
// walker recovers at the top level and discards the whole state regardless.
func (s *State) PopSingleLine() {
	if len(s.singleLineStack) == 0 {
		return
	}
	s.singleLineStack = s.singleLineStack[:len(s.singleLineStack)-1]
}

// modeScope flips a mode flag on for the duration of f, then restores it:
// the balanced enter/exit every mode flag needs.
func modeScope(flag *bool, f func()) {
	old := *flag
	*flag = true
	defer func() { *flag = old }()
	f()
}

// EnterHTMLPre runs f with in_html_pre set, disabling escaping for its
// duration. The separator engine does not read this flag, so separators
// are resolved the same way inside and outside the pre.
func (s *State) EnterHTMLPre(f func()) { modeScope(&s.inHTMLPre, f) }

// EnterNoWiki runs f with in_no_wiki set, disabling escaping.
func (s *State) EnterNoWiki(f func()) { modeScope(&s.inNoWiki, f) }

// EnterIndentPre runs f with in_indent_pre set, disabling newline
// collapsing in text emission.
func (s *State) EnterIndentPre(f func()) { modeScope(&s.inIndentPre, f) }

// EnterAttribute runs f with in_attribute set, influencing escape-oracle
// policy for HTML serialized inside an attribute value.
func (s *State) EnterAttribute(f func()) { modeScope(&s.inAttribute, f) }

func (s *State) InHTMLPre() bool   { return s.inHTMLPre }
func (s *State) InNoWiki() bool    { return s.inNoWiki }
func (s *State) InIndentPre() bool { return s.inIndentPre }
func (s *State) InAttribute() bool { return s.inAttribute }

// SetPendingSeparator installs sep as the separator to resolve before the
// next chunk.
func (s *State) SetPendingSeparator(sep *Separator) {
	s.sep = sep
}

// PendingSeparator exposes the pending separator, e.g. so text emission
// can install captured trailing newlines as its src.
func (s *State) PendingSeparator() *Separator { return s.sep }

// flushSeparator resolves and appends the pending separator, then clears
// it.
func (s *State) flushSeparator() {
	if s.sep == nil {
		return
	}
	resolved := Resolve(s.sep, s.onSOL)
	s.sep = nil
	s.rawAppend(resolved)
}

// Append resolves any pending separator and then writes chunk to the
// output, respecting chunk boundary conflicts with the immediately
// preceding chunk — no chunk is ever appended to out directly.
func (s *State) Append(chunk Chunk) {
	s.flushSeparator()
	text := chunk.Text
	if s.lastWasConstrained && (Chunk{Constrained: true, RightBoundary: s.lastRightBoundary}).conflictsWith(chunk) {
		text = "<nowiki/>" + text
		s.HasQuoteNowikis = true
		s.HasSelfClosingNowikis = true
	}
	s.rawAppend(text)
	s.lastWasConstrained = chunk.Constrained
	s.lastRightBoundary = chunk.RightBoundary
}

func (s *State) rawAppend(text string) {
	if text == "" {
		return
	}
	s.out.WriteString(text)
	s.onSOL = strings.HasSuffix(text, "\n")
}

// EnsureNewLine appends a bare '\n' unless the output already ends in one
// (or is empty).
func (s *State) EnsureNewLine() {
	if !s.onSOL {
		s.rawAppend("\n")
	}
}

// Write is a convenience for appending a plain, unconstrained string with
// the neutral contract — used by handlers for literal markup they control
// (delimiters, fences) rather than node content.
func (s *State) Write(content string) {
	s.Append(Plain(content))
}

// Text emits text content, escaping it through the oracle when
// appropriate: escape_text is true when (on_sol ||
// !curr_node_unmodified) && !in_no_wiki && !in_html_pre.
func (s *State) Text(text string, node *dom.Node) {
	escapeText := (s.onSOL || !s.CurrNodeUnmodified) && !s.inNoWiki && !s.inHTMLPre
	out := text
	if escapeText {
		ctx := escape.Context{
			OnSOL:       s.onSOL,
			InNoWiki:    s.inNoWiki,
			InHTMLPre:   s.inHTMLPre,
			InAttribute: s.inAttribute,
		}
		if s.Oracle.Decide(text, ctx).NeedsNowiki {
			out = "<nowiki>" + text + "</nowiki>"
			if s.onSOL {
				s.HasIndentPreNowikis = true
			}
			s.HasQuoteNowikis = true
		}
	}
	s.Append(Chunk{Text: out, Source: node})
}
