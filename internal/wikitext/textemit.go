package wikitext

import (
	"regexp"
	"strings"

	"github.com/parsoid-go/wtserialize/internal/dom"
)

// bodyTextEscaper HTML-entity-escapes the characters that would otherwise
// be read as markup delimiters in running text. Unlike html.EscapeString,
// it leaves ' and " alone — those only need escaping inside attribute
// values, not body text.
var bodyTextEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var (
	doubleNewlineRe  = regexp.MustCompile(`\n[ \t]*\n+`)
	trailingNLRe     = regexp.MustCompile(`\n\s*$`)
	collapseRunsRe   = regexp.MustCompile(`\n[ \t]*\n+`)
	leadingNLStripRe = regexp.MustCompile(`^[ \t]*\n+\s*`)
)

// allTextChildrenOneBlankLine reports whether parent's children are all
// text nodes and there is exactly one blank-line (double-newline)
// occurrence among them — the narrow exception newline-run collapsing
// carves out while in_html_pre.
func allTextChildrenOneBlankLine(parent *dom.Node) bool {
	if parent == nil {
		return false
	}
	blankLines := 0
	for _, c := range parent.Children {
		if !c.IsText() {
			return false
		}
		blankLines += len(doubleNewlineRe.FindAllString(c.Text, -1))
	}
	return blankLines == 1
}

// emitText implements the text-emission helper.
func emitText(wctx *walkContext, node, parent *dom.Node, index int) {
	state := wctx.state
	text := node.Text

	// Step 2: capture trailing "\n\s*$" and strip it from the text.
	trailingMatch := trailingNLRe.FindString(text)
	if trailingMatch != "" {
		text = text[:len(text)-len(trailingMatch)]
	}

	// Step 3: collapse/strip, unless in_indent_pre.
	if !state.InIndentPre() {
		if !(state.InHTMLPre() && allTextChildrenOneBlankLine(parent)) {
			text = collapseRunsRe.ReplaceAllString(text, "\n")
		}
		text = leadingNLStripRe.ReplaceAllString(text, "")
	}

	// Step 4: HTML-entity-escape.
	text = bodyTextEscaper.Replace(text)

	// Nested </nowiki> inside a <nowiki> emission would otherwise close
	// the guard early.
	if state.InNoWiki() {
		text = strings.ReplaceAll(text, "</nowiki>", "&lt;/nowiki&gt;")
	}

	// Step 5: emit through State.Text, which applies the escape_text flag
	// and consults the oracle.
	state.Text(text, node)

	// Step 6: install captured trailing newlines as the next separator's
	// source; if one is already pending with its own src, merge into it
	// rather than silently drop; see DESIGN.md.
	if trailingMatch != "" {
		pending := state.PendingSeparator()
		if pending == nil {
			pending = &Separator{Max: 2}
		}
		pending.Src += trailingMatch
		pending.HasSrc = true
		state.SetPendingSeparator(pending)
	}
}
