// Package escape defines the escape oracle interface: given a
// text fragment about to be emitted, decide whether it must be wrapped in
// a nowiki guard so literal characters do not become markup.
//
// The core treats the oracle as out of scope and total; this package supplies one
// concrete, conservative default so the serializer is exercisable without
// a full wiki-syntax recognizer wired in.
package escape

import "regexp"

// Context carries the flags the oracle needs to judge a fragment.
type Context struct {
	OnSOL       bool
	InNoWiki    bool
	InHTMLPre   bool
	InAttribute bool
	TemplateArg bool
}

// Decision is the oracle's verdict for one fragment.
type Decision struct {
	NeedsNowiki bool
	// ForceNamed additionally reports, in a TemplateArg context, that the
	// value cannot safely appear as a bare positional template argument
	// and must be emitted with an explicit name instead.
	ForceNamed bool
}

// Oracle decides escaping strategy for a candidate fragment in context.
type Oracle interface {
	Decide(text string, ctx Context) Decision
}

// solMarkup matches the leading markup characters that only take on
// block/structural meaning at start-of-line.
var solMarkup = regexp.MustCompile(`^[ #*:;=]`)

// inlineMarkup matches characters that form inline wiki markup anywhere on
// the line: wikilinks, templates, quote runs, and nowiki-breaking
// sequences like "|" inside a table cell are left to the attribute/table
// handlers, which pass InAttribute.
var inlineMarkup = regexp.MustCompile(`\[\[|\]\]|\{\{|\}\}|''|<!--|-->`)

// pipeInTemplateArg matches a bare "|" or "=" that would be misread as an
// argument separator when emitted inside a template argument.
var pipeInTemplateArg = regexp.MustCompile(`[|=]`)

// Default is a regex-driven oracle grounded directly in the wikitext
// grammar it references: it never asks for a nowiki guard inside
// in_html_pre/in_no_wiki (escaping there is meaningless), and otherwise
// guards any fragment that contains wiki markup sequences or, at
// start-of-line, begins with a character that would introduce block
// structure.
type Default struct{}

// NewDefault returns the default oracle.
func NewDefault() Oracle { return Default{} }

func (Default) Decide(text string, ctx Context) Decision {
	if ctx.InHTMLPre || ctx.InNoWiki {
		return Decision{}
	}
	if text == "" {
		return Decision{}
	}

	needsGuard := inlineMarkup.MatchString(text)
	if ctx.OnSOL && solMarkup.MatchString(text) {
		needsGuard = true
	}

	decision := Decision{NeedsNowiki: needsGuard}
	if ctx.TemplateArg && pipeInTemplateArg.MatchString(text) {
		decision.ForceNamed = true
	}
	return decision
}
