// Package wikitext implements the wikitext serializer core: the
// serializer state (C5), the separator engine (C2), the DOM walker and
// per-node dispatcher (C6), the handler registry (C4) and its built-in
// handlers, attribute serialization, text emission, and the post-pass
// stripping rewrites (C8).
package wikitext

import (
	"context"
	"fmt"
	"strings"

	"github.com/parsoid-go/wtserialize/internal/dom"
	"github.com/parsoid-go/wtserialize/internal/selser"
)

// ErrInternal wraps a programmer-error assertion failure.
// The walker recovers from the corresponding panic so embedding this
// package as a library never crashes the caller's process.
type ErrInternal struct{ Msg string }

func (e *ErrInternal) Error() string { return "wikitext: internal error: " + e.Msg }

// walkContext is the ambient context threaded through the walk: the
// caller's context.Context, the serializer state, and the env — an
// explicit value passed to every handler rather than a single shared
// mutable global.
type walkContext struct {
	ctx   context.Context
	state *State
	env   *Env
}

// State exposes the serializer state to a handler.
func (c *walkContext) State() *State { return c.state }

// Env exposes the resolved environment to a handler.
func (c *walkContext) Env() *Env { return c.env }

// RenderChildren recursively serializes parent's children as a block
//; handlers call back into this for
// their own content.
func (c *walkContext) RenderChildren(parent *dom.Node) {
	renderChildren(c, parent, hasHTMLStructure(parent))
}

// Cancelled reports whether the caller's context has been cancelled — a
// caller may abandon the in-flight serialization.
func (c *walkContext) Cancelled() bool {
	select {
	case <-c.ctx.Done():
		return true
	default:
		return false
	}
}

// Serialize is the core's primary entry point:
// serialize(body, {selser?, env}) -> string.
func Serialize(ctx context.Context, body *dom.Node, opts Options, env *Env) (out string, err error) {
	if env == nil {
		return "", &ErrInternal{Msg: "nil env"}
	}
	if env.Registry == nil {
		env.Registry = DefaultRegistry(env.Wiki)
	}

	log := func(level, msg string, fields map[string]interface{}) {
		if env.Log == nil {
			return
		}
		if level == "error" {
			env.Log.Error(msg, fields)
		} else {
			env.Log.Warn(msg, fields)
		}
	}
	state := NewState(env.EscapeOracle, log)
	state.SelserMode = opts.Selser
	state.CurrNodeUnmodified = true

	defer func() {
		if r := recover(); r != nil {
			err = &ErrInternal{Msg: fmt.Sprintf("%v", r)}
		}
	}()

	wctx := &walkContext{ctx: ctx, state: state, env: env}
	renderChildren(wctx, body, hasHTMLStructure(body))

	result := ApplyPostPass(state.Out(), state, env.ScrubWikitext)
	return result, nil
}

// hasHTMLStructure reports whether node is an HTML-syntax list or table
//.
func hasHTMLStructure(node *dom.Node) bool {
	if node == nil || node.Prov == nil {
		return false
	}
	if node.Prov.Stx != "html" {
		return false
	}
	switch node.Tag {
	case "ul", "ol", "dl", "table":
		return true
	}
	return false
}

// isDiffMarkerMeta reports whether node is a diff-marker meta-element
//.
func isDiffMarkerMeta(node *dom.Node) bool {
	if node == nil || !node.IsElement() || node.Tag != "meta" {
		return false
	}
	typeOf, _ := node.Attr("typeof")
	return strings.Contains(typeOf, "mw:DiffMarker")
}

func applyDiffMarkerMeta(state *State, node *dom.Node) {
	typeOf, _ := node.Attr("typeof")
	if strings.Contains(typeOf, "mw:DiffMarker/inserted") {
		state.InModifiedContent = true
	}
}

// isPureSeparatorText reports whether a text node consists solely of
// whitespace and can be absorbed into the pending separator.
func isPureSeparatorText(node *dom.Node) bool {
	return node.IsText() && strings.TrimSpace(node.Text) == ""
}

// renderChildren implements the DOM walker's per-child dispatch loop
//.
func renderChildren(wctx *walkContext, parent *dom.Node, parentHasHTMLStructure bool) {
	state := wctx.state
	reg := wctx.env.Registry

	var prevHandler *HandlerSpec
	var prevNode *dom.Node

	children := parent.Children
	for i := 0; i < len(children); i++ {
		node := children[i]

		if isDiffMarkerMeta(node) {
			applyDiffMarkerMeta(state, node)
			continue
		}

		if node.IsComment() {
			absorbCommentIntoSeparator(state, node)
			prevNode = node
			continue
		}

		if node.IsText() {
			if isPureSeparatorText(node) {
				absorbWhitespaceIntoSeparator(state, node)
				prevNode = node
				continue
			}
			emitText(wctx, node, parent, i)
			advanceModificationFlags(state, node)
			prevHandler = nil
			prevNode = node
			continue
		}

		handler := reg.Resolve(node, parentHasHTMLStructure)
		if handler == nil {
			panic(fmt.Sprintf("wikitext: no handler resolvable for tag %q", node.Tag))
		}

		before := handler.Before
		if prevHandler != nil {
			before = CombineContracts(prevHandler.After, handler.Before)
		}
		installSeparator(state, prevNode, node, before)

		if chunk, consumed, ok := tryReuse(wctx, node); ok {
			state.Append(chunk)
			prevHandler = handler
			prevNode = node
			advanceModificationFlags(state, node)
			if consumed > 0 {
				i += consumed
			}
			continue
		}

		next := handler.Handle(wctx, node, parent, i, wrapperReuseFor(wctx, node))
		prevHandler = handler
		prevNode = node
		advanceModificationFlags(state, node)

		if next != nil {
			if idx := indexOfChild(children, next); idx > i {
				i = idx - 1
			}
		}
	}
}

func indexOfChild(children []*dom.Node, target *dom.Node) int {
	for i, c := range children {
		if c == target {
			return i
		}
	}
	return -1
}

func advanceModificationFlags(state *State, node *dom.Node) {
	state.PrevNodeUnmodified = state.CurrNodeUnmodified
	state.CurrNodeUnmodified = node.Prov == nil || !node.Prov.HasDiffMarks()
}

// installSeparator sets the pending separator between prevNode and node
// using the combined contract, preferring any candidate source whitespace
// recorded between them.
func installSeparator(state *State, prevNode, node *dom.Node, contract SeparatorContract) {
	sep := NewSeparator(contract, SepSibling, prevNode, node)
	if pending := state.PendingSeparator(); pending != nil && pending.HasSrc {
		sep = sep.WithSrc(pending.Src)
	}
	state.SetPendingSeparator(sep)
}

func absorbCommentIntoSeparator(state *State, node *dom.Node) {
	comment := "<!--" + node.Text + "-->"
	appendToSeparatorSrc(state, comment)
}

func absorbWhitespaceIntoSeparator(state *State, node *dom.Node) {
	appendToSeparatorSrc(state, node.Text)
}

func appendToSeparatorSrc(state *State, text string) {
	pending := state.PendingSeparator()
	if pending == nil {
		pending = &Separator{Max: 2}
	}
	pending.Src += text
	pending.HasSrc = true
	state.SetPendingSeparator(pending)
}

// tryReuse attempts the selser reuse path for node. On
// success it returns the constrained-text chunk to append and how many
// additional sibling indices the envelope consumed (0 for ordinary nodes;
// >0 when an encapsulated template/extension spans further siblings the
// walker must advance past to skip the node's entire envelope).
func tryReuse(wctx *walkContext, node *dom.Node) (Chunk, int, bool) {
	state := wctx.state
	if !selser.Eligible(node, state.SelserMode, state.InModifiedContent) {
		return Chunk{}, 0, false
	}
	res, ok := selser.Reuse(wctx.env.selserEnv(), node)
	if !ok {
		return Chunk{}, 0, false
	}

	consumed := 0
	if node.Prov.IsEncapsulated() {
		consumed = envelopeSiblingSpan(node)
	}
	return Bounded(res.Text, res.LeftBoundary, res.RightBoundary, node), consumed, true
}

// wrapperReuseFor answers the §4.8 wrapper_unmodified question for node,
// once tryReuse has already ruled out full verbatim reuse: if only node's
// descendants changed and its own open/close widths are trustworthy, the
// handler dispatched below may reuse that markup from source verbatim while
// still recursing into (modified) children through the ordinary walk.
func wrapperReuseFor(wctx *walkContext, node *dom.Node) *WrapperReuse {
	state := wctx.state
	if !state.SelserMode || state.InModifiedContent {
		return nil
	}
	onlySubtreeChanged := selser.OnlySubtreeChanged(node)
	if !selser.WrapperUnmodified(node, onlySubtreeChanged) {
		return nil
	}
	open, close, ok := selser.ReuseWrapper(wctx.env.selserEnv(), node)
	if !ok {
		return nil
	}
	return &WrapperReuse{Open: open, Close: close}
}

// envelopeSiblingSpan returns how many following siblings share this
// node's `about` id and so belong to the same encapsulation envelope
// (the wrapper produced for a multi-part transclusion).
func envelopeSiblingSpan(node *dom.Node) int {
	about, ok := node.Attr("about")
	if !ok || about == "" {
		return 0
	}
	count := 0
	for sib := node.NextSibling(); sib != nil; sib = sib.NextSibling() {
		sibAbout, ok := sib.Attr("about")
		if !ok || sibAbout != about {
			break
		}
		count++
	}
	return count
}
