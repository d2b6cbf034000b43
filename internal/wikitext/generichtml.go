package wikitext

import (
	"github.com/parsoid-go/wtserialize/internal/dom"
)

// GenericHTMLHandler returns the generic HTML element handler: it emits
// `<tag attrs>` children `</tag>`, honoring
// auto-inserted/self-closing/void-element flags.
func GenericHTMLHandler(wiki voidChecker) *HandlerSpec {
	return &HandlerSpec{
		Handle: genericHTMLHandle(wiki),
		Before: SeparatorContract{Min: 0, Max: 1},
		After:  SeparatorContract{Min: 0, Max: 1},
	}
}

// voidChecker is the subset of wtconfig.WikiConstants the generic handler
// needs, kept narrow so this file doesn't import wtconfig directly.
type voidChecker interface {
	IsVoid(tag string) bool
}

func genericHTMLHandle(wiki voidChecker) HandleFunc {
	return func(wctx *walkContext, node, parent *dom.Node, index int, wrapper *WrapperReuse) *dom.Node {
		state := wctx.state
		prov := node.Prov

		if wrapper != nil {
			state.Write(wrapper.Open)
			renderGenericHTMLChildren(wctx, node, prov)
			state.Write(wrapper.Close)
			return nil
		}

		tagName := node.Tag
		if prov != nil && prov.SrcTagName != "" {
			tagName = prov.SrcTagName
		}

		isVoid := wiki.IsVoid(node.Tag)
		selfClose := isVoid || (prov != nil && prov.SelfClose)
		if prov != nil && prov.NoClose {
			selfClose = false
		}

		omitOpen := prov != nil && prov.AutoInsertedStart
		if !omitOpen {
			open := "<" + tagName
			if attrs := SerializeAttrs(node, state); attrs != "" {
				open += " " + attrs
			}
			if selfClose {
				open += " /"
			}
			open += ">"
			state.Write(open)
		}

		renderGenericHTMLChildren(wctx, node, prov)

		omitClose := selfClose || isVoid || (prov != nil && prov.AutoInsertedEnd)
		if !omitClose {
			state.Write("</" + tagName + ">")
		}
		return nil
	}
}

// renderGenericHTMLChildren recurses into node's children under whatever
// mode its tag requires, shared between the ordinary and wrapper_unmodified
// reuse paths.
func renderGenericHTMLChildren(wctx *walkContext, node *dom.Node, prov *dom.Provenance) {
	state := wctx.state
	switch {
	case node.Tag == "pre" && prov != nil && prov.Stx == "html":
		state.EnterHTMLPre(func() {
			wctx.RenderChildren(node)
		})
	case node.Tag == "nowiki":
		state.EnterNoWiki(func() {
			wctx.RenderChildren(node)
		})
	default:
		wctx.RenderChildren(node)
	}
}
