package wikitext

import (
	"sort"
	"strconv"
	"strings"

	"github.com/parsoid-go/wtserialize/internal/dom"
	"github.com/parsoid-go/wtserialize/internal/escape"
)

// EncapsulationHandler returns the handler for the first wrapper of an
// encapsulated template or extension: it
// reconstructs `{{target|args}}` from a DataMW envelope, or `<ext
// attrs>body</ext>` / `<ext attrs />` for a parser extension.
func EncapsulationHandler() *HandlerSpec {
	return &HandlerSpec{
		Handle: encapsulationHandle,
		Before: SeparatorContract{Min: 0, Max: 2},
		After:  SeparatorContract{Min: 0, Max: 2},
	}
}

// encapsulationHandle ignores wrapper: a transclusion/extension is always
// reconstructed as a whole unit from its DataMW envelope, not from reused
// open/close markup around re-serialized children.
func encapsulationHandle(wctx *walkContext, node, parent *dom.Node, index int, wrapper *WrapperReuse) *dom.Node {
	data := node.Prov.DataMW
	if data.ExtName != "" {
		emitExtension(wctx, node, data)
		return nil
	}
	emitTransclusion(wctx, node, data)
	return nil
}

// emitTransclusion reconstructs a (possibly multi-part) transclusion from
// its Parts list: literal strings pass through verbatim, *TemplateSpec
// values emit `{{target|args}}`.
func emitTransclusion(wctx *walkContext, node *dom.Node, data *dom.DataMW) {
	state := wctx.state
	for _, part := range data.Parts {
		switch v := part.(type) {
		case string:
			state.Write(v)
		case *dom.TemplateSpec:
			state.Write("{{" + renderTarget(v.Target) + renderParams(wctx, node, v) + "}}")
		}
	}
}

func renderTarget(t dom.TargetSpec) string {
	if t.WT != "" {
		return t.WT
	}
	return t.Href
}

// renderParams orders arguments per the node's preserved-parameter-info
// (original source order), appending any new arguments not present there,
// and formats each per the positional/named/spacing rules below.
func renderParams(wctx *walkContext, node *dom.Node, spec *dom.TemplateSpec) string {
	order := paramOrder(node, spec)

	var b strings.Builder
	positional := 1
	for _, key := range order {
		param := spec.Params[key]
		if param == nil {
			continue
		}
		b.WriteString("|")
		b.WriteString(renderOneParam(wctx, key, param, node, &positional))
	}
	return b.String()
}

// paramOrder returns the template's param keys in original-source order
// (from the node's preserved pi), followed by any keys pi does not mention,
// sorted so emission stays deterministic.
func paramOrder(node *dom.Node, spec *dom.TemplateSpec) []string {
	seen := map[string]bool{}
	var order []string
	if node.Prov != nil {
		for _, pi := range node.Prov.PI {
			if _, ok := spec.Params[pi.K]; ok && !seen[pi.K] {
				order = append(order, pi.K)
				seen[pi.K] = true
			}
		}
	}
	var rest []string
	for key := range spec.Params {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

// piFor finds the preserved-parameter-info entry recorded for key, if any.
func piFor(node *dom.Node, key string) (dom.ParamInfo, bool) {
	if node.Prov == nil {
		return dom.ParamInfo{}, false
	}
	for _, pi := range node.Prov.PI {
		if pi.K == key {
			return pi, true
		}
	}
	return dom.ParamInfo{}, false
}

var defaultSpacing = [4]string{"", " ", " ", ""}

func renderOneParam(wctx *walkContext, key string, param *dom.Param, node *dom.Node, positional *int) string {
	pi, hasPI := piFor(node, key)

	keyName := key
	if param.Key != nil && param.Key.WT != "" {
		keyName = param.Key.WT
		if trimmed := strings.TrimSpace(keyName); trimmed != keyName {
			keyName = trimmed
		}
	}

	val, forceNamed := renderParamValue(wctx, param.Value)

	isPositional := !hasPI || !pi.Named
	if isPositional && keyName == strconv.Itoa(*positional) {
		*positional++
	} else {
		isPositional = false
	}
	if forceNamed {
		isPositional = false
	}

	if isPositional {
		return val
	}

	spc := defaultSpacing
	if hasPI {
		spc = pi.Spc
	}
	if keyName == "" {
		spc = [4]string{"", "", "", ""}
	}
	trimmedVal := strings.TrimSpace(val)
	return spc[0] + keyName + spc[1] + "=" + spc[2] + trimmedVal + spc[3]
}

// renderParamValue prefers the wikitext form of a value; absent that, it
// recursively serializes the HTML form with on_sol=false.
func renderParamValue(wctx *walkContext, value *dom.ParamValue) (text string, forceNamed bool) {
	if value == nil {
		return "", false
	}
	if value.WT != nil {
		text = *value.WT
	} else if value.HTML != nil {
		text = serializeNestedOnSOLFalse(wctx, value.HTML)
	}

	if wctx.env.EscapeOracle != nil {
		decision := wctx.env.EscapeOracle.Decide(text, escape.Context{TemplateArg: true})
		forceNamed = decision.ForceNamed
	}
	return text, forceNamed
}

// serializeNestedOnSOLFalse renders html as a nested fragment starting with
// on_sol forced false, the fallback path for a template argument whose
// wikitext form is unavailable.
func serializeNestedOnSOLFalse(wctx *walkContext, html *dom.Node) string {
	nested := NewState(wctx.env.EscapeOracle, wctx.state.Log)
	nested.onSOL = false
	nested.SelserMode = wctx.state.SelserMode
	nestedCtx := &walkContext{ctx: wctx.ctx, state: nested, env: wctx.env}
	renderChildren(nestedCtx, html, hasHTMLStructure(html))
	return nested.Out()
}

// emitExtension reconstructs `<name attrs>body</name>` (or a self-closing
// form when the body resolves to empty) from a parser-extension envelope.
// When no body resolves it logs an error and emits nothing for the call.
func emitExtension(wctx *walkContext, node *dom.Node, data *dom.DataMW) {
	state := wctx.state
	var attrParts []string
	for _, a := range data.ExtAttrs {
		attrParts = append(attrParts, a.Key+`="`+a.Val+`"`)
	}
	attrs := strings.Join(attrParts, " ")

	body, ok := resolveExtBody(wctx, node, data.Body)
	if !ok {
		if wctx.state.Log != nil {
			wctx.state.Log("error", "extension body did not resolve", map[string]interface{}{
				"node_tag": data.ExtName,
			})
		}
		return
	}

	open := "<" + data.ExtName
	if attrs != "" {
		open += " " + attrs
	}
	if body == "" {
		state.Write(open + " />")
		return
	}
	state.Write(open + ">")
	state.Write(body)
	state.Write("</" + data.ExtName + ">")
}

// resolveExtBody tries HTML, then an id lookup (current doc, then the
// caller's edited document), then ExtSrc, in that priority order.
func resolveExtBody(wctx *walkContext, node *dom.Node, body *dom.ExtBody) (string, bool) {
	if body == nil {
		return "", false
	}
	if body.HTML != nil {
		return serializeNestedOnSOLFalse(wctx, body.HTML), true
	}
	if body.ID != "" {
		root := node
		for root.Parent != nil {
			root = root.Parent
		}
		if n := dom.NewLookup(root).ByID(body.ID); n != nil {
			return serializeNestedOnSOLFalse(wctx, n), true
		}
	}
	if body.ID != "" && wctx.env.EditedDoc != nil {
		if n := wctx.env.EditedDoc.ByID(body.ID); n != nil {
			return serializeNestedOnSOLFalse(wctx, n), true
		}
	}
	if body.ExtSrc != "" {
		return body.ExtSrc, true
	}
	return "", false
}
