package wikitext

import (
	"regexp"
	"sort"
	"strings"

	"github.com/parsoid-go/wtserialize/internal/dom"
	"golang.org/x/net/html"
)

// ignoredAttrKeys are dropped unconditionally.
var ignoredAttrKeys = map[string]bool{
	"data-parsoid":           true,
	"data-mw":                true,
	"data-ve-changed":        true,
	"data-parsoid-changed":   true,
	"data-parsoid-diff":      true,
	"data-parsoid-serialize": true,
}

var parserGeneratedID = regexp.MustCompile(`^mw[\w-]{2,}$`)
var aboutMarker = regexp.MustCompile(`^#mwt\d+$`)
var typeofMwMarker = regexp.MustCompile(`(^|\s)mw:\S+`)

// SerializeAttrs renders node's attribute list to a single string, applying
// the following rules in order.
func SerializeAttrs(node *dom.Node, s *State) string {
	var kept []dom.Attr
	prov := node.Prov

	for _, a := range node.Attrs {
		key, val := a.Key, a.Val

		// Rule 1: ignore set.
		if ignoredAttrKeys[key] {
			continue
		}

		// Rule 2: id.
		if key == "id" && parserGeneratedID.MatchString(val) {
			if !idBackedByProvenance(prov, val) {
				if s.Log != nil {
					s.Log("warn", "dropping parser-generated id lacking provenance", map[string]interface{}{
						"id": val,
					})
				}
				continue
			}
		}

		// Rule 3: about / typeof.
		if key == "about" && aboutMarker.MatchString(val) {
			val = aboutMarker.ReplaceAllString(val, "")
			if val == "" {
				continue
			}
		}
		if key == "typeof" {
			val = typeofMwMarker.ReplaceAllString(val, "")
			val = strings.TrimSpace(val)
			if val == "" {
				continue
			}
		}

		// Rule 4: templated key/value, strip guard prefix.
		key = strings.TrimPrefix(key, "data-x-")

		kept = append(kept, dom.Attr{Key: key, Val: val})
	}

	// Rule 7: restore sanitized-away attributes recorded in `sa` but
	// absent from the live list.
	if prov != nil && len(prov.SA) > 0 {
		live := map[string]bool{}
		for _, a := range kept {
			live[a.Key] = true
		}
		saKeys := make([]string, 0, len(prov.SA))
		for key := range prov.SA {
			saKeys = append(saKeys, key)
		}
		sort.Strings(saKeys)
		for _, key := range saKeys {
			if !live[key] {
				kept = append(kept, dom.Attr{Key: key, Val: prov.SA[key]})
			}
		}
	}

	var parts []string
	for _, a := range kept {
		parts = append(parts, formatAttr(a, wasReusedFromSource(prov)))
	}
	return strings.Join(parts, " ")
}

func idBackedByProvenance(prov *dom.Provenance, id string) bool {
	if prov == nil {
		return false
	}
	if prov.A == nil {
		return false
	}
	existing, ok := prov.A["id"]
	return ok && existing != nil && *existing == id
}

func wasReusedFromSource(prov *dom.Provenance) bool {
	return prov != nil && prov.DSR.Valid()
}

// formatAttr applies rules 5-6: escape non-empty values unless reused from
// source, emit bare keys for empty templated/extension values, else
// key="".
func formatAttr(a dom.Attr, reusedFromSource bool) string {
	if a.Val == "" {
		if strings.ContainsAny(a.Key, "{<") {
			return a.Key
		}
		return a.Key + `=""`
	}
	val := a.Val
	if !reusedFromSource {
		val = html.EscapeString(val)
		// html.EscapeString renders '"' as "&#34;"; the conventional
		// "&quot;" form is expected instead.
		val = strings.ReplaceAll(val, "&#34;", "&quot;")
	}
	return a.Key + `="` + val + `"`
}
