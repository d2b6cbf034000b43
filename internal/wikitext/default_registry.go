package wikitext

// DefaultRegistry builds the registry the core ships out of the box: the
// encapsulation handler for template/extension wrappers, and the generic
// HTML element handler as the universal fallback. Per-tag wiki handlers
// (paragraphs, lists, tables, emphasis, links, ...) are an external,
// pluggable concern; callers register them on the returned Registry before
// calling Serialize.
func DefaultRegistry(wiki voidChecker) *Registry {
	r := NewRegistry()
	r.SetGenericHTML(GenericHTMLHandler(wiki))
	r.SetEncapsulation(EncapsulationHandler())
	return r
}
