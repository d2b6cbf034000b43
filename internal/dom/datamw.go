package dom

// TargetSpec names what a transclusion invokes.
type TargetSpec struct {
	WT   string
	Href string
}

// ParamValue is one template argument's value. The serializer prefers WT
// (the wikitext form), falling back to recursively serializing HTML when
// WT is unavailable.
type ParamValue struct {
	WT   *string
	HTML *Node
}

// ParamKey overrides the map key used to emit a parameter's name.
type ParamKey struct {
	WT string
}

// Param bundles a template argument's value with its optional overridden
// key and whether `pi` recorded it as named.
type Param struct {
	Value *ParamValue
	Key   *ParamKey
}

// TemplateSpec is one `{{...}}` invocation. DataMW.Parts holds a mix of
// literal strings (for multi-part transclusions like "a{{b}}c") and
// *TemplateSpec values.
type TemplateSpec struct {
	Target TargetSpec
	Params map[string]*Param
	I      int
}

// ExtBody resolves an extension's body content, tried in priority order:
// HTML, then the node named by ID (searched in the current document, then
// the caller's edited document), then ExtSrc.
type ExtBody struct {
	HTML   *Node
	ID     string
	ExtSrc string
}

// DataMW is the template/extension envelope attached to an encapsulation
// wrapper node (a node whose `typeof` matches mw:Transclusion or
// mw:Extension/<name>).
type DataMW struct {
	// Parts holds the pieces of a (possibly multi-part) transclusion: each
	// element is either a string literal or a *TemplateSpec.
	Parts []interface{}

	// ExtName is non-empty for an extension call ("ref", "references", …).
	ExtName  string
	ExtAttrs []Attr
	Body     *ExtBody
}
