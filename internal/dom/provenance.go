package dom

// DSR is a Data Source Range: byte offsets into the original source, plus
// the widths of the node's open/close markup. Any field may be unknown
// (nil) except that widths are never negative when present.
type DSR struct {
	Start, End            *int
	OpenWidth, CloseWidth *int
}

// NewDSR builds a fully-known DSR, a convenience for tests and fixtures.
func NewDSR(start, end, openWidth, closeWidth int) *DSR {
	return &DSR{Start: &start, End: &end, OpenWidth: &openWidth, CloseWidth: &closeWidth}
}

// Valid reports whether start/end are both present and 0 <= start <= end,
// and any present width is non-negative.
func (d *DSR) Valid() bool {
	if d == nil || d.Start == nil || d.End == nil {
		return false
	}
	if *d.Start < 0 || *d.Start > *d.End {
		return false
	}
	if d.OpenWidth != nil && *d.OpenWidth < 0 {
		return false
	}
	if d.CloseWidth != nil && *d.CloseWidth < 0 {
		return false
	}
	return true
}

// ZeroWidth reports whether this is a valid DSR with start == end.
func (d *DSR) ZeroWidth() bool {
	return d.Valid() && *d.Start == *d.End
}

// Span returns the byte range [start, end) this DSR denotes. Callers must
// check Valid first.
func (d *DSR) Span() (start, end int) {
	return *d.Start, *d.End
}

// DiffMark records why the caller's diffing pass considers a node modified
// relative to the edited document. Its presence on a node disqualifies it
// from selser reuse.
type DiffMark struct {
	Kind string // "inserted" | "deleted" | "subtree-changed" | "children-changed"
}

// ParamInfo is preserved-parameter-info: the order and key spelling the
// original source used for one template/extension argument (`pi`).
type ParamInfo struct {
	K     string
	Named bool
	// Spc is spacing around '=': [beforeKey, afterKey, beforeVal, afterVal].
	Spc [4]string
}

// Provenance is the per-node metadata a wiki parser attaches so the
// serializer can reconstruct, or verbatim-reuse, the node's original
// wikitext surface form.
type Provenance struct {
	DSR               *DSR
	Stx               string // "wiki" | "html" | tag-specific variant
	AutoInsertedStart bool
	AutoInsertedEnd   bool
	SelfClose         bool
	NoClose           bool
	Fostered          bool
	Misnested         bool
	LiHackSrc         string
	SrcTagName        string

	DataMW *DataMW
	PI     []ParamInfo
	A      map[string]*string // sanitized-away attribute-value snapshot
	SA     map[string]string  // sanitized-away attributes to restore

	Diff *DiffMark
}

// HasDiffMarks reports whether the node carries any diff marker, which
// disqualifies it from selser reuse regardless of DSR validity.
func (p *Provenance) HasDiffMarks() bool {
	return p != nil && p.Diff != nil
}

// IsEncapsulated reports whether this provenance marks the node as the
// first wrapper of a template or extension transclusion.
func (p *Provenance) IsEncapsulated() bool {
	return p != nil && p.DataMW != nil
}
