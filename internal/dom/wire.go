package dom

import "encoding/json"

// The CLI reads a Node tree as JSON, decoding through a wire-shaped
// intermediate struct instead of deriving tags directly on the runtime
// type. Only decoding is provided.

type wireDSR struct {
	Start      *int `json:"start,omitempty"`
	End        *int `json:"end,omitempty"`
	OpenWidth  *int `json:"open_width,omitempty"`
	CloseWidth *int `json:"close_width,omitempty"`
}

func (w *wireDSR) toDSR() *DSR {
	if w == nil {
		return nil
	}
	return &DSR{Start: w.Start, End: w.End, OpenWidth: w.OpenWidth, CloseWidth: w.CloseWidth}
}

type wireParamInfo struct {
	K     string     `json:"k"`
	Named bool       `json:"named,omitempty"`
	Spc   *[4]string `json:"spc,omitempty"`
}

type wireParamValue struct {
	WT   *string   `json:"wt,omitempty"`
	HTML *wireNode `json:"html,omitempty"`
}

func (w *wireParamValue) toParamValue() (*ParamValue, error) {
	if w == nil {
		return nil, nil
	}
	html, err := w.HTML.toNode(nil)
	if err != nil {
		return nil, err
	}
	return &ParamValue{WT: w.WT, HTML: html}, nil
}

type wireParam struct {
	Value *wireParamValue `json:"value,omitempty"`
	Key   *struct {
		WT string `json:"wt"`
	} `json:"key,omitempty"`
}

func (w *wireParam) toParam() (*Param, error) {
	if w == nil {
		return nil, nil
	}
	value, err := w.Value.toParamValue()
	if err != nil {
		return nil, err
	}
	p := &Param{Value: value}
	if w.Key != nil {
		p.Key = &ParamKey{WT: w.Key.WT}
	}
	return p, nil
}

type wireTemplateSpec struct {
	Target struct {
		WT   string `json:"wt,omitempty"`
		Href string `json:"href,omitempty"`
	} `json:"target"`
	Params map[string]*wireParam `json:"params,omitempty"`
	I      int                   `json:"i,omitempty"`
}

func (w *wireTemplateSpec) toTemplateSpec() (*TemplateSpec, error) {
	spec := &TemplateSpec{
		Target: TargetSpec{WT: w.Target.WT, Href: w.Target.Href},
		I:      w.I,
		Params: map[string]*Param{},
	}
	for key, wp := range w.Params {
		p, err := wp.toParam()
		if err != nil {
			return nil, err
		}
		spec.Params[key] = p
	}
	return spec, nil
}

// wirePart is one element of a DataMW.Parts list: either a literal string
// or a template invocation, distinguished on decode by whether the raw
// JSON value is a string or an object.
type wirePart struct {
	Lit      *string
	Template *wireTemplateSpec
}

func (p *wirePart) UnmarshalJSON(data []byte) error {
	var lit string
	if err := json.Unmarshal(data, &lit); err == nil {
		p.Lit = &lit
		return nil
	}
	var tmpl wireTemplateSpec
	if err := json.Unmarshal(data, &tmpl); err != nil {
		return err
	}
	p.Template = &tmpl
	return nil
}

type wireExtBody struct {
	HTML   *wireNode `json:"html,omitempty"`
	ID     string    `json:"id,omitempty"`
	ExtSrc string    `json:"ext_src,omitempty"`
}

func (w *wireExtBody) toExtBody() (*ExtBody, error) {
	if w == nil {
		return nil, nil
	}
	html, err := w.HTML.toNode(nil)
	if err != nil {
		return nil, err
	}
	return &ExtBody{HTML: html, ID: w.ID, ExtSrc: w.ExtSrc}, nil
}

type wireDataMW struct {
	Parts    []wirePart   `json:"parts,omitempty"`
	ExtName  string       `json:"ext_name,omitempty"`
	ExtAttrs []Attr       `json:"ext_attrs,omitempty"`
	Body     *wireExtBody `json:"body,omitempty"`
}

func (w *wireDataMW) toDataMW() (*DataMW, error) {
	if w == nil {
		return nil, nil
	}
	data := &DataMW{ExtName: w.ExtName, ExtAttrs: w.ExtAttrs}
	for _, part := range w.Parts {
		switch {
		case part.Lit != nil:
			data.Parts = append(data.Parts, *part.Lit)
		case part.Template != nil:
			spec, err := part.Template.toTemplateSpec()
			if err != nil {
				return nil, err
			}
			data.Parts = append(data.Parts, spec)
		}
	}
	body, err := w.Body.toExtBody()
	if err != nil {
		return nil, err
	}
	data.Body = body
	return data, nil
}

type wireDiffMark struct {
	Kind string `json:"kind"`
}

type wireProvenance struct {
	DSR               *wireDSR           `json:"dsr,omitempty"`
	Stx               string             `json:"stx,omitempty"`
	AutoInsertedStart bool               `json:"auto_inserted_start,omitempty"`
	AutoInsertedEnd   bool               `json:"auto_inserted_end,omitempty"`
	SelfClose         bool               `json:"self_close,omitempty"`
	NoClose           bool               `json:"no_close,omitempty"`
	Fostered          bool               `json:"fostered,omitempty"`
	Misnested         bool               `json:"misnested,omitempty"`
	LiHackSrc         string             `json:"li_hack_src,omitempty"`
	SrcTagName        string             `json:"src_tag_name,omitempty"`
	DataMW            *wireDataMW        `json:"data_mw,omitempty"`
	PI                []wireParamInfo    `json:"pi,omitempty"`
	A                 map[string]*string `json:"a,omitempty"`
	SA                map[string]string  `json:"sa,omitempty"`
	Diff              *wireDiffMark      `json:"diff,omitempty"`
}

func (w *wireProvenance) toProvenance() (*Provenance, error) {
	if w == nil {
		return nil, nil
	}
	dataMW, err := w.DataMW.toDataMW()
	if err != nil {
		return nil, err
	}
	prov := &Provenance{
		DSR:               w.DSR.toDSR(),
		Stx:               w.Stx,
		AutoInsertedStart: w.AutoInsertedStart,
		AutoInsertedEnd:   w.AutoInsertedEnd,
		SelfClose:         w.SelfClose,
		NoClose:           w.NoClose,
		Fostered:          w.Fostered,
		Misnested:         w.Misnested,
		LiHackSrc:         w.LiHackSrc,
		SrcTagName:        w.SrcTagName,
		DataMW:            dataMW,
		A:                 w.A,
		SA:                w.SA,
	}
	for _, pi := range w.PI {
		entry := ParamInfo{K: pi.K, Named: pi.Named}
		if pi.Spc != nil {
			entry.Spc = *pi.Spc
		}
		prov.PI = append(prov.PI, entry)
	}
	if w.Diff != nil {
		prov.Diff = &DiffMark{Kind: w.Diff.Kind}
	}
	return prov, nil
}

// wireNode is the JSON wire shape of a Node: "kind" is one of "element",
// "text", "comment".
type wireNode struct {
	Kind     string          `json:"kind"`
	Tag      string          `json:"tag,omitempty"`
	Attrs    []Attr          `json:"attrs,omitempty"`
	Text     string          `json:"text,omitempty"`
	Children []*wireNode     `json:"children,omitempty"`
	Prov     *wireProvenance `json:"prov,omitempty"`
}

func (w *wireNode) toNode(parent *Node) (*Node, error) {
	if w == nil {
		return nil, nil
	}
	var kind Kind
	switch w.Kind {
	case "", "element":
		kind = ElementNode
	case "text":
		kind = TextNode
	case "comment":
		kind = CommentNode
	default:
		return nil, &UnmarshalError{Msg: "unknown node kind " + w.Kind}
	}

	prov, err := w.Prov.toProvenance()
	if err != nil {
		return nil, err
	}
	node := &Node{
		Kind:   kind,
		Tag:    w.Tag,
		Attrs:  w.Attrs,
		Text:   w.Text,
		Parent: parent,
		Prov:   prov,
	}
	for _, wc := range w.Children {
		child, err := wc.toNode(node)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

// UnmarshalError reports a malformed wire-format Node document.
type UnmarshalError struct{ Msg string }

func (e *UnmarshalError) Error() string { return "dom: " + e.Msg }

// UnmarshalNode decodes a JSON-encoded Node tree, the format the CLI reads
// its input DOM in.
func UnmarshalNode(data []byte) (*Node, error) {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, &UnmarshalError{Msg: err.Error()}
	}
	return w.toNode(nil)
}
