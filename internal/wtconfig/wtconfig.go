// Package wtconfig loads the serializer's wiki constants, from built-in
// defaults overlaid with an optional YAML file. The selser/scrubWikitext
// flags and the original-source file are read by the CLI, not here.
package wtconfig

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v2"
)

// WikiConstants bundles the per-wiki lookup tables the serializer consults
//.
type WikiConstants struct {
	VoidElements     map[string]bool
	BlockTags        map[string]bool
	ParentTableTags  map[string]bool
	ChildTableTags   map[string]bool
	SOLTransparentRe *regexp.Regexp
}

// IsVoid reports whether tag is a void (self-closing-only) HTML element.
func (w WikiConstants) IsVoid(tag string) bool { return w.VoidElements[tag] }

// IsBlock reports whether tag is an HTML block-level element.
func (w WikiConstants) IsBlock(tag string) bool { return w.BlockTags[tag] }

type fileSpec struct {
	VoidElements    []string `yaml:"void_elements"`
	BlockTags       []string `yaml:"block_tags"`
	ParentTableTags []string `yaml:"parent_table_tags"`
	ChildTableTags  []string `yaml:"child_table_tags"`
	SOLTransparent  string   `yaml:"sol_transparent"`
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}

// defaultVoidElements lists HTML5 void elements, the set the generic HTML
// handler consults to decide whether a self-closing marker is
// mandatory.
var defaultVoidElements = []string{
	"area", "base", "br", "col", "embed", "hr", "img", "input",
	"link", "meta", "param", "source", "track", "wbr",
}

var defaultBlockTags = []string{
	"p", "div", "table", "tbody", "thead", "tfoot", "tr", "td", "th",
	"ul", "ol", "li", "dl", "dt", "dd", "blockquote", "pre",
	"h1", "h2", "h3", "h4", "h5", "h6", "hr", "figure",
}

var defaultParentTableTags = []string{"table", "tbody", "thead", "tfoot", "tr"}
var defaultChildTableTags = []string{"td", "th", "tr", "caption"}

// defaultSOLTransparentPattern matches wikitext that is transparent to
// start-of-line state: comments and category/language links.
var defaultSOLTransparentPattern = `^(?:<!--.*?-->|\[\[(?:[Cc]ategory|[a-z-]{2,}):[^\]]*\]\])*$`

// Default returns the built-in wiki constants, used when no config file is
// supplied.
func Default() WikiConstants {
	return WikiConstants{
		VoidElements:     toSet(defaultVoidElements),
		BlockTags:        toSet(defaultBlockTags),
		ParentTableTags:  toSet(defaultParentTableTags),
		ChildTableTags:   toSet(defaultChildTableTags),
		SOLTransparentRe: regexp.MustCompile(defaultSOLTransparentPattern),
	}
}

// Load reads wiki constants from a YAML file, overlaying only
// the fields the file sets on top of Default().
func Load(path string) (WikiConstants, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return WikiConstants{}, fmt.Errorf("wtconfig: reading %s: %w", path, err)
	}
	var fs fileSpec
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return WikiConstants{}, fmt.Errorf("wtconfig: parsing %s: %w", path, err)
	}

	wc := Default()
	if len(fs.VoidElements) > 0 {
		wc.VoidElements = toSet(fs.VoidElements)
	}
	if len(fs.BlockTags) > 0 {
		wc.BlockTags = toSet(fs.BlockTags)
	}
	if len(fs.ParentTableTags) > 0 {
		wc.ParentTableTags = toSet(fs.ParentTableTags)
	}
	if len(fs.ChildTableTags) > 0 {
		wc.ChildTableTags = toSet(fs.ChildTableTags)
	}
	if fs.SOLTransparent != "" {
		re, err := regexp.Compile(fs.SOLTransparent)
		if err != nil {
			return WikiConstants{}, fmt.Errorf("wtconfig: compiling sol_transparent: %w", err)
		}
		wc.SOLTransparentRe = re
	}
	return wc, nil
}

// Flags are the CLI-overridable knobs that feed wikitext.Options.
type Flags struct {
	Selser        bool
	ScrubWikitext bool
	Source        string
	ConfigPath    string
}
