package escape_test

import (
	"testing"

	"github.com/parsoid-go/wtserialize/internal/escape"
	"github.com/stretchr/testify/assert"
)

func TestDefaultOracleSkipsInPreAndNowiki(t *testing.T) {
	o := escape.NewDefault()
	d := o.Decide("[[Foo]]", escape.Context{InHTMLPre: true})
	assert.False(t, d.NeedsNowiki)

	d = o.Decide("[[Foo]]", escape.Context{InNoWiki: true})
	assert.False(t, d.NeedsNowiki)
}

func TestDefaultOracleGuardsWikiMarkup(t *testing.T) {
	o := escape.NewDefault()
	assert.True(t, o.Decide("a [[link]] b", escape.Context{}).NeedsNowiki)
	assert.True(t, o.Decide("{{echo}}", escape.Context{}).NeedsNowiki)
	assert.False(t, o.Decide("plain text", escape.Context{}).NeedsNowiki)
}

func TestDefaultOracleGuardsSOLMarkup(t *testing.T) {
	o := escape.NewDefault()
	assert.True(t, o.Decide("* not a list", escape.Context{OnSOL: true}).NeedsNowiki)
	assert.False(t, o.Decide("* not a list", escape.Context{OnSOL: false}).NeedsNowiki)
}

func TestDefaultOracleForceNamedOnTemplateArg(t *testing.T) {
	o := escape.NewDefault()
	d := o.Decide("a|b", escape.Context{TemplateArg: true})
	assert.True(t, d.ForceNamed)

	d = o.Decide("a-b", escape.Context{TemplateArg: true})
	assert.False(t, d.ForceNamed)
}
