package selser_test

import (
	"testing"

	"github.com/parsoid-go/wtserialize/internal/dom"
	"github.com/parsoid-go/wtserialize/internal/selser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEligibleRequiresSelserModeAndValidDSR(t *testing.T) {
	node := &dom.Node{Tag: "i", Prov: &dom.Provenance{DSR: dom.NewDSR(0, 7, 2, 2)}}

	assert.False(t, selser.Eligible(node, false, false))
	assert.False(t, selser.Eligible(node, true, true))
	assert.True(t, selser.Eligible(node, true, false))
}

func TestEligibleRejectsDiffMarkedNode(t *testing.T) {
	node := &dom.Node{Tag: "i", Prov: &dom.Provenance{
		DSR:  dom.NewDSR(0, 7, 2, 2),
		Diff: &dom.DiffMark{Kind: "inserted"},
	}}
	assert.False(t, selser.Eligible(node, true, false))
}

func TestEligibleZeroWidthAllowsOnlySpecificTags(t *testing.T) {
	p := &dom.Node{Tag: "p", Prov: &dom.Provenance{DSR: dom.NewDSR(5, 5, 0, 0)}}
	span := &dom.Node{Tag: "span", Prov: &dom.Provenance{DSR: dom.NewDSR(5, 5, 0, 0)}}

	assert.True(t, selser.Eligible(p, true, false))
	assert.False(t, selser.Eligible(span, true, false))
}

func TestEligibleAllowsFosteredZeroWidth(t *testing.T) {
	node := &dom.Node{Tag: "span", Prov: &dom.Provenance{
		DSR:      dom.NewDSR(5, 5, 0, 0),
		Fostered: true,
	}}
	assert.True(t, selser.Eligible(node, true, false))
}

func TestReuseExtractsSourceSpanAndBoundaries(t *testing.T) {
	node := &dom.Node{Tag: "i", Prov: &dom.Provenance{DSR: dom.NewDSR(0, 7, 2, 2)}}
	env := &selser.Env{Source: "''foo''"}

	res, ok := selser.Reuse(env, node)
	require.True(t, ok)
	assert.Equal(t, "''foo''", res.Text)
	assert.Equal(t, "'", res.LeftBoundary)
	assert.Equal(t, "'", res.RightBoundary)
}

func TestReuseRejectsWhenSourceNoLongerValid(t *testing.T) {
	node := &dom.Node{Tag: "i", Prov: &dom.Provenance{DSR: dom.NewDSR(0, 7, 2, 2)}}
	env := &selser.Env{
		Source:           "''foo''",
		SourceStillValid: func(*dom.Node, int, int) bool { return false },
	}
	_, ok := selser.Reuse(env, node)
	assert.False(t, ok)
}

func TestWrapperUnmodifiedRequiresValidWidths(t *testing.T) {
	node := &dom.Node{Tag: "b", Prov: &dom.Provenance{DSR: dom.NewDSR(0, 10, 3, 4)}}
	assert.True(t, selser.WrapperUnmodified(node, true))
	assert.False(t, selser.WrapperUnmodified(node, false))
}

func TestWrapperUnmodifiedRejectsAutoInsertedExceptTableCells(t *testing.T) {
	autoSpan := &dom.Node{Tag: "span", Prov: &dom.Provenance{
		DSR:               dom.NewDSR(0, 10, 3, 4),
		AutoInsertedStart: true,
	}}
	assert.False(t, selser.WrapperUnmodified(autoSpan, true))

	autoTD := &dom.Node{Tag: "td", Prov: &dom.Provenance{
		DSR:               dom.NewDSR(0, 10, 3, 4),
		AutoInsertedStart: true,
	}}
	assert.True(t, selser.WrapperUnmodified(autoTD, true))
}

func TestReuseWrapperExtractsOpenAndCloseSubstrings(t *testing.T) {
	node := &dom.Node{Tag: "b", Prov: &dom.Provenance{DSR: dom.NewDSR(0, 23, 15, 4)}}
	env := &selser.Env{Source: `<b class="old">bold</b>`}

	open, close, ok := selser.ReuseWrapper(env, node)
	require.True(t, ok)
	assert.Equal(t, `<b class="old">`, open)
	assert.Equal(t, "</b>", close)
}

func TestReuseWrapperRejectsMissingWidths(t *testing.T) {
	node := &dom.Node{Tag: "b", Prov: &dom.Provenance{DSR: &dom.DSR{}}}
	env := &selser.Env{Source: "<b>bold</b>"}

	_, _, ok := selser.ReuseWrapper(env, node)
	assert.False(t, ok)
}

func TestSuppressSingleLineContext(t *testing.T) {
	list := &dom.Node{Tag: "ul"}
	assert.True(t, selser.SuppressSingleLineContext(list))

	dd := &dom.Node{Tag: "dd"}
	table := &dom.Node{Tag: "table"}
	dd.AppendChild(table)
	assert.True(t, selser.SuppressSingleLineContext(table))

	plain := &dom.Node{Tag: "span"}
	assert.False(t, selser.SuppressSingleLineContext(plain))
}
