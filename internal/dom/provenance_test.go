package dom_test

import (
	"testing"

	"github.com/parsoid-go/wtserialize/internal/dom"
	"github.com/stretchr/testify/assert"
)

func TestDSRValid(t *testing.T) {
	assert.True(t, dom.NewDSR(0, 3, 0, 0).Valid())
	assert.True(t, dom.NewDSR(5, 5, 1, 1).Valid())

	bad := &dom.DSR{}
	assert.False(t, bad.Valid())

	negWidth := dom.NewDSR(0, 3, -1, 0)
	assert.False(t, negWidth.Valid())
}

func TestDSRZeroWidth(t *testing.T) {
	assert.True(t, dom.NewDSR(5, 5, 0, 0).ZeroWidth())
	assert.False(t, dom.NewDSR(0, 3, 0, 0).ZeroWidth())
}

func TestHasDiffMarks(t *testing.T) {
	var prov dom.Provenance
	assert.False(t, prov.HasDiffMarks())
	prov.Diff = &dom.DiffMark{Kind: "inserted"}
	assert.True(t, prov.HasDiffMarks())
}
