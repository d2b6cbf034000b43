package wikitext

import (
	"github.com/parsoid-go/wtserialize/internal/dom"
	"github.com/parsoid-go/wtserialize/internal/escape"
	"github.com/parsoid-go/wtserialize/internal/selser"
	"github.com/parsoid-go/wtserialize/internal/wtconfig"
	"github.com/parsoid-go/wtserialize/internal/wtlog"
)

// Env bundles the external collaborators the caller supplies to
// Serialize: the original source, wiki constants, the escape oracle,
// a logger, and the handler registry.
type Env struct {
	// Source is the original wikitext, required when Options.Selser is
	// set.
	Source string
	// EditedDoc resolves cross-document id lookups for extension bodies
	//.
	EditedDoc dom.Lookup
	// SourceStillValid backs the selser reuse oracle. If nil,
	// reused source is always considered valid.
	SourceStillValid func(node *dom.Node, start, end int) bool

	Wiki          wtconfig.WikiConstants
	EscapeOracle  escape.Oracle
	Log           wtlog.Logger
	ScrubWikitext bool
	Registry      *Registry
}

// Options controls one Serialize call.
type Options struct {
	Selser bool
}

func (e *Env) selserEnv() *selser.Env {
	return &selser.Env{Source: e.Source, SourceStillValid: e.SourceStillValid}
}
