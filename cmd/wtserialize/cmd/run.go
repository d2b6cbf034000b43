package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parsoid-go/wtserialize/internal/dom"
	"github.com/parsoid-go/wtserialize/internal/escape"
	"github.com/parsoid-go/wtserialize/internal/wikitext"
	"github.com/parsoid-go/wtserialize/internal/wtconfig"
	"github.com/parsoid-go/wtserialize/internal/wtlog"
)

// readInput loads the JSON-encoded DOM from args[0], or from stdin when no
// path argument was given.
func readInput(args []string) ([]byte, error) {
	if len(args) > 0 {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}

// runSerialize is the shared body of the serialize and selser subcommands;
// selser is false for "serialize" and true for "selser", where sourcePath
// additionally names the file selser reuse is measured against.
func runSerialize(args []string, selser bool, sourcePath string) error {
	raw, err := readInput(args)
	if err != nil {
		return fmt.Errorf("wtserialize: reading input: %w", err)
	}
	node, err := dom.UnmarshalNode(raw)
	if err != nil {
		return fmt.Errorf("wtserialize: decoding DOM: %w", err)
	}

	wiki := wtconfig.Default()
	if configPath != "" {
		wiki, err = wtconfig.Load(configPath)
		if err != nil {
			return err
		}
	}

	env := &wikitext.Env{
		Wiki:          wiki,
		EscapeOracle:  escape.NewDefault(),
		Log:           wtlog.New(),
		ScrubWikitext: scrubWikitext,
	}

	if selser {
		if sourcePath == "" {
			sourcePath = os.Getenv("WTSERIALIZE_SOURCE")
		}
		if sourcePath == "" {
			return errors.New("wtserialize: selser requires --source or WTSERIALIZE_SOURCE")
		}
		src, err := os.ReadFile(sourcePath)
		if err != nil {
			return fmt.Errorf("wtserialize: reading source: %w", err)
		}
		env.Source = string(src)
	}

	out, err := wikitext.Serialize(context.Background(), node, wikitext.Options{Selser: selser}, env)
	if err != nil {
		var internal *wikitext.ErrInternal
		if errors.As(err, &internal) {
			env.Log.Error("serialization aborted", map[string]interface{}{"error": internal.Error()})
		}
		return err
	}

	fmt.Print(out)
	if isTerminal(os.Stdout) {
		fmt.Println()
	}
	return nil
}

// isTerminal reports whether f is connected to a terminal, used to decide
// whether to append a trailing newline the core itself never adds.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
