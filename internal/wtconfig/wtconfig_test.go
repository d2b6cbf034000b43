package wtconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parsoid-go/wtserialize/internal/wtconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConstants(t *testing.T) {
	wc := wtconfig.Default()
	assert.True(t, wc.IsVoid("br"))
	assert.False(t, wc.IsVoid("div"))
	assert.True(t, wc.IsBlock("table"))
}

func TestLoadOverlaysOnlySetFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wtserialize.yaml")
	require.NoError(t, os.WriteFile(path, []byte("void_elements: [\"br\", \"hr\"]\n"), 0o644))

	wc, err := wtconfig.Load(path)
	require.NoError(t, err)
	assert.True(t, wc.IsVoid("br"))
	assert.False(t, wc.IsVoid("img"))
	// block tags fell back to the default set since the file didn't set them.
	assert.True(t, wc.IsBlock("table"))
}
