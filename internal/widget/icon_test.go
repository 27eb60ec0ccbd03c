package widget

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadIconGlyphFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.txt")
	require.NoError(t, os.WriteFile(path, []byte("★\n"), 0o600))

	icon, err := LoadIcon(path)
	require.NoError(t, err)
	assert.Equal(t, Icon{Glyph: "★"}, icon)
}

func TestLoadIconBinaryFallsBackToDevicon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.md")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n....."), 0o600))

	icon, err := LoadIcon(path)
	require.NoError(t, err)
	assert.Equal(t, IconForFile(path), icon)
	assert.False(t, icon.IsZero())
}

func TestLoadIconMissingFile(t *testing.T) {
	_, err := LoadIcon(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefaultIcons(t *testing.T) {
	for _, id := range contentPanes {
		assert.False(t, defaultIcon(id).IsZero(), id.String())
	}
}
