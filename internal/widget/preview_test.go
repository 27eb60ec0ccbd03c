package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chmouel/lazymd/internal/theme"
)

func TestPreviewReusesLayouts(t *testing.T) {
	p := NewPreviewPane(theme.Get(theme.DraculaName))
	p.SetVisible(true)
	p.SetBody("<p>cached</p>")

	p.SetSize(40, 10)
	assert.Equal(t, 1, p.CachedLayouts())
	p.SetSize(60, 10)
	assert.Equal(t, 2, p.CachedLayouts())
	p.SetSize(40, 10)
	assert.Equal(t, 2, p.CachedLayouts(), "same width reuses the cached layout")
	assert.Contains(t, p.View(), "cached")
}

func TestPreviewThemeChangeMissesCache(t *testing.T) {
	p := NewPreviewPane(theme.Get(theme.DraculaName))
	p.SetVisible(true)
	p.SetSize(40, 10)
	p.SetBody("<p>x</p>")
	before := p.CachedLayouts()

	p.SetTheme(theme.Get(theme.NordName))
	assert.Equal(t, before+1, p.CachedLayouts())
}
