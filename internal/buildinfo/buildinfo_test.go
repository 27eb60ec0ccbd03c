package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGet(t *testing.T) {
	Set("1.2.3", "abc123", "2026-01-01", "ci")

	got := Get()
	assert.Equal(t, "1.2.3", got.Version)
	assert.Equal(t, "abc123", got.Commit)
	assert.Equal(t, "2026-01-01", got.Date)
	assert.Equal(t, "ci", got.BuiltBy)
	assert.Contains(t, got.String(), "lazymd version 1.2.3")
}

func TestEnrichFillsPlaceholders(t *testing.T) {
	Set("dev", "none", "unknown", "unknown")
	Enrich()

	assert.NotEqual(t, "unknown", Get().BuiltBy, "builder should come from the Go version")
}

func TestEnrichKeepsExplicitValues(t *testing.T) {
	Set("v1.0.0", "deadbeef", "2026-06-01", "goreleaser")
	Enrich()

	assert.Equal(t, "deadbeef", Get().Commit)
	assert.Equal(t, "goreleaser", Get().BuiltBy)
}
