package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	c := NewConverter()

	html := `<html><body>
<h1>Checkout Cases</h1>
<p>Scenario: Checkout succeeds</p>
<ul><li>Given a cart with one item</li><li>When the user pays</li></ul>
<style>p { color: red }</style>
<script>track("page")</script>
</body></html>`

	text, err := c.Convert([]byte(html))
	require.NoError(t, err)
	assert.Contains(t, text, "Scenario: Checkout succeeds")
	assert.Contains(t, text, "Given a cart with one item")
	assert.NotContains(t, text, "track(")
	assert.NotContains(t, text, "color: red")
}

func TestExtractTitle(t *testing.T) {
	assert.Equal(t, "QA Suite", ExtractTitle([]byte("<html><head><title>QA Suite</title></head><body></body></html>")))
	assert.Empty(t, ExtractTitle([]byte("<html><body><p>no title</p></body></html>")))
}
