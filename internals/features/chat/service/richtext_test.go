package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextAndImages(t *testing.T) {
	markup := `<p>Paragraf pembuka</p>` +
		`<img src="https://x.test/a.png">` +
		`<p>Paragraf kedua <b>tebal</b></p>` +
		`<img src="https://x.test/b.png">`

	text, images := ExtractTextAndImages(markup, nil)

	require.Equal(t, []string{"https://x.test/a.png", "https://x.test/b.png"}, images)
	assert.Contains(t, text, "Paragraf pembuka")
	assert.Contains(t, text, "Paragraf kedua")
	assert.Contains(t, text, "tebal")
	assert.NotContains(t, text, "img")
	assert.NotContains(t, text, "a.png")
}

func TestExtractTextAndImages_RewriteApplied(t *testing.T) {
	markup := `<img src="https://x.test/storage/v1/s3/media/foto.png"><p>isi</p>`
	rewrite := func(s string) string {
		return strings.Replace(s, "/storage/v1/s3/", "/storage/v1/object/public/", 1)
	}

	text, images := ExtractTextAndImages(markup, rewrite)

	require.Len(t, images, 1)
	assert.Equal(t, "https://x.test/storage/v1/object/public/media/foto.png", images[0])
	assert.Equal(t, "isi", text)
}

func TestExtractTextAndImages_NoImages(t *testing.T) {
	text, images := ExtractTextAndImages("<p>hanya teks</p>", nil)

	assert.Equal(t, "hanya teks", text)
	assert.Empty(t, images)
}

func TestExtractTextAndImages_EmptySrcSkipped(t *testing.T) {
	_, images := ExtractTextAndImages(`<img src=""><img><p>x</p>`, nil)

	assert.Empty(t, images)
}

func TestExtractTextAndImages_PlainText(t *testing.T) {
	text, images := ExtractTextAndImages("  tanpa markup  ", nil)

	assert.Equal(t, "tanpa markup", text)
	assert.Empty(t, images)
}
