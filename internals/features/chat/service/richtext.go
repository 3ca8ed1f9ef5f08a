// internals/features/chat/service/richtext.go
package service

import (
	"strings"

	"golang.org/x/net/html"
)

// ExtractTextAndImages memisahkan isi rich-text (HTML dari editor admin)
// menjadi teks polos + daftar URL gambar. Tag <img> dicabut dari pohon dan
// src-nya (setelah lewat rewrite) dicatat berurutan sesuai posisi di dokumen.
// Markup yang tidak bisa diparse dikembalikan apa adanya tanpa gambar.
func ExtractTextAndImages(markup string, rewrite func(string) string) (string, []string) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return strings.TrimSpace(markup), nil
	}
	if rewrite == nil {
		rewrite = func(s string) string { return s }
	}

	var imageURLs []string
	detachImages(doc, rewrite, &imageURLs)

	var lines []string
	collectText(doc, &lines)
	return strings.TrimSpace(strings.Join(lines, "\n")), imageURLs
}

func detachImages(n *html.Node, rewrite func(string) string, out *[]string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode && c.Data == "img" {
			for _, attr := range c.Attr {
				if attr.Key == "src" && attr.Val != "" {
					*out = append(*out, rewrite(attr.Val))
					break
				}
			}
			n.RemoveChild(c)
		} else {
			detachImages(c, rewrite, out)
		}
		c = next
	}
}

func collectText(n *html.Node, out *[]string) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			*out = append(*out, t)
		}
		return
	}
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, out)
	}
}
