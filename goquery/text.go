package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// CleanText strips scripts, styles, and page chrome from html and returns
// the visible text with one line per text node. Newline joining preserves
// the boundaries the generative backend needs to tell adjacent offers apart.
func CleanText(rawHTML string) (string, error) {
	doc, err := parseDoc(rawHTML)
	if err != nil {
		return "", err
	}

	doc.Find("script, style, nav, footer, header, meta, link").Remove()

	var lines []string
	doc.Each(func(_ int, sel *goquery.Selection) {
		for _, node := range sel.Nodes {
			collectText(node, &lines)
		}
	})

	return strings.Join(lines, "\n"), nil
}

func collectText(n *html.Node, lines *[]string) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			*lines = append(*lines, t)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, lines)
	}
}
