package ingest

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// Pre-compiled regexes to avoid runtime compilation on every document.
var (
	scriptRe         = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe          = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	excessiveLinesRe = regexp.MustCompile(`\n{4,}`)
)

// Converter turns HTML scenario documents into plain text the scenario
// parser can consume. Extraction is upstream plumbing: the parser itself
// only ever sees plain text.
type Converter struct {
	converter *md.Converter
}

// NewConverter creates a new HTML-to-text converter.
func NewConverter() *Converter {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	return &Converter{converter: converter}
}

// Convert extracts the main content of an HTML document as plain text.
// Readability isolates the article body; the remaining markup is
// flattened to markdown, which the scenario parser treats as plain lines.
func (c *Converter) Convert(content []byte) (string, error) {
	cleaned := scriptRe.ReplaceAll(content, nil)
	cleaned = styleRe.ReplaceAll(cleaned, nil)

	body := string(cleaned)
	if article, err := readability.FromReader(bytes.NewReader(cleaned), &url.URL{}); err == nil && article.Content != "" {
		body = article.Content
	}

	text, err := c.converter.ConvertString(body)
	if err != nil {
		return "", fmt.Errorf("convert HTML: %w", err)
	}

	text = excessiveLinesRe.ReplaceAllString(text, "\n\n\n")
	return strings.TrimSpace(text), nil
}

// ExtractTitle returns the document's <title> text, or "".
func ExtractTitle(content []byte) string {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return ""
	}

	var title string
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
			title = strings.TrimSpace(n.FirstChild.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if title != "" {
				return
			}
			extract(c)
		}
	}
	extract(doc)

	return title
}
