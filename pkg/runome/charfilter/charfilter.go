// Package charfilter rewrites text before it reaches the tokenizer.
package charfilter

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"

	"github.com/cognicore/runome/pkg/runome/internalerr"
)

// CharFilter transforms a whole text. Implementations are stateless and
// safe for concurrent use.
type CharFilter interface {
	Apply(text string) string
}

// UnicodeNormalize applies a Unicode normalization form.
type UnicodeNormalize struct {
	form norm.Form
	name string
}

var normForms = map[string]norm.Form{
	"NFC":  norm.NFC,
	"NFD":  norm.NFD,
	"NFKC": norm.NFKC,
	"NFKD": norm.NFKD,
}

// NewUnicodeNormalize returns a filter for the named form. An empty form
// means NFKC.
func NewUnicodeNormalize(form string) (*UnicodeNormalize, error) {
	if form == "" {
		form = "NFKC"
	}
	f, ok := normForms[strings.ToUpper(form)]
	if !ok {
		return nil, &internalerr.ConfigError{
			Option: "form",
			Value:  form,
			Reason: "expected one of NFC, NFD, NFKC, NFKD",
		}
	}
	return &UnicodeNormalize{form: f, name: strings.ToUpper(form)}, nil
}

// Apply implements CharFilter.
func (u *UnicodeNormalize) Apply(text string) string {
	return u.form.String(text)
}

// Form returns the normalization form name.
func (u *UnicodeNormalize) Form() string { return u.name }

// RegexReplace replaces every match of a pattern in a single pass.
type RegexReplace struct {
	re          *regexp.Regexp
	replacement string
}

var backref = regexp.MustCompile(`\\(?:(\d+)|g<(\w+)>)`)

// NewRegexReplace compiles pattern. The replacement refers to groups as \1,
// \g<1> or \g<name>; a "$" is literal.
func NewRegexReplace(pattern, replacement string) (*RegexReplace, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &internalerr.ConfigError{
			Option: "pattern",
			Value:  pattern,
			Err:    err,
		}
	}
	return &RegexReplace{
		re:          re,
		replacement: expandTemplate(replacement),
	}, nil
}

// expandTemplate turns a backslash replacement into a regexp template.
func expandTemplate(replacement string) string {
	escaped := strings.ReplaceAll(replacement, "$", "$$")
	return backref.ReplaceAllString(escaped, "$${$1$2}")
}

// Apply implements CharFilter.
func (r *RegexReplace) Apply(text string) string {
	return r.re.ReplaceAllString(text, r.replacement)
}

func (r *RegexReplace) String() string {
	return fmt.Sprintf("RegexReplace(%s -> %s)", r.re, r.replacement)
}

// HTMLStrip drops markup, comments, scripts and styles, keeping text
// content with entities decoded.
type HTMLStrip struct{}

// NewHTMLStrip returns an HTMLStrip filter.
func NewHTMLStrip() HTMLStrip { return HTMLStrip{} }

// Apply implements CharFilter. Text that fails to parse is returned as is.
func (HTMLStrip) Apply(text string) string {
	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return text
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)
	return buf.String()
}
