// Copyright 2024-2026 Remi Philippe
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package ircfmt converts Matrix HTML and markdown code spans to IRC
// formatting codes.
package ircfmt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// IRC formatting control codes.
const (
	Bold          = "\x02"
	Color         = "\x03"
	Monospace     = "\x11"
	Reset         = "\x0f"
	Reverse       = "\x16"
	Italic        = "\x1d"
	Strikethrough = "\x1e"
	Underline     = "\x1f"
)

var (
	codeBlockRe = regexp.MustCompile("(?s)```[^`\\n]*\\n?(.*?)```")
	inlineRe    = regexp.MustCompile("`([^`\\n]+)`")
	controlRe   = regexp.MustCompile("\x03(?:\\d{1,2}(?:,\\d{1,2})?)?|[\x02\x0f\x11\x16\x1d\x1e\x1f]")
	newlinesRe  = regexp.MustCompile(`\n{3,}`)
)

// Elements with no IRC rendering. Markup containing any of them is not
// converted at all so the caller can fall back to the plain body.
var unsupportedTags = map[string]bool{
	"img":    true,
	"table":  true,
	"video":  true,
	"audio":  true,
	"iframe": true,
	"object": true,
	"embed":  true,
	"svg":    true,
	"math":   true,
	"canvas": true,
}

// Formatter implements the rich text conversions used by the action
// translator.
type Formatter struct{}

// HTMLToIRC calls the package-level HTMLToIRC.
func (Formatter) HTMLToIRC(markup string) (string, bool) { return HTMLToIRC(markup) }

// MarkdownCodeToIRC calls the package-level MarkdownCodeToIRC.
func (Formatter) MarkdownCodeToIRC(text string) (string, bool) { return MarkdownCodeToIRC(text) }

// HTMLToIRC converts Matrix HTML to IRC formatted text. It returns false
// when the markup is empty or contains elements IRC cannot show.
func HTMLToIRC(markup string) (string, bool) {
	if strings.TrimSpace(markup) == "" {
		return "", false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", false
	}
	// Reply fallbacks duplicate the quoted event.
	doc.Find("mx-reply").Remove()

	r := &renderer{}
	for _, n := range doc.Find("body").Nodes {
		r.children(n)
	}
	if r.unsupported {
		return "", false
	}
	out := newlinesRe.ReplaceAllString(r.sb.String(), "\n\n")
	out = strings.TrimSpace(out)
	if out == "" {
		return "", false
	}
	return out, true
}

// MarkdownCodeToIRC renders fenced code blocks and inline code spans in
// plain text as IRC monospace. It returns false when text has no code.
func MarkdownCodeToIRC(text string) (string, bool) {
	if !codeBlockRe.MatchString(text) && !inlineRe.MatchString(text) {
		return "", false
	}

	// Step 1: Extract code blocks into placeholders so inline matching
	// does not run inside them.
	var blocks []string
	processed := codeBlockRe.ReplaceAllStringFunc(text, func(match string) string {
		parts := codeBlockRe.FindStringSubmatch(match)
		idx := len(blocks)
		blocks = append(blocks, strings.TrimSuffix(parts[1], "\n"))
		return "\x00CODEBLOCK" + strconv.Itoa(idx) + "\x00"
	})

	// Step 2: Inline code.
	processed = inlineRe.ReplaceAllString(processed, Monospace+"$1"+Monospace)

	// Step 3: Restore code blocks.
	for i, block := range blocks {
		placeholder := "\x00CODEBLOCK" + strconv.Itoa(i) + "\x00"
		processed = strings.Replace(processed, placeholder, Monospace+block+Monospace, 1)
	}
	return processed, true
}

// StripCodes removes all IRC formatting codes from text.
func StripCodes(text string) string {
	return controlRe.ReplaceAllString(text, "")
}

type renderer struct {
	sb          strings.Builder
	inPre       bool
	listDepth   int
	unsupported bool
}

func (r *renderer) sub() *renderer {
	return &renderer{inPre: r.inPre, listDepth: r.listDepth}
}

func (r *renderer) merge(s *renderer) string {
	if s.unsupported {
		r.unsupported = true
	}
	return s.sb.String()
}

func (r *renderer) children(n *html.Node) {
	for c := n.FirstChild; c != nil && !r.unsupported; c = c.NextSibling {
		r.walk(c)
	}
}

func (r *renderer) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		r.text(n.Data)
	case html.ElementNode:
		r.element(n)
	}
}

func (r *renderer) text(data string) {
	if r.inPre {
		r.sb.WriteString(data)
		return
	}
	if strings.TrimSpace(data) == "" && strings.Contains(data, "\n") {
		return
	}
	r.sb.WriteString(strings.ReplaceAll(data, "\n", " "))
}

// block ends the current line unless the output is empty or already at a
// line start.
func (r *renderer) block() {
	s := r.sb.String()
	if s != "" && !strings.HasSuffix(s, "\n") {
		r.sb.WriteByte('\n')
	}
}

func (r *renderer) wrap(code string, n *html.Node) {
	r.sb.WriteString(code)
	r.children(n)
	r.sb.WriteString(code)
}

func (r *renderer) element(n *html.Node) {
	tag := n.Data
	switch tag {
	case "b", "strong":
		r.wrap(Bold, n)
	case "i", "em":
		r.wrap(Italic, n)
	case "u", "ins":
		r.wrap(Underline, n)
	case "del", "s", "strike":
		r.wrap(Strikethrough, n)
	case "code":
		if r.inPre {
			r.children(n)
		} else {
			r.wrap(Monospace, n)
		}
	case "pre":
		r.block()
		r.inPre = true
		r.sb.WriteString(Monospace)
		r.children(n)
		r.sb.WriteString(Monospace)
		r.inPre = false
		r.block()
	case "h1", "h2", "h3", "h4", "h5", "h6":
		r.block()
		r.wrap(Bold, n)
		r.block()
	case "p", "div", "details", "summary":
		r.block()
		r.children(n)
		r.block()
	case "br":
		r.sb.WriteByte('\n')
	case "hr":
		r.block()
	case "blockquote":
		r.blockquote(n)
	case "ul", "ol":
		r.list(n, tag == "ol")
	case "a":
		r.link(n)
	case "font", "span":
		r.colored(n)
	default:
		if unsupportedTags[tag] {
			r.unsupported = true
			return
		}
		r.children(n)
	}
}

func (r *renderer) blockquote(n *html.Node) {
	s := r.sub()
	s.children(n)
	inner := strings.TrimSpace(r.merge(s))
	r.block()
	for i, line := range strings.Split(inner, "\n") {
		if i > 0 {
			r.sb.WriteByte('\n')
		}
		r.sb.WriteString("> " + line)
	}
	r.block()
}

func (r *renderer) list(n *html.Node, ordered bool) {
	r.block()
	index := 1
	if ordered {
		if start, err := strconv.Atoi(attr(n, "start")); err == nil {
			index = start
		}
	}
	indent := strings.Repeat("  ", r.listDepth)
	r.listDepth++
	for c := n.FirstChild; c != nil && !r.unsupported; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" {
			r.walk(c)
			continue
		}
		r.block()
		if ordered {
			fmt.Fprintf(&r.sb, "%s%d. ", indent, index)
			index++
		} else {
			r.sb.WriteString(indent + "- ")
		}
		r.children(c)
	}
	r.listDepth--
	r.block()
}

func (r *renderer) link(n *html.Node) {
	href := strings.TrimSpace(attr(n, "href"))
	s := r.sub()
	s.children(n)
	text := r.merge(s)
	if href == "" || isMention(href) {
		r.sb.WriteString(text)
		return
	}
	plain := strings.TrimSpace(StripCodes(text))
	if plain == "" || plain == href || "mailto:"+plain == href {
		r.sb.WriteString(href)
		return
	}
	r.sb.WriteString(text + " (" + href + ")")
}

func (r *renderer) colored(n *html.Node) {
	if _, spoiler := lookupAttr(n, "data-mx-spoiler"); spoiler {
		r.sb.WriteString(Color + "01,01")
		r.children(n)
		r.sb.WriteString(Color)
		return
	}
	fg := attr(n, "data-mx-color")
	if fg == "" && n.Data == "font" {
		fg = attr(n, "color")
	}
	fgCode, hasFg := NearestColor(fg)
	if !hasFg {
		r.children(n)
		return
	}
	code := fmt.Sprintf("%s%02d", Color, fgCode)
	if bgCode, ok := NearestColor(attr(n, "data-mx-bg-color")); ok {
		code += fmt.Sprintf(",%02d", bgCode)
	}
	r.sb.WriteString(code)
	r.children(n)
	r.sb.WriteString(Color)
}

// isMention reports whether href is a matrix.to permalink to a user, which
// clients render as a pill containing the display name.
func isMention(href string) bool {
	return strings.HasPrefix(href, "https://matrix.to/#/@")
}

func attr(n *html.Node, key string) string {
	v, _ := lookupAttr(n, key)
	return v
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
