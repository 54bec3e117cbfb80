// Package markup turns free-text quotation fields (notes, terms,
// descriptions) into styled layout paragraphs.
//
// Text is read as light Markdown through goldmark: **strong** and *emphasis*
// become bold and italic spans, blank lines separate paragraphs, list items
// get a bullet or their number, and single newlines are kept as line breaks.
// Anything else (links, code, raw HTML) is reduced to its text.
package markup

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-quote2pdf/internal/layout"
)

// Bullet prefixes unordered list items.
const Bullet = "•"

var md = goldmark.New()

// Parse converts src into cell content. Empty or blank input returns nil.
func Parse(src string) layout.Content {
	if strings.TrimSpace(src) == "" {
		return nil
	}
	source := []byte(src)
	doc := md.Parser().Parse(text.NewReader(source))

	w := &walker{source: source}
	_ = ast.Walk(doc, w.visit)
	w.flush()
	return w.out
}

type walker struct {
	source []byte
	out    layout.Content
	cur    layout.Paragraph
	bold   int
	italic int
	lists  []*listState
}

type listState struct {
	ordered bool
	next    int
}

func (w *walker) emit(s string) {
	if s == "" {
		return
	}
	w.cur = append(w.cur, layout.Span{Text: s, Bold: w.bold > 0, Italic: w.italic > 0})
}

// flush closes the current paragraph, separating it from the previous one
// with a blank line.
func (w *walker) flush() {
	w.trimBreak()
	if len(w.cur) == 0 {
		return
	}
	if len(w.out) > 0 {
		w.out = append(w.out, layout.Paragraph{})
	}
	w.out = append(w.out, w.cur)
	w.cur = nil
}

func (w *walker) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.Heading:
		if entering {
			w.bold++
		} else {
			w.bold--
			w.endBlock()
		}
	case *ast.Paragraph, *ast.TextBlock:
		if !entering {
			w.endBlock()
		}
	case *ast.List:
		if entering {
			if len(w.lists) == 0 {
				w.flush()
			} else {
				w.lineBreak()
			}
			w.lists = append(w.lists, &listState{ordered: node.IsOrdered(), next: node.Start})
		} else {
			w.lists = w.lists[:len(w.lists)-1]
			if len(w.lists) == 0 {
				w.trimBreak()
				w.flush()
			}
		}
	case *ast.ListItem:
		if entering {
			l := w.lists[len(w.lists)-1]
			indent := strings.Repeat("  ", len(w.lists)-1)
			if l.ordered {
				w.emit(indent + strconv.Itoa(l.next) + ". ")
				l.next++
			} else {
				w.emit(indent + Bullet + " ")
			}
		}
	case *ast.Emphasis:
		counter := &w.italic
		if node.Level >= 2 {
			counter = &w.bold
		}
		if entering {
			*counter++
		} else {
			*counter--
		}
	case *ast.Text:
		if entering {
			w.emit(string(unescape(node.Segment.Value(w.source))))
			if node.SoftLineBreak() || node.HardLineBreak() {
				w.lineBreak()
			}
		}
	case *ast.String:
		if entering {
			w.emit(string(node.Value))
		}
	case *ast.CodeSpan:
		if entering {
			w.emit(codeText(node, w.source))
			return ast.WalkSkipChildren, nil
		}
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if entering {
			w.flush()
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				w.emit(strings.TrimRight(string(seg.Value(w.source)), "\n"))
				if i < lines.Len()-1 {
					w.lineBreak()
				}
			}
			w.flush()
			return ast.WalkSkipChildren, nil
		}
	case *ast.AutoLink:
		if entering {
			w.emit(string(node.Label(w.source)))
		}
	}
	return ast.WalkContinue, nil
}

// endBlock closes a paragraph. Items of one list stay together in a single
// paragraph, one item per line.
func (w *walker) endBlock() {
	if len(w.lists) > 0 {
		w.lineBreak()
		return
	}
	w.flush()
}

// lineBreak forces a new line unless the paragraph is empty or already ends
// with one.
func (w *walker) lineBreak() {
	if n := len(w.cur); n > 0 && w.cur[n-1].Text != "\n" {
		w.cur = append(w.cur, layout.Span{Text: "\n"})
	}
}

// trimBreak drops a trailing forced break left by the last list item.
func (w *walker) trimBreak() {
	if n := len(w.cur); n > 0 && w.cur[n-1].Text == "\n" {
		w.cur = w.cur[:n-1]
	}
}

// unescape resolves backslash escapes and character references such as
// &amp; and &#169; in inline text.
func unescape(v []byte) []byte {
	v = util.UnescapePunctuations(v)
	v = util.ResolveNumericReferences(v)
	return util.ResolveEntityNames(v)
}

func codeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
		case *ast.String:
			sb.Write(t.Value)
		}
	}
	return sb.String()
}
