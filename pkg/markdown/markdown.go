// Package markdown builds Markdown documents from a sequence of elements.
//
// A [Document] is an ordered list of [Element] values. Rendering joins
// the elements with blank lines:
//
//	doc := markdown.New()
//	doc.Add(markdown.Header{Level: 1, Text: "Buffer"})
//	doc.Add(markdown.Paragraph{Text: "A loaded buffer."})
//	doc.Add(markdown.Code{Lang: "lua", Text: "local b = Buffer()"})
//	out := doc.String()
//
// Element text is emitted verbatim; callers are expected to have resolved
// links before adding it.
package markdown

import (
	"strings"
	"unicode/utf8"
)

// Element is one block of a document.
type Element interface {
	Markdown() string
}

// Document is an ordered list of elements.
type Document struct {
	elements []Element
}

// New creates an empty document.
func New() *Document {
	return &Document{}
}

// Add appends elements to the document.
func (d *Document) Add(elems ...Element) {
	d.elements = append(d.elements, elems...)
}

// Elements returns the document's elements in order.
func (d *Document) Elements() []Element {
	return d.elements
}

// String renders the document. The result ends with a single newline.
func (d *Document) String() string {
	var b strings.Builder
	for i, e := range d.elements {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(e.Markdown())
	}
	if b.Len() > 0 {
		b.WriteByte('\n')
	}
	return b.String()
}

// Bytes renders the document as bytes.
func (d *Document) Bytes() []byte {
	return []byte(d.String())
}

// =============================================================================
// Elements
// =============================================================================

// Header is an ATX heading. Levels outside 1..6 are clamped.
type Header struct {
	Level int
	Text  string
}

func (h Header) Markdown() string {
	level := min(max(h.Level, 1), 6)
	return strings.Repeat("#", level) + " " + h.Text
}

// Paragraph is raw text.
type Paragraph struct {
	Text string
}

func (p Paragraph) Markdown() string { return p.Text }

// Bold is a paragraph rendered in bold.
type Bold struct {
	Text string
}

func (b Bold) Markdown() string { return "**" + b.Text + "**" }

// Code is a fenced code block.
type Code struct {
	Lang string
	Text string
}

func (c Code) Markdown() string {
	fence := "```"
	for strings.Contains(c.Text, fence) {
		fence += "`"
	}
	return fence + c.Lang + "\n" + strings.TrimRight(c.Text, "\n") + "\n" + fence
}

// HorizontalRule is a thematic break.
type HorizontalRule struct{}

func (HorizontalRule) Markdown() string { return "***" }

// =============================================================================
// Tables
// =============================================================================

// Align is a table column alignment.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Table is a pipe table. Cells may not span lines: newlines become "<br>"
// and pipes are escaped.
type Table struct {
	Header []string
	Rows   [][]string
	Align  []Align // per column, AlignLeft when missing
}

func (t Table) Markdown() string {
	cols := len(t.Header)
	for _, r := range t.Rows {
		cols = max(cols, len(r))
	}
	if cols == 0 {
		return ""
	}

	header := t.normalize(t.Header, cols)
	rows := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = t.normalize(r, cols)
	}

	widths := make([]int, cols)
	for c := 0; c < cols; c++ {
		widths[c] = max(3, utf8.RuneCountInString(header[c]))
		for _, r := range rows {
			widths[c] = max(widths[c], utf8.RuneCountInString(r[c]))
		}
	}

	var b strings.Builder
	t.writeRow(&b, header, widths)
	b.WriteByte('\n')
	b.WriteByte('|')
	for c := 0; c < cols; c++ {
		b.WriteByte(' ')
		b.WriteString(t.rule(c, widths[c]))
		b.WriteString(" |")
	}
	for _, r := range rows {
		b.WriteByte('\n')
		t.writeRow(&b, r, widths)
	}
	return b.String()
}

func (t Table) align(col int) Align {
	if col < len(t.Align) {
		return t.Align[col]
	}
	return AlignLeft
}

func (t Table) rule(col, width int) string {
	switch t.align(col) {
	case AlignCenter:
		return ":" + strings.Repeat("-", width-2) + ":"
	case AlignRight:
		return strings.Repeat("-", width-1) + ":"
	default:
		return ":" + strings.Repeat("-", width-1)
	}
}

func (t Table) writeRow(b *strings.Builder, cells []string, widths []int) {
	b.WriteByte('|')
	for c, cell := range cells {
		pad := widths[c] - utf8.RuneCountInString(cell)
		b.WriteByte(' ')
		switch t.align(c) {
		case AlignCenter:
			left := pad / 2
			b.WriteString(strings.Repeat(" ", left))
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", pad-left))
		case AlignRight:
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(cell)
		default:
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteString(" |")
	}
}

func (t Table) normalize(cells []string, cols int) []string {
	out := make([]string, cols)
	for i := range out {
		if i < len(cells) {
			out[i] = escapeCell(cells[i])
		}
	}
	return out
}

var cellReplacer = strings.NewReplacer("\r\n", "<br>", "\n", "<br>", "|", `\|`)

func escapeCell(s string) string {
	return cellReplacer.Replace(strings.TrimSpace(s))
}
