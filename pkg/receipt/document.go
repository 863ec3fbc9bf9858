package receipt

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Document builds a plain-text receipt for 80mm paper, 42 characters to
// the line. The register prints it through the browser, so the output is
// text, not printer control bytes.
type Document struct {
	sb    strings.Builder
	width int
}

// NewDocument creates a document with the given character width.
// 42 suits 80mm paper at a regular font.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 42
	}
	return &Document{width: charWidth}
}

// LineFeed writes an empty line.
func (d *Document) LineFeed() *Document {
	d.sb.WriteByte('\n')
	return d
}

// FeedLines writes n empty lines.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.sb.WriteByte('\n')
	}
	return d
}

// Text writes a line of text.
func (d *Document) Text(s string) *Document {
	d.sb.WriteString(s)
	d.sb.WriteByte('\n')
	return d
}

// TextF writes a formatted line of text.
func (d *Document) TextF(format string, args ...interface{}) *Document {
	d.sb.WriteString(fmt.Sprintf(format, args...))
	d.sb.WriteByte('\n')
	return d
}

// Center writes a line padded to the middle of the page.
func (d *Document) Center(s string) *Document {
	pad := (d.width - utf8.RuneCountInString(s)) / 2
	if pad > 0 {
		d.sb.WriteString(strings.Repeat(" ", pad))
	}
	d.sb.WriteString(s)
	d.sb.WriteByte('\n')
	return d
}

// Separator writes a full-width separator line.
func (d *Document) Separator(char byte) *Document {
	d.sb.WriteString(strings.Repeat(string(char), d.width))
	d.sb.WriteByte('\n')
	return d
}

// KeyValue writes a left-aligned key and right-aligned value on one line.
// Column math counts runes; Thai text is multibyte.
func (d *Document) KeyValue(key, value string) *Document {
	spaces := d.width - utf8.RuneCountInString(key) - utf8.RuneCountInString(value)
	if spaces < 1 {
		spaces = 1
	}
	d.sb.WriteString(key)
	d.sb.WriteString(strings.Repeat(" ", spaces))
	d.sb.WriteString(value)
	d.sb.WriteByte('\n')
	return d
}

// ItemLine writes a receipt item line: qty x name, then a right-aligned
// total. Ice sells in fractional quantities, so qty keeps its decimals
// only when it has them.
func (d *Document) ItemLine(qty float64, name, total string) *Document {
	prefix := fmt.Sprintf("%sx %s", FormatQty(qty), name)
	spaces := d.width - utf8.RuneCountInString(prefix) - utf8.RuneCountInString(total)
	if spaces < 1 {
		spaces = 1
	}
	d.sb.WriteString(prefix)
	d.sb.WriteString(strings.Repeat(" ", spaces))
	d.sb.WriteString(total)
	d.sb.WriteByte('\n')
	return d
}

// String returns the accumulated receipt text.
func (d *Document) String() string {
	return d.sb.String()
}

// Reset clears the document for reuse.
func (d *Document) Reset() *Document {
	d.sb.Reset()
	return d
}

// FormatQty renders a quantity without trailing zeros: 2 not 2.00,
// 0.5 stays 0.5.
func FormatQty(qty float64) string {
	s := strings.TrimRight(fmt.Sprintf("%.2f", qty), "0")
	return strings.TrimRight(s, ".")
}
