package md

import (
	"fmt"
	"html"
	"io"
	"strings"
)

// Encoder accumulates the body of a markdown page.
type Encoder struct {
	main strings.Builder
}

func (e *Encoder) Markdown() string {
	return e.main.String()
}

func (e *Encoder) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, e.main.String())
	return int64(n), err
}

func (e *Encoder) RawMarkdown(s string) {
	e.main.WriteString(s)
}

func (e *Encoder) Heading1(s string) {
	e.writeHeading(&e.main, "# ", s)
}

func (e *Encoder) Heading2(s string) {
	e.writeHeading(&e.main, "## ", s)
}

func (e *Encoder) Heading3(s string) {
	e.writeHeading(&e.main, "### ", s)
}

func (e *Encoder) writeHeading(buf io.StringWriter, prefix string, s string) {
	buf.WriteString("\n")
	buf.WriteString(prefix + s)
	buf.WriteString("\n\n")
}

func (b *Encoder) Para(s string) {
	b.writePara(&b.main, s)
}

func (b *Encoder) EncodePara(s string) string {
	buf := new(strings.Builder)
	b.writePara(buf, s)
	return buf.String()
}

func (b *Encoder) writePara(buf io.StringWriter, s string) {
	if s == "" {
		return
	}
	buf.WriteString(s)
	buf.WriteString("\n\n")
}

func (b *Encoder) BlockQuote(s string) {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if i > 0 {
			b.main.WriteString("\n")
			b.main.WriteString(">\n")
		}
		b.main.WriteString("> ")
		b.main.WriteString(l)
	}
	b.main.WriteString("\n\n")
}

func (b *Encoder) EncodeItalic(s string) string {
	return "*" + s + "*"
}

func (b *Encoder) EncodeBold(s string) string {
	return "**" + s + "**"
}

func (b *Encoder) UnorderedList(items []string) {
	for _, item := range items {
		b.main.WriteString(" - " + item + "\n")
	}
	b.main.WriteString("\n")
}

func (b *Encoder) DefinitionList(items [][2]string) {
	for _, item := range items {
		b.main.WriteString(fmt.Sprintf("%s\n", item[0]))
		lines := strings.Split(item[1], "\n")
		for _, l := range lines {
			b.main.WriteString(fmt.Sprintf(": %s\n", l))
		}
		b.main.WriteString("\n")
	}
}

func (b *Encoder) EncodeLink(text string, url string) string {
	if url == "" {
		return text
	}
	return fmt.Sprintf("[%s](%s)", text, url)
}

// Figure writes an image reference. Nothing is written when src is empty.
func (b *Encoder) Figure(alt string, src string) {
	if src == "" {
		return
	}
	b.main.WriteString(fmt.Sprintf("![%s](%s)\n\n", alt, src))
}

// Table writes a pipe table. Columns listed in right are right aligned.
func (b *Encoder) Table(header []string, rows [][]string, right ...int) {
	if len(header) == 0 {
		return
	}
	rightAligned := make(map[int]bool, len(right))
	for _, c := range right {
		rightAligned[c] = true
	}

	b.main.WriteString("| " + strings.Join(header, " | ") + " |\n")
	b.main.WriteString("|")
	for i := range header {
		if rightAligned[i] {
			b.main.WriteString(" ---: |")
		} else {
			b.main.WriteString(" --- |")
		}
	}
	b.main.WriteString("\n")

	for _, row := range rows {
		cells := make([]string, len(header))
		copy(cells, row)
		for i := range cells {
			cells[i] = strings.ReplaceAll(cells[i], "|", `\|`)
		}
		b.main.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	b.main.WriteString("\n")
}

func (b *Encoder) Pre(s string) {
	b.main.WriteString("<pre>\n")
	b.main.WriteString(html.EscapeString(s))
	b.main.WriteString("</pre>\n\n")
}
