package md

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
)

var (
	safeString    = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	numericString = regexp.MustCompile(`^[0-9]+$`)
)

const (
	MarkdownTagTitle   = "title"
	MarkdownTagSummary = "summary"
	MarkdownTagLayout  = "layout"
	MarkdownTagTags    = "tags"
	MarkdownTagID      = "id"
	MarkdownTagImage   = "image"
	MarkdownTagDate    = "date"
)

// Document is a markdown page with YAML front matter.
type Document struct {
	Encoder
	frontMatter map[string]any
}

func (b *Document) String() string {
	s := new(strings.Builder)
	b.WriteTo(s)
	return s.String()
}

func (b *Document) WriteTo(w io.Writer) (int64, error) {
	bb := new(bytes.Buffer)
	tagRanks := map[string]byte{
		MarkdownTagID:      4,
		MarkdownTagTitle:   3,
		MarkdownTagLayout:  2,
		MarkdownTagSummary: 1,
	}

	if len(b.frontMatter) > 0 {
		bb.WriteString("---\n")

		keys := make([]string, 0, len(b.frontMatter))
		for k := range b.frontMatter {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			ri := tagRanks[keys[i]]
			rj := tagRanks[keys[j]]
			if ri != rj {
				return ri > rj
			}
			return keys[i] < keys[j]
		})

		for _, k := range keys {
			bb.WriteString(k)
			bb.WriteString(": ")

			switch tv := b.frontMatter[k].(type) {
			case string:
				bb.WriteString(quote(tv))
				bb.WriteString("\n")
			case []string:
				bb.WriteString("\n")
				for _, v := range tv {
					bb.WriteString("- ")
					bb.WriteString(quote(v))
					bb.WriteString("\n")
				}
			default:
				panic(fmt.Sprintf("unknown front matter type for key %s: %T", k, tv))
			}
		}
		bb.WriteString("---\n")
	}

	n, err := bb.WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("write front matter: %w", err)
	}

	n1, err := b.Encoder.WriteTo(w)
	n += n1
	if err != nil {
		return n, fmt.Errorf("write body: %w", err)
	}

	return n, nil
}

func quote(s string) string {
	if safeString.MatchString(s) && !numericString.MatchString(s) {
		return s
	}
	return fmt.Sprintf("%q", s)
}

func (b *Document) SetFrontMatterField(k, v string) {
	if b.frontMatter == nil {
		b.frontMatter = make(map[string]any)
	}
	b.frontMatter[k] = v
}

func (b *Document) appendFrontMatterField(k, v string) {
	if b.frontMatter == nil {
		b.frontMatter = make(map[string]any)
	}

	val, ok := b.frontMatter[k]
	if !ok {
		b.frontMatter[k] = []string{v}
		return
	}

	ss := val.([]string)
	ss = append(ss, v)
	b.frontMatter[k] = ss
}

func (b *Document) Title(s string) {
	b.SetFrontMatterField(MarkdownTagTitle, s)
}

func (b *Document) Summary(s string) {
	if s == "" {
		return
	}
	b.SetFrontMatterField(MarkdownTagSummary, s)
}

func (b *Document) Layout(s string) {
	b.SetFrontMatterField(MarkdownTagLayout, s)
}

func (b *Document) ID(s string) {
	b.SetFrontMatterField(MarkdownTagID, s)
}

func (b *Document) Image(s string) {
	if s == "" {
		return
	}
	b.SetFrontMatterField(MarkdownTagImage, s)
}

func (b *Document) Date(s string) {
	b.SetFrontMatterField(MarkdownTagDate, s)
}

func (b *Document) AddTag(s string) {
	if s == "" {
		return
	}
	b.appendFrontMatterField(MarkdownTagTags, s)
}
