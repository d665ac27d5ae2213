package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/iand/deathclock/deathclock"
	"github.com/iand/deathclock/model"
	"github.com/iand/deathclock/text"
)

// Summary describes an estimate in a few sentences, e.g. "Ada is thirty-eight
// years old. Ada's deathday is Mar 4, 2071. They will be eighty-two years old."
func Summary(est *model.Estimate) string {
	if !est.IsCalculated() {
		return model.NotCalculated
	}

	name := text.RemoveRedundantWhitespace(est.Name)
	if name == "" {
		name = "the subject"
	}

	return text.JoinSentences(
		fmt.Sprintf("%s is %s", name, text.CardinalWithUnit(est.Age, "year old", "years old")),
		fmt.Sprintf("%s deathday is %s", text.MaybePossessiveSuffix(name), est.DeathDateString()),
		fmt.Sprintf("%s will be %s", est.Gender.SubjectPronoun(), text.CardinalWithUnit(est.DeathAge, "year old", "years old")),
	)
}

// WriteTable writes the points of d as aligned columns, giving each age the
// calendar year in which it is reached. The row for markAge is flagged with an
// asterisk.
func WriteTable(w io.Writer, d *deathclock.Distribution, markAge int) error {
	p := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintln(tw, "age\tyear\tprobability\tcumulative\t\t")
	for _, pt := range d.Points {
		var flag string
		if pt.Age == markAge {
			flag = "*"
		}
		// years are printed without digit grouping
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t\n", pt.Age, pt.CalendarYear(), p.Sprintf("%.4f", pt.Probability), p.Sprintf("%.2f", pt.Cumulative), flag)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}

// Headline is the single line form of an estimate.
func Headline(est *model.Estimate) string {
	var b strings.Builder
	if est != nil && est.Name != "" {
		b.WriteString(text.MaybePossessiveSuffix(text.RemoveRedundantWhitespace(est.Name)))
		b.WriteString(" deathday: ")
	}
	b.WriteString(est.DeathDateString())
	return b.String()
}
