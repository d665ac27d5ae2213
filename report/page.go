package report

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/floats"

	"github.com/iand/deathclock/deathclock"
	"github.com/iand/deathclock/md"
	"github.com/iand/deathclock/model"
	"github.com/iand/deathclock/text"
)

// Outlook describes the shape of d in relation to est: the chance of dying at
// the next age, the most likely year of death and how far the drawn age lies
// into the distribution. Years are those in which each age is reached.
func Outlook(est *model.Estimate, d *deathclock.Distribution) string {
	if d == nil || d.Len() == 0 {
		return ""
	}
	p := message.NewPrinter(language.English)

	subject := "the subject"
	if est != nil && est.Name != "" {
		subject = text.RemoveRedundantWhitespace(est.Name)
	}

	var para text.Para
	first := d.Points[0]
	para.StartSentence("the chance of", subject, "dying in", strconv.Itoa(first.CalendarYear()), "is", p.Sprintf("%.2f%%", first.Probability))

	prob := make([]float64, d.Len())
	for i, pt := range d.Points {
		prob[i] = pt.Probability
	}
	peak := d.Points[floats.MaxIdx(prob)]
	para.StartSentence("the most likely year of death is", strconv.Itoa(peak.CalendarYear()))
	para.AppendClause("at the age of", text.CardinalNoun(peak.Age))

	if est.IsCalculated() {
		if pt, ok := d.FindAge(est.DeathAge); ok {
			para.StartSentence("by the end of", strconv.Itoa(pt.CalendarYear()))
			para.AppendAsAside(est.Gender.PossessivePronounSingular() + " drawn year")
			para.Continue(p.Sprintf("%.1f%%", pt.Cumulative/deathclock.CompoundScale), "of the distribution has been used up")
		}
	}

	return para.Text()
}

// Page builds a markdown page for est with front matter suitable for a static
// site generator. image is the location of a chart of d and may be empty.
func Page(est *model.Estimate, d *deathclock.Distribution, image string) *md.Document {
	doc := &md.Document{}
	doc.Title(Headline(est))
	doc.Layout("deathclock")
	doc.Summary(Summary(est))
	doc.Image(image)
	doc.AddTag("deathclock")

	if !est.IsCalculated() {
		doc.Para(model.NotCalculated)
		return doc
	}
	doc.Date(est.DeathDate.Format(time.DateOnly))

	name := text.RemoveRedundantWhitespace(est.Name)
	if name == "" {
		name = "the subject"
	}
	doc.Heading1(text.UpperFirst(name))
	doc.DefinitionList([][2]string{
		{"Age", text.CardinalWithUnit(est.Age, "year", "years")},
		{"Deathday", doc.EncodeBold(est.DeathDateString())},
		{"Age at death", text.CardinalWithUnit(est.DeathAge, "year", "years")},
	})
	doc.Para(Outlook(est, d))
	doc.Figure("Probability of death by year", image)

	if d == nil || d.Len() == 0 {
		return doc
	}

	p := message.NewPrinter(language.English)
	doc.Heading2("Distribution")
	rows := make([][]string, 0, d.Len())
	for _, pt := range d.Points {
		age, year := strconv.Itoa(pt.Age), strconv.Itoa(pt.CalendarYear())
		if pt.Age == est.DeathAge {
			age, year = doc.EncodeBold(age), doc.EncodeBold(year)
		}
		rows = append(rows, []string{
			age,
			year,
			p.Sprintf("%.4f", pt.Probability),
			p.Sprintf("%.2f", pt.Cumulative),
		})
	}
	doc.Table([]string{"Age", "Year", "Probability", "Cumulative"}, rows, 0, 2, 3)
	doc.Para(fmt.Sprintf("Drawn with the %s method.", d.Mode))
	return doc
}
