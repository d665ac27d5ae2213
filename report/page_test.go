package report

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/iand/deathclock/deathclock"
	"github.com/iand/deathclock/lifetable"
	"github.com/iand/deathclock/model"
)

func smallDistribution(t *testing.T) *deathclock.Distribution {
	t.Helper()
	tab, err := lifetable.New([]lifetable.Row{{Age: 0, Weight: 1}, {Age: 1, Weight: 1}, {Age: 2, Weight: 3}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, err := deathclock.BuildDistribution(tab, 0, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return d
}

// fixedSource always draws r and the first day of the window.
type fixedSource struct {
	r float64
}

func (s fixedSource) Float64() float64     { return s.r }
func (s fixedSource) Int63n(n int64) int64 { return 0 }

func TestOutlook(t *testing.T) {
	d := smallDistribution(t)
	est := &model.Estimate{
		Name:      "Ada",
		Gender:    model.GenderFemale,
		DeathAge:  1,
		DeathYear: 2025,
		DeathDate: time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC),
	}

	want := "The chance of Ada dying in 2025 is 25.00%. The most likely year of death is 2026, at the age of two. By the end of 2025, her drawn year, 25.0% of the distribution has been used up."
	if diff := cmp.Diff(want, Outlook(est, d)); diff != "" {
		t.Errorf("Outlook() mismatch (-want +got):\n%s", diff)
	}

	if got := Outlook(est, &deathclock.Distribution{}); got != "" {
		t.Errorf("got %q for empty distribution, wanted empty string", got)
	}
}

func TestOutlookAgreesWithEstimate(t *testing.T) {
	rows := make([]lifetable.Row, 101)
	for i := range rows {
		rows[i] = lifetable.Row{Age: i, Weight: 1}
	}
	tab, err := lifetable.New(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := deathclock.NewClock("Ada", 98, tab, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), fixedSource{r: 0.001})
	est, err := c.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if est.DeathAge != 99 || est.DeathYear != 2025 {
		t.Fatalf("got death age %d in %d, wanted 99 in 2025", est.DeathAge, est.DeathYear)
	}

	want := "The chance of Ada dying in 2025 is 50.00%. The most likely year of death is 2025, at the age of ninety-nine. By the end of 2025, their drawn year, 50.0% of the distribution has been used up."
	if diff := cmp.Diff(want, Outlook(est, c.Distribution())); diff != "" {
		t.Errorf("Outlook() mismatch (-want +got):\n%s", diff)
	}

	page := Page(est, c.Distribution(), "").String()
	var marked []string
	for _, line := range strings.Split(page, "\n") {
		if strings.HasPrefix(line, "| **") {
			marked = append(marked, line)
		}
	}
	wantMarked := []string{"| **99** | **2025** | 50.0000 | 5,000.00 |"}
	if diff := cmp.Diff(wantMarked, marked); diff != "" {
		t.Errorf("marked rows mismatch (-want +got):\n%s", diff)
	}
}

func TestPage(t *testing.T) {
	d := smallDistribution(t)
	est := &model.Estimate{
		Name:      "Ada",
		DeathAge:  1,
		DeathYear: 2025,
		DeathDate: time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC),
	}

	got := Page(est, d, "chart.png").String()

	wantPrefix := "---\ntitle: \"Ada's deathday: Aug 1, 2025\"\nlayout: deathclock\nsummary: \"Ada is zero years old."
	if !strings.HasPrefix(got, wantPrefix) {
		t.Errorf("unexpected front matter:\n%s", got)
	}

	for _, want := range []string{
		"date: \"2025-08-01\"\n",
		"image: \"chart.png\"\n",
		"tags: \n- deathclock\n",
		"\n# Ada\n",
		"Deathday\n: **Aug 1, 2025**\n",
		"![Probability of death by year](chart.png)\n",
		"| Age | Year | Probability | Cumulative |\n| ---: | --- | ---: | ---: |\n",
		"| **1** | **2025** | 25.0000 | 2,500.00 |\n",
		"| 2 | 2026 | 75.0000 | 10,000.00 |\n",
		"Drawn with the calibrated method.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("page does not contain %q:\n%s", want, got)
		}
	}
}

func TestPageNotCalculated(t *testing.T) {
	got := Page(&model.Estimate{Name: "Ada"}, nil, "").String()
	if !strings.Contains(got, model.NotCalculated) {
		t.Errorf("page does not mention missing date:\n%s", got)
	}
	if strings.Contains(got, "image:") {
		t.Errorf("page should not have an image:\n%s", got)
	}
}
