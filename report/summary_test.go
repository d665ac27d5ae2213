package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/urfave/cli/v2"

	"github.com/iand/deathclock/deathclock"
	"github.com/iand/deathclock/lifetable"
	"github.com/iand/deathclock/model"
)

func TestSummary(t *testing.T) {
	testCases := []struct {
		name string
		est  *model.Estimate
		want string
	}{
		{
			name: "calculated",
			est: &model.Estimate{
				Name:      "Ada",
				Age:       38,
				DeathAge:  82,
				DeathYear: 2071,
				DeathDate: time.Date(2071, time.March, 4, 0, 0, 0, 0, time.UTC),
			},
			want: "Ada is thirty-eight years old. Ada's deathday is Mar 4, 2071. They will be eighty-two years old.",
		},
		{
			name: "one year old",
			est: &model.Estimate{
				Name:      "  James  ",
				Age:       1,
				DeathAge:  100,
				DeathYear: 2123,
				DeathDate: time.Date(2123, time.October, 12, 0, 0, 0, 0, time.UTC),
			},
			want: "James is one year old. James' deathday is Oct 12, 2123. They will be one hundred years old.",
		},
		{
			name: "no name",
			est: &model.Estimate{
				Age:       50,
				DeathAge:  51,
				DeathYear: 2025,
				DeathDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			},
			want: "The subject is fifty years old. The subject's deathday is Jan 1, 2025. They will be fifty-one years old.",
		},
		{
			name: "not calculated",
			est:  &model.Estimate{Name: "Ada", Age: 38},
			want: "Deathday not calculated yet!",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Summary(tc.est)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Summary() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHeadline(t *testing.T) {
	est := &model.Estimate{Name: "Ada", DeathDate: time.Date(2071, time.March, 4, 0, 0, 0, 0, time.UTC)}
	if got, want := Headline(est), "Ada's deathday: Mar 4, 2071"; got != want {
		t.Errorf("got %q, wanted %q", got, want)
	}
	if got, want := Headline(nil), model.NotCalculated; got != want {
		t.Errorf("got %q, wanted %q", got, want)
	}
}

func TestWriteTable(t *testing.T) {
	tab, err := lifetable.New([]lifetable.Row{{Age: 0, Weight: 1}, {Age: 1, Weight: 1}, {Age: 2, Weight: 3}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, err := deathclock.BuildDistribution(tab, 0, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteTable(&buf, d, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, wanted 3:\n%s", len(lines), buf.String())
	}
	fields := [][]string{
		{"age", "year", "probability", "cumulative"},
		{"1", "2025", "25.0000", "2,500.00"},
		{"2", "2026", "75.0000", "10,000.00", "*"},
	}
	for i, want := range fields {
		if diff := cmp.Diff(want, strings.Fields(lines[i])); diff != "" {
			t.Errorf("line %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestEstimateCommand(t *testing.T) {
	dir := t.TempDir()
	plot := filepath.Join(dir, "chart.png")
	page := filepath.Join(dir, "ada.md")

	var buf bytes.Buffer
	app := &cli.App{
		Name:     "deathclock",
		Commands: []*cli.Command{Command},
		Writer:   &buf,
	}
	args := []string{"deathclock", "estimate", "--name", "Ada", "--age", "38", "--today", "2024-06-15", "--seed", "5", "--table", "--plot", plot, "--markdown", page}
	if err := app.Run(args); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "Ada is thirty-eight years old. Ada's deathday is ") {
		t.Errorf("unexpected summary: %q", out)
	}
	if !strings.Contains(out, "probability") {
		t.Errorf("table not printed: %q", out)
	}

	info, err := os.Stat(plot)
	if err != nil {
		t.Fatalf("chart not written: %v", err)
	}
	if info.Size() == 0 {
		t.Errorf("chart file is empty")
	}

	md, err := os.ReadFile(page)
	if err != nil {
		t.Fatalf("markdown not written: %v", err)
	}
	if !strings.Contains(string(md), "![Probability of death by year](chart.png)") {
		t.Errorf("markdown does not link to chart:\n%s", md)
	}
}
