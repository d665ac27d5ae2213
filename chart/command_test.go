package chart

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/urfave/cli/v2"
)

func TestParseColor(t *testing.T) {
	testCases := []struct {
		s       string
		want    color.Color
		wantErr bool
	}{
		{s: "FFC0CB", want: color.RGBA{0xFF, 0xC0, 0xCB, 0xFF}},
		{s: "000000", want: color.RGBA{0, 0, 0, 0xFF}},
		{s: "ff0000", want: color.RGBA{0xFF, 0, 0, 0xFF}},
		{s: "pink", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.s, func(t *testing.T) {
			got, err := parseColor(tc.s)
			if tc.wantErr {
				if err == nil {
					t.Errorf("parseColor(%q) gave no error", tc.s)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("parseColor(%q) mismatch (-want +got):\n%s", tc.s, diff)
			}
		})
	}
}

func TestChartCommand(t *testing.T) {
	var buf bytes.Buffer
	app := &cli.App{
		Name:     "deathclock",
		Commands: []*cli.Command{Command},
		Writer:   &buf,
	}
	args := []string{"deathclock", "chart", "--name", "Ada", "--age", "60", "--today", "2024-06-15", "--seed", "9", "--width", "4", "--height", "2", "--dpi", "50"}
	if err := app.Run(args); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(buf.String(), "data:image/png;base64,") {
		t.Errorf("unexpected output: %.60q", buf.String())
	}
}
