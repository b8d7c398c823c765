package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"

	"github.com/funnelgraph/funnelgraph/pkg/funnel"
)

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); len(got) != 1 || got[0] != "svg" {
		t.Errorf("default formats = %v", got)
	}
	got := parseFormats("svg,png,pdf")
	if len(got) != 3 || got[1] != "png" {
		t.Errorf("parsed formats = %v", got)
	}
}

func TestValidateFormats(t *testing.T) {
	if err := validateFormats([]string{"svg", "png", "pdf"}); err != nil {
		t.Errorf("valid formats rejected: %v", err)
	}
	if err := validateFormats([]string{"svg", "webp"}); err == nil {
		t.Error("invalid format accepted")
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "data.json", "data"},
		{"", "charts/data.json", "charts/data"},
		{"out.svg", "data.json", "out"},
		{"out.png", "data.json", "out"},
		{"out", "data.json", "out"},
		{"report.final", "data.json", "report.final"}, // unknown extension kept
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestFingerprint(t *testing.T) {
	rows := []funnel.Row{{Label: "A", Value: 10}, {Label: "B", Value: 5}}
	opts := funnel.Options{Width: 500, IsCurved: true}

	a := fingerprint(rows, opts)
	b := fingerprint(rows, opts)
	if !bytes.Equal(a, b) {
		t.Error("fingerprint not deterministic")
	}

	// Callbacks do not affect the rendered bytes and must not change the key.
	withCallbacks := opts
	withCallbacks.OnItemClick = func(funnel.Row) {}
	withCallbacks.Palette = func(int) string { return "#000" }
	if !bytes.Equal(a, fingerprint(rows, withCallbacks)) {
		t.Error("callback fields leaked into the fingerprint")
	}

	changed := opts
	changed.Width = 600
	if bytes.Equal(a, fingerprint(rows, changed)) {
		t.Error("changed options produced the same fingerprint")
	}
	if bytes.Equal(a, fingerprint(rows[:1], opts)) {
		t.Error("changed rows produced the same fingerprint")
	}
}

func TestChartOptionsFlagOverridesFile(t *testing.T) {
	optionsFile := writeFile(t, "chart.toml", `
width = 500
curved = true
`)

	opts := renderOpts{optionsFile: optionsFile}
	cmd := &cobra.Command{}
	cmd.Flags().Float64Var(&opts.width, "width", 0, "")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "")
	cmd.Flags().BoolVar(&opts.curved, "curved", false, "")
	if err := cmd.Flags().Set("width", "200"); err != nil {
		t.Fatal(err)
	}

	o, err := chartOptions(cmd, &opts)
	if err != nil {
		t.Fatalf("chartOptions: %v", err)
	}
	if o.Width != 200 {
		t.Errorf("width = %v, want flag value 200", o.Width)
	}
	if !o.IsCurved {
		t.Error("file-set curved flag lost")
	}
	if o.Height != 0 {
		t.Errorf("height = %v, want untouched zero", o.Height)
	}
}

func TestChartOptionsNoFile(t *testing.T) {
	opts := renderOpts{}
	cmd := &cobra.Command{}
	cmd.Flags().BoolVar(&opts.inverted, "inverted", false, "")
	if err := cmd.Flags().Set("inverted", "true"); err != nil {
		t.Fatal(err)
	}

	o, err := chartOptions(cmd, &opts)
	if err != nil {
		t.Fatalf("chartOptions: %v", err)
	}
	if !o.IsInverted {
		t.Error("flag not applied without an options file")
	}
}
