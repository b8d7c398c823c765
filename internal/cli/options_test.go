package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/funnelgraph/funnelgraph/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOptionsFile(t *testing.T) {
	path := writeFile(t, "chart.toml", `
width = 500
bottom_width = 0.25
curved = true
fill = "gradient"
animation_ms = 250

[label]
font_size = 18
fill = "#000"
`)

	o, err := loadOptionsFile(path)
	if err != nil {
		t.Fatalf("loadOptionsFile: %v", err)
	}
	if o.Width != 500 || o.BottomWidth != 0.25 || !o.IsCurved {
		t.Errorf("geometry options not decoded: %+v", o)
	}
	if o.FillType != "gradient" {
		t.Errorf("fill = %q", o.FillType)
	}
	if o.Animation != 250*time.Millisecond {
		t.Errorf("animation = %v", o.Animation)
	}
	if o.Label.FontSize != 18 || o.Label.Fill != "#000" {
		t.Errorf("label options not decoded: %+v", o.Label)
	}
	// Unset keys keep their zero value so library defaults apply later.
	if o.Height != 0 || o.IsInverted {
		t.Errorf("unset keys not zero: %+v", o)
	}
}

func TestLoadOptionsFileErrors(t *testing.T) {
	_, err := loadOptionsFile(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: %v", err)
	}

	bad := writeFile(t, "bad.toml", `width = "not a number"`)
	_, err = loadOptionsFile(bad)
	if !errors.Is(err, errors.ErrCodeInvalidOptions) {
		t.Errorf("malformed file: %v", err)
	}
}

func TestLoadRows(t *testing.T) {
	path := writeFile(t, "rows.json", `[
  ["Applicants", 9500],
  ["Interviewed", [2500, "2.5k"], "#EE6677"],
  ["Hired", 400, "#228833", "#000"]
]`)

	rows, err := loadRows(path)
	if err != nil {
		t.Fatalf("loadRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0].Label != "Applicants" || rows[0].Value != 9500 {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].Formatted != "2.5k" || rows[1].Color != "#EE6677" {
		t.Errorf("row 1 = %+v", rows[1])
	}
	if rows[2].LabelColor != "#000" {
		t.Errorf("row 2 = %+v", rows[2])
	}
}

func TestLoadRowsErrors(t *testing.T) {
	_, err := loadRows(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: %v", err)
	}

	bad := writeFile(t, "bad.json", `{"not": "an array"}`)
	_, err = loadRows(bad)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("malformed file: %v", err)
	}
}
