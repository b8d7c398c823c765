package funnel

import (
	"math"
	"testing"

	"github.com/funnelgraph/funnelgraph/pkg/errors"
)

func TestResolveDefaults(t *testing.T) {
	cfg, _, err := Resolve(threeRows(), Options{}, 0, 0)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	if cfg.Width != DefaultWidth || cfg.Height != DefaultHeight {
		t.Errorf("dimensions = %vx%v, want %vx%v", cfg.Width, cfg.Height, DefaultWidth, DefaultHeight)
	}
	if math.Abs(cfg.BottomWidth-DefaultWidth/3) > eps {
		t.Errorf("bottom width = %v, want %v", cfg.BottomWidth, DefaultWidth/3)
	}
	if cfg.Fill != FillSolid {
		t.Errorf("fill = %v, want solid", cfg.Fill)
	}
	if cfg.Label.FontSize != DefaultFontSize || cfg.Label.Fill != DefaultLabelFill {
		t.Errorf("label style = %+v, want defaults", cfg.Label)
	}
	if math.Abs(cfg.DX-cfg.BottomLeftX/3) > eps {
		t.Errorf("dx = %v, want %v", cfg.DX, cfg.BottomLeftX/3)
	}
	if math.Abs(cfg.DY-cfg.Height/3) > eps {
		t.Errorf("dy = %v, want %v", cfg.DY, cfg.Height/3)
	}
}

func TestResolveContainerMeasurement(t *testing.T) {
	cfg, _, err := Resolve(threeRows(), Options{}, 500, 600)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if cfg.Width != 500 || cfg.Height != 600 {
		t.Errorf("dimensions = %vx%v, want container 500x600", cfg.Width, cfg.Height)
	}

	// Explicit options win over the container.
	cfg, _, err = Resolve(threeRows(), Options{Width: 200}, 500, 600)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if cfg.Width != 200 || cfg.Height != 600 {
		t.Errorf("dimensions = %vx%v, want 200x600", cfg.Width, cfg.Height)
	}

	// Degenerate container measurements fall back to the hard default.
	cfg, _, err = Resolve(threeRows(), Options{}, -10, 0)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if cfg.Width != DefaultWidth || cfg.Height != DefaultHeight {
		t.Errorf("dimensions = %vx%v, want fallback %vx%v", cfg.Width, cfg.Height, DefaultWidth, DefaultHeight)
	}
}

func TestResolveCurvedSteps(t *testing.T) {
	cfg, _, err := Resolve(threeRows(), Options{IsCurved: true}, 0, 0)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	want := (cfg.Height - cfg.CurveHeight) / 3
	if math.Abs(cfg.DY-want) > eps {
		t.Errorf("curved dy = %v, want %v", cfg.DY, want)
	}
}

func TestResolvePinchStep(t *testing.T) {
	cfg, _, err := Resolve(threeRows(), Options{BottomPinch: 1}, 0, 0)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	want := cfg.BottomLeftX / 2
	if math.Abs(cfg.DX-want) > eps {
		t.Errorf("pinched dx = %v, want %v", cfg.DX, want)
	}
}

func TestResolveAssignsPaletteColors(t *testing.T) {
	rows := []Row{
		{Label: "A", Value: 3, Color: "#123abc"},
		{Label: "B", Value: 2},
		{Label: "C", Value: 1, Color: "not-a-color"},
	}

	_, resolved, err := Resolve(rows, Options{}, 0, 0)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	if resolved[0].Color != "#123abc" {
		t.Errorf("valid color replaced: %q", resolved[0].Color)
	}
	if resolved[1].Color != DefaultPalette(1) {
		t.Errorf("row 1 color = %q, want palette %q", resolved[1].Color, DefaultPalette(1))
	}
	if resolved[2].Color != DefaultPalette(2) {
		t.Errorf("invalid color not replaced: %q", resolved[2].Color)
	}

	// Caller rows are never mutated.
	if rows[1].Color != "" || rows[2].Color != "not-a-color" {
		t.Errorf("caller rows mutated: %+v", rows)
	}
}

func TestResolveColorDeterminism(t *testing.T) {
	rows := threeRows()
	_, a, err := Resolve(rows, Options{}, 0, 0)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	_, b, err := Resolve(rows, Options{}, 0, 0)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	for i := range a {
		if a[i].Color != b[i].Color {
			t.Errorf("row %d: colors differ across resolves: %q vs %q", i, a[i].Color, b[i].Color)
		}
	}
}

func TestResolveCustomPalette(t *testing.T) {
	mono := func(int) string { return "#abcdef" }
	_, resolved, err := Resolve(threeRows(), Options{Palette: mono}, 0, 0)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	for i, r := range resolved {
		if r.Color != "#abcdef" {
			t.Errorf("row %d: color = %q, want injected palette color", i, r.Color)
		}
	}
}

func TestResolveRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		rows []Row
		opts Options
	}{
		{"empty", nil, Options{}},
		{"negative value", []Row{{Label: "A", Value: -1}}, Options{}},
		{"pinch out of range", threeRows(), Options{BottomPinch: 4}},
		{"bad fill", threeRows(), Options{FillType: "plaid"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Resolve(tt.rows, tt.opts, 0, 0)
			if err == nil {
				t.Fatal("expected error")
			}
			code := errors.GetCode(err)
			if code != errors.ErrCodeInvalidInput && code != errors.ErrCodeInvalidOptions {
				t.Errorf("unexpected error code %q for %v", code, err)
			}
		})
	}
}

func TestParseFillType(t *testing.T) {
	if f, err := ParseFillType(""); err != nil || f != FillSolid {
		t.Errorf("empty fill: got %v, %v", f, err)
	}
	if f, err := ParseFillType("gradient"); err != nil || f != FillGradient {
		t.Errorf("gradient fill: got %v, %v", f, err)
	}
	if _, err := ParseFillType("stripes"); err == nil {
		t.Error("expected error for unknown fill type")
	}
}
