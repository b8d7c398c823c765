package funnel

import (
	"time"

	"github.com/funnelgraph/funnelgraph/pkg/errors"
)

// Default geometry used when neither the options nor the container provide a
// usable measurement.
const (
	DefaultWidth       = 350.0
	DefaultHeight      = 400.0
	DefaultBottomWidth = 1.0 / 3.0
	DefaultCurveHeight = 20.0
	DefaultFontSize    = 14.0
	DefaultLabelFill   = "#fff"
)

// curveTopOffset is the vertical room reserved above the first block of a
// curved chart for the closing oval.
const curveTopOffset = 10.0

// FillType selects how blocks are filled.
type FillType int

const (
	// FillSolid fills each block with its row color.
	FillSolid FillType = iota
	// FillGradient fills each block with a vertical gradient derived from
	// its row color.
	FillGradient
)

// String returns the option-file spelling of the fill type.
func (f FillType) String() string {
	if f == FillGradient {
		return "gradient"
	}
	return "solid"
}

// ParseFillType converts the option-file spelling into a FillType.
func ParseFillType(s string) (FillType, error) {
	switch s {
	case "", "solid":
		return FillSolid, nil
	case "gradient":
		return FillGradient, nil
	default:
		return FillSolid, errors.New(errors.ErrCodeInvalidOptions, "invalid fill type: %q (must be 'solid' or 'gradient')", s)
	}
}

// LabelOptions styles the block labels.
type LabelOptions struct {
	FontSize float64 // pixels; 0 means default
	Fill     string  // label color; empty means default
}

// Options are the user-facing chart settings. The zero value of every field
// means "use the default"; all boolean defaults are false, so the zero
// Options draws a plain static funnel.
type Options struct {
	Width        float64 // pixels; 0 means use the container measurement
	Height       float64 // pixels; 0 means use the container measurement
	BottomWidth  float64 // fraction of the width kept at the funnel mouth, 0-1
	BottomPinch  int     // number of blocks with vertical sides at the narrow end
	IsCurved     bool    // quadratic top/bottom edges instead of straight ones
	CurveHeight  float64 // pixels of curvature when IsCurved is set
	FillType     string  // "solid" or "gradient"
	IsInverted   bool    // widen rather than narrow going down the rows
	HoverEffects bool    // darken blocks on pointer enter
	DynamicArea  bool    // block area proportional to the row's value share
	MinHeight    float64 // guaranteed pixel height per block in dynamic mode; 0 disables
	Animation    time.Duration // per-block reveal transition; 0 disables
	Label        LabelOptions
	OnItemClick  func(Row) // click callback, receives the row's data
	Palette      Palette   // color source for rows without one; nil means DefaultPalette
}

// LabelStyle is the resolved label styling.
type LabelStyle struct {
	FontSize float64
	Fill     string
}

// Config is the resolved, immutable configuration for one draw pass.
// It is built once per Draw call from defaults, user options, and the
// container measurement.
type Config struct {
	Width       float64
	Height      float64
	BottomWidth float64 // pixels, not a ratio
	BottomLeftX float64 // x of the funnel mouth's left corner
	BottomPinch int
	Fill        FillType
	Curved      bool
	CurveHeight float64
	Inverted    bool
	Hover       bool
	DynamicArea bool
	MinHeight   float64
	Animation   time.Duration
	Label       LabelStyle
	OnItemClick func(Row)

	// Initial per-row steps; dynamic-area mode recomputes them per row.
	DX float64
	DY float64
}

// Resolve validates rows, merges opts over the defaults, and assigns palette
// colors to rows lacking a valid hex color. The container measurement is used
// for any dimension the options leave unset; a measurement of zero or less
// falls back to 350x400.
//
// The caller's rows are never mutated: the returned slice holds augmented
// copies, all carrying a valid color.
func Resolve(rows []Row, opts Options, containerW, containerH float64) (Config, []Row, error) {
	if err := ValidateRows(rows); err != nil {
		return Config{}, nil, err
	}

	fill, err := ParseFillType(opts.FillType)
	if err != nil {
		return Config{}, nil, err
	}
	if opts.BottomPinch < 0 || opts.BottomPinch > len(rows) {
		return Config{}, nil, errors.New(errors.ErrCodeInvalidOptions, "bottom pinch %d out of range for %d rows", opts.BottomPinch, len(rows))
	}

	cfg := Config{
		Width:       pick(opts.Width, pick(containerW, DefaultWidth)),
		Height:      pick(opts.Height, pick(containerH, DefaultHeight)),
		BottomPinch: opts.BottomPinch,
		Fill:        fill,
		Curved:      opts.IsCurved,
		CurveHeight: pick(opts.CurveHeight, DefaultCurveHeight),
		Inverted:    opts.IsInverted,
		Hover:       opts.HoverEffects,
		DynamicArea: opts.DynamicArea,
		MinHeight:   opts.MinHeight,
		Animation:   opts.Animation,
		OnItemClick: opts.OnItemClick,
		Label: LabelStyle{
			FontSize: pick(opts.Label.FontSize, DefaultFontSize),
			Fill:     pickStr(opts.Label.Fill, DefaultLabelFill),
		},
	}

	ratio := pick(opts.BottomWidth, DefaultBottomWidth)
	cfg.BottomWidth = cfg.Width * ratio
	cfg.BottomLeftX = (cfg.Width - cfg.BottomWidth) / 2

	n := float64(len(rows))
	cfg.DX = cfg.BottomLeftX / n
	if cfg.BottomPinch > 0 {
		cfg.DX = cfg.BottomLeftX / float64(len(rows)-cfg.BottomPinch)
	}
	cfg.DY = cfg.Height / n
	if cfg.Curved {
		cfg.DY = (cfg.Height - cfg.CurveHeight) / n
	}

	return cfg, assignColors(rows, opts.Palette), nil
}

// assignColors copies the rows and fills in a palette color for every row
// whose color is not a strict hex string.
func assignColors(rows []Row, palette Palette) []Row {
	if palette == nil {
		palette = DefaultPalette
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		if !errors.IsHexColor(r.Color) {
			r.Color = palette(i)
		}
		out[i] = r
	}
	return out
}

// pick returns v unless it is not strictly positive, in which case it
// returns the fallback.
func pick(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}

func pickStr(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
