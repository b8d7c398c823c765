package cli

import (
	"encoding/json"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/funnelgraph/funnelgraph/pkg/errors"
	"github.com/funnelgraph/funnelgraph/pkg/funnel"
)

// fileOptions is the TOML schema of a chart options file. Every key is
// optional; flags override whatever the file sets.
type fileOptions struct {
	Width       float64 `toml:"width"`
	Height      float64 `toml:"height"`
	BottomWidth float64 `toml:"bottom_width"`
	BottomPinch int     `toml:"bottom_pinch"`
	Curved      bool    `toml:"curved"`
	CurveHeight float64 `toml:"curve_height"`
	Fill        string  `toml:"fill"`
	Inverted    bool    `toml:"inverted"`
	Hover       bool    `toml:"hover"`
	DynamicArea bool    `toml:"dynamic_area"`
	MinHeight   float64 `toml:"min_height"`
	AnimationMS int     `toml:"animation_ms"`

	Label struct {
		FontSize float64 `toml:"font_size"`
		Fill     string  `toml:"fill"`
	} `toml:"label"`
}

// loadOptionsFile decodes a TOML options file into chart options.
// Unrecognized keys are ignored.
func loadOptionsFile(path string) (funnel.Options, error) {
	var f fileOptions
	if _, err := toml.DecodeFile(path, &f); err != nil {
		if os.IsNotExist(err) {
			return funnel.Options{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "options file %s", path)
		}
		return funnel.Options{}, errors.Wrap(errors.ErrCodeInvalidOptions, err, "decode %s", path)
	}

	return funnel.Options{
		Width:        f.Width,
		Height:       f.Height,
		BottomWidth:  f.BottomWidth,
		BottomPinch:  f.BottomPinch,
		IsCurved:     f.Curved,
		CurveHeight:  f.CurveHeight,
		FillType:     f.Fill,
		IsInverted:   f.Inverted,
		HoverEffects: f.Hover,
		DynamicArea:  f.DynamicArea,
		MinHeight:    f.MinHeight,
		Animation:    time.Duration(f.AnimationMS) * time.Millisecond,
		Label: funnel.LabelOptions{
			FontSize: f.Label.FontSize,
			Fill:     f.Label.Fill,
		},
	}, nil
}

// loadRows decodes a JSON row data file in the array form:
//
//	[
//	  ["Applicants", 9500],
//	  ["Interviewed", [2500, "2.5k"], "#EE6677"],
//	  ["Hired", 400, "#228833", "#000"]
//	]
func loadRows(path string) ([]funnel.Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "data file %s", path)
		}
		return nil, err
	}

	var rows []funnel.Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s", path)
	}
	return rows, nil
}
