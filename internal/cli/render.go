package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/funnelgraph/funnelgraph/pkg/cache"
	"github.com/funnelgraph/funnelgraph/pkg/funnel"
	"github.com/funnelgraph/funnelgraph/pkg/render"
	"github.com/funnelgraph/funnelgraph/pkg/render/svgsink"
)

const (
	pngScale = 2.0 // 2x resolution for raster export
	cacheTTL = 7 * 24 * time.Hour
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string   // output file path (or base path for multiple formats)
	optionsFile string   // TOML chart options file
	formats     []string // output formats: "svg", "png", "pdf"
	noCache     bool     // disable the artifact cache

	width       float64
	height      float64
	bottomWidth float64
	bottomPinch int
	curved      bool
	curveHeight float64
	fill        string
	inverted    bool
	hover       bool
	dynamicArea bool
	minHeight   float64
	animationMS int
	labelSize   float64
	labelFill   string
}

// newRenderCmd creates the render command for generating funnel charts.
//
// Chart options come from three layers: library defaults, an optional TOML
// options file (--options), and flags, with flags winning. Only flags the
// user actually set override the file.
func newRenderCmd() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [data.json]",
		Short: "Render a funnel chart from a row data file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&opts.optionsFile, "options", "", "TOML chart options file")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	cmd.Flags().Float64Var(&opts.width, "width", 0, "chart width in pixels (default 350)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "chart height in pixels (default 400)")
	cmd.Flags().Float64Var(&opts.bottomWidth, "bottom-width", 0, "bottom width as a fraction of the top width (default 1/3)")
	cmd.Flags().IntVar(&opts.bottomPinch, "bottom-pinch", 0, "number of blocks with vertical sides at the narrow end")
	cmd.Flags().BoolVar(&opts.curved, "curved", false, "curve the block edges")
	cmd.Flags().Float64Var(&opts.curveHeight, "curve-height", 0, "curvature in pixels (default 20)")
	cmd.Flags().StringVar(&opts.fill, "fill", "", "fill mode: solid (default), gradient")
	cmd.Flags().BoolVar(&opts.inverted, "inverted", false, "widen rather than narrow going down")
	cmd.Flags().BoolVar(&opts.hover, "hover", false, "darken blocks on pointer hover")
	cmd.Flags().BoolVar(&opts.dynamicArea, "dynamic-area", false, "make block areas proportional to values")
	cmd.Flags().Float64Var(&opts.minHeight, "min-height", 0, "minimum block height in pixels (dynamic-area mode)")
	cmd.Flags().IntVar(&opts.animationMS, "animation", 0, "block reveal duration in milliseconds (0 disables)")
	cmd.Flags().Float64Var(&opts.labelSize, "label-size", 0, "label font size in pixels (default 14)")
	cmd.Flags().StringVar(&opts.labelFill, "label-fill", "", "label color (default #fff)")

	return cmd
}

func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	return strings.Split(s, ",")
}

var validFormats = map[string]bool{"svg": true, "png": true, "pdf": true}

func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'svg', 'png', or 'pdf')", f)
		}
	}
	return nil
}

// chartOptions merges the options file (if any) with the flags the user set.
func chartOptions(cmd *cobra.Command, opts *renderOpts) (funnel.Options, error) {
	var o funnel.Options
	if opts.optionsFile != "" {
		var err error
		if o, err = loadOptionsFile(opts.optionsFile); err != nil {
			return funnel.Options{}, err
		}
	}

	flags := cmd.Flags()
	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	set("width", func() { o.Width = opts.width })
	set("height", func() { o.Height = opts.height })
	set("bottom-width", func() { o.BottomWidth = opts.bottomWidth })
	set("bottom-pinch", func() { o.BottomPinch = opts.bottomPinch })
	set("curved", func() { o.IsCurved = opts.curved })
	set("curve-height", func() { o.CurveHeight = opts.curveHeight })
	set("fill", func() { o.FillType = opts.fill })
	set("inverted", func() { o.IsInverted = opts.inverted })
	set("hover", func() { o.HoverEffects = opts.hover })
	set("dynamic-area", func() { o.DynamicArea = opts.dynamicArea })
	set("min-height", func() { o.MinHeight = opts.minHeight })
	set("animation", func() { o.Animation = time.Duration(opts.animationMS) * time.Millisecond })
	set("label-size", func() { o.Label.FontSize = opts.labelSize })
	set("label-fill", func() { o.Label.Fill = opts.labelFill })

	return o, nil
}

// runRender loads the rows, draws the chart once, and writes every requested
// format, consulting the artifact cache for raster conversions.
func runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	rows, err := loadRows(input)
	if err != nil {
		return err
	}
	logger.Infof("Loaded %d rows from %s", len(rows), input)

	o, err := chartOptions(cmd, opts)
	if err != nil {
		return err
	}

	width := pickDefault(o.Width, funnel.DefaultWidth)
	height := pickDefault(o.Height, funnel.DefaultHeight)

	prog := newProgress(logger)
	sink := svgsink.New(width, height)
	chart := funnel.New(sink, width, height)
	if err := chart.Draw(rows, o); err != nil {
		return err
	}
	svg := sink.Document()
	prog.done(fmt.Sprintf("Rendered %d blocks", len(rows)))

	store, err := openCache(opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()
	chartHash := cache.Hash(fingerprint(rows, o))

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		data, err := convert(ctx, store, chartHash, format, svg)
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}

		path := base + "." + format
		if opts.output != "" && len(opts.formats) == 1 {
			path = opts.output
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return err
		}
		logger.Infof("Generated %s", path)
	}
	return nil
}

// convert produces one output format, serving raster conversions from the
// artifact cache when possible. SVG output is never cached: it is already in
// hand.
func convert(ctx context.Context, store cache.Cache, chartHash, format string, svg []byte) ([]byte, error) {
	if format == "svg" {
		return svg, nil
	}

	key := cache.ArtifactKey(chartHash, format)
	if data, hit, err := store.Get(ctx, key); err == nil && hit {
		loggerFromContext(ctx).Debugf("Cache hit for %s", format)
		return data, nil
	}

	var data []byte
	var err error
	switch format {
	case "png":
		data, err = render.ToPNG(svg, pngScale)
	case "pdf":
		data, err = render.ToPDF(svg)
	}
	if err != nil {
		return nil, err
	}

	if err := store.Set(ctx, key, data, cacheTTL); err != nil {
		loggerFromContext(ctx).Debugf("Cache write failed: %v", err)
	}
	return data, nil
}

// openCache returns the file cache under the user cache dir, or the null
// cache when disabled or when no cache dir is available.
func openCache(disabled bool) (cache.Cache, error) {
	if disabled {
		return cache.NewNullCache(), nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(filepath.Join(dir, "funnelgraph"))
}

// fingerprint serializes rows and options into a stable byte form for
// artifact cache keying. Callback fields do not participate: they do not
// affect the rendered bytes.
func fingerprint(rows []funnel.Row, o funnel.Options) []byte {
	snapshot := struct {
		Rows []funnel.Row
		Opts fileOptions
	}{Rows: rows}
	snapshot.Opts.Width = o.Width
	snapshot.Opts.Height = o.Height
	snapshot.Opts.BottomWidth = o.BottomWidth
	snapshot.Opts.BottomPinch = o.BottomPinch
	snapshot.Opts.Curved = o.IsCurved
	snapshot.Opts.CurveHeight = o.CurveHeight
	snapshot.Opts.Fill = o.FillType
	snapshot.Opts.Inverted = o.IsInverted
	snapshot.Opts.Hover = o.HoverEffects
	snapshot.Opts.DynamicArea = o.DynamicArea
	snapshot.Opts.MinHeight = o.MinHeight
	snapshot.Opts.AnimationMS = int(o.Animation / time.Millisecond)
	snapshot.Opts.Label.FontSize = o.Label.FontSize
	snapshot.Opts.Label.Fill = o.Label.Fill

	data, _ := json.Marshal(snapshot)
	return data
}

// basePath derives the base output path from the output and input paths,
// stripping any known format extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func pickDefault(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}
