package funnel

// Gradient and oval shading amounts.
const (
	gradientShade = -0.25
	ovalShade     = -0.4
	hoverShade    = -0.2
)

// block is one render-ready funnel segment.
type block struct {
	row  Row
	path Path
	fill string // resolved fill: row color or gradient reference
}

// sequencer paints blocks strictly in row order. Each animated block's
// completion continuation re-enters the driver, so the next block never
// starts before the previous one has finished appearing.
type sequencer struct {
	cfg     Config
	surface Surface
	blocks  []block

	next    int
	driving bool
}

// render draws rows and their computed paths onto the surface.
func render(rows []Row, paths []Path, cfg Config, s Surface) {
	q := &sequencer{cfg: cfg, surface: s, blocks: make([]block, len(rows))}

	for i, r := range rows {
		fill := r.Color
		if cfg.Fill == FillGradient {
			fill = s.AddGradient(i, gradientStops(r.Color))
		}
		q.blocks[i] = block{row: r, path: paths[i], fill: fill}
	}

	if cfg.Curved && len(q.blocks) > 0 {
		s.AppendOval(topOvalPath(paths[0], cfg), Shade(rows[0].Color, ovalShade))
	}

	q.drive()
}

// gradientStops builds the four-stop vertical gradient for a row color:
// darkened at the extremes, solid through the middle band.
func gradientStops(color string) []GradientStop {
	dark := Shade(color, gradientShade)
	return []GradientStop{
		{Offset: 0, Color: dark},
		{Offset: 40, Color: color},
		{Offset: 60, Color: color},
		{Offset: 100, Color: dark},
	}
}

// drive is an iterative trampoline over the remaining blocks. Animated steps
// hand a continuation to the surface; if the surface completes synchronously
// the loop here simply continues, keeping stack depth constant regardless of
// row count. An asynchronous completion re-enters drive later.
func (q *sequencer) drive() {
	if q.driving {
		return
	}
	q.driving = true
	defer func() { q.driving = false }()

	for q.next < len(q.blocks) {
		i := q.next
		q.next++
		if !q.draw(i) {
			return // waiting on an animation completion
		}
	}
}

// draw paints block i and reports whether the sequencer may proceed to the
// next block immediately.
func (q *sequencer) draw(i int) bool {
	b := q.blocks[i]

	if q.cfg.Animation <= 0 {
		q.surface.AppendShape(i, b.fill, b.path)
		q.finish(i)
		return true
	}

	// Seed a collapsed sliver the transition will expand. Solid fills start
	// from the previous row's color so consecutive blocks blend; gradients
	// cannot be cross-faded, so they start from their own fill.
	seedFill := b.fill
	if q.cfg.Fill == FillSolid && i > 0 {
		seedFill = q.blocks[i-1].row.Color
	}
	q.surface.AppendShape(i, seedFill, collapse(b.path))

	returned := false
	completed := false
	q.surface.AnimateShape(i, b.fill, b.path, q.cfg.Animation, func() {
		q.finish(i)
		completed = true
		if returned {
			q.drive()
		}
	})
	returned = true
	return completed
}

// finish attaches block i's label and event bindings once its shape has
// fully appeared.
func (q *sequencer) finish(i int) {
	b := q.blocks[i]

	if q.cfg.Hover {
		q.surface.BindHover(i, Shade(b.row.Color, hoverShade), b.fill)
	}
	if q.cfg.OnItemClick != nil {
		row := b.row
		fn := q.cfg.OnItemClick
		q.surface.BindClick(i, func() { fn(row) })
	}

	q.surface.AppendLabel(i, q.label(b))
}

// label centers the text horizontally and between the block's top and bottom
// edges. Curved charts shift it down by the per-row share of the curvature
// band.
func (q *sequencer) label(b block) Label {
	y := (b.path.TopY() + b.path.BottomY()) / 2
	if q.cfg.Curved {
		y += q.cfg.CurveHeight / float64(len(q.blocks))
	}

	fill := q.cfg.Label.Fill
	if b.row.LabelColor != "" {
		fill = b.row.LabelColor
	}

	return Label{
		X:        q.cfg.Width / 2,
		Y:        y,
		Text:     b.row.Label + ": " + b.row.FormattedValue(),
		Fill:     fill,
		FontSize: q.cfg.Label.FontSize,
	}
}
