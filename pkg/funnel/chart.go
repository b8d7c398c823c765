package funnel

// Chart renders funnel charts onto a single surface. Repeated Draw calls
// replace the previous render; a Chart instance is not safe for concurrent
// Draw calls and callers must serialize them.
type Chart struct {
	surface    Surface
	containerW float64
	containerH float64
}

// New creates a chart bound to a surface and its container measurement.
// A measurement of zero or less falls back to the 350x400 default at draw
// time.
func New(s Surface, containerW, containerH float64) *Chart {
	return &Chart{surface: s, containerW: containerW, containerH: containerH}
}

// Draw renders rows as a funnel, replacing any chart previously drawn on the
// surface. Invalid input is rejected before the surface is touched, so a
// failed Draw leaves the previous render intact.
func (c *Chart) Draw(rows []Row, opts Options) error {
	cfg, resolved, err := Resolve(rows, opts, c.containerW, c.containerH)
	if err != nil {
		return err
	}

	c.Destroy()
	render(resolved, ComputePaths(resolved, cfg), cfg, c.surface)
	return nil
}

// Destroy removes every drawn element and bound handler from the surface.
// It is idempotent; destroying an empty chart is a no-op. Any in-flight
// animation is abandoned along with its elements.
func (c *Chart) Destroy() {
	c.surface.Clear()
}
