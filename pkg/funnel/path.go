package funnel

import "math"

// Command tags one entry of a block path.
type Command uint8

const (
	// CmdMove starts a subpath at the entry's point.
	CmdMove Command = iota
	// CmdLine draws a straight edge to the entry's point.
	CmdLine
	// CmdQuad marks the entry's point as the control point of a quadratic
	// segment; the following CmdQuadEnd entry carries the endpoint.
	CmdQuad
	// CmdQuadEnd is the endpoint of a quadratic segment opened by CmdQuad.
	CmdQuadEnd
	// CmdClose closes the subpath back to the entry's point.
	CmdClose
)

// Point is one 2D point-with-command entry of a block path.
type Point struct {
	X, Y float64
	Cmd  Command
}

// Path is an ordered list of point entries describing one closed block shape.
// Straight blocks use 5 entries (four corners plus the close); curved blocks
// use 8 (two quadratic segments, two straight sides, and the close).
type Path []Point

// TopY returns the y coordinate of the block's top edge.
func (p Path) TopY() float64 {
	if len(p) == 0 {
		return 0
	}
	return p[0].Y
}

// BottomY returns the y coordinate of the block's bottom edge. Quadratic
// control points are skipped: the bottom curve's control sits below the edge
// it bends.
func (p Path) BottomY() float64 {
	bottom := math.Inf(-1)
	for _, pt := range p {
		if pt.Cmd == CmdQuad {
			continue
		}
		if pt.Y > bottom {
			bottom = pt.Y
		}
	}
	return bottom
}

// geometry carries the running state of one sequential path computation.
// The pass is order-dependent: each row's trailing edge seeds the next.
type geometry struct {
	cfg Config

	prevLeftX  float64
	prevRightX float64
	prevHeight float64

	dx, dy float64

	// Dynamic-area state.
	topBase    float64
	totalArea  float64
	totalValue float64
}

// ComputePaths converts resolved rows into one closed path per row, in input
// order. It is a pure function of the rows and config.
func ComputePaths(rows []Row, cfg Config) []Path {
	g := newGeometry(rows, cfg)
	paths := make([]Path, 0, len(rows))
	for i, r := range rows {
		paths = append(paths, g.next(i, r, len(rows)))
	}
	return paths
}

func newGeometry(rows []Row, cfg Config) *geometry {
	g := &geometry{
		cfg:        cfg,
		prevRightX: cfg.Width,
		dx:         cfg.DX,
		dy:         cfg.DY,
		topBase:    cfg.Width,
	}
	if cfg.Inverted {
		g.prevLeftX = cfg.BottomLeftX
		g.prevRightX = cfg.Width - cfg.BottomLeftX
	}
	if cfg.Curved {
		// Leave room for the top oval.
		g.prevHeight = curveTopOffset
	}

	if cfg.DynamicArea {
		height := cfg.Height
		if cfg.MinHeight > 0 {
			// Reserve the guaranteed floor first; the remainder is
			// distributed by value share.
			height -= cfg.MinHeight * float64(len(rows))
		}
		g.totalArea = height * (cfg.Width + cfg.BottomWidth) / 2
		for _, r := range rows {
			g.totalValue += r.Value
		}
	}
	return g
}

// next computes row i's closed path and advances the running edge state.
func (g *geometry) next(i int, row Row, rowCount int) Path {
	cfg := g.cfg

	if cfg.DynamicArea {
		g.stepDynamic(row, rowCount)
	}

	if cfg.BottomPinch > 0 {
		if !cfg.Inverted {
			if i >= rowCount-cfg.BottomPinch {
				g.dx = 0
			}
		} else {
			// Restore the taper after the pinched head so the funnel
			// does not stay vertical for the remaining rows.
			if !cfg.DynamicArea {
				g.dx = cfg.DX
			}
			if i < cfg.BottomPinch {
				g.dx = 0
			}
		}
	}

	nextLeftX := g.prevLeftX + g.dx
	nextRightX := g.prevRightX - g.dx
	if cfg.Inverted {
		nextLeftX = g.prevLeftX - g.dx
		nextRightX = g.prevRightX + g.dx
	}
	nextHeight := g.prevHeight + g.dy

	var p Path
	if cfg.Curved {
		p = g.curvedPath(nextLeftX, nextRightX, nextHeight)
	} else {
		p = g.straightPath(nextLeftX, nextRightX, nextHeight)
	}

	g.prevLeftX = nextLeftX
	g.prevRightX = nextRightX
	g.prevHeight = nextHeight
	return p
}

// stepDynamic solves for the bottom base of a trapezoid whose area matches
// the row's share of the total value, then derives this row's dx/dy.
func (g *geometry) stepDynamic(row Row, rowCount int) {
	cfg := g.cfg

	ratio := 0.0
	if g.totalValue > 0 {
		ratio = row.Value / g.totalValue
	}
	area := ratio * g.totalArea
	if cfg.MinHeight > 0 {
		area += cfg.MinHeight * (cfg.Width + cfg.BottomWidth) / 2
	}

	bottomBase := solveBottomBase(g.topBase, area, cfg)
	g.dx = (g.topBase - bottomBase) / 2
	g.dy = 0
	if g.topBase+bottomBase > 0 {
		g.dy = 2 * area / (g.topBase + bottomBase)
	}
	if cfg.Curved {
		g.dy -= cfg.CurveHeight / float64(rowCount)
	}
	g.topBase = bottomBase
}

// solveBottomBase inverts the trapezoid area formula along the funnel's
// slope. Extreme minHeight/pinch/value combinations can push the radicand
// negative; it is clamped at zero (a degenerate pointed block) rather than
// letting NaN poison the remaining rows.
func solveBottomBase(topBase, area float64, cfg Config) float64 {
	slope := 2 * cfg.Height / (cfg.Width - cfg.BottomWidth)
	radicand := (slope*topBase*topBase - 4*area) / slope
	if radicand < 0 {
		radicand = 0
	}
	return math.Sqrt(radicand)
}

func (g *geometry) straightPath(nextLeftX, nextRightX, nextHeight float64) Path {
	return Path{
		{g.prevLeftX, g.prevHeight, CmdMove},
		{g.prevRightX, g.prevHeight, CmdLine},
		{nextRightX, nextHeight, CmdLine},
		{nextLeftX, nextHeight, CmdLine},
		{g.prevLeftX, g.prevHeight, CmdClose},
	}
}

func (g *geometry) curvedPath(nextLeftX, nextRightX, nextHeight float64) Path {
	mid := g.cfg.Width / 2
	return Path{
		{g.prevLeftX, g.prevHeight, CmdMove},
		{mid, g.prevHeight + g.cfg.CurveHeight - curveTopOffset, CmdQuad},
		{g.prevRightX, g.prevHeight, CmdQuadEnd},
		{nextRightX, nextHeight, CmdLine},
		{mid, nextHeight + g.cfg.CurveHeight, CmdQuad},
		{nextLeftX, nextHeight, CmdQuadEnd},
		{g.prevLeftX, g.prevHeight, CmdLine},
		{g.prevLeftX, g.prevHeight, CmdClose},
	}
}

// collapse builds the pre-transition shape for an animated reveal: the top
// edge of p repeated immediately below itself, a zero-height sliver the
// animation expands into the true path. The result has the same entry count
// and command sequence as p, which SVG path interpolation requires.
func collapse(p Path) Path {
	out := make(Path, len(p))
	copy(out, p)

	top := p.TopY()
	switch len(p) {
	case 5: // straight: mirror the top corners onto the bottom ones
		out[2] = Point{p[1].X, top, CmdLine}
		out[3] = Point{p[0].X, top, CmdLine}
	case 8: // curved: mirror the top curve onto the bottom one
		out[3] = Point{p[2].X, top, CmdLine}
		out[4] = Point{p[1].X, p[1].Y, CmdQuad}
		out[5] = Point{p[0].X, top, CmdQuadEnd}
	}
	return out
}

// topOvalPath builds the oval closing the highest block of a curved chart:
// the first block's top curve plus a mirrored arc across the reserved band.
func topOvalPath(first Path, cfg Config) Path {
	leftX, rightX := 0.0, cfg.Width
	if cfg.Inverted {
		leftX = cfg.BottomLeftX
		rightX = cfg.Width - cfg.BottomLeftX
	}
	mid := cfg.Width / 2
	top := first.TopY()

	return Path{
		{leftX, top, CmdMove},
		{mid, top + cfg.CurveHeight - curveTopOffset, CmdQuad},
		{rightX, top, CmdQuadEnd},
		{rightX, curveTopOffset, CmdMove},
		{mid, 0, CmdQuad},
		{leftX, curveTopOffset, CmdQuadEnd},
	}
}
