package funnel

import "time"

// GradientStop is one color stop of a linear gradient definition.
type GradientStop struct {
	Offset float64 // 0-100, percent along the gradient axis
	Color  string
}

// Label is the text attached to one block.
type Label struct {
	X, Y     float64
	Text     string
	Fill     string
	FontSize float64
}

// Surface is the rendering substrate the block sequencer draws onto. The
// chart owns the sequencing; the surface owns element creation, attribute
// mutation, transitions, and event binding.
//
// Implementations must tolerate Clear at any time, including while an
// animation completion is outstanding: a cleared surface abandons in-flight
// transitions and must not invoke their completion callbacks afterward.
type Surface interface {
	// AddGradient registers a vertical linear gradient for block index and
	// returns the fill reference blocks use to point at it.
	AddGradient(index int, stops []GradientStop) (ref string)

	// AppendOval draws the oval closing the highest block of a curved chart.
	AppendOval(p Path, fill string)

	// AppendShape adds a new closed shape for block index with the given
	// fill and path.
	AppendShape(index int, fill string, p Path)

	// SetShape replaces the fill and path of the block's shape.
	SetShape(index int, fill string, p Path)

	// AnimateShape transitions the block's shape to the given fill and path
	// over d with linear easing, then calls done exactly once. done may be
	// invoked synchronously (declarative surfaces encode the transition
	// rather than wait for it) or asynchronously from the surface's event
	// loop; callers must handle both.
	AnimateShape(index int, fill string, p Path, d time.Duration, done func())

	// AppendLabel attaches the block's text label, horizontally centered on
	// l.X.
	AppendLabel(index int, l Label)

	// BindHover registers the fills applied on pointer enter and leave.
	BindHover(index int, enterFill, leaveFill string)

	// BindClick registers a click handler for the block's shape.
	BindClick(index int, fn func())

	// Clear removes every element and event handler added through this
	// surface. It must be idempotent.
	Clear()
}
