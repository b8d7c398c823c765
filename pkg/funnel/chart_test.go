package funnel

import (
	"testing"

	"github.com/funnelgraph/funnelgraph/pkg/errors"
)

func TestChartDraw(t *testing.T) {
	rec := newRecorder(false)
	c := New(rec, 0, 0)

	if err := c.Draw(threeRows(), Options{}); err != nil {
		t.Fatalf("Draw error: %v", err)
	}
	if len(rec.labels) != 3 {
		t.Errorf("drew %d labels, want 3", len(rec.labels))
	}
	if rec.cleared != 1 {
		t.Errorf("surface cleared %d times, want 1", rec.cleared)
	}
}

func TestChartRedrawReplacesPrevious(t *testing.T) {
	rec := newRecorder(false)
	c := New(rec, 0, 0)

	if err := c.Draw(threeRows(), Options{}); err != nil {
		t.Fatalf("first Draw error: %v", err)
	}
	if err := c.Draw([]Row{{Label: "only", Value: 1}}, Options{}); err != nil {
		t.Fatalf("second Draw error: %v", err)
	}
	if len(rec.labels) != 1 {
		t.Errorf("after redraw: %d labels, want 1", len(rec.labels))
	}
}

func TestChartDrawRejectsBeforeTouchingSurface(t *testing.T) {
	rec := newRecorder(false)
	c := New(rec, 0, 0)

	if err := c.Draw(threeRows(), Options{}); err != nil {
		t.Fatalf("Draw error: %v", err)
	}
	before := len(rec.labels)

	err := c.Draw(nil, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("got %v, want INVALID_INPUT", err)
	}
	if len(rec.labels) != before || rec.cleared != 1 {
		t.Error("failed Draw disturbed the previous render")
	}
}

func TestChartDestroyIdempotent(t *testing.T) {
	rec := newRecorder(false)
	c := New(rec, 0, 0)

	c.Destroy()
	c.Destroy()

	if err := c.Draw(threeRows(), Options{}); err != nil {
		t.Fatalf("Draw error: %v", err)
	}
	c.Destroy()
	if len(rec.labels) != 0 {
		t.Errorf("destroy left %d labels", len(rec.labels))
	}
}

func TestChartUsesContainerMeasurement(t *testing.T) {
	rec := newRecorder(false)
	c := New(rec, 700, 500)

	if err := c.Draw(threeRows(), Options{}); err != nil {
		t.Fatalf("Draw error: %v", err)
	}
	if got := rec.labels[0].X; got != 350 {
		t.Errorf("label x = %v, want container center 350", got)
	}
}
