// Package funnel implements a funnel chart renderer.
//
// A funnel chart turns an ordered list of (label, value, color) rows into a
// stack of tapering blocks. The package is split into three cooperating
// pieces:
//
//   - the configuration resolver ([Resolve]) merges user options over
//     defaults, validates the rows, and assigns palette colors to rows that
//     lack one;
//   - the path geometry engine ([ComputePaths]) converts resolved rows into
//     one closed [Path] per row, honoring curvature, dynamic-area weighting,
//     pinch tapering, and inversion;
//   - the block sequencer (driven by [Chart.Draw]) paints the paths one block
//     at a time onto a [Surface], optionally animating each block before the
//     next one is revealed.
//
// The Surface is an opaque rendering substrate. The svgsink package provides
// an implementation that produces standalone SVG documents; tests use an
// in-memory recorder.
//
// # Example
//
//	s := svgsink.New(350, 400)
//	chart := funnel.New(s, 350, 400)
//	err := chart.Draw([]funnel.Row{
//	    {Label: "Applicants", Value: 9500},
//	    {Label: "Interviewed", Value: 2500},
//	    {Label: "Hired", Value: 400},
//	}, funnel.Options{DynamicArea: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("funnel.svg", s.Document(), 0644)
package funnel
