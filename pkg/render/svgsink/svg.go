// Package svgsink renders funnel charts as standalone SVG documents.
//
// Sink implements [funnel.Surface]. Drawing calls accumulate elements in
// memory; Document serializes the current state. Animation is encoded
// declaratively with SMIL: each block's reveal begins when the previous
// block's animation ends, so the document reproduces the sequencer's
// strict row ordering without any script. Hover and click interaction are
// embedded as a small JavaScript block, the same way stacktower-style SVGs
// embed theirs.
package svgsink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/funnelgraph/funnelgraph/pkg/funnel"
)

const hoverJS = `
    document.querySelectorAll('[data-hover-fill]').forEach(el => {
      el.addEventListener('mouseenter', () => el.setAttribute('fill', el.dataset.hoverFill));
      el.addEventListener('mouseleave', () => el.setAttribute('fill', el.dataset.baseFill));
    });`

const clickJS = `
    document.querySelectorAll('[data-click]').forEach(el => {
      el.style.cursor = 'pointer';
      el.addEventListener('click', () => el.dispatchEvent(new CustomEvent('funnel:itemclick', {
        bubbles: true, detail: { block: el.id }
      })));
    });`

type gradientDef struct {
	id    string
	stops []funnel.GradientStop
}

type shape struct {
	id       string
	fill     string
	d        string
	hover    string // enter fill; empty when hover effects are off
	base     string // leave fill
	click    func()
	hasClick bool
	anim     *animation
}

type animation struct {
	id       string
	fromFill string
	toFill   string
	toPath   string
	dur      time.Duration
	begin    string
}

type labelEl struct {
	funnel.Label
}

type oval struct {
	d    string
	fill string
}

// Sink is an in-memory SVG document builder implementing funnel.Surface.
// It is not safe for concurrent use.
type Sink struct {
	width, height float64
	prefix        string

	gradients []gradientDef
	oval      *oval
	shapes    map[int]*shape
	order     []int
	labels    []labelEl
	lastAnim  string
}

// New creates an empty sink with the given viewport size. Element ids are
// namespaced with a random prefix so several charts can share a host
// document.
func New(width, height float64) *Sink {
	return &Sink{
		width:  width,
		height: height,
		prefix: "fg-" + uuid.NewString()[:8],
		shapes: make(map[int]*shape),
	}
}

// AddGradient registers a vertical linear gradient and returns its fill
// reference.
func (s *Sink) AddGradient(index int, stops []funnel.GradientStop) string {
	id := fmt.Sprintf("%s-gradient-%d", s.prefix, index)
	s.gradients = append(s.gradients, gradientDef{id: id, stops: stops})
	return fmt.Sprintf("url(#%s)", id)
}

// AppendOval draws the oval closing the top of a curved chart.
func (s *Sink) AppendOval(p funnel.Path, fill string) {
	s.oval = &oval{d: pathData(p), fill: fill}
}

// AppendShape adds a new block shape.
func (s *Sink) AppendShape(index int, fill string, p funnel.Path) {
	if _, ok := s.shapes[index]; !ok {
		s.order = append(s.order, index)
	}
	s.shapes[index] = &shape{
		id:   fmt.Sprintf("%s-block-%d", s.prefix, index),
		fill: fill,
		d:    pathData(p),
	}
}

// SetShape replaces the block's fill and path.
func (s *Sink) SetShape(index int, fill string, p funnel.Path) {
	if sh, ok := s.shapes[index]; ok {
		sh.fill = fill
		sh.d = pathData(p)
		sh.anim = nil
	}
}

// AnimateShape records a SMIL transition from the block's current state to
// the given fill and path. The transition begins when the previously
// animated block finishes, encoding the sequencer's ordering in the
// document itself. done is called synchronously: the declarative document
// carries the timing, there is nothing to wait for.
func (s *Sink) AnimateShape(index int, fill string, p funnel.Path, d time.Duration, done func()) {
	sh, ok := s.shapes[index]
	if !ok {
		return
	}

	begin := "0s"
	if s.lastAnim != "" {
		begin = s.lastAnim + ".end"
	}
	animID := fmt.Sprintf("%s-anim-%d", s.prefix, index)
	sh.anim = &animation{
		id:       animID,
		fromFill: sh.fill,
		toFill:   fill,
		toPath:   pathData(p),
		dur:      d,
		begin:    begin,
	}
	s.lastAnim = animID

	if done != nil {
		done()
	}
}

// AppendLabel attaches a centered text label.
func (s *Sink) AppendLabel(index int, l funnel.Label) {
	s.labels = append(s.labels, labelEl{l})
}

// BindHover records the enter/leave fills for a block.
func (s *Sink) BindHover(index int, enterFill, leaveFill string) {
	if sh, ok := s.shapes[index]; ok {
		sh.hover = enterFill
		sh.base = leaveFill
	}
}

// BindClick marks the block clickable. The rendered document dispatches a
// DOM CustomEvent on click; fn is retained for programmatic dispatch via
// [Sink.Click].
func (s *Sink) BindClick(index int, fn func()) {
	if sh, ok := s.shapes[index]; ok {
		sh.click = fn
		sh.hasClick = true
	}
}

// Click invokes the click handler bound to block index, if any. This is the
// programmatic equivalent of clicking the rendered shape.
func (s *Sink) Click(index int) {
	if sh, ok := s.shapes[index]; ok && sh.click != nil {
		sh.click()
	}
}

// Clear removes all accumulated elements and handlers. In-flight SMIL
// chains are discarded with their shapes.
func (s *Sink) Clear() {
	s.gradients = nil
	s.oval = nil
	s.shapes = make(map[int]*shape)
	s.order = nil
	s.labels = nil
	s.lastAnim = ""
}

// Empty reports whether the sink holds no rendered elements.
func (s *Sink) Empty() bool {
	return len(s.shapes) == 0 && len(s.labels) == 0 && s.oval == nil && len(s.gradients) == 0
}

// Document serializes the current state as a standalone SVG document.
func (s *Sink) Document() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.width, s.height, s.width, s.height)

	s.renderDefs(&buf)

	if s.oval != nil {
		fmt.Fprintf(&buf, `  <path fill="%s" d="%s"/>`+"\n", s.oval.fill, s.oval.d)
	}

	interactive := false
	for _, i := range s.order {
		sh := s.shapes[i]
		s.renderShape(&buf, sh)
		if sh.hover != "" || sh.hasClick {
			interactive = true
		}
	}
	for _, l := range s.labels {
		renderLabel(&buf, l)
	}

	if interactive {
		renderScript(&buf, s.shapes)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (s *Sink) renderDefs(buf *bytes.Buffer) {
	if len(s.gradients) == 0 {
		return
	}
	buf.WriteString("  <defs>\n")
	for _, g := range s.gradients {
		fmt.Fprintf(buf, `    <linearGradient id="%s" x1="0" y1="0" x2="0" y2="1">`+"\n", g.id)
		for _, st := range g.stops {
			fmt.Fprintf(buf, `      <stop offset="%s%%" stop-color="%s"/>`+"\n", ftoa(st.Offset), st.Color)
		}
		buf.WriteString("    </linearGradient>\n")
	}
	buf.WriteString("  </defs>\n")
}

func (s *Sink) renderShape(buf *bytes.Buffer, sh *shape) {
	fmt.Fprintf(buf, `  <path id="%s" fill="%s" d="%s"`, sh.id, sh.fill, sh.d)
	if sh.hover != "" {
		fmt.Fprintf(buf, ` data-hover-fill="%s" data-base-fill="%s"`, sh.hover, sh.base)
	}
	if sh.hasClick {
		buf.WriteString(` data-click="1"`)
	}

	if sh.anim == nil {
		buf.WriteString("/>\n")
		return
	}
	buf.WriteString(">\n")

	a := sh.anim
	dur := ftoa(a.dur.Seconds()) + "s"
	fmt.Fprintf(buf, `    <animate id="%s" attributeName="d" to="%s" dur="%s" begin="%s" calcMode="linear" fill="freeze"/>`+"\n",
		a.id, a.toPath, dur, a.begin)
	if a.toFill != a.fromFill {
		fmt.Fprintf(buf, `    <animate attributeName="fill" from="%s" to="%s" dur="%s" begin="%s" calcMode="linear" fill="freeze"/>`+"\n",
			a.fromFill, a.toFill, dur, a.begin)
	}
	buf.WriteString("  </path>\n")
}

func renderLabel(buf *bytes.Buffer, l labelEl) {
	fmt.Fprintf(buf, `  <text x="%s" y="%s" text-anchor="middle" dominant-baseline="middle" fill="%s" font-size="%s">%s</text>`+"\n",
		ftoa(l.X), ftoa(l.Y), l.Fill, ftoa(l.FontSize), escapeXML(l.Text))
}

func renderScript(buf *bytes.Buffer, shapes map[int]*shape) {
	buf.WriteString("  <script type=\"text/javascript\"><![CDATA[")
	hover, click := false, false
	for _, sh := range shapes {
		hover = hover || sh.hover != ""
		click = click || sh.hasClick
	}
	if hover {
		buf.WriteString(hoverJS)
	}
	if click {
		buf.WriteString(clickJS)
	}
	buf.WriteString("\n  ]]></script>\n")
}

// pathData converts a block path to an SVG path definition.
func pathData(p funnel.Path) string {
	var b bytes.Buffer
	for i, pt := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch pt.Cmd {
		case funnel.CmdMove:
			fmt.Fprintf(&b, "M%s,%s", ftoa(pt.X), ftoa(pt.Y))
		case funnel.CmdLine:
			fmt.Fprintf(&b, "L%s,%s", ftoa(pt.X), ftoa(pt.Y))
		case funnel.CmdQuad:
			fmt.Fprintf(&b, "Q%s,%s", ftoa(pt.X), ftoa(pt.Y))
		case funnel.CmdQuadEnd:
			fmt.Fprintf(&b, "%s,%s", ftoa(pt.X), ftoa(pt.Y))
		case funnel.CmdClose:
			b.WriteByte('Z')
		}
	}
	return b.String()
}

// ftoa formats a coordinate without trailing zeros, rounded to keep the
// output stable across platforms.
func ftoa(v float64) string {
	return strconv.FormatFloat(round3(v), 'f', -1, 64)
}

func round3(v float64) float64 {
	return float64(int64(v*1000+sign(v)*0.5)) / 1000
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
