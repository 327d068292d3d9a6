package core

// OpKind identifies a recorded drawing operation.
type OpKind uint8

const (
	OpClear OpKind = iota
	OpFillRect
	OpFillCircle
	OpStrokeCircle
	OpLine
	OpFillPolygon
	OpGradient
	OpText
)

// Op is one recorded Surface call. Fields are reused across kinds:
// rectangles use X,Y,W,H; circles X,Y,R; lines X,Y to X2,Y2.
type Op struct {
	Kind   OpKind
	X, Y   float64
	X2, Y2 float64
	W, H   float64
	R      float64
	Width  float64
	Points []Vec2
	Text   string
	Color  Color
	Color2 Color
}

// Recorder is a Surface that keeps a display list instead of drawing.
// The window backend records a frame on the simulation goroutine and replays
// it on the render goroutine; tests use it to inspect what a game drew.
type Recorder struct {
	ops []Op
}

var _ Surface = (*Recorder)(nil)

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{ops: make([]Op, 0, 64)}
}

// Ops returns the recorded operations.
func (r *Recorder) Ops() []Op {
	return r.ops
}

// Len returns the number of recorded operations.
func (r *Recorder) Len() int {
	return len(r.ops)
}

// Count returns how many operations of the given kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Reset drops the display list, keeping its capacity.
func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
}

// Snapshot returns a copy of the display list that stays valid after Reset.
func (r *Recorder) Snapshot() []Op {
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Replay draws a display list onto dst.
func Replay(ops []Op, dst Surface) {
	for _, op := range ops {
		switch op.Kind {
		case OpClear:
			dst.Clear(op.Color)
		case OpFillRect:
			dst.FillRect(op.X, op.Y, op.W, op.H, op.Color)
		case OpFillCircle:
			dst.FillCircle(op.X, op.Y, op.R, op.Color)
		case OpStrokeCircle:
			dst.StrokeCircle(op.X, op.Y, op.R, op.Width, op.Color)
		case OpLine:
			dst.Line(op.X, op.Y, op.X2, op.Y2, op.Width, op.Color)
		case OpFillPolygon:
			dst.FillPolygon(op.Points, op.Color)
		case OpGradient:
			dst.Gradient(op.X, op.Y, op.W, op.H, op.Color, op.Color2)
		case OpText:
			dst.Text(op.X, op.Y, op.Text, op.Color)
		}
	}
}

func (r *Recorder) Clear(bg Color) {
	r.ops = append(r.ops, Op{Kind: OpClear, Color: bg})
}

func (r *Recorder) FillRect(x, y, w, h float64, c Color) {
	r.ops = append(r.ops, Op{Kind: OpFillRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) FillCircle(cx, cy, rad float64, c Color) {
	r.ops = append(r.ops, Op{Kind: OpFillCircle, X: cx, Y: cy, R: rad, Color: c})
}

func (r *Recorder) StrokeCircle(cx, cy, rad, width float64, c Color) {
	r.ops = append(r.ops, Op{Kind: OpStrokeCircle, X: cx, Y: cy, R: rad, Width: width, Color: c})
}

func (r *Recorder) Line(x0, y0, x1, y1, width float64, c Color) {
	r.ops = append(r.ops, Op{Kind: OpLine, X: x0, Y: y0, X2: x1, Y2: y1, Width: width, Color: c})
}

func (r *Recorder) FillPolygon(pts []Vec2, c Color) {
	cp := make([]Vec2, len(pts))
	copy(cp, pts)
	r.ops = append(r.ops, Op{Kind: OpFillPolygon, Points: cp, Color: c})
}

func (r *Recorder) Gradient(x, y, w, h float64, top, bottom Color) {
	r.ops = append(r.ops, Op{Kind: OpGradient, X: x, Y: y, W: w, H: h, Color: top, Color2: bottom})
}

func (r *Recorder) Text(x, y float64, s string, c Color) {
	r.ops = append(r.ops, Op{Kind: OpText, X: x, Y: y, Text: s, Color: c})
}
