package core

// Surface is the 2D drawing capability a game renders into.
// Coordinates are logical pixels: (0,0) is the top-left corner and the
// extent is the width/height the runtime passes to Update. Backends decide
// how a logical pixel maps onto the real output.
type Surface interface {
	// Clear wipes the whole surface with a background color.
	Clear(bg Color)

	// FillRect fills an axis-aligned rectangle.
	FillRect(x, y, w, h float64, c Color)

	// FillCircle fills a disc centered at (cx, cy).
	FillCircle(cx, cy, r float64, c Color)

	// StrokeCircle outlines a circle with the given stroke width.
	StrokeCircle(cx, cy, r, width float64, c Color)

	// Line draws a straight segment.
	Line(x0, y0, x1, y1, width float64, c Color)

	// FillPolygon fills a closed polygon (even-odd rule).
	FillPolygon(pts []Vec2, c Color)

	// Gradient fills a rectangle blending vertically from top to bottom.
	Gradient(x, y, w, h float64, top, bottom Color)

	// Text draws a single line of text with its top-left corner at (x, y).
	Text(x, y float64, s string, c Color)
}
