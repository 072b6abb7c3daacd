package styles

import (
	"bytes"
	"fmt"
	"math"
)

// Shape is a marker outline.
type Shape string

const (
	Circle   Shape = "circle"
	Diamond  Shape = "diamond"
	Square   Shape = "square"
	Triangle Shape = "triangle"
)

// Marker is the visual identity of one source.
type Marker struct {
	Shape Shape
	Color string
}

// Style draws markers onto an SVG buffer.
type Style interface {
	// RenderMarker writes a marker centred at (cx, cy) with the given
	// diameter.
	RenderMarker(buf *bytes.Buffer, m Marker, cx, cy, size float64)
	// FontFamily is the CSS font family for all text.
	FontFamily() string
}

// Simple draws filled markers with a thin black outline.
type Simple struct{}

func (Simple) FontFamily() string { return "Helvetica, Arial, sans-serif" }

func (Simple) RenderMarker(buf *bytes.Buffer, m Marker, cx, cy, size float64) {
	r := size / 2
	attrs := fmt.Sprintf(`fill="%s" stroke="black" stroke-width="0.5"`, EscapeXML(m.Color))
	switch m.Shape {
	case Diamond:
		fmt.Fprintf(buf, `  <polygon points="%.2f,%.2f %.2f,%.2f %.2f,%.2f %.2f,%.2f" %s/>`+"\n",
			cx, cy-r, cx+r, cy, cx, cy+r, cx-r, cy, attrs)
	case Square:
		s := r * 0.85
		fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" %s/>`+"\n",
			cx-s, cy-s, 2*s, 2*s, attrs)
	case Triangle:
		h := r * math.Sqrt(3) / 2
		fmt.Fprintf(buf, `  <polygon points="%.2f,%.2f %.2f,%.2f %.2f,%.2f" %s/>`+"\n",
			cx, cy-r, cx+r, cy+h, cx-r, cy+h, attrs)
	default:
		fmt.Fprintf(buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" %s/>`+"\n", cx, cy, r, attrs)
	}
}

// Monochrome draws every marker in black and relies on shape alone, for
// print.
type Monochrome struct{}

func (Monochrome) FontFamily() string { return Simple{}.FontFamily() }

func (Monochrome) RenderMarker(buf *bytes.Buffer, m Marker, cx, cy, size float64) {
	Simple{}.RenderMarker(buf, Marker{Shape: m.Shape, Color: "#ffffff"}, cx, cy, size)
}

// ByName returns the style registered under name.
func ByName(name string) (Style, bool) {
	switch name {
	case "", "simple":
		return Simple{}, true
	case "mono", "monochrome":
		return Monochrome{}, true
	}
	return nil, false
}
