package styles

import (
	"bytes"
	"encoding/xml"
	"unicode/utf8"
)

const fontCharWidth = 0.55

// TextWidth estimates the rendered width of s at the given font size.
func TextWidth(s string, fontSize float64) float64 {
	return float64(utf8.RuneCountInString(s)) * fontSize * fontCharWidth
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
