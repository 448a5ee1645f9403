package export

import (
	"fmt"
	"html"
	"io"
	"strings"
)

// SVG writes the series as polylines on a dark background. Non-finite
// points break the line they fall on.
func SVG(w io.Writer, series []Series, width, height int) error {
	if err := validate(series); err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid canvas %dx%d", width, height)
	}
	b, ok := extent(series)
	if !ok {
		return fmt.Errorf("no finite points to draw")
	}
	rangeX, rangeY := b.maxX-b.minX, b.maxY-b.minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i, s := range series {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="`, html.EscapeString(colorFor(s, i))))
		pen := false
		for k := range s.X {
			if !finite(s.X[k]) || !finite(s.Y[k]) {
				pen = false
				continue
			}
			x := (s.X[k] - b.minX) / rangeX * float64(width)
			y := float64(height) - (s.Y[k]-b.minY)/rangeY*float64(height)
			if pen {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
				pen = true
			}
		}
		sb.WriteString("\"")
		if s.Name != "" {
			sb.WriteString(fmt.Sprintf("><title>%s</title></path>\n", html.EscapeString(s.Name)))
		} else {
			sb.WriteString("/>\n")
		}
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
