package render

import (
	"math"
	"strings"

	"github.com/jsphweid/rhythmdex/feedback"
	"github.com/jsphweid/rhythmdex/util"
)

var glyphs = map[feedback.Color]byte{
	feedback.Match:    '#',
	feedback.Mismatch: 'x',
	feedback.Neutral:  '=',
}

func track(segments []feedback.Segment, width float64, cols int) string {
	line := []byte(strings.Repeat(" ", cols))
	for _, s := range segments {
		from := int(math.Round(s.X / width * float64(cols)))
		to := int(math.Round((s.X + s.Width) / width * float64(cols)))
		// one column gap between adjacent notes
		to--
		if to <= from {
			to = from + 1
		}
		from, to = util.Clamp(from, 0, cols), util.Clamp(to, 0, cols)
		for i := from; i < to; i++ {
			line[i] = glyphs[s.Color]
		}
	}
	return string(line)
}

// Text draws a frame as two lines of ASCII, cols characters wide.
func Text(f feedback.Frame, cols int) string {
	if f.Width <= 0 || cols <= 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("expected |")
	b.WriteString(track(f.Expected, f.Width, cols))
	b.WriteString("|\nrecorded |")
	b.WriteString(track(f.Recorded, f.Width, cols))
	b.WriteString("|\n")
	return b.String()
}
