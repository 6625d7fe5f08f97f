package util

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

func Mix(a, b, factor float32) float32 {
	return a*(1-factor) + factor*b
}

// FormatMatrix prints a matrix row by row, the way it reads on paper.
func FormatMatrix(m mgl32.Mat4) string {
	var sb strings.Builder
	for row := 0; row < 4; row++ {
		r := m.Row(row)
		fmt.Fprintf(&sb, "%9.4f %9.4f %9.4f %9.4f", r[0], r[1], r[2], r[3])
		if row < 3 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
