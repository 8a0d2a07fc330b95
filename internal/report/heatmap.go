package report

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"github.com/railbird/railbird/internal/stats"
)

// heat shades from cold to hot as a cell's share of the range grows.
var heatColors = []string{"236", "22", "28", "34", "40", "46"}

// WriteRangeHeatmap renders a 13x13 starting-hand grid with cells shaded
// by how often each combo appeared.
func WriteRangeHeatmap(w io.Writer, matrix *stats.RangeMatrix) {
	profile := termenv.EnvColorProfile()

	max := 0
	for row := 0; row < 13; row++ {
		for col := 0; col < 13; col++ {
			if n := matrix.Count(row, col); n > max {
				max = n
			}
		}
	}

	for row := 0; row < 13; row++ {
		for col := 0; col < 13; col++ {
			label := fmt.Sprintf("%-4s", stats.Label(row, col))
			cell := termenv.String(label)
			if n := matrix.Count(row, col); n > 0 && max > 0 {
				shade := (n*(len(heatColors)-1) + max - 1) / max
				cell = cell.
					Background(profile.Color(heatColors[shade])).
					Foreground(profile.Color("15"))
			} else {
				cell = cell.Foreground(profile.Color("8"))
			}
			fmt.Fprint(w, cell.String())
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%d combos seen\n", matrix.Total())
}
