package output

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"ridegen/internal/estimate"
)

// How many station-line pairs the console ranking shows.
const summaryTopN = 12

// PairPeak is one station-line group's day maxima.
type PairPeak struct {
	StationCode         string
	LineName            string
	PassengersPerMinMax float64
	TrainsPerHourMax    float64
}

// TopPairs groups rows by (station_code, line_name), keeps each group's
// maximum per-minute flow and trains-per-hour, and returns the n busiest
// groups ordered by flow descending. Ties break on station code then line
// name so repeated runs rank identically.
func TopPairs(rows []estimate.Row, n int) []PairPeak {
	type key struct{ code, line string }
	index := make(map[key]int)
	var pairs []PairPeak

	for i := range rows {
		r := &rows[i]
		k := key{r.StationCode, r.LineName}
		at, ok := index[k]
		if !ok {
			at = len(pairs)
			index[k] = at
			pairs = append(pairs, PairPeak{StationCode: r.StationCode, LineName: r.LineName})
		}
		if r.PassengersPerMin > pairs[at].PassengersPerMinMax {
			pairs[at].PassengersPerMinMax = r.PassengersPerMin
		}
		if r.TrainsPerHour > pairs[at].TrainsPerHourMax {
			pairs[at].TrainsPerHourMax = r.TrainsPerHour
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].PassengersPerMinMax != pairs[j].PassengersPerMinMax {
			return pairs[i].PassengersPerMinMax > pairs[j].PassengersPerMinMax
		}
		if pairs[i].StationCode != pairs[j].StationCode {
			return pairs[i].StationCode < pairs[j].StationCode
		}
		return pairs[i].LineName < pairs[j].LineName
	})

	if len(pairs) > n {
		pairs = pairs[:n]
	}
	return pairs
}

// Report prints the run outcome: total row count, file written, and the
// busiest station-line pairs by peak per-minute flow.
func Report(w io.Writer, t *Table, path string) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "generated rows: %d\n", len(t.Rows))
	fmt.Fprintf(w, "output file: %s\n", path)

	top := TopPairs(t.Rows, summaryTopN)
	if len(top) == 0 {
		return
	}

	fmt.Fprint(w, "\nTop per station/line (peak per-minute flow & tph):\n")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "station_code\tline_name\tpassengers_per_min_peak\ttrains_per_hour_peak")
	for _, pair := range top {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			pair.StationCode, pair.LineName,
			formatFloat(pair.PassengersPerMinMax), formatFloat(pair.TrainsPerHourMax))
	}
	tw.Flush()
}
