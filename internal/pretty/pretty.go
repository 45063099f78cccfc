// Package pretty renders a histogram as a block of ASCII bars for terminals,
// with the display aggregation used by the browser density track.
package pretty

import (
	"fmt"
	"math"
	"strings"
)

// LargeDatasetThreshold is the record count above which pretty output is
// aggregated to DefaultMaxBars unless the caller sets MaxBars.
const LargeDatasetThreshold = 10000

// DefaultMaxBars is the aggregation target for large datasets.
const DefaultMaxBars = 100

// Options control the ASCII rendering.
type Options struct {
	Width    int    // longest bar in glyphs; <=0 uses 50
	MaxBars  int    // aggregate to at most this many bars; <=0 disables
	LogScale bool   // bar length ∝ log10(v+1), as the density track draws it
	Glyph    string // default "#"
}

// DefaultOptions matches the density track: log-scaled, unaggregated.
var DefaultOptions = Options{
	Width:    50,
	LogScale: true,
	Glyph:    "#",
}

const linePrefix = "# "

// Aggregate sums runs of consecutive bins so at most maxBars remain.
// factor = ceil(len(bins)/maxBars); the last bar may cover fewer bins.
// It returns the bars and the factor used (1 when nothing was merged).
func Aggregate(bins []uint32, maxBars int) ([]uint64, int) {
	if maxBars <= 0 || len(bins) <= maxBars {
		out := make([]uint64, len(bins))
		for i, v := range bins {
			out[i] = uint64(v)
		}
		return out, 1
	}
	factor := (len(bins) + maxBars - 1) / maxBars
	out := make([]uint64, 0, (len(bins)+factor-1)/factor)
	for i := 0; i < len(bins); i += factor {
		var sum uint64
		for _, v := range bins[i:min(i+factor, len(bins))] {
			sum += uint64(v)
		}
		out = append(out, sum)
	}
	return out, factor
}

func barLen(v, maxVal uint64, width int, logScale bool) int {
	if v == 0 || maxVal == 0 {
		return 0
	}
	var f float64
	if logScale {
		f = math.Log10(float64(v)+1) / math.Log10(float64(maxVal)+1)
	} else {
		f = float64(v) / float64(maxVal)
	}
	n := int(math.Round(f * float64(width)))
	if n == 0 {
		n = 1
	}
	return n
}

// Render draws one line per (possibly aggregated) bar:
//
//	# <start>-<end>  <bars> <count>
//
// Coordinates are half-open like the bins themselves.
func Render(chromosome string, binSize uint32, counts []uint32, opt Options) string {
	if opt.Width <= 0 {
		opt.Width = DefaultOptions.Width
	}
	if opt.Glyph == "" {
		opt.Glyph = "#"
	}
	bars, factor := Aggregate(counts, opt.MaxBars)
	if len(bars) == 0 {
		return ""
	}
	var maxVal uint64
	for _, v := range bars {
		maxVal = max(maxVal, v)
	}

	span := uint64(binSize) * uint64(factor)
	last := uint64(len(counts)) * uint64(binSize)
	startW := len(fmt.Sprint(last))

	var b strings.Builder
	scale := "linear"
	if opt.LogScale {
		scale = "log10"
	}
	fmt.Fprintf(&b, "%s%s  bin=%d  bars=%d  scale=%s\n", linePrefix, chromosome, span, len(bars), scale)
	for i, v := range bars {
		start := uint64(i) * span
		end := min(start+span, last)
		bar := strings.Repeat(opt.Glyph, barLen(v, maxVal, opt.Width, opt.LogScale))
		fmt.Fprintf(&b, "%s%*d-%-*d  %-*s %d\n", linePrefix, startW, start, startW, end, opt.Width, bar, v)
	}
	return b.String()
}
