// internal/output/histogram.go
package output

import "varbin/pkg/api"

// Histogram is a computed binning result plus the parameters that produced it.
type Histogram struct {
	Chromosome string
	BinSize    uint32
	Counts     []uint32
	Total      uint64
}

// NewHistogram wraps counts and precomputes the total.
func NewHistogram(chromosome string, binSize uint32, counts []uint32) Histogram {
	h := Histogram{Chromosome: chromosome, BinSize: binSize, Counts: counts}
	for _, c := range counts {
		h.Total += uint64(c)
	}
	return h
}

// Empty reports whether no variant matched.
func (h Histogram) Empty() bool { return len(h.Counts) == 0 }

// ToAPI converts to the stable wire schema (v1).
func (h Histogram) ToAPI() api.HistogramV1 {
	counts := h.Counts
	if counts == nil {
		counts = []uint32{}
	}
	return api.HistogramV1{
		Chromosome: h.Chromosome,
		BinSize:    h.BinSize,
		Bins:       len(h.Counts),
		Total:      h.Total,
		Counts:     counts,
	}
}

// Rows returns one BinV1 per bucket; nonzero skips empty buckets.
func (h Histogram) Rows(nonzero bool) []api.BinV1 {
	out := make([]api.BinV1, 0, len(h.Counts))
	bs := uint64(h.BinSize)
	for k, c := range h.Counts {
		if nonzero && c == 0 {
			continue
		}
		out = append(out, api.BinV1{
			Chromosome: h.Chromosome,
			Bin:        k,
			Start:      uint64(k) * bs,
			End:        uint64(k+1) * bs,
			Count:      c,
		})
	}
	return out
}
