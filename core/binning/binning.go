// core/binning/binning.go
package binning

import (
	"errors"
	"fmt"
)

// DefaultMaxBins caps histogram width when Binner.MaxBins is zero.
// 1<<26 uint32 counters is 256 MiB.
const DefaultMaxBins = 1 << 26

var (
	ErrMismatchedLengths = errors.New("chromosomes and positions differ in length")
	ErrInvalidBinSize    = errors.New("bin size must be > 0")
	ErrBinCountOverflow  = errors.New("bin count exceeds limit")
)

// BinCountOverflowError reports the histogram width that was refused.
type BinCountOverflowError struct {
	Bins uint64 // computed maxPos/binSize + 1
	Max  int
}

func (e *BinCountOverflowError) Error() string {
	return fmt.Sprintf("%v: %d bins requested, limit is %d", ErrBinCountOverflow, e.Bins, e.Max)
}

func (e *BinCountOverflowError) Is(target error) bool { return target == ErrBinCountOverflow }

// Variant is one (chromosome, position) record.
type Variant struct {
	Chromosome string
	Position   uint32
}

// Zip pairs parallel chromosome and position slices.
func Zip(chromosomes []string, positions []uint32) ([]Variant, error) {
	if len(chromosomes) != len(positions) {
		return nil, fmt.Errorf("%w: %d chromosomes, %d positions", ErrMismatchedLengths, len(chromosomes), len(positions))
	}
	out := make([]Variant, len(positions))
	for i := range positions {
		out[i] = Variant{Chromosome: chromosomes[i], Position: positions[i]}
	}
	return out, nil
}

// Binner counts positions into fixed-width buckets.
type Binner struct {
	BinSize uint32
	MaxBins int // 0 = DefaultMaxBins
}

func (b Binner) maxBins() int {
	if b.MaxBins <= 0 {
		return DefaultMaxBins
	}
	return b.MaxBins
}

// NumBins returns maxPos/BinSize + 1, or an error if BinSize is zero or the
// width exceeds the configured limit.
func (b Binner) NumBins(maxPos uint32) (int, error) {
	if b.BinSize == 0 {
		return 0, ErrInvalidBinSize
	}
	n := uint64(maxPos/b.BinSize) + 1
	if limit := b.maxBins(); n > uint64(limit) {
		return 0, &BinCountOverflowError{Bins: n, Max: limit}
	}
	return int(n), nil
}

// Bin filters variants on selected (exact match) and returns per-bucket
// counts. No matches yields an empty, non-nil slice.
func (b Binner) Bin(variants []Variant, selected string) ([]uint32, error) {
	if b.BinSize == 0 {
		return nil, ErrInvalidBinSize
	}
	return b.binFiltered(Filter(variants, selected))
}

func (b Binner) binFiltered(filtered []uint32) ([]uint32, error) {
	if len(filtered) == 0 {
		return []uint32{}, nil
	}
	n, err := b.NumBins(MaxPosition(filtered))
	if err != nil {
		return nil, err
	}
	counts := make([]uint32, n)
	Accumulate(counts, filtered, b.BinSize)
	return counts, nil
}

// ByChromosome is the parallel-slice form of Binner.Bin using DefaultMaxBins.
func ByChromosome(chromosomes []string, positions []uint32, selected string, binSize uint32) ([]uint32, error) {
	return Binner{BinSize: binSize}.ByChromosome(chromosomes, positions, selected)
}

// ByChromosome validates lengths and bin size before touching the data.
func (b Binner) ByChromosome(chromosomes []string, positions []uint32, selected string) ([]uint32, error) {
	if len(chromosomes) != len(positions) {
		return nil, fmt.Errorf("%w: %d chromosomes, %d positions", ErrMismatchedLengths, len(chromosomes), len(positions))
	}
	if b.BinSize == 0 {
		return nil, ErrInvalidBinSize
	}
	var filtered []uint32
	for i, chr := range chromosomes {
		if chr == selected {
			filtered = append(filtered, positions[i])
		}
	}
	return b.binFiltered(filtered)
}

// Filter returns the positions of variants whose chromosome equals selected.
func Filter(variants []Variant, selected string) []uint32 {
	var out []uint32
	for _, v := range variants {
		if v.Chromosome == selected {
			out = append(out, v.Position)
		}
	}
	return out
}

// MaxPosition returns the largest value in ps (0 for an empty slice).
func MaxPosition(ps []uint32) uint32 {
	var m uint32
	for _, p := range ps {
		if p > m {
			m = p
		}
	}
	return m
}

// Accumulate adds one to counts[p/binSize] for every p. counts must be wide
// enough for the largest position; binSize must be non-zero.
func Accumulate(counts []uint32, positions []uint32, binSize uint32) {
	for _, p := range positions {
		counts[p/binSize]++
	}
}
