// Package generate writes seeded synthetic variant tables in the CSV layout
// the loaders and the browser front end accept.
package generate

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
)

// Options controls the synthetic dataset.
type Options struct {
	Seed        uint64
	Rows        int
	Chromosomes int    // labels chr1..chrN
	MaxPosition uint32 // positions drawn uniformly from [1, MaxPosition]
}

// DefaultOptions: 1000 variants over chr1..chr3 up to 50 Mb, seed 42.
var DefaultOptions = Options{
	Seed:        42,
	Rows:        1000,
	Chromosomes: 3,
	MaxPosition: 50_000_000,
}

// Validate checks the option ranges Generate requires.
func (o Options) Validate() error {
	switch {
	case o.Rows < 0:
		return errors.New("rows must be ≥ 0")
	case o.Chromosomes < 1:
		return errors.New("chromosomes must be ≥ 1")
	case o.MaxPosition < 1:
		return errors.New("max position must be ≥ 1")
	}
	return nil
}

// Generate writes a "chromosome,position" header and o.Rows records to w.
// The same Options always produce the same bytes.
func Generate(w io.Writer, o Options) error {
	if err := o.Validate(); err != nil {
		return err
	}
	r := rand.New(rand.NewPCG(o.Seed, o.Seed^0x9e3779b97f4a7c15))

	labels := make([]string, o.Chromosomes)
	for i := range labels {
		labels[i] = fmt.Sprintf("chr%d", i+1)
	}

	bw := bufio.NewWriter(w)
	if _, err := io.WriteString(bw, "chromosome,position\n"); err != nil {
		return err
	}
	for i := 0; i < o.Rows; i++ {
		chr := labels[r.IntN(len(labels))]
		pos := 1 + r.Uint32N(o.MaxPosition)
		if _, err := fmt.Fprintf(bw, "%s,%d\n", chr, pos); err != nil {
			return err
		}
	}
	return bw.Flush()
}
