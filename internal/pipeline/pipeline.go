// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"varbin-core/binning"
	"varbin/internal/logging"
)

// DefaultMinShard is the smallest per-goroutine slice worth sharding.
const DefaultMinShard = 1 << 16

// Config controls sharded binning.
type Config struct {
	Threads  int // worker goroutines (<=1 = serial)
	MaxBins  int // histogram width limit (0 = binning.DefaultMaxBins)
	MinShard int // minimum records per shard (0 = DefaultMinShard)
	Logger   *slog.Logger
}

type shard struct {
	filtered []uint32
	max      uint32
}

// Bin returns per-bucket counts of positions whose chromosome equals selected.
// Errors and their precedence match binning.ByChromosome.
func Bin(ctx context.Context, cfg Config, chromosomes []string, positions []uint32, selected string, binSize uint32) ([]uint32, error) {
	logger := logging.Default(cfg.Logger).With("component", "pipeline")
	b := binning.Binner{BinSize: binSize, MaxBins: cfg.MaxBins}

	minShard := cfg.MinShard
	if minShard <= 0 {
		minShard = DefaultMinShard
	}
	threads := cfg.Threads
	if n := len(positions) / minShard; n < threads {
		threads = n
	}
	if threads <= 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return b.ByChromosome(chromosomes, positions, selected)
	}

	if len(chromosomes) != len(positions) {
		return nil, fmt.Errorf("%w: %d chromosomes, %d positions", binning.ErrMismatchedLengths, len(chromosomes), len(positions))
	}
	if binSize == 0 {
		return nil, binning.ErrInvalidBinSize
	}

	// Filter pass.
	shards := make([]shard, threads)
	step := (len(positions) + threads - 1) / threads
	g, gctx := errgroup.WithContext(ctx)
	for s := range shards {
		lo, hi := s*step, min((s+1)*step, len(positions))
		g.Go(func() error {
			sh := &shards[s]
			for i := lo; i < hi; i++ {
				if i == lo || i&0xffff == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				if chromosomes[i] == selected {
					p := positions[i]
					sh.filtered = append(sh.filtered, p)
					if p > sh.max {
						sh.max = p
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var (
		total  int
		maxPos uint32
	)
	for _, sh := range shards {
		total += len(sh.filtered)
		if sh.max > maxPos {
			maxPos = sh.max
		}
	}
	if total == 0 {
		return []uint32{}, nil
	}
	n, err := b.NumBins(maxPos)
	if err != nil {
		return nil, err
	}

	// Count pass: shard 0 accumulates into the result, the rest into locals.
	counts := make([]uint32, n)
	locals := make([][]uint32, len(shards))
	g, gctx = errgroup.WithContext(ctx)
	for s := range shards {
		if len(shards[s].filtered) == 0 {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			dst := counts
			if s > 0 {
				dst = make([]uint32, n)
				locals[s] = dst
			}
			binning.Accumulate(dst, shards[s].filtered, binSize)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, l := range locals {
		for i, c := range l {
			counts[i] += c
		}
	}

	logger.Debug("sharded binning", "shards", threads, "matched", total, "bins", n)
	return counts, nil
}
