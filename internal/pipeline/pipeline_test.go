package pipeline

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"varbin-core/binning"
)

func randomTable(seed int64, n int) ([]string, []uint32) {
	r := rand.New(rand.NewSource(seed))
	labels := []string{"chr1", "chr2", "chr3"}
	chrs := make([]string, n)
	pos := make([]uint32, n)
	for i := range pos {
		chrs[i] = labels[r.Intn(len(labels))]
		pos[i] = uint32(r.Int63n(50_000_000))
	}
	return chrs, pos
}

func TestBinMatchesSerial(t *testing.T) {
	chrs, pos := randomTable(42, 20000)
	for _, sel := range []string{"chr1", "chr3", "chrX"} {
		want, err := binning.ByChromosome(chrs, pos, sel, 100_000)
		if err != nil {
			t.Fatal(err)
		}
		for threads := 1; threads <= 8; threads++ {
			got, err := Bin(context.Background(), Config{Threads: threads, MinShard: 100}, chrs, pos, sel, 100_000)
			if err != nil {
				t.Fatalf("threads=%d: %v", threads, err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("threads=%d sel=%s: sharded result differs from serial", threads, sel)
			}
		}
	}
}

func TestBinSmallInputIsSerial(t *testing.T) {
	got, err := Bin(context.Background(), Config{Threads: 8},
		[]string{"chr1", "chr1", "chr2", "chr1"}, []uint32{5, 15, 100, 25}, "chr1", 10)
	if err != nil || !reflect.DeepEqual(got, []uint32{1, 1, 1}) {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestBinErrors(t *testing.T) {
	chrs, pos := randomTable(1, 1000)
	cfg := Config{Threads: 4, MinShard: 10}

	if _, err := Bin(context.Background(), cfg, chrs, pos, "chr1", 0); !errors.Is(err, binning.ErrInvalidBinSize) {
		t.Fatalf("want ErrInvalidBinSize, got %v", err)
	}
	if _, err := Bin(context.Background(), cfg, chrs[:999], pos, "chr1", 10); !errors.Is(err, binning.ErrMismatchedLengths) {
		t.Fatalf("want ErrMismatchedLengths, got %v", err)
	}

	pos[500] = math.MaxUint32
	chrs[500] = "chr1"
	if _, err := Bin(context.Background(), cfg, chrs, pos, "chr1", 1); !errors.Is(err, binning.ErrBinCountOverflow) {
		t.Fatalf("want ErrBinCountOverflow, got %v", err)
	}
	if _, err := Bin(context.Background(), Config{Threads: 4, MinShard: 10, MaxBins: 10}, chrs, pos, "chr1", 1<<20); !errors.Is(err, binning.ErrBinCountOverflow) {
		t.Fatalf("want ErrBinCountOverflow with MaxBins, got %v", err)
	}
}

func TestBinNoMatchIsEmpty(t *testing.T) {
	chrs, pos := randomTable(3, 5000)
	got, err := Bin(context.Background(), Config{Threads: 4, MinShard: 100}, chrs, pos, "chrY", 1000)
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil, got %v, %v", got, err)
	}
}

func TestBinCancelled(t *testing.T) {
	chrs, pos := randomTable(5, 5000)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, threads := range []int{1, 4} {
		if _, err := Bin(ctx, Config{Threads: threads, MinShard: 100}, chrs, pos, "chr1", 1000); !errors.Is(err, context.Canceled) {
			t.Fatalf("threads=%d: want context.Canceled, got %v", threads, err)
		}
	}
}
