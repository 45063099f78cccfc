// pkg/api/histogram_v1.go
package api

// HistogramV1 is the stable JSON/msgpack schema for one chromosome's
// fixed-width variant histogram. Counts[k] covers [k*BinSize, (k+1)*BinSize).
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type HistogramV1 struct {
	Chromosome string   `json:"chromosome" msgpack:"chromosome"`
	BinSize    uint32   `json:"bin_size" msgpack:"bin_size"`
	Bins       int      `json:"bins" msgpack:"bins"`
	Total      uint64   `json:"total" msgpack:"total"`
	Counts     []uint32 `json:"counts" msgpack:"counts"`
}

// BinV1 is one bucket as emitted by row-oriented outputs (TSV, JSONL).
// End is exclusive and may exceed the uint32 coordinate range.
type BinV1 struct {
	Chromosome string `json:"chromosome"`
	Bin        int    `json:"bin"`
	Start      uint64 `json:"start"`
	End        uint64 `json:"end"`
	Count      uint32 `json:"count"`
}

// ChromosomeCountV1 is one row of `varbin chromosomes -o json`.
type ChromosomeCountV1 struct {
	Chromosome string `json:"chromosome"`
	Variants   int    `json:"variants"`
}
