// Package writers turns a computed histogram into serialized output.
//
// Writers own all presentation knowledge (TSV, pretty bars, JSON/JSONL,
// msgpack); binning stays domain-only. JSON, JSONL and msgpack go through
// pkg/api (v1) for a stable wire format.
package writers
