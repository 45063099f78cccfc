// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"varbin/internal/output"
	"varbin/internal/pretty"
)

// Options carries presentation switches shared by all formats. Formats
// ignore switches that do not apply to them.
type Options struct {
	Header        bool // text: TSV header row
	NonZero       bool // text, jsonl: skip empty buckets
	Pretty        bool // text: append ASCII bar block
	PrettyOptions pretty.Options
}

// WriteFunc serializes one histogram.
type WriteFunc func(w io.Writer, h output.Histogram, opt Options) error

var registry = map[string]WriteFunc{}

// Register installs fn for format (last registration wins).
func Register(format string, fn WriteFunc) { registry[format] = fn }

// Formats returns the registered format names, sorted.
func Formats() []string {
	out := make([]string, 0, len(registry))
	for f := range registry {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Write dispatches to the writer registered for format.
func Write(format string, w io.Writer, h output.Histogram, opt Options) error {
	fn, ok := registry[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return fn(w, h, opt)
}

func init() {
	Register(output.FormatText, writeText)
	Register(output.FormatJSON, func(w io.Writer, h output.Histogram, _ Options) error {
		return output.WriteJSON(w, h)
	})
	Register(output.FormatJSONL, func(w io.Writer, h output.Histogram, opt Options) error {
		return output.WriteJSONL(w, h, opt.NonZero)
	})
	Register(output.FormatMsgpack, func(w io.Writer, h output.Histogram, _ Options) error {
		return output.WriteMsgpack(w, h)
	})
}

func writeText(w io.Writer, h output.Histogram, opt Options) error {
	if err := output.WriteText(w, h, opt.Header, opt.NonZero); err != nil {
		return err
	}
	if !opt.Pretty {
		return nil
	}
	_, err := io.WriteString(w, pretty.Render(h.Chromosome, h.BinSize, h.Counts, opt.PrettyOptions))
	return err
}
