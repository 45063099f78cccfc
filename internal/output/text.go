// internal/output/text.go
package output

import (
	"fmt"
	"io"
)

// WriteText prints one TSV line per bucket, preceded by TSVHeader if header is set.
func WriteText(w io.Writer, h Histogram, header, nonzero bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for _, r := range h.Rows(nonzero) {
		if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n", r.Chromosome, r.Bin, r.Start, r.End, r.Count); err != nil {
			return err
		}
	}
	return nil
}
