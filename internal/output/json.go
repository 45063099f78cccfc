// internal/output/json.go
package output

import (
	"encoding/json"
	"io"
)

// WriteJSON writes the v1 histogram as indented JSON.
func WriteJSON(w io.Writer, h Histogram) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(h.ToAPI())
}

// WriteJSONL writes one v1 bucket object per line.
func WriteJSONL(w io.Writer, h Histogram, nonzero bool) error {
	enc := json.NewEncoder(w)
	for _, r := range h.Rows(nonzero) {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
