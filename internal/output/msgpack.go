package output

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// WriteMsgpack writes the v1 histogram as a single msgpack map.
func WriteMsgpack(w io.Writer, h Histogram) error {
	return msgpack.NewEncoder(w).Encode(h.ToAPI())
}
