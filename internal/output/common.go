package output

// Output formats.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatJSONL   = "jsonl"
	FormatMsgpack = "msgpack"
)

// Formats lists every supported --output value.
var Formats = []string{FormatText, FormatJSON, FormatJSONL, FormatMsgpack}

// TSVHeader is the canonical header row for text/TSV outputs.
const TSVHeader = "chromosome\tbin\tstart\tend\tcount"
