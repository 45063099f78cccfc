package variants

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format names an on-disk variant table layout.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatVCF  Format = "vcf"
	FormatBIM  Format = "bim"
	FormatXLSX Format = "xlsx"
)

var compressionSuffixes = []string{".gz", ".bgz", ".zst", ".xz"}

// DetectFormat guesses the format from the file name, ignoring a trailing
// compression suffix. Unknown extensions and stdin default to CSV.
func DetectFormat(path string) Format {
	name := strings.ToLower(filepath.Base(path))
	for _, s := range compressionSuffixes {
		if strings.HasSuffix(name, s) {
			name = strings.TrimSuffix(name, s)
			break
		}
	}
	switch filepath.Ext(name) {
	case ".tsv", ".txt", ".tab":
		return FormatTSV
	case ".vcf":
		return FormatVCF
	case ".bim":
		return FormatBIM
	case ".xlsx":
		return FormatXLSX
	}
	return FormatCSV
}

// ParseFormat validates a --format value. "" and "auto" mean detect by name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", "auto":
		return "", nil
	case FormatCSV, FormatTSV, FormatVCF, FormatBIM, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("invalid --format %q (want auto|csv|tsv|vcf|bim|xlsx)", s)
}
