package variants

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"
)

// readXLSX loads the first sheet of a workbook with the same header rules as
// CSV. Spreadsheets are zip containers already, so no decompression applies.
func readXLSX(path string, t *Table) error {
	var (
		f   *excelize.File
		err error
	)
	if path == "-" {
		f, err = excelize.OpenReader(os.Stdin)
	} else {
		f, err = excelize.OpenFile(path)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return fmt.Errorf("%s: %w", path, errors.New("no sheets found"))
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	i := 0
	return readRows(path, func() ([]string, int, error) {
		if i >= len(rows) {
			return nil, 0, io.EOF
		}
		i++
		return rows[i-1], i, nil
	}, t)
}
