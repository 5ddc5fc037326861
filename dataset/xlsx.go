package dataset

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"
)

// readXLSX returns the first sheet as records, padding short rows to the
// header width. Cell values are raw, ignoring number formats.
func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "open xlsx"), ErrUnreadable)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmpty
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "read sheet %q", sheets[0]), ErrUnreadable)
	}

	// drop trailing blank rows
	for len(rows) > 0 && len(rows[len(rows)-1]) == 0 {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	width := len(rows[0])
	for i, row := range rows {
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			rows[i] = padded
		} else if len(row) > width {
			rows[i] = row[:width]
		}
	}
	return rows, nil
}

// writeXLSX writes the header and one row per record to Sheet1. The label
// column is written as numbers.
func writeXLSX(w io.Writer, a Assignments) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{a.idColumn(), LabelColumn}); err != nil {
		return errors.Wrap(err, "write header")
	}
	for i, id := range a.IDs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &[]interface{}{id, a.Labels[i]}); err != nil {
			return errors.Wrapf(err, "write row %d", i+1)
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(err, "write xlsx")
	}
	return nil
}
