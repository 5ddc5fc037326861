// Package dataset loads uploaded spreadsheets into a data frame, separates
// the identifier column from the numeric features and writes cluster
// assignments back out.
package dataset

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"
)

const DefaultIDColumn = "Name"

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMissingColumn     = errors.New("missing identifier column")
	ErrNotNumeric        = errors.New("non-numeric feature column")
	ErrEmpty             = errors.New("dataset has no rows")
	ErrNoFeatures        = errors.New("dataset has no feature columns")
	ErrUnreadable        = errors.New("unreadable spreadsheet")
)

type Format string

const (
	XLSX Format = "xlsx"
	CSV  Format = "csv"
)

// ParseFormat accepts "xlsx", "csv" and the empty string (xlsx).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return XLSX, nil
	case XLSX, CSV:
		return f, nil
	}
	return "", errors.Mark(errors.Newf("unknown output format %q", s), ErrUnsupportedFormat)
}

// Dataset is an uploaded table held as strings until Split parses the
// feature columns.
type Dataset struct {
	df dataframe.DataFrame
}

// Table is a Dataset with the identifier column separated from the
// features.
type Table struct {
	IDs      []string
	Columns  []string
	Features *mat.Dense
}

var zipMagic = []byte("PK\x03\x04")

// Read decodes r according to the extension of filename. Files without an
// extension are sniffed: zip containers are read as xlsx, anything else as
// csv.
func Read(r io.Reader, filename string) (*Dataset, error) {
	br := bufio.NewReader(r)
	format := formatOf(filename)
	if format == "" {
		head, _ := br.Peek(len(zipMagic))
		format = CSV
		if bytes.Equal(head, zipMagic) {
			format = XLSX
		}
	}

	switch format {
	case XLSX:
		records, err := readXLSX(br)
		if err != nil {
			return nil, err
		}
		return fromRecords(records)
	case CSV:
		return readCSV(br)
	}
	return nil, errors.Mark(errors.Newf("cannot read %q, upload .xlsx or .csv", filename), ErrUnsupportedFormat)
}

func formatOf(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case "":
		return ""
	case ".xlsx", ".xlsm":
		return XLSX
	case ".csv":
		return CSV
	}
	return Format("unsupported")
}

func fromRecords(records [][]string) (*Dataset, error) {
	if len(records) < 2 {
		return nil, ErrEmpty
	}
	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, errors.Mark(errors.Wrap(df.Err, "load records"), ErrUnreadable)
	}
	return &Dataset{df: df}, nil
}

func readCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "read csv"), ErrUnreadable)
	}
	return fromRecords(records)
}

func (d *Dataset) Rows() int { return d.df.Nrow() }

func (d *Dataset) Columns() []string { return d.df.Names() }

// Split removes idColumn and parses every remaining column as float64.
func (d *Dataset) Split(idColumn string) (*Table, error) {
	if idColumn == "" {
		idColumn = DefaultIDColumn
	}
	if d.df.Nrow() == 0 {
		return nil, ErrEmpty
	}

	found := false
	var featureCols []string
	for _, name := range d.df.Names() {
		if name == idColumn {
			found = true
			continue
		}
		featureCols = append(featureCols, name)
	}
	if !found {
		return nil, errors.WithHintf(
			errors.Mark(errors.Newf("column %q not found", idColumn), ErrMissingColumn),
			"available columns: %s", strings.Join(d.df.Names(), ", "))
	}
	if len(featureCols) == 0 {
		return nil, ErrNoFeatures
	}

	n := d.df.Nrow()
	X := mat.NewDense(n, len(featureCols), nil)
	for j, name := range featureCols {
		raw := d.df.Col(name)
		parsed := series.New(trimAll(raw.Records()), series.Float, name)
		if parsed.HasNaN() {
			return nil, errors.Mark(errors.Newf("column %q holds non-numeric or empty cells", name), ErrNotNumeric)
		}
		X.SetCol(j, parsed.Float())
	}

	return &Table{
		IDs:      d.df.Col(idColumn).Records(),
		Columns:  featureCols,
		Features: X,
	}, nil
}

func trimAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.TrimSpace(s)
	}
	return out
}
