package dataset

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

const LabelColumn = "Cluster"

// Assignments pairs every identifier with its cluster label.
type Assignments struct {
	IDColumn string
	IDs      []string
	Labels   []int
}

func (a Assignments) idColumn() string {
	if a.IDColumn == "" {
		return DefaultIDColumn
	}
	return a.IDColumn
}

func (a Assignments) validate() error {
	if len(a.IDs) != len(a.Labels) {
		return errors.Newf("%d identifiers but %d labels", len(a.IDs), len(a.Labels))
	}
	return nil
}

// Frame returns the assignments as a two-column data frame.
func (a Assignments) Frame() dataframe.DataFrame {
	return dataframe.New(
		series.New(a.IDs, series.String, a.idColumn()),
		series.New(a.Labels, series.Int, LabelColumn),
	)
}

// Write encodes a in format to w.
func Write(w io.Writer, format Format, a Assignments) error {
	if err := a.validate(); err != nil {
		return err
	}
	switch format {
	case XLSX, "":
		return writeXLSX(w, a)
	case CSV:
		return WriteCSV(w, a)
	}
	return errors.Mark(errors.Newf("unknown output format %q", format), ErrUnsupportedFormat)
}

func WriteCSV(w io.Writer, a Assignments) error {
	if err := a.validate(); err != nil {
		return err
	}
	df := a.Frame()
	if df.Err != nil {
		return errors.Wrap(df.Err, "build frame")
	}
	return errors.Wrap(df.WriteCSV(w), "write csv")
}

func WriteXLSX(w io.Writer, a Assignments) error {
	if err := a.validate(); err != nil {
		return err
	}
	return writeXLSX(w, a)
}

// ContentType and Filename describe the download for format.
func ContentType(format Format) string {
	if format == CSV {
		return "text/csv"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func Filename(format Format) string {
	if format == CSV {
		return "clusters_output.csv"
	}
	return "clusters_output.xlsx"
}
