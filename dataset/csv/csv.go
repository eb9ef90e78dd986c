/*
Package csv reads and writes the rows of a dataset in CSV format.

The header or first row of the CSV content is expected to consist of the
names of the features of a schema, in any order. The rest of the rows
should consist of valid values for all of them.
*/
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/pbanos/bonsai/dataset"
)

/*
Reader reads rows from a CSV stream according to a schema. It implements
dataset.Reader.

If Unlabeled is true the label column is not required and the rows
read have an empty label.
*/
type Reader struct {
	r         io.Reader
	schema    *dataset.Schema
	Unlabeled bool
}

// NewReader takes an io.Reader for a CSV stream and a schema and
// returns a Reader for the rows in the stream.
func NewReader(r io.Reader, s *dataset.Schema) *Reader {
	return &Reader{r: r, schema: s}
}

// Read reads the rows on the stream, sending them on the returned
// channel.
func (cr *Reader) Read(ctx context.Context) (<-chan dataset.Row, <-chan error) {
	return dataset.Stream(ctx, func(emit func(dataset.Row) bool) error {
		return cr.ReadBySample(func(_ int, row dataset.Row) (bool, error) {
			return emit(row), nil
		})
	})
}

/*
ReadBySample parses the rows from the reader and for each it calls the
lambda function with the row and its index as parameters. If the lambda
function returns true, it will continue processing the next row,
otherwise it will stop. An error is returned if something goes wrong
when reading the stream or parsing a row.
*/
func (cr *Reader) ReadBySample(lambda func(int, dataset.Row) (bool, error)) error {
	r := csv.NewReader(cr.r)
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}
	if err = cr.checkHeader(header); err != nil {
		return err
	}
	for l := 2; ; l++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading body: %w", err)
		}
		raw := make(map[string]string, len(header))
		for i, name := range header {
			raw[name] = record[i]
		}
		row, err := cr.parse(raw)
		if err != nil {
			return fmt.Errorf("parsing line %d: %w", l, err)
		}
		ok, err := lambda(l-2, row)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

func (cr *Reader) parse(raw map[string]string) (dataset.Row, error) {
	if cr.Unlabeled {
		record, err := cr.schema.ParseRecord(raw)
		return dataset.Row{Record: record}, err
	}
	return cr.schema.Parse(raw)
}

func (cr *Reader) checkHeader(header []string) error {
	known := make(map[string]bool)
	for _, f := range cr.schema.Columns() {
		known[f.Name()] = true
	}
	seen := make(map[string]bool)
	for _, name := range header {
		if !known[name] {
			return fmt.Errorf("parsing header: reference to unknown feature %s", name)
		}
		if seen[name] {
			return fmt.Errorf("parsing header: feature %s appears more than once", name)
		}
		seen[name] = true
	}
	for _, f := range cr.schema.Features {
		if !seen[f.Name()] {
			return fmt.Errorf("parsing header: missing feature %s", f.Name())
		}
	}
	if !cr.Unlabeled && !seen[cr.schema.Label.Name()] {
		return fmt.Errorf("parsing header: missing label feature %s", cr.schema.Label.Name())
	}
	return nil
}

/*
ReadFromFilePath takes a context, a filepath string and a schema, opens the
file to which the filepath points and returns the rows read from it or an
error. If the filepath is "" os.Stdin is read instead.
*/
func ReadFromFilePath(ctx context.Context, filepath string, s *dataset.Schema) ([]dataset.Row, error) {
	f, err := openFilePath(filepath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := dataset.ReadAll(ctx, NewReader(f, s))
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %w", filepath, err)
	}
	return rows, err
}

func openFilePath(filepath string) (*os.File, error) {
	if filepath == "" {
		return os.Stdin, nil
	}
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading CSV file: %w", err)
	}
	return f, nil
}

/*
Writer writes rows to a CSV stream according to a schema. It implements
dataset.Writer.
*/
type Writer struct {
	count  int
	schema *dataset.Schema
	w      *csv.Writer
}

/*
NewWriter takes an io.Writer and a schema and returns a Writer that will
write any rows on the io.Writer, after writing the header with the names
of the schema's columns.
*/
func NewWriter(writer io.Writer, s *dataset.Schema) (*Writer, error) {
	w := csv.NewWriter(writer)
	columns := s.Columns()
	header := make([]string, len(columns))
	for i, f := range columns {
		header[i] = f.Name()
	}
	err := w.Write(header)
	if err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}
	return &Writer{schema: s, w: w}, nil
}

// Count returns the total number of rows written.
func (cw *Writer) Count() int {
	return cw.count
}

// Write writes the given rows, returning the number of them
// written and an error if not all could be.
func (cw *Writer) Write(ctx context.Context, rows []dataset.Row) (int, error) {
	for n, row := range rows {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if err := cw.WriteRow(row); err != nil {
			return n, err
		}
	}
	return len(rows), nil
}

// WriteRow writes a single row.
func (cw *Writer) WriteRow(row dataset.Row) error {
	raw := cw.schema.Format(row)
	columns := cw.schema.Columns()
	record := make([]string, len(columns))
	for i, f := range columns {
		record[i] = raw[f.Name()]
	}
	err := cw.w.Write(record)
	if err != nil {
		return fmt.Errorf("writing CSV row for sample %d: %w", cw.count+1, err)
	}
	cw.count++
	return nil
}

// Flush writes any buffered data to the underlying io.Writer.
func (cw *Writer) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}
