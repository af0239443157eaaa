package dataset

import (
	"context"
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/catastro-latam/catastro-api/internal/model"
)

// LoadCSV reads a TPREDIO CSV export. The first row must be the header.
func LoadCSV(ctx context.Context, path string) ([]model.Parcel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: open csv")
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // allow variable fields
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, eris.Wrap(err, "dataset: read csv header")
	}
	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	for {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "dataset: csv read cancelled")
		}
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "dataset: read csv row")
		}
		rows = append(rows, row)
	}

	return collectRows(index, rows, path), nil
}
