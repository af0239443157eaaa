package dataset

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/catastro-latam/catastro-api/internal/model"
)

// LoadXLSX reads a TPREDIO XLSX export. The first row of the first sheet must
// be the header.
func LoadXLSX(ctx context.Context, path string) ([]model.Parcel, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("dataset: xlsx has no sheets")
	}

	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, eris.New("dataset: xlsx sheet is empty")
	}

	index, err := columnIndex(rowToStrings(sheet.Rows[0]))
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(sheet.Rows)-1)
	for _, row := range sheet.Rows[1:] {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "dataset: xlsx read cancelled")
		}
		rows = append(rows, rowToStrings(row))
	}

	return collectRows(index, rows, path), nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for i, cell := range row.Cells {
		cells[i] = cell.String()
	}
	return cells
}
