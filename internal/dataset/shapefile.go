package dataset

import (
	"context"
	"strings"

	shp "github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"

	"github.com/catastro-latam/catastro-api/internal/model"
)

// LoadShapefile reads parcels from a cadastral shapefile's attribute table
// (.dbf). Geometries are ignored: the matcher works on addresses, not
// footprints.
func LoadShapefile(ctx context.Context, path string) ([]model.Parcel, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: open shapefile")
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[strings.ToUpper(strings.TrimRight(f.String(), "\x00"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, eris.Errorf("dataset: missing required shapefile field %s", col)
		}
	}

	var rows [][]string
	for reader.Next() {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "dataset: shapefile read cancelled")
		}
		row := make([]string, len(fields))
		for i := range fields {
			row[i] = reader.Attribute(i)
		}
		rows = append(rows, row)
	}
	if err := reader.Err(); err != nil {
		return nil, eris.Wrap(err, "dataset: read shapefile")
	}

	return collectRows(index, rows, path), nil
}
