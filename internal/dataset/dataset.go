// Package dataset loads the cadastral parcel table into memory. The source
// carries the fixed TPREDIO column names and may arrive as CSV, XLSX, a
// shapefile attribute table, or a SQLite database; the loader is picked by
// file extension. The resulting slice is read-only for the life of the
// process.
package dataset

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/catastro-latam/catastro-api/internal/model"
)

// TPREDIO column names, as exported by the Bogotá cadastre.
const (
	colChip         = "PRECHIP"
	colParcelNumber = "PRENUPRE"
	colAddress      = "PREDIRECC"
	colNeighborhood = "PRENBARRIO"
	colLandArea     = "PREATERRE"
	colBuiltArea    = "PREACONST"
	colUseCode      = "PRECUSO"
	colScore        = "PREPUNTAJE"
	colYear         = "PREVETUSTZ"
)

var requiredColumns = []string{
	colChip, colParcelNumber, colAddress, colNeighborhood,
	colLandArea, colBuiltArea, colUseCode, colScore, colYear,
}

// Load reads the parcel dataset at path, dispatching on file extension.
func Load(ctx context.Context, path string) ([]model.Parcel, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(ctx, path)
	case ".xlsx":
		return LoadXLSX(ctx, path)
	case ".shp":
		return LoadShapefile(ctx, path)
	case ".db", ".db3", ".sqlite", ".sqlite3":
		return LoadSQLite(ctx, path)
	default:
		return nil, eris.Errorf("dataset: unsupported file type %q", filepath.Ext(path))
	}
}

// columnIndex maps TPREDIO column names to positions in a header row.
// Returns an error naming the first missing required column.
func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToUpper(strings.TrimSpace(name))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, eris.Errorf("dataset: missing required column %s", col)
		}
	}
	return index, nil
}

// parcelFromRow builds a Parcel from one tabular row. Rows with non-numeric
// area or score values are rejected so a single bad record never poisons the
// collection.
func parcelFromRow(index map[string]int, row []string) (model.Parcel, error) {
	get := func(col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	landArea, err := parseArea(get(colLandArea))
	if err != nil {
		return model.Parcel{}, eris.Wrapf(err, "dataset: column %s", colLandArea)
	}
	builtArea, err := parseArea(get(colBuiltArea))
	if err != nil {
		return model.Parcel{}, eris.Wrapf(err, "dataset: column %s", colBuiltArea)
	}

	score := 0
	if raw := get(colScore); raw != "" {
		score, err = strconv.Atoi(raw)
		if err != nil {
			// Some exports store the score as a float.
			f, ferr := strconv.ParseFloat(raw, 64)
			if ferr != nil {
				return model.Parcel{}, eris.Wrapf(err, "dataset: column %s", colScore)
			}
			score = int(f)
		}
	}

	return model.Parcel{
		Chip:             get(colChip),
		ParcelNumber:     get(colParcelNumber),
		Address:          get(colAddress),
		Neighborhood:     get(colNeighborhood),
		LandAreaM2:       landArea,
		BuiltAreaM2:      builtArea,
		UseCode:          get(colUseCode),
		Score:            score,
		ConstructionYear: get(colYear),
	}, nil
}

func parseArea(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if f < 0 {
		return 0, nil
	}
	return f, nil
}

// collectRows converts raw rows to parcels, skipping and counting malformed
// ones.
func collectRows(index map[string]int, rows [][]string, source string) []model.Parcel {
	parcels := make([]model.Parcel, 0, len(rows))
	var skipped int
	for _, row := range rows {
		p, err := parcelFromRow(index, row)
		if err != nil {
			skipped++
			zap.L().Warn("dataset: skipping malformed record",
				zap.String("source", source),
				zap.Error(err),
			)
			continue
		}
		parcels = append(parcels, p)
	}
	zap.L().Info("cadastral dataset loaded",
		zap.String("source", source),
		zap.Int("records", len(parcels)),
		zap.Int("skipped", skipped),
	)
	return parcels
}
