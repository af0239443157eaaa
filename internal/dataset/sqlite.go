package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/catastro-latam/catastro-api/internal/model"
)

// sqliteTable is the expected table name in SQLite exports of TPREDIO.
const sqliteTable = "predios"

// LoadSQLite reads parcels from a SQLite database carrying the TPREDIO
// columns in a `predios` table.
func LoadSQLite(ctx context.Context, path string) ([]model.Parcel, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: open sqlite")
	}
	defer db.Close() //nolint:errcheck

	query := fmt.Sprintf("SELECT %s FROM %s",
		strings.Join(requiredColumns, ", "), sqliteTable)

	dbRows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: query sqlite")
	}
	defer dbRows.Close() //nolint:errcheck

	index := make(map[string]int, len(requiredColumns))
	for i, col := range requiredColumns {
		index[col] = i
	}

	var rows [][]string
	for dbRows.Next() {
		values := make([]sql.NullString, len(requiredColumns))
		dest := make([]any, len(values))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := dbRows.Scan(dest...); err != nil {
			return nil, eris.Wrap(err, "dataset: scan sqlite row")
		}
		row := make([]string, len(values))
		for i, v := range values {
			if v.Valid {
				row[i] = v.String
			}
		}
		rows = append(rows, row)
	}
	if err := dbRows.Err(); err != nil {
		return nil, eris.Wrap(err, "dataset: iterate sqlite rows")
	}

	return collectRows(index, rows, path), nil
}
