package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/catastro-latam/catastro-api/pkg/geocode"
)

var (
	geocodeCountry string
	batchIn        string
	batchOut       string
)

var geocodeCmd = &cobra.Command{
	Use:   "geocode [address]",
	Short: "Geocode a single address",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver, cache, err := newResolver()
		if err != nil {
			return err
		}
		if cache != nil {
			defer cache.Close()
		}

		address := strings.Join(args, " ")
		country := geocodeCountry
		if country == "" {
			country = cfg.Geocode.DefaultCountry
		}

		resp, err := resolver.Resolve(cmd.Context(), address, country)
		if err != nil {
			return eris.Wrap(err, "cmd: geocode")
		}

		return printJSON(geocode.ExtractLocation(resp))
	},
}

var geocodeBatchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Geocode addresses from a CSV file",
	Long:  "Reads addresses from the first column of the input CSV (optional country code in the second) and writes one result row per address.",
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver, cache, err := newResolver()
		if err != nil {
			return err
		}
		if cache != nil {
			defer cache.Close()
		}

		queries, err := readBatchInput(batchIn)
		if err != nil {
			return err
		}
		zap.L().Info("geocoding batch",
			zap.Int("addresses", len(queries)),
			zap.String("input", batchIn),
		)

		results := resolver.BatchResolve(cmd.Context(), queries)
		if err := writeBatchOutput(batchOut, queries, results); err != nil {
			return err
		}

		matched := 0
		for _, r := range results {
			if r.Success {
				matched++
			}
		}
		fmt.Printf("geocoded %d/%d addresses, results in %s\n", matched, len(queries), batchOut)
		return nil
	},
}

func readBatchInput(path string) ([]geocode.Query, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "cmd: open batch input")
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "cmd: read batch input")
	}

	queries := make([]geocode.Query, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		q := geocode.Query{Address: strings.TrimSpace(row[0]), Country: cfg.Geocode.DefaultCountry}
		if len(row) > 1 && strings.TrimSpace(row[1]) != "" {
			q.Country = strings.TrimSpace(row[1])
		}
		queries = append(queries, q)
	}
	return queries, nil
}

func writeBatchOutput(path string, queries []geocode.Query, results []geocode.LocationData) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "cmd: create batch output")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"address", "success", "lat", "lng", "formatted_address", "error"}); err != nil {
		return eris.Wrap(err, "cmd: write batch output")
	}

	for i, result := range results {
		row := []string{queries[i].Address, strconv.FormatBool(result.Success), "", "", "", result.Error}
		if result.Coordinates != nil {
			row[2] = strconv.FormatFloat(result.Coordinates.Lat, 'f', -1, 64)
			row[3] = strconv.FormatFloat(result.Coordinates.Lng, 'f', -1, 64)
		}
		row[4] = result.FormattedAddress
		if err := w.Write(row); err != nil {
			return eris.Wrap(err, "cmd: write batch output")
		}
	}

	w.Flush()
	return eris.Wrap(w.Error(), "cmd: flush batch output")
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrap(err, "cmd: marshal output")
	}
	fmt.Println(string(out))
	return nil
}

func init() {
	geocodeCmd.Flags().StringVar(&geocodeCountry, "country", "", "ISO country code to bias results (default from config)")

	geocodeBatchCmd.Flags().StringVar(&batchIn, "in", "", "input CSV of addresses")
	geocodeBatchCmd.Flags().StringVar(&batchOut, "out", "geocoded.csv", "output CSV path")
	_ = geocodeBatchCmd.MarkFlagRequired("in")

	geocodeCmd.AddCommand(geocodeBatchCmd)
	rootCmd.AddCommand(geocodeCmd)
}
