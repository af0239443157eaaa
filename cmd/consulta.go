package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var (
	consultaCity    string
	consultaCountry string
)

var consultaCmd = &cobra.Command{
	Use:   "consulta [direccion]",
	Short: "Full lookup: geocode, parcel and nearby points of interest",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		address := strings.Join(args, " ")
		if consultaCity != "" {
			address += ", " + consultaCity
		}
		if consultaCountry != "" {
			address += ", " + consultaCountry
		}

		return printJSON(env.svc.FullLookup(cmd.Context(), address, cfg.Geocode.DefaultCountry))
	},
}

func init() {
	consultaCmd.Flags().StringVar(&consultaCity, "city", "", "city appended to the address")
	consultaCmd.Flags().StringVar(&consultaCountry, "country", "", "country appended to the address")
	rootCmd.AddCommand(consultaCmd)
}
