package main

import (
	"github.com/spf13/cobra"
)

var poisRadius float64

var poisCmd = &cobra.Command{
	Use:   "pois <lat> <lng>",
	Short: "List points of interest near coordinates",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lat, lng, err := parseLatLng(args[0], args[1])
		if err != nil {
			return err
		}

		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		return printJSON(env.svc.FindPOIs(cmd.Context(), lat, lng, poisRadius))
	},
}

func init() {
	poisCmd.Flags().Float64Var(&poisRadius, "radius", 0, "search radius in meters (default 500)")
	rootCmd.AddCommand(poisCmd)
}
