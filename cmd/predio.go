package main

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var predioCmd = &cobra.Command{
	Use:   "predio",
	Short: "Look up a cadastral parcel",
}

var predioAddressCmd = &cobra.Command{
	Use:   "address [direccion]",
	Short: "Look up a parcel by free-text address",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		return printJSON(env.svc.FindByAddress(cmd.Context(), strings.Join(args, " ")))
	},
}

var predioCoordsCmd = &cobra.Command{
	Use:   "coords <lat> <lng>",
	Short: "Look up the parcel nearest to coordinates",
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

		return printJSON(env.svc.FindNearest(cmd.Context(), lat, lng))
	},
}

func parseLatLng(rawLat, rawLng string) (float64, float64, error) {
	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return 0, 0, eris.Wrapf(err, "cmd: invalid latitude %q", rawLat)
	}
	lng, err := strconv.ParseFloat(rawLng, 64)
	if err != nil {
		return 0, 0, eris.Wrapf(err, "cmd: invalid longitude %q", rawLng)
	}
	return lat, lng, nil
}

func init() {
	predioCmd.AddCommand(predioAddressCmd)
	predioCmd.AddCommand(predioCoordsCmd)
	rootCmd.AddCommand(predioCmd)
}
