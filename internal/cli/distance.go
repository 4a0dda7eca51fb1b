package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flightmesh/pkg/errors"
	"github.com/matzehuels/flightmesh/pkg/geo"
)

// distanceCommand creates the distance command for one-off calculations.
func (c *CLI) distanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "distance LAT1 LNG1 LAT2 LNG2",
		Short: "Print the great-circle distance between two coordinates",
		Long: `Print the great-circle distance between two coordinates in kilometers.

The second coordinate is also checked against the configured flight range,
treating the first one as the base. Put -- before negative coordinates so
they are not read as flags.`,
		Example: `  flightmesh distance -- -33.8688 151.2093 -33.8710 151.2140`,
		Args:    cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			coords, err := parseCoordinates(args)
			if err != nil {
				return err
			}
			from, to := coords[0], coords[1]
			km := from.DistanceTo(to)

			printDistance("Distance", km)
			printDistance("Max range", c.cfg.MaxRangeKm)
			if km <= c.cfg.MaxRangeKm {
				printSuccess("Within range")
			} else {
				printWarning("Out of range by %.3f km", km-c.cfg.MaxRangeKm)
			}
			return nil
		},
	}
}

// parseCoordinates reads lat/lng pairs from args.
func parseCoordinates(args []string) ([]geo.Coordinate, error) {
	if len(args)%2 != 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "coordinates come in lat/lng pairs, got %d values", len(args))
	}
	coords := make([]geo.Coordinate, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		lat, err := parseFloat("latitude", args[i])
		if err != nil {
			return nil, err
		}
		lng, err := parseFloat("longitude", args[i+1])
		if err != nil {
			return nil, err
		}
		if err := errors.ValidateCoordinate(lat, lng); err != nil {
			return nil, err
		}
		coords = append(coords, geo.Coordinate{Lat: lat, Lng: lng})
	}
	return coords, nil
}

func parseFloat(what, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid %s %q", what, s)
	}
	return v, nil
}

// formatKm formats a distance for tables and status lines.
func formatKm(km float64) string {
	return fmt.Sprintf("%.3f km", km)
}
