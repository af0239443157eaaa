package catastro

import (
	"math"

	"github.com/catastro-latam/catastro-api/internal/model"
)

// Stratum derives the socioeconomic stratum (1-6) from a parcel's cadastral
// score. Boundaries are inclusive on the upper class: score 30 is stratum 2,
// score 90 is stratum 6.
func Stratum(score int) int {
	switch {
	case score < 30:
		return 1
	case score < 45:
		return 2
	case score < 60:
		return 3
	case score < 75:
		return 4
	case score < 90:
		return 5
	default:
		return 6
	}
}

// EstimatedValue computes an illustrative cadastral valuation from areas and
// score, rounded to 2 decimals. The rate is a demo constant, not an
// appraisal; callers must not treat the result as authoritative.
func EstimatedValue(landAreaM2, builtAreaM2 float64, score int) float64 {
	basePerM2 := float64(score) * 50000
	landValue := landAreaM2 * basePerM2 * 0.3
	builtValue := builtAreaM2 * basePerM2 * 0.7
	return math.Round((landValue+builtValue)*100) / 100
}

// formatParcel builds the output view of a parcel with its derived fields.
func formatParcel(p model.Parcel) *model.ParcelInfo {
	return &model.ParcelInfo{
		Chip:             p.Chip,
		ParcelNumber:     p.ParcelNumber,
		Address:          p.Address,
		Neighborhood:     p.Neighborhood,
		LandAreaM2:       p.LandAreaM2,
		BuiltAreaM2:      p.BuiltAreaM2,
		UseCode:          p.UseCode,
		UseDescription:   UseDescription(p.UseCode),
		Stratum:          Stratum(p.Score),
		ConstructionYear: p.ConstructionYear,
		EstimatedValue:   EstimatedValue(p.LandAreaM2, p.BuiltAreaM2, p.Score),
	}
}
