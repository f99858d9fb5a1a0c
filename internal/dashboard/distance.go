package dashboard

import (
	"math"

	"github.com/paulmach/orb/geo"

	"github.com/kapu/terrascope/internal/domain"
)

// CapitalDistance is the great-circle distance between two capitals.
type CapitalDistance struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	FromISO    string  `json:"fromIso"`
	ToISO      string  `json:"toIso"`
	Kilometers float64 `json:"kilometers"`
}

// CapitalDistances returns one entry per unordered pair, in insertion order.
func CapitalDistances(profiles []*domain.CountryProfile) []CapitalDistance {
	var out []CapitalDistance
	for i := 0; i < len(profiles); i++ {
		for j := i + 1; j < len(profiles); j++ {
			a, b := profiles[i], profiles[j]
			meters := geo.DistanceHaversine(a.CapitalCoordinates.Point(), b.CapitalCoordinates.Point())
			out = append(out, CapitalDistance{
				From:       a.Capital,
				To:         b.Capital,
				FromISO:    a.Key(),
				ToISO:      b.Key(),
				Kilometers: math.Round(meters/100) / 10,
			})
		}
	}
	return out
}
