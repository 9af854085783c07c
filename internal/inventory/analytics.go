package inventory

import "math"

// Physical constants for the stack statistics.
const (
	TroyOzToGrams     = 31.1034768
	SilverDensityGCm3 = 10.49
	wireDiameterMM    = 0.5
	sodaCanGrams      = 355.0
	cmPerMile         = 160934.4
)

// MeltValue is the current melt value of one item at the given spot price:
// weight x spot plus the per-item modifier (premiums, retailer fees).
func MeltValue(item Item, spot float64) float64 {
	return Amount(item.WeightOzt)*spot + Amount(item.Modifier)
}

// Summary aggregates the whole dataset at a given spot price.
type Summary struct {
	SpotPrice      float64
	TotalWeightOzt float64
	TotalMeltValue float64
	TotalPaid      float64
	ProfitLoss     float64
}

// Summarize computes totals across the dataset.
func Summarize(d Dataset, spot float64) Summary {
	s := Summary{SpotPrice: spot}
	for _, item := range d {
		s.TotalWeightOzt += Amount(item.WeightOzt)
		s.TotalMeltValue += MeltValue(item, spot)
		s.TotalPaid += Amount(item.PricePaid)
	}
	s.ProfitLoss = s.TotalMeltValue - s.TotalPaid
	return s
}

// FunFacts holds the novelty statistics shown alongside the totals.
type FunFacts struct {
	WireMiles  float64 // length if drawn into 0.5 mm wire
	VolumeCm3  float64
	SodaCans   float64 // mass equivalent in 12 oz cans
	TotalGrams float64
}

// Facts derives the novelty statistics for a total weight in troy ounces.
func Facts(totalOzt float64) FunFacts {
	grams := totalOzt * TroyOzToGrams
	volume := grams / SilverDensityGCm3

	radiusCm := (wireDiameterMM / 10.0) / 2.0
	areaCm2 := math.Pi * radiusCm * radiusCm
	lengthCm := 0.0
	if areaCm2 > 0 {
		lengthCm = volume / areaCm2
	}

	return FunFacts{
		WireMiles:  lengthCm / cmPerMile,
		VolumeCm3:  volume,
		SodaCans:   grams / sodaCanGrams,
		TotalGrams: grams,
	}
}
