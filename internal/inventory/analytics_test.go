package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeltValue(t *testing.T) {
	item := Item{WeightOzt: "2.0", Modifier: "3.50"}
	assert.InDelta(t, 2.0*30.0+3.50, MeltValue(item, 30.0), 1e-9)

	// Invalid fields count as zero.
	assert.InDelta(t, 0, MeltValue(Item{WeightOzt: "oops"}, 30.0), 1e-9)
	assert.InDelta(t, 30.0, MeltValue(Item{WeightOzt: "1", Modifier: "bad"}, 30.0), 1e-9)
}

func TestSummarize(t *testing.T) {
	ds := Dataset{
		{WeightOzt: "1.0", PricePaid: "25.00"},
		{WeightOzt: "2.0", PricePaid: "48.00", Modifier: "1.00"},
	}

	s := Summarize(ds, 30.0)
	assert.InDelta(t, 3.0, s.TotalWeightOzt, 1e-9)
	assert.InDelta(t, 1.0*30+2.0*30+1.00, s.TotalMeltValue, 1e-9)
	assert.InDelta(t, 73.00, s.TotalPaid, 1e-9)
	assert.InDelta(t, s.TotalMeltValue-s.TotalPaid, s.ProfitLoss, 1e-9)
	assert.InDelta(t, 30.0, s.SpotPrice, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, 30.0)
	assert.Zero(t, s.TotalWeightOzt)
	assert.Zero(t, s.TotalMeltValue)
	assert.Zero(t, s.ProfitLoss)
}

func TestFacts(t *testing.T) {
	f := Facts(10.0)

	assert.InDelta(t, 10.0*TroyOzToGrams, f.TotalGrams, 1e-6)
	assert.InDelta(t, f.TotalGrams/SilverDensityGCm3, f.VolumeCm3, 1e-6)
	assert.InDelta(t, f.TotalGrams/355.0, f.SodaCans, 1e-6)
	assert.Greater(t, f.WireMiles, 0.0)

	// Twice the silver, twice the wire.
	assert.InDelta(t, 2*f.WireMiles, Facts(20.0).WireMiles, 1e-9)
}

func TestFactsZero(t *testing.T) {
	f := Facts(0)
	assert.Zero(t, f.TotalGrams)
	assert.Zero(t, f.WireMiles)
	assert.Zero(t, f.SodaCans)
}
