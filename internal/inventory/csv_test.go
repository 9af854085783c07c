package inventory

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRoundTrip(t *testing.T) {
	ds := Dataset{
		{Description: "Generic Round 1oz", WeightOzt: "1.0", DateAcquired: "2024-01-15", PricePaid: "25.00", Modifier: ""},
		{Description: "Bar, 10 oz \"poured\"", WeightOzt: "10", PricePaid: "", Modifier: "-2.50"},
	}

	data, err := ExportCSVBytes(ds)
	require.NoError(t, err)

	got, warnings, err := ImportCSV(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, ds, got)
}

func TestImportCSVLegacyWeightHeader(t *testing.T) {
	in := "Description,Weight (ozt),Date Acquired,Price Paid ($),Modifier ($)\n" +
		"Old Export,1.5,2020-01-01,20.00,\n"

	got, warnings, err := ImportCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, got, 1)
	assert.Equal(t, "1.5", got[0].WeightOzt)
}

func TestImportCSVMissingColumns(t *testing.T) {
	in := "Description,Weight (troy oz)\nRound,1.0\n"

	got, warnings, err := ImportCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Len(t, warnings, 3)
	require.Len(t, got, 1)
	assert.Equal(t, "Round", got[0].Description)
	assert.Empty(t, got[0].PricePaid)
}

func TestImportCSVColumnOrderIrrelevant(t *testing.T) {
	in := "Modifier ($),Description,Weight (troy oz),Price Paid ($),Date Acquired\n" +
		"0.50,Round,1.0,25.00,2024-01-01\n"

	got, warnings, err := ImportCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, got, 1)
	assert.Equal(t, Item{
		Description:  "Round",
		WeightOzt:    "1.0",
		DateAcquired: "2024-01-01",
		PricePaid:    "25.00",
		Modifier:     "0.50",
	}, got[0])
}

func TestImportCSVEmpty(t *testing.T) {
	got, warnings, err := ImportCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestUnifiedDiff(t *testing.T) {
	a, err := ExportCSVBytes(Dataset{{Description: "Round", WeightOzt: "1.0"}})
	require.NoError(t, err)
	b, err := ExportCSVBytes(Dataset{{Description: "Round", WeightOzt: "2.0"}})
	require.NoError(t, err)

	diff := UnifiedDiff("stack.csv", a, b)
	assert.Contains(t, diff, "--- vault/stack.csv")
	assert.Contains(t, diff, "+++ local/stack.csv")
	assert.Contains(t, diff, "1.0")
	assert.Contains(t, diff, "2.0")
}

func TestUnifiedDiffIdentical(t *testing.T) {
	data, err := ExportCSVBytes(Dataset{{Description: "Round", WeightOzt: "1.0"}})
	require.NoError(t, err)
	assert.Empty(t, UnifiedDiff("stack.csv", data, data))
}
