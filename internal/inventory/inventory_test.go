package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1.5", 1.5},
		{"  2.00 ", 2.0},
		{"0", 0},
		{"", 0},
		{"   ", 0},
		{"abc", 0},
		{"-3", 0},
		{"1,5", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Amount(tc.in), "Amount(%q)", tc.in)
	}
}

func TestInsert(t *testing.T) {
	ds := Dataset{{Description: "a"}, {Description: "b"}}

	out := ds.Insert(1, Item{Description: "x"})
	require.Len(t, out, 3)
	assert.Equal(t, "a", out[0].Description)
	assert.Equal(t, "x", out[1].Description)
	assert.Equal(t, "b", out[2].Description)

	// The receiver is untouched.
	assert.Len(t, ds, 2)

	// Out-of-range indexes clamp instead of panicking.
	out = ds.Insert(-5, Item{Description: "first"})
	assert.Equal(t, "first", out[0].Description)
	out = ds.Insert(99, Item{Description: "last"})
	assert.Equal(t, "last", out[len(out)-1].Description)
}

func TestRemove(t *testing.T) {
	ds := Dataset{{Description: "a"}, {Description: "b"}, {Description: "c"}}

	out, removed, ok := ds.Remove(1)
	require.True(t, ok)
	assert.Equal(t, "b", removed.Description)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].Description)
	assert.Equal(t, "c", out[1].Description)
	assert.Len(t, ds, 3)

	_, _, ok = ds.Remove(-1)
	assert.False(t, ok)
	_, _, ok = ds.Remove(3)
	assert.False(t, ok)
}

func TestClone(t *testing.T) {
	assert.Nil(t, Dataset(nil).Clone())

	ds := Dataset{{Description: "a"}}
	clone := ds.Clone()
	clone[0].Description = "changed"
	assert.Equal(t, "a", ds[0].Description)
}

func TestCodecRoundTrip(t *testing.T) {
	ds := Dataset{
		{Description: "Generic Round 1oz", WeightOzt: "1.0", DateAcquired: "2024-01-15", PricePaid: "25.00"},
		{Description: "90% Quarter", WeightOzt: "0.18", Modifier: "-1.50"},
	}

	data, err := Encode(ds)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, ds, got)
}

func TestEncodeNilDataset(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestDecodeRejectsUnknownVersion(t *testing.T) {
	_, err := Decode([]byte(`{"version":2,"items":[]}`))
	assert.Error(t, err)

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}
