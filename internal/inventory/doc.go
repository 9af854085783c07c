// Package inventory holds the in-memory inventory model and its codecs.
//
// The dataset is an ordered list of items; order is display and edit order
// and is preserved through every round trip. Numeric fields (weight, price
// paid, modifier) are kept exactly as the user typed them and only parsed
// when a computation needs them; text that does not parse as a non-negative
// decimal counts as zero and never raises an error.
package inventory
