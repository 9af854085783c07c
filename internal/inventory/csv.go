package inventory

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// Canonical CSV column headers, in export order.
const (
	ColDescription = "Description"
	ColWeight      = "Weight (troy oz)"
	ColDate        = "Date Acquired"
	ColPricePaid   = "Price Paid ($)"
	ColModifier    = "Modifier ($)"

	// Older exports used this header for the weight column.
	colWeightLegacy = "Weight (ozt)"
)

var csvColumns = []string{ColDescription, ColWeight, ColDate, ColPricePaid, ColModifier}

// ExportCSV writes the dataset with canonical headers.
func ExportCSV(w io.Writer, d Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvColumns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, item := range d {
		record := []string{item.Description, item.WeightOzt, item.DateAcquired, item.PricePaid, item.Modifier}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSVBytes is ExportCSV into a byte slice.
func ExportCSVBytes(d Dataset) ([]byte, error) {
	var buf bytes.Buffer
	if err := ExportCSV(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ImportCSV reads a dataset from CSV. Columns are located by header name, so
// column order does not matter; the legacy "Weight (ozt)" header is accepted
// for the weight column. Missing expected columns are reported as warnings
// (their fields import empty), matching the forgiving upload behavior of the
// original editor.
func ImportCSV(r io.Reader) (Dataset, []string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return Dataset{}, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	if _, ok := index[ColWeight]; !ok {
		if i, ok := index[colWeightLegacy]; ok {
			index[ColWeight] = i
		}
	}

	var warnings []string
	for _, col := range csvColumns {
		if _, ok := index[col]; !ok {
			warnings = append(warnings, fmt.Sprintf("missing column %q", col))
		}
	}

	field := func(record []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var ds Dataset
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, warnings, fmt.Errorf("failed to read CSV record: %w", err)
		}
		ds = append(ds, Item{
			Description:  field(record, ColDescription),
			WeightOzt:    field(record, ColWeight),
			DateAcquired: field(record, ColDate),
			PricePaid:    field(record, ColPricePaid),
			Modifier:     field(record, ColModifier),
		})
	}
	if ds == nil {
		ds = Dataset{}
	}
	return ds, warnings, nil
}
