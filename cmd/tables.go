package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/vent-ope/vent-ope/ope"
)

// CSV column headers for the timestep dataset format.
var datasetColumns = []string{"trajectory_id", "state", "action", "return"}

// LoadDataset reads a timestep dataset from CSV. The expected layout is one
// row per timestep with columns trajectory_id, state, action, return; the
// return value repeats on every row of a trajectory. The loaded dataset is
// validated before being returned.
func LoadDataset(path string) (ope.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading dataset header: %w", err)
	}
	if len(header) != len(datasetColumns) {
		return nil, fmt.Errorf("dataset header has %d columns, expected %d", len(header), len(datasetColumns))
	}

	var ds ope.Dataset
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading dataset row: %w", err)
		}
		state, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("parsing state index %q: %w", row[1], err)
		}
		action, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("parsing action index %q: %w", row[2], err)
		}
		ret, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing return %q: %w", row[3], err)
		}
		ds = append(ds, ope.Timestep{TrajectoryID: row[0], State: state, Action: action, Return: ret})
	}
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("validating dataset %s: %w", path, err)
	}
	return ds, nil
}

// LoadPolicyTable reads a dense states × actions probability matrix from CSV,
// one state per row, no header.
func LoadPolicyTable(path string) (ope.PolicyTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening policy table: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	var table ope.PolicyTable
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading policy row: %w", err)
		}
		probs := make([]float64, len(row))
		for i, cell := range row {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing probability %q at state %d action %d: %w", cell, len(table), i, err)
			}
			probs[i] = v
		}
		table = append(table, probs)
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("validating policy table %s: %w", path, err)
	}
	return table, nil
}

// WritePolicyTable writes a policy matrix as CSV, one state per row.
func WritePolicyTable(path string, table ope.PolicyTable) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating policy table file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	for s, row := range table {
		cells := make([]string, len(row))
		for a, v := range row {
			cells[a] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := writer.Write(cells); err != nil {
			return fmt.Errorf("writing policy row %d: %w", s, err)
		}
	}
	return nil
}
