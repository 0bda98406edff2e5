package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/qtlab/astock-backtest/pkg/types"
)

// ReadEquityCSV loads an equity curve from a CSV file. The first row is a
// header; the Date and Equity columns are required, Benchmark, Cash and
// Position are optional and default to zero.
func ReadEquityCSV(path string) ([]types.EquityPoint, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open equity file: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse equity CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, types.NewDataError(types.CodeInsufficientData,
			"equity file has no data rows",
			"provide a CSV with a header row and at least one point")
	}

	cols := columnIndex(records[0])
	dateCol, ok := cols["date"]
	if !ok {
		return nil, fmt.Errorf("equity CSV is missing a Date column")
	}
	equityCol, ok := cols["equity"]
	if !ok {
		return nil, fmt.Errorf("equity CSV is missing an Equity column")
	}

	curve := make([]types.EquityPoint, 0, len(records)-1)
	for i, record := range records[1:] {
		date, err := time.Parse("2006-01-02", record[dateCol])
		if err != nil {
			return nil, fmt.Errorf("equity row %d: bad date %q", i+2, record[dateCol])
		}
		equity, err := strconv.ParseFloat(record[equityCol], 64)
		if err != nil {
			return nil, fmt.Errorf("equity row %d: bad equity %q", i+2, record[equityCol])
		}
		point := types.EquityPoint{Date: date, Equity: equity}
		point.Benchmark = optionalFloat(record, cols, "benchmark")
		point.Cash = optionalFloat(record, cols, "cash")
		point.Position = optionalFloat(record, cols, "position")
		curve = append(curve, point)
	}
	return curve, nil
}

// ReadTradesJSON loads a trade list from a JSON array file.
func ReadTradesJSON(path string) ([]types.DetailedTrade, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trades file: %w", err)
	}

	var trades []types.DetailedTrade
	if err := json.Unmarshal(data, &trades); err != nil {
		return nil, fmt.Errorf("failed to parse trades JSON: %w", err)
	}
	return trades, nil
}

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

func optionalFloat(record []string, cols map[string]int, name string) float64 {
	i, ok := cols[name]
	if !ok || i >= len(record) || record[i] == "" {
		return 0
	}
	v, err := strconv.ParseFloat(record[i], 64)
	if err != nil {
		return 0
	}
	return v
}
