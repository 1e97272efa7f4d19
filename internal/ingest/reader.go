package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	sizing "solarcalc/internal/sizing/domain"
)

// MaxMonthlyConsumptionKWh bounds plausible household readings; anything at
// or above it is treated as a data error rather than clamped.
const MaxMonthlyConsumptionKWh = 10000

// ErrInvalidProfile is returned when an uploaded file does not yield a valid
// 12-month consumption profile.
var ErrInvalidProfile = errors.New("ingest: invalid consumption profile")

// ReadConsumptionCSV parses an uploaded CSV into a consumption profile.
// The file must carry one numeric consumption column: a header containing
// "consum" is preferred, otherwise the first column is used. At least 12
// monthly values are required; extra rows beyond December are ignored.
func ReadConsumptionCSV(r io.Reader) (sizing.ConsumptionProfile, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return sizing.ConsumptionProfile{}, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	if len(records) == 0 {
		return sizing.ConsumptionProfile{}, fmt.Errorf("%w: empty file", ErrInvalidProfile)
	}

	column, rows := consumptionColumn(records)
	return profileFromRows(rows, column)
}

// ReadConsumptionXLSX parses the first sheet of an uploaded workbook using
// the same column rules as ReadConsumptionCSV.
func ReadConsumptionXLSX(r io.Reader) (sizing.ConsumptionProfile, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return sizing.ConsumptionProfile{}, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return sizing.ConsumptionProfile{}, fmt.Errorf("%w: workbook has no sheets", ErrInvalidProfile)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return sizing.ConsumptionProfile{}, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	if len(rows) == 0 {
		return sizing.ConsumptionProfile{}, fmt.Errorf("%w: empty sheet", ErrInvalidProfile)
	}

	column, data := consumptionColumn(rows)
	return profileFromRows(data, column)
}

// consumptionColumn locates the consumption column and strips a header row
// when one is present.
func consumptionColumn(rows [][]string) (int, [][]string) {
	header := rows[0]
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		if strings.Contains(name, "consum") {
			return i, rows[1:]
		}
	}
	// No named column; skip the first row only if it is not numeric.
	if len(header) > 0 {
		if _, err := parseValue(header[0]); err != nil {
			return 0, rows[1:]
		}
	}
	return 0, rows
}

func profileFromRows(rows [][]string, column int) (sizing.ConsumptionProfile, error) {
	values := make([]float64, 0, sizing.MonthsPerYear)
	for _, row := range rows {
		if column >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[column])
		if cell == "" {
			continue
		}
		value, err := parseValue(cell)
		if err != nil {
			return sizing.ConsumptionProfile{}, fmt.Errorf("%w: non-numeric value %q", ErrInvalidProfile, cell)
		}
		if value < 0 {
			return sizing.ConsumptionProfile{}, fmt.Errorf("%w: negative value %.3f", ErrInvalidProfile, value)
		}
		if value >= MaxMonthlyConsumptionKWh {
			return sizing.ConsumptionProfile{}, fmt.Errorf("%w: value %.1f out of range", ErrInvalidProfile, value)
		}
		values = append(values, value)
		if len(values) == sizing.MonthsPerYear {
			break
		}
	}
	if len(values) < sizing.MonthsPerYear {
		return sizing.ConsumptionProfile{}, fmt.Errorf("%w: need %d monthly values, got %d", ErrInvalidProfile, sizing.MonthsPerYear, len(values))
	}
	return sizing.NewConsumptionProfile(values)
}

func parseValue(cell string) (float64, error) {
	// Tolerate decimal commas from locale-formatted exports.
	cell = strings.ReplaceAll(cell, ",", ".")
	return strconv.ParseFloat(cell, 64)
}
