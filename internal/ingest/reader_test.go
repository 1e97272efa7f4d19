package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

var sampleValues = []float64{350, 380, 320, 300, 280, 250, 240, 260, 290, 320, 340, 360}

func sampleCSV(header string) string {
	var b strings.Builder
	if header != "" {
		b.WriteString(header + "\n")
	}
	for _, v := range sampleValues {
		fmt.Fprintf(&b, "%.1f\n", v)
	}
	return b.String()
}

func TestReadConsumptionCSVWithHeader(t *testing.T) {
	profile, err := ReadConsumptionCSV(strings.NewReader(sampleCSV("Consumo_Mensal_kWh")))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	for i, want := range sampleValues {
		if math.Abs(profile.Month(i)-want) > 1e-9 {
			t.Fatalf("month %d: got %.2f, want %.2f", i, profile.Month(i), want)
		}
	}
}

func TestReadConsumptionCSVWithoutHeader(t *testing.T) {
	profile, err := ReadConsumptionCSV(strings.NewReader(sampleCSV("")))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if profile.Month(0) != 350 {
		t.Fatalf("expected first value 350, got %.2f", profile.Month(0))
	}
}

func TestReadConsumptionCSVPicksNamedColumn(t *testing.T) {
	var b strings.Builder
	b.WriteString("month,consumption_kwh\n")
	for i, v := range sampleValues {
		fmt.Fprintf(&b, "m%d,%.1f\n", i+1, v)
	}
	profile, err := ReadConsumptionCSV(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if profile.Month(11) != 360 {
		t.Fatalf("expected December 360, got %.2f", profile.Month(11))
	}
}

func TestReadConsumptionCSVDecimalComma(t *testing.T) {
	var b strings.Builder
	b.WriteString("consumo\n")
	for range sampleValues {
		b.WriteString("\"310,5\"\n")
	}
	profile, err := ReadConsumptionCSV(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if math.Abs(profile.Month(0)-310.5) > 1e-9 {
		t.Fatalf("expected 310.5, got %.2f", profile.Month(0))
	}
}

func TestReadConsumptionCSVRejectsShortFile(t *testing.T) {
	input := "consumo\n100\n200\n300\n"
	if _, err := ReadConsumptionCSV(strings.NewReader(input)); !errors.Is(err, ErrInvalidProfile) {
		t.Fatalf("expected ErrInvalidProfile, got %v", err)
	}
}

func TestReadConsumptionCSVRejectsBadValues(t *testing.T) {
	cases := []string{
		"consumo\n" + strings.Repeat("-5\n", 12),
		"consumo\n" + strings.Repeat("10500\n", 12),
		"consumo\n" + strings.Repeat("abc\n", 12),
	}
	for _, input := range cases {
		if _, err := ReadConsumptionCSV(strings.NewReader(input)); !errors.Is(err, ErrInvalidProfile) {
			t.Fatalf("expected ErrInvalidProfile for %q, got %v", input[:20], err)
		}
	}
}

func TestReadConsumptionXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetList()[0]
	if err := f.SetCellValue(sheet, "A1", "Consumption (kWh)"); err != nil {
		t.Fatalf("set header: %v", err)
	}
	for i, v := range sampleValues {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			t.Fatalf("set cell %s: %v", cell, err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	profile, err := ReadConsumptionXLSX(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("read xlsx: %v", err)
	}
	for i, want := range sampleValues {
		if math.Abs(profile.Month(i)-want) > 1e-9 {
			t.Fatalf("month %d: got %.2f, want %.2f", i, profile.Month(i), want)
		}
	}
}

func TestReadConsumptionXLSXRejectsGarbage(t *testing.T) {
	if _, err := ReadConsumptionXLSX(strings.NewReader("not a workbook")); !errors.Is(err, ErrInvalidProfile) {
		t.Fatalf("expected ErrInvalidProfile, got %v", err)
	}
}
