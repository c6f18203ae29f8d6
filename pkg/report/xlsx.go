package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"cropadvisor/entities"
)

const (
	SheetRecommendations = "Recommendations"
	SheetInputs          = "Inputs"
)

// WriteXLSX writes rec as a two-sheet workbook.
func WriteXLSX(w io.Writer, rec *entities.SavedRecommendation) error {
	x := excelize.NewFile()
	defer x.Close()

	if err := x.SetSheetName(x.GetSheetName(0), SheetRecommendations); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if _, err := x.NewSheet(SheetInputs); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	rows := [][]any{{"Rank", "Crop", "Suitability", "Score", "Confidence", "Yield", "Season", "Tags", "Fallback"}}
	for i, c := range rec.Recommendations {
		rows = append(rows, []any{i + 1, c.Name, round1(c.Suitability), c.Score, c.Confidence, c.Yield, c.Season, strings.Join(c.Tags, "; "), c.Fallback})
	}
	if err := writeRows(x, SheetRecommendations, rows); err != nil {
		return err
	}

	p := rec.Params
	inputs := [][]any{
		{"Parameter", "Value", "Unit"},
		{"Rainfall", p.Rainfall, "mm"},
		{"Humidity", p.Humidity, "%"},
		{"Temperature", p.Temperature, "°C"},
		{"Phosphorus", p.Phosphorus, "mg/kg"},
		{"Nitrogen", p.Nitrogen, "mg/kg"},
		{"Soil advice", rec.Advice.SoilAdvice},
		{"Fertilizer advice", rec.Advice.FertilizerAdvice},
		{"Generated", rec.SavedAt.UTC().Format(time.RFC3339)},
	}
	if err := writeRows(x, SheetInputs, inputs); err != nil {
		return err
	}

	bold, err := x.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = x.SetRowStyle(SheetRecommendations, 1, 1, bold)
		_ = x.SetRowStyle(SheetInputs, 1, 1, bold)
	}

	if _, err := x.WriteTo(w); err != nil {
		return fmt.Errorf("report: write xlsx: %w", err)
	}
	return nil
}

func writeRows(x *excelize.File, sheet string, rows [][]any) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("report: %w", err)
		}
		if err := x.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("report: %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
