// Package report exports the dispatch journal to an Excel workbook.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kubev2v/taskrunner/internal/models"
)

const (
	SheetDispatches = "Dispatches"
	SheetSummary    = "Summary"
)

var (
	dispatchHeader = []any{"ID", "Mode", "Size", "Status", "Error", "Started At", "Duration (ms)"}
	summaryHeader  = []any{"Mode", "Status", "Dispatches", "Items", "Avg Duration (ms)"}
)

// Write renders dispatches and summaries as a two-sheet workbook into w.
func Write(w io.Writer, dispatches []models.Dispatch, summaries []models.DispatchSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetDispatches); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return err
	}

	if err := writeRow(f, SheetDispatches, 1, dispatchHeader); err != nil {
		return err
	}
	for i, d := range dispatches {
		row := []any{
			d.ID.String(),
			string(d.Mode),
			d.Size,
			string(d.Status),
			d.Error,
			d.StartedAt.UTC().Format(time.RFC3339),
			d.Duration.Milliseconds(),
		}
		if err := writeRow(f, SheetDispatches, i+2, row); err != nil {
			return err
		}
	}

	if err := writeRow(f, SheetSummary, 1, summaryHeader); err != nil {
		return err
	}
	for i, s := range summaries {
		row := []any{string(s.Mode), string(s.Status), s.Count, s.Items, s.AvgDuration.Milliseconds()}
		if err := writeRow(f, SheetSummary, i+2, row); err != nil {
			return err
		}
	}

	if err := styleHeaders(f); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func styleHeaders(f *excelize.File) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	for sheet, header := range map[string][]any{SheetDispatches: dispatchHeader, SheetSummary: summaryHeader} {
		last, err := excelize.CoordinatesToCellName(len(header), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
			return err
		}
	}
	return nil
}
