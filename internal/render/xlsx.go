package render

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ppiankov/gapdash/internal/chart"
)

const sheetName = "data"

// writeXLSX exports the points behind a chart as one sheet, one row per point.
func writeXLSX(w io.Writer, spec *chart.Spec) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{Title: spec.Title, Creator: "gapdash"}); err != nil {
		return fmt.Errorf("set doc props: %w", err)
	}

	header, rows := table(spec)
	if err := writeRow(f, 1, header); err != nil {
		return err
	}
	for i, row := range rows {
		if err := writeRow(f, i+2, row); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", last, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return fmt.Errorf("set %s: %w", cell, err)
		}
	}
	return nil
}

// table flattens a spec into a header and rows, shaped by chart kind
func table(spec *chart.Spec) ([]any, [][]any) {
	var header []any
	var rows [][]any

	switch spec.Kind {
	case chart.KindLine:
		header = []any{spec.Label(spec.Encoding.Color), spec.Label(spec.Encoding.X), spec.Label(spec.Encoding.Y)}
		for _, s := range spec.Series {
			for _, p := range s.Points {
				rows = append(rows, []any{s.Name, p.X, p.Y})
			}
		}
	case chart.KindScatter:
		header = []any{spec.Label(spec.Encoding.Label), spec.Label(spec.Encoding.X), spec.Label(spec.Encoding.Y), spec.Label(spec.Encoding.Size)}
		for _, s := range spec.Series {
			for _, p := range s.Points {
				rows = append(rows, []any{p.Label, p.X, p.Y, p.Size})
			}
		}
	case chart.KindBar:
		header = []any{spec.Label(spec.Encoding.Y), spec.Label(spec.Encoding.X)}
		for _, s := range spec.Series {
			for _, p := range s.Points {
				rows = append(rows, []any{p.Label, p.Value})
			}
		}
	default:
		header = []any{spec.Label(spec.Encoding.Label), spec.Label(spec.Encoding.Value)}
		for _, s := range spec.Series {
			for _, p := range s.Points {
				rows = append(rows, []any{p.Label, p.Value})
			}
		}
	}
	return header, rows
}
