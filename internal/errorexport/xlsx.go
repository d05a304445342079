package errorexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/nibrs-flatfile/pkg/nibrs"
)

// ErrorSheet is the name of the worksheet holding the errors.
const ErrorSheet = "Errors"

var xlsxHeaders = []string{
	"Source", "Line", "Segment", "ORI", "Report ID", "Within ID",
	"Error Code", "Data Element", "Value", "Description",
}

var xlsxWidths = []float64{24, 8, 9, 12, 16, 10, 11, 16, 16, 70}

// WriteXLSX writes errs as a single-sheet workbook with a bold header row.
func WriteXLSX(w io.Writer, errs []nibrs.Error) error {
	f, err := buildWorkbook(errs)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write error workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes the error workbook to path.
func SaveXLSX(path string, errs []nibrs.Error) error {
	f, err := buildWorkbook(errs)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save error workbook: %w", err)
	}
	return nil
}

func buildWorkbook(errs []nibrs.Error) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ErrorSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name error sheet: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, h := range xlsxHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(ErrorSheet, cell, h)
		f.SetCellStyle(ErrorSheet, cell, cell, style)

		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(ErrorSheet, col, col, xlsxWidths[i])
	}

	for r, e := range errs {
		segment := ""
		if e.SegmentType != 0 {
			segment = string(e.SegmentType)
		}
		row := []interface{}{
			e.Source.SourceName,
			e.Source.Line,
			segment,
			e.ORI,
			e.ReportID,
			e.WithinSegmentID,
			string(e.Code),
			e.DataElement,
			e.Value,
			e.Description,
		}
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(ErrorSheet, cell, v)
		}
	}

	return f, nil
}
