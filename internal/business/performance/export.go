package performance

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/leasedesk/rental-portal/pkg/model"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Performance"

var exportHeader = []string{
	"Address",
	"Units",
	"Occupancy (%)",
	"Monthly Rent",
	"Monthly Revenue",
	"Yearly Revenue",
	"Maintenance Costs",
	"Net Income",
}

func exportRow(r model.PropertyPerformance) []interface{} {
	return []interface{}{
		r.Address,
		r.Units,
		r.Occupancy,
		r.MonthlyRent,
		r.MonthlyRevenue,
		r.YearlyRevenue,
		r.MaintenanceCosts,
		r.NetIncome,
	}
}

// WriteCSV writes the report with a header row.
func WriteCSV(w io.Writer, rows []model.PropertyPerformance) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		record := make([]string, 0, len(exportHeader))
		for _, v := range exportRow(r) {
			switch val := v.(type) {
			case string:
				record = append(record, val)
			case int:
				record = append(record, strconv.Itoa(val))
			case float64:
				record = append(record, strconv.FormatFloat(val, 'f', 2, 64))
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %q: %w", r.Address, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the report as a single-sheet workbook with a frozen,
// bold header row.
func WriteXLSX(w io.Writer, rows []model.PropertyPerformance) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return fmt.Errorf("create money style: %w", err)
	}

	header := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(exportHeader))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := exportRow(r)
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if len(rows) > 0 {
		last := strconv.Itoa(len(rows) + 1)
		if err := f.SetCellStyle(sheetName, "D2", lastCol+last, moneyStyle); err != nil {
			return fmt.Errorf("style money columns: %w", err)
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 32); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(sheetName, "B", lastCol, 16); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
