package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kdsprimark-ship-it/shipdesk/internal/domain"
)

const sheetName = "Master Sheet"

var headers = []any{
	"Date", "Invoice No", "Shipper", "Buyer", "Depot",
	"Doc", "Ctn", "Ton", "Truck Unload", "Con", "Others",
	"Total Taka", "Employee",
}

// WriteWorkbook renders sheet entries as an XLSX workbook with a bold
// header row and a grand-total row at the bottom.
func WriteWorkbook(w io.Writer, entries []domain.IndianEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetRowStyle(sheetName, 1, 1, boldStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	var total float64
	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		row := []any{
			e.Date, e.InvoiceNo, e.ShipperName, e.BuyerName, e.DepotName,
			e.Doc, e.Ctn, e.Ton, e.TruckUnload, e.Con, e.Others,
			e.TotalTaka, e.EmployeeName,
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
		total += e.TotalTaka
	}

	totalCell, err := excelize.CoordinatesToCellName(1, len(entries)+2)
	if err != nil {
		return err
	}
	totalRow := []any{"Total", "", "", "", "", "", "", "", "", "", "", total, ""}
	if err := f.SetSheetRow(sheetName, totalCell, &totalRow); err != nil {
		return fmt.Errorf("writing total row: %w", err)
	}
	if err := f.SetRowStyle(sheetName, len(entries)+2, len(entries)+2, boldStyle); err != nil {
		return fmt.Errorf("styling total row: %w", err)
	}

	if err := f.SetColWidth(sheetName, "A", "M", 14); err != nil {
		return fmt.Errorf("setting column widths: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// BuildFilename returns the suggested download name for a workbook taken now.
func BuildFilename() string {
	return fmt.Sprintf("master_sheet_%s.xlsx", time.Now().Format("2006-01-02"))
}
