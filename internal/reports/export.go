package reports

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/fleetops/fleet-maintenance/internal/models"
)

// ErrNoData signals an export of an empty record set. No file is written;
// the caller shows a "no data" message instead of an error.
var ErrNoData = errors.New("no data to export")

// TotalLabel marks the trailing synthetic row of every export.
const TotalLabel = "TOTAL GENERAL"

const exportSheet = "Reporte"

// Row is one flattened export line.
type Row struct {
	Date        string
	Plate       string
	Type        models.MaintenanceType
	Mileage     float64
	Description string
	Cost        float64
}

// ExportRows flattens records into export rows and appends the grand-total
// row.
func ExportRows(records []models.MaintenanceRecord) []Row {
	rows := make([]Row, 0, len(records)+1)
	sum := 0.0
	for _, r := range records {
		rows = append(rows, Row{
			Date:        r.Date,
			Plate:       r.Plate(),
			Type:        r.Type,
			Mileage:     r.MileageAtMaintenance,
			Description: r.Description,
			Cost:        r.Cost,
		})
		sum += r.Cost
	}
	rows = append(rows, Row{Date: TotalLabel, Cost: sum})
	return rows
}

// GlobalReportName is the file name (without extension) of a global report
// for a YYYY-MM period.
func GlobalReportName(period string) string {
	return "Reporte_Global_" + period
}

// HistoryReportName is the file name (without extension) of a single
// vehicle's history export.
func HistoryReportName(plate string) string {
	return "Historial_" + plate
}

// WriteExcel serializes the records into an .xlsx file in dir and returns
// the written path. Exporting an empty set writes nothing and returns
// ErrNoData.
func WriteExcel(records []models.MaintenanceRecord, name, dir string) (string, error) {
	if len(records) == 0 {
		return "", ErrNoData
	}
	rows := ExportRows(records)

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", exportSheet)

	headers := []string{"Fecha", "Placa", "Tipo", "Kilometraje", "Detalle", "Costo"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(exportSheet, cell, h)
	}

	for i, row := range rows {
		line := i + 2
		f.SetCellValue(exportSheet, fmt.Sprintf("A%d", line), row.Date)
		if row.Date == TotalLabel {
			f.SetCellValue(exportSheet, fmt.Sprintf("F%d", line), row.Cost)
			continue
		}
		f.SetCellValue(exportSheet, fmt.Sprintf("B%d", line), row.Plate)
		f.SetCellValue(exportSheet, fmt.Sprintf("C%d", line), string(row.Type))
		f.SetCellValue(exportSheet, fmt.Sprintf("D%d", line), row.Mileage)
		f.SetCellValue(exportSheet, fmt.Sprintf("E%d", line), row.Description)
		f.SetCellValue(exportSheet, fmt.Sprintf("F%d", line), row.Cost)
	}

	f.SetColWidth(exportSheet, "A", "A", 14)
	f.SetColWidth(exportSheet, "B", "C", 12)
	f.SetColWidth(exportSheet, "D", "D", 14)
	f.SetColWidth(exportSheet, "E", "E", 40)
	f.SetColWidth(exportSheet, "F", "F", 12)

	path := filepath.Join(dir, name+".xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
