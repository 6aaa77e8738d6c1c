package views

import (
	"fmt"
	"strings"

	"github.com/gosuri/uitable"

	"github.com/fleetops/fleet-maintenance/internal/metrics"
	"github.com/fleetops/fleet-maintenance/internal/models"
	"github.com/fleetops/fleet-maintenance/internal/reports"
	"github.com/fleetops/fleet-maintenance/internal/store"
)

func newTable() *uitable.Table {
	t := uitable.New()
	t.MaxColWidth = 40
	t.Wrap = true
	return t
}

// DashboardSummary renders the fleet headline counters.
func DashboardSummary(fleet []store.Annotated) string {
	var available, inShop, overdue, warning int
	for _, a := range fleet {
		if a.Status == models.StatusAvailable {
			available++
		} else {
			inShop++
		}
		switch a.Metrics.StatusLevel {
		case metrics.LevelRed:
			overdue++
		case metrics.LevelYellow:
			warning++
		}
	}

	t := newTable()
	t.AddRow("FLEET", "AVAILABLE", "IN SHOP", "OVERDUE", "DUE SOON")
	t.AddRow(len(fleet), available, inShop, overdue, warning)
	return t.String()
}

// InventoryTable renders the full fleet with cycle status.
func InventoryTable(fleet []store.Annotated) string {
	if len(fleet) == 0 {
		return "No vehicles registered."
	}
	t := newTable()
	t.AddRow("PLATE", "BRAND", "MODEL", "YEAR", "MILEAGE", "STATUS", "CYCLE", "REMAINING")
	for _, a := range fleet {
		t.AddRow(
			a.LicensePlate,
			a.Brand,
			a.Model,
			a.Year,
			fmt.Sprintf("%.0f km", a.Mileage),
			string(a.Status),
			fmt.Sprintf("%s (%.0f%%)", a.Metrics.StatusLevel, a.Metrics.PercentUsed),
			fmt.Sprintf("%.0f km", a.Metrics.Remaining),
		)
	}
	return t.String()
}

// AlertPanel renders the live alert list: RED and YELLOW vehicles, most
// overdue first, with the per-level badge counts in the header.
func AlertPanel(alerts []store.Annotated, red, yellow int) string {
	if len(alerts) == 0 {
		return "All clear: no pending maintenance."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "ALERTS  red=%d yellow=%d\n", red, yellow)

	t := newTable()
	t.AddRow("PLATE", "LEVEL", "REMAINING", "DUE AT")
	for _, a := range alerts {
		t.AddRow(
			a.LicensePlate,
			string(a.Metrics.StatusLevel),
			fmt.Sprintf("%.0f km", a.Metrics.Remaining),
			fmt.Sprintf("%.0f km", a.Metrics.DueAt),
		)
	}
	b.WriteString(t.String())
	return b.String()
}

// HistoryTable renders a maintenance history. The plate column is omitted
// for single-vehicle views.
func HistoryTable(records []models.MaintenanceRecord, showPlate bool) string {
	if len(records) == 0 {
		return "No maintenance records in this period."
	}
	t := newTable()
	if showPlate {
		t.AddRow("DATE", "PLATE", "TYPE", "MILEAGE", "DESCRIPTION", "COST")
	} else {
		t.AddRow("DATE", "TYPE", "MILEAGE", "DESCRIPTION", "COST")
	}
	for _, r := range records {
		if showPlate {
			t.AddRow(r.Date, r.Plate(), string(r.Type), fmt.Sprintf("%.0f km", r.MileageAtMaintenance), r.Description, fmt.Sprintf("$%.2f", r.Cost))
		} else {
			t.AddRow(r.Date, string(r.Type), fmt.Sprintf("%.0f km", r.MileageAtMaintenance), r.Description, fmt.Sprintf("$%.2f", r.Cost))
		}
	}
	return t.String()
}

// MonthlyTable renders the monthly cost totals with the grand average.
func MonthlyTable(summary reports.MonthlySummary) string {
	if len(summary.Months) == 0 {
		return "No financial data recorded."
	}
	t := newTable()
	t.AddRow("MONTH", "TOTAL", "TOP VEHICLE", "TOP COST")
	for _, m := range summary.Months {
		t.AddRow(m.Month, fmt.Sprintf("$%.2f", m.Total), m.TopVehicle, fmt.Sprintf("$%.2f", m.TopCost))
	}
	t.AddRow("AVG", fmt.Sprintf("$%.2f", summary.Average), "", "")
	return t.String()
}

// TypeTable renders the maintenance-type breakdown.
func TypeTable(stats []reports.TypeStat) string {
	if len(stats) == 0 {
		return "No maintenance recorded."
	}
	t := newTable()
	t.AddRow("TYPE", "COUNT", "AVG COST")
	for _, s := range stats {
		t.AddRow(string(s.Type), s.Count, fmt.Sprintf("$%.2f", s.AverageCost))
	}
	return t.String()
}

// VehicleCard renders the public lookup result for one vehicle.
func VehicleCard(v models.Vehicle, m metrics.Metrics) string {
	t := newTable()
	t.AddRow("PLATE:", v.LicensePlate)
	t.AddRow("BRAND:", v.Brand)
	t.AddRow("MODEL:", v.Model)
	t.AddRow("YEAR:", v.Year)
	t.AddRow("MILEAGE:", fmt.Sprintf("%.0f km", v.Mileage))
	t.AddRow("STATUS:", string(v.Status))
	t.AddRow("CYCLE:", fmt.Sprintf("%s (%.0f%% used)", m.StatusLevel, m.PercentUsed))
	t.AddRow("NEXT SERVICE:", fmt.Sprintf("%.0f km (%.0f km remaining)", m.DueAt, m.Remaining))
	return t.String()
}
