// Package reports aggregates maintenance history into the cost views of
// the dashboard and flattens filtered history into spreadsheet exports.
package reports

import (
	"sort"
	"strings"
	"time"

	"github.com/fleetops/fleet-maintenance/internal/models"
)

// MonthlyTotal is the cost summary of one calendar month. TopVehicle is the
// plate of the single highest-cost record in the month.
type MonthlyTotal struct {
	Month      string // fixed-locale label, e.g. "Jan"
	Total      float64
	TopVehicle string
	TopCost    float64
}

// MonthlySummary is the monthly-totals view. Average is the grand average:
// sum of monthly totals divided by the number of distinct months present,
// not a per-record average.
type MonthlySummary struct {
	Months  []MonthlyTotal
	Average float64
}

// Monthly groups records by calendar month of their date and sums costs.
// Records whose date does not parse are skipped. Months are returned in
// calendar order.
func Monthly(records []models.MaintenanceRecord) MonthlySummary {
	type bucket struct {
		month time.Month
		total MonthlyTotal
	}
	buckets := make(map[time.Month]*bucket)

	for _, r := range records {
		date, err := time.Parse("2006-01-02", r.Date)
		if err != nil {
			continue
		}
		month := date.Month()
		b, ok := buckets[month]
		if !ok {
			b = &bucket{month: month, total: MonthlyTotal{
				Month:      month.String()[:3],
				TopVehicle: "N/A",
			}}
			buckets[month] = b
		}
		b.total.Total += r.Cost
		if r.Cost > b.total.TopCost {
			b.total.TopCost = r.Cost
			b.total.TopVehicle = r.Plate()
		}
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].month < ordered[j].month })

	summary := MonthlySummary{}
	sum := 0.0
	for _, b := range ordered {
		summary.Months = append(summary.Months, b.total)
		sum += b.total.Total
	}
	if len(summary.Months) > 0 {
		summary.Average = sum / float64(len(summary.Months))
	}
	return summary
}

// TypeStat is the count and average cost of one maintenance category.
type TypeStat struct {
	Type        models.MaintenanceType
	Count       int
	AverageCost float64
}

// TypeBreakdown summarizes records over the fixed categories. Categories
// with zero occurrences are omitted entirely.
func TypeBreakdown(records []models.MaintenanceRecord) []TypeStat {
	order := []models.MaintenanceType{models.TypePreventive, models.TypeCorrective}
	totals := make(map[models.MaintenanceType]*TypeStat)

	for _, r := range records {
		valid := false
		for _, t := range order {
			if r.Type == t {
				valid = true
				break
			}
		}
		if !valid {
			continue
		}
		stat, ok := totals[r.Type]
		if !ok {
			stat = &TypeStat{Type: r.Type}
			totals[r.Type] = stat
		}
		stat.Count++
		stat.AverageCost += r.Cost // running sum; divided below
	}

	var out []TypeStat
	for _, t := range order {
		if stat, ok := totals[t]; ok && stat.Count > 0 {
			stat.AverageCost /= float64(stat.Count)
			out = append(out, *stat)
		}
	}
	return out
}

// FilterPeriod keeps the records whose date starts with the YYYY-MM
// period selector.
func FilterPeriod(records []models.MaintenanceRecord, period string) []models.MaintenanceRecord {
	var out []models.MaintenanceRecord
	for _, r := range records {
		if r.Date != "" && strings.HasPrefix(r.Date, period) {
			out = append(out, r)
		}
	}
	return out
}

// Total sums the cost over a record set.
func Total(records []models.MaintenanceRecord) float64 {
	sum := 0.0
	for _, r := range records {
		sum += r.Cost
	}
	return sum
}

// CurrentPeriod returns the YYYY-MM selector for the given time, the
// default of the reports view.
func CurrentPeriod(now time.Time) string {
	return now.Format("2006-01")
}
