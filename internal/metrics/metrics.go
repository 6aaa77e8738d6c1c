// Package metrics derives the maintenance-cycle status of a vehicle from
// its odometer counters. Everything here is pure: the same vehicle always
// yields the same metrics, and nothing is mutated.
package metrics

import "github.com/fleetops/fleet-maintenance/internal/models"

// StatusLevel is the traffic-light classification of a maintenance cycle.
type StatusLevel string

const (
	LevelGreen  StatusLevel = "GREEN"
	LevelYellow StatusLevel = "YELLOW"
	LevelRed    StatusLevel = "RED"
)

// Theme colors carried alongside the level so any front end renders the
// same palette.
const (
	colorGreen  = "#10B981"
	colorYellow = "#F59E0B"
	colorRed    = "#EF4444"
)

// Thresholds of the traffic light, in percent of the interval used.
const (
	warnPercent = 70
	duePercent  = 100
)

// Metrics is the derived cycle status of one vehicle.
type Metrics struct {
	DueAt       float64     // odometer reading at which service is due
	Remaining   float64     // km left before due; negative means overdue
	PercentUsed float64     // share of the interval consumed, clamped to [0,100]
	StatusLevel StatusLevel
	StatusColor string
}

// Overdue reports whether the vehicle has crossed its service threshold.
func (m Metrics) Overdue() bool {
	return m.StatusLevel == LevelRed
}

// Compute derives the cycle metrics for a vehicle. Missing counters fall
// back to a zero baseline and the default interval so the function stays
// total over partially populated records. Traveled distance is clamped at
// zero to keep bad input from producing negative display artifacts.
func Compute(v models.Vehicle) Metrics {
	lastKm := v.LastMaintenanceKm
	if lastKm < 0 {
		lastKm = 0
	}
	interval := float64(v.MaintenanceIntervalKm)
	if interval <= 0 {
		interval = models.DefaultMaintenanceInterval
	}

	traveled := v.Mileage - lastKm
	if traveled < 0 {
		traveled = 0
	}

	dueAt := lastKm + interval
	remaining := dueAt - v.Mileage

	percent := traveled / interval * 100
	if percent > 100 {
		percent = 100
	}
	if percent < 0 {
		percent = 0
	}

	m := Metrics{
		DueAt:       dueAt,
		Remaining:   remaining,
		PercentUsed: percent,
		StatusLevel: LevelGreen,
		StatusColor: colorGreen,
	}

	switch {
	case percent >= duePercent || remaining <= 0:
		m.StatusLevel = LevelRed
		m.StatusColor = colorRed
	case percent >= warnPercent:
		m.StatusLevel = LevelYellow
		m.StatusColor = colorYellow
	}

	return m
}
