package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fleetops/fleet-maintenance/internal/models"
)

func vehicle(mileage, lastKm float64, interval int) models.Vehicle {
	return models.Vehicle{
		LicensePlate:          "ABC-1234",
		Mileage:               mileage,
		LastMaintenanceKm:     lastKm,
		MaintenanceIntervalKm: interval,
	}
}

func TestCompute_DueAtBoundary(t *testing.T) {
	m := Compute(vehicle(5000, 0, 5000))

	assert.Equal(t, LevelRed, m.StatusLevel)
	assert.Equal(t, 0.0, m.Remaining)
	assert.Equal(t, 100.0, m.PercentUsed)
	assert.Equal(t, 5000.0, m.DueAt)
}

func TestCompute_FreshCycle(t *testing.T) {
	m := Compute(vehicle(45000, 45000, 5000))

	assert.Equal(t, LevelGreen, m.StatusLevel)
	assert.Equal(t, 0.0, m.PercentUsed)
	assert.Equal(t, 5000.0, m.Remaining)
}

func TestCompute_WarningBand(t *testing.T) {
	// Anything in [70%, 100%) of the interval is YELLOW.
	cases := []struct {
		name    string
		mileage float64
		level   StatusLevel
	}{
		{"just below warning", 3499, LevelGreen},
		{"warning threshold", 3500, LevelYellow},
		{"inside band", 4200, LevelYellow},
		{"just below due", 4999, LevelYellow},
		{"due", 5000, LevelRed},
		{"overdue", 6200, LevelRed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := Compute(vehicle(tc.mileage, 0, 5000))
			assert.Equal(t, tc.level, m.StatusLevel)
		})
	}
}

func TestCompute_OverdueRemainingIsNegative(t *testing.T) {
	m := Compute(vehicle(12000, 5000, 5000))

	assert.Equal(t, LevelRed, m.StatusLevel)
	assert.Equal(t, -2000.0, m.Remaining)
	assert.Equal(t, 100.0, m.PercentUsed) // clamped
	assert.True(t, m.Overdue())
}

func TestCompute_Defaults(t *testing.T) {
	// Partially populated records fall back to baseline 0 and the default
	// interval so the function stays total.
	m := Compute(models.Vehicle{Mileage: 2000})

	assert.Equal(t, 5000.0, m.DueAt)
	assert.Equal(t, 40.0, m.PercentUsed)
	assert.Equal(t, LevelGreen, m.StatusLevel)
}

func TestCompute_BadInputNeverNegativePercent(t *testing.T) {
	// Baseline ahead of the odometer is bad input; traveled clamps to 0.
	m := Compute(vehicle(1000, 4000, 5000))

	assert.Equal(t, 0.0, m.PercentUsed)
	assert.Equal(t, 8000.0, m.Remaining)
	assert.GreaterOrEqual(t, m.PercentUsed, 0.0)
}

func TestCompute_Pure(t *testing.T) {
	v := vehicle(4300, 1000, 5000)

	first := Compute(v)
	second := Compute(v)

	assert.Equal(t, first, second)
	assert.Equal(t, 4300.0, v.Mileage) // input untouched
}

func TestCompute_ColorsFollowLevel(t *testing.T) {
	assert.Equal(t, "#10B981", Compute(vehicle(0, 0, 5000)).StatusColor)
	assert.Equal(t, "#F59E0B", Compute(vehicle(3500, 0, 5000)).StatusColor)
	assert.Equal(t, "#EF4444", Compute(vehicle(5000, 0, 5000)).StatusColor)
}
