package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fleetops/fleet-maintenance/internal/models"
)

func editOriginal() models.Vehicle {
	return models.Vehicle{
		ID:                    1,
		LicensePlate:          "ABC-1234",
		Mileage:               10000,
		Status:                models.StatusAvailable,
		MaintenanceIntervalKm: 5000,
	}
}

func TestValidateEditMileage_RejectsBackward(t *testing.T) {
	err := ValidateEditMileage(editOriginal(), EditForm{Mileage: 9000, Interval: 5000})

	assert.NotNil(t, err)
	assert.Equal(t, FieldMileage, err.Field)
	assert.Equal(t, "mileage cannot go backward (current reading is 10000 km)", err.Message)
}

func TestValidateEditMileage_RejectsImplausibleJump(t *testing.T) {
	// More than two intervals past the stored reading is a typo.
	err := ValidateEditMileage(editOriginal(), EditForm{Mileage: 20001, Interval: 5000})

	assert.NotNil(t, err)
	assert.Equal(t, "mileage jump too large (maximum allowed is 20000 km)", err.Message)
}

func TestValidateEditMileage_AcceptsBoundsInclusive(t *testing.T) {
	assert.Nil(t, ValidateEditMileage(editOriginal(), EditForm{Mileage: 10000, Interval: 5000}))
	assert.Nil(t, ValidateEditMileage(editOriginal(), EditForm{Mileage: 20000, Interval: 5000}))
	assert.Nil(t, ValidateEditMileage(editOriginal(), EditForm{Mileage: 12500, Interval: 5000}))
}

func TestValidateEditMileage_ZeroIntervalUsesDefault(t *testing.T) {
	// Default interval 5000 gives a 2*5000 window.
	assert.Nil(t, ValidateEditMileage(editOriginal(), EditForm{Mileage: 20000}))
	assert.NotNil(t, ValidateEditMileage(editOriginal(), EditForm{Mileage: 20001}))
}

func TestHasChanges(t *testing.T) {
	original := editOriginal()
	unchanged := EditForm{Mileage: 10000, Status: models.StatusAvailable, Interval: 5000}

	assert.False(t, HasChanges(original, unchanged))
	assert.True(t, HasChanges(original, EditForm{Mileage: 10500, Status: models.StatusAvailable, Interval: 5000}))
	assert.True(t, HasChanges(original, EditForm{Mileage: 10000, Status: models.StatusMaintenance, Interval: 5000}))
	assert.True(t, HasChanges(original, EditForm{Mileage: 10000, Status: models.StatusAvailable, Interval: 6000}))
}

func TestHasChanges_NormalizesDefaults(t *testing.T) {
	// A record with missing status and interval compares against the
	// defaults, not the zero values.
	original := models.Vehicle{Mileage: 10000}
	form := EditForm{Mileage: 10000, Status: models.StatusAvailable, Interval: models.DefaultMaintenanceInterval}

	assert.False(t, HasChanges(original, form))
}

func TestApplyEdit(t *testing.T) {
	original := editOriginal()
	original.LastMaintenanceKm = 8000

	updated := ApplyEdit(original, EditForm{Mileage: 11000, Status: models.StatusMaintenance, Interval: 6000})

	assert.Equal(t, 11000.0, updated.Mileage)
	assert.Equal(t, models.StatusMaintenance, updated.Status)
	assert.Equal(t, 6000, updated.MaintenanceIntervalKm)
	assert.Equal(t, 8000.0, updated.LastMaintenanceKm) // baseline untouched
	assert.Equal(t, 10000.0, original.Mileage)         // input untouched
}
