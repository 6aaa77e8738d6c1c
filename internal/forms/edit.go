package forms

import (
	"fmt"

	"github.com/fleetops/fleet-maintenance/internal/models"
)

// mileageJumpFactor bounds how far an edited odometer reading may advance:
// more than two full service intervals at once is treated as a typo.
const mileageJumpFactor = 2

// EditForm carries the fields the admin modal may change on an existing
// vehicle. Everything else is immutable after registration.
type EditForm struct {
	Mileage  float64
	Status   models.VehicleStatus
	Interval int
}

// ValidateEditMileage enforces the edit-mode odometer rule against the
// value stored in the backend: no backward readings, no implausible jumps.
// The returned error names which bound was violated.
func ValidateEditMileage(original models.Vehicle, form EditForm) *FieldError {
	interval := float64(form.Interval)
	if interval <= 0 {
		interval = models.DefaultMaintenanceInterval
	}

	if form.Mileage < 0 || form.Mileage < original.Mileage {
		return &FieldError{
			Field: FieldMileage,
			Message: fmt.Sprintf("mileage cannot go backward (current reading is %.0f km)",
				original.Mileage),
		}
	}

	max := original.Mileage + mileageJumpFactor*interval
	if form.Mileage > max {
		return &FieldError{
			Field: FieldMileage,
			Message: fmt.Sprintf("mileage jump too large (maximum allowed is %.0f km)",
				max),
		}
	}

	return nil
}

// HasChanges reports whether the edit form differs from the loaded vehicle.
// A save with no changes is rejected upstream with a warning, not an error.
func HasChanges(original models.Vehicle, form EditForm) bool {
	origStatus := original.Status
	if origStatus == "" {
		origStatus = models.StatusAvailable
	}
	origInterval := original.MaintenanceIntervalKm
	if origInterval == 0 {
		origInterval = models.DefaultMaintenanceInterval
	}

	return form.Mileage != original.Mileage ||
		form.Status != origStatus ||
		form.Interval != origInterval
}

// ApplyEdit returns a copy of the vehicle with the edited fields applied.
// The cycle baseline is untouched; only the service-log action may move it.
func ApplyEdit(original models.Vehicle, form EditForm) models.Vehicle {
	updated := original
	updated.Mileage = form.Mileage
	updated.Status = form.Status
	updated.MaintenanceIntervalKm = form.Interval
	return updated
}
