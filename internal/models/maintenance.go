package models

// MaintenanceType classifies a service entry. Preventive work resets the
// mileage cycle baseline; corrective work does not.
type MaintenanceType string

const (
	TypePreventive MaintenanceType = "Preventivo"
	TypeCorrective MaintenanceType = "Correctivo"
)

// VehicleRef is the back-reference a maintenance record carries: the owning
// vehicle id plus the plate denormalized for display and export.
type VehicleRef struct {
	ID           int64  `json:"id"`
	LicensePlate string `json:"licensePlate,omitempty"`
}

// MaintenanceRecord represents one service entry in a vehicle's history.
// Records are append-only from this client: created via the service-log
// action, never edited or deleted.
type MaintenanceRecord struct {
	ID                   int64           `json:"id,omitempty"`
	Date                 string          `json:"date"` // ISO calendar date, YYYY-MM-DD
	Type                 MaintenanceType `json:"type"`
	Cost                 float64         `json:"cost"`
	Description          string          `json:"description"`
	MileageAtMaintenance float64         `json:"mileageAtMaintenance"`
	Vehicle              *VehicleRef     `json:"vehicle,omitempty"`
}

// Plate returns the denormalized plate of the owning vehicle, or "N/A" when
// the back-reference is missing.
func (r MaintenanceRecord) Plate() string {
	if r.Vehicle == nil || r.Vehicle.LicensePlate == "" {
		return "N/A"
	}
	return r.Vehicle.LicensePlate
}
