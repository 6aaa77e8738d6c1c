package models

import (
	"encoding/json"
	"time"
)

// VehicleStatus is the operational flag of a vehicle. It is not a lifecycle
// state machine: the backend only distinguishes available units from units
// pulled into the workshop.
type VehicleStatus string

const (
	StatusAvailable   VehicleStatus = "Available"
	StatusMaintenance VehicleStatus = "Maintenance"
)

// DefaultMaintenanceInterval is applied when a record arrives without a
// configured service interval, so downstream computations stay total.
const DefaultMaintenanceInterval = 5000

// Vehicle represents a fleet vehicle as held by the backend.
type Vehicle struct {
	ID                    int64         `json:"id,omitempty"`
	LicensePlate          string        `json:"licensePlate"`
	Brand                 string        `json:"brand"`
	Model                 string        `json:"model"`
	Year                  int           `json:"year"`
	Mileage               float64       `json:"mileage"`
	Status                VehicleStatus `json:"status"`
	LastMaintenanceKm     float64       `json:"lastMaintenanceKm"`
	MaintenanceIntervalKm int           `json:"maintenanceIntervalKm"`
	CreatedAt             *time.Time    `json:"createdAt,omitempty"`
}

// rawVehicle accepts every external shape the backend has historically
// produced. Older rows use Spanish field names and status labels; the
// normalization to the canonical Vehicle happens here, once, instead of at
// every read site.
type rawVehicle struct {
	ID                    int64      `json:"id"`
	LicensePlate          string     `json:"licensePlate"`
	Placa                 string     `json:"placa"`
	Brand                 string     `json:"brand"`
	Model                 string     `json:"model"`
	Year                  int        `json:"year"`
	ProductionYear        int        `json:"productionYear"`
	Mileage               float64    `json:"mileage"`
	Kilometraje           float64    `json:"kilometraje"`
	Status                string     `json:"status"`
	LastMaintenanceKm     float64    `json:"lastMaintenanceKm"`
	MaintenanceIntervalKm int        `json:"maintenanceIntervalKm"`
	CreatedAt             *time.Time `json:"createdAt"`
}

// legacyStatus maps the labels used by older backend rows to the canonical
// operational flag.
var legacyStatus = map[string]VehicleStatus{
	"ACTIVO":   StatusAvailable,
	"INACTIVO": StatusMaintenance,
}

// UnmarshalJSON decodes a vehicle from any accepted external shape and
// normalizes it to the canonical form, applying the read defaults
// (interval 5000, status Available).
func (v *Vehicle) UnmarshalJSON(data []byte) error {
	var raw rawVehicle
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	v.ID = raw.ID
	v.Brand = raw.Brand
	v.Model = raw.Model
	v.LastMaintenanceKm = raw.LastMaintenanceKm
	v.CreatedAt = raw.CreatedAt

	v.LicensePlate = raw.LicensePlate
	if v.LicensePlate == "" {
		v.LicensePlate = raw.Placa
	}

	v.Year = raw.Year
	if v.Year == 0 {
		v.Year = raw.ProductionYear
	}

	v.Mileage = raw.Mileage
	if v.Mileage == 0 {
		v.Mileage = raw.Kilometraje
	}

	if mapped, ok := legacyStatus[raw.Status]; ok {
		v.Status = mapped
	} else if raw.Status != "" {
		v.Status = VehicleStatus(raw.Status)
	} else {
		v.Status = StatusAvailable
	}

	v.MaintenanceIntervalKm = raw.MaintenanceIntervalKm
	if v.MaintenanceIntervalKm == 0 {
		v.MaintenanceIntervalKm = DefaultMaintenanceInterval
	}

	return nil
}
