package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicleUnmarshal_Canonical(t *testing.T) {
	raw := `{"id":7,"licensePlate":"ABC-1234","brand":"HINO","model":"FC9JL7Z",
		"year":2019,"mileage":48200,"status":"Available",
		"lastMaintenanceKm":45000,"maintenanceIntervalKm":6000}`

	var v Vehicle
	require.NoError(t, json.Unmarshal([]byte(raw), &v))

	assert.Equal(t, int64(7), v.ID)
	assert.Equal(t, "ABC-1234", v.LicensePlate)
	assert.Equal(t, 2019, v.Year)
	assert.Equal(t, StatusAvailable, v.Status)
	assert.Equal(t, 6000, v.MaintenanceIntervalKm)
}

func TestVehicleUnmarshal_LegacyShape(t *testing.T) {
	// Older backend rows use Spanish field names and status labels; they
	// must normalize to the canonical form at the decode boundary.
	raw := `{"id":3,"placa":"XYZ-9876","brand":"VOLVO","model":"B8R",
		"productionYear":2017,"kilometraje":103000,"status":"ACTIVO",
		"lastMaintenanceKm":95000}`

	var v Vehicle
	require.NoError(t, json.Unmarshal([]byte(raw), &v))

	assert.Equal(t, "XYZ-9876", v.LicensePlate)
	assert.Equal(t, 2017, v.Year)
	assert.Equal(t, 103000.0, v.Mileage)
	assert.Equal(t, StatusAvailable, v.Status)
	assert.Equal(t, DefaultMaintenanceInterval, v.MaintenanceIntervalKm)
}

func TestVehicleUnmarshal_LegacyInactive(t *testing.T) {
	var v Vehicle
	require.NoError(t, json.Unmarshal([]byte(`{"placa":"AAA-0001","status":"INACTIVO"}`), &v))
	assert.Equal(t, StatusMaintenance, v.Status)
}

func TestVehicleUnmarshal_Defaults(t *testing.T) {
	var v Vehicle
	require.NoError(t, json.Unmarshal([]byte(`{"licensePlate":"AAA-0001"}`), &v))

	assert.Equal(t, StatusAvailable, v.Status)
	assert.Equal(t, DefaultMaintenanceInterval, v.MaintenanceIntervalKm)
	assert.Equal(t, 0.0, v.LastMaintenanceKm)
}

func TestMaintenanceRecordPlate(t *testing.T) {
	withRef := MaintenanceRecord{Vehicle: &VehicleRef{ID: 1, LicensePlate: "ABC-1234"}}
	assert.Equal(t, "ABC-1234", withRef.Plate())

	assert.Equal(t, "N/A", MaintenanceRecord{}.Plate())
	assert.Equal(t, "N/A", MaintenanceRecord{Vehicle: &VehicleRef{ID: 1}}.Plate())
}

func TestLoginResultOK(t *testing.T) {
	assert.True(t, LoginResult{Status: "ok", Role: RoleAdmin}.OK())
	assert.False(t, LoginResult{Status: "error"}.OK())
}

func TestRoleIsAdmin(t *testing.T) {
	assert.True(t, RoleAdmin.IsAdmin())
	assert.False(t, Role("USER").IsAdmin())
	assert.False(t, Role("").IsAdmin())
}
