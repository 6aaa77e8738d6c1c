package maintenance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/fleet-maintenance/internal/api"
	"github.com/fleetops/fleet-maintenance/internal/forms"
	"github.com/fleetops/fleet-maintenance/internal/models"
)

// logBackend records the two writes of a service-log sequence and can be
// told to fail the vehicle update.
type logBackend struct {
	mu            sync.Mutex
	records       []models.MaintenanceRecord
	savedVehicles []models.Vehicle
	failSave      bool
}

func (b *logBackend) handler(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch r.URL.Path {
	case "/api/vehicles/maintenances":
		var rec models.MaintenanceRecord
		json.NewDecoder(r.Body).Decode(&rec)
		b.records = append(b.records, rec)
		w.WriteHeader(http.StatusCreated)
	case "/api/vehicles":
		if b.failSave {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		var v models.Vehicle
		json.NewDecoder(r.Body).Decode(&v)
		b.savedVehicles = append(b.savedVehicles, v)
		json.NewEncoder(w).Encode(v)
	default:
		http.NotFound(w, r)
	}
}

func serviceWithBackend(t *testing.T) (*Service, *logBackend) {
	t.Helper()
	backend := &logBackend{}
	server := httptest.NewServer(http.HandlerFunc(backend.handler))
	t.Cleanup(server.Close)

	svc := NewService(api.New(api.Config{BaseURL: server.URL + "/api"}))
	svc.now = func() time.Time {
		return time.Date(2026, time.August, 28, 9, 30, 0, 0, time.UTC)
	}
	return svc, backend
}

func serviceVehicle() models.Vehicle {
	return models.Vehicle{
		ID:                    3,
		LicensePlate:          "ABC-1234",
		Mileage:               48200,
		Status:                models.StatusMaintenance,
		LastMaintenanceKm:     45000,
		MaintenanceIntervalKm: 5000,
	}
}

func TestLog_PreventiveResetsBaseline(t *testing.T) {
	svc, backend := serviceWithBackend(t)

	saved, err := svc.Log(context.Background(), serviceVehicle(), forms.ServiceForm{
		Type:        models.TypePreventive,
		Cost:        "180",
		Description: "  Oil and filter change  ",
	})
	require.NoError(t, err)

	require.Len(t, backend.records, 1)
	rec := backend.records[0]
	assert.Equal(t, "2026-08-28", rec.Date)
	assert.Equal(t, 180.0, rec.Cost)
	assert.Equal(t, "Oil and filter change", rec.Description)
	assert.Equal(t, 48200.0, rec.MileageAtMaintenance)
	require.NotNil(t, rec.Vehicle)
	assert.Equal(t, int64(3), rec.Vehicle.ID)

	assert.Equal(t, 48200.0, saved.LastMaintenanceKm)
	assert.Equal(t, models.StatusAvailable, saved.Status)
}

func TestLog_CorrectiveKeepsBaseline(t *testing.T) {
	svc, backend := serviceWithBackend(t)

	saved, err := svc.Log(context.Background(), serviceVehicle(), forms.ServiceForm{
		Type:        models.TypeCorrective,
		Cost:        "420",
		Description: "Brake pad replacement",
	})
	require.NoError(t, err)

	assert.Equal(t, 45000.0, saved.LastMaintenanceKm, "corrective service must not reset the cycle")
	assert.Equal(t, models.StatusAvailable, saved.Status)
	require.Len(t, backend.savedVehicles, 1)
}

func TestLog_ValidationFailureMakesNoWrites(t *testing.T) {
	svc, backend := serviceWithBackend(t)

	_, err := svc.Log(context.Background(), serviceVehicle(), forms.ServiceForm{
		Type:        models.TypePreventive,
		Cost:        "",
		Description: "x",
	})

	var fieldErr *forms.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, forms.FieldCost, fieldErr.Field)
	assert.Empty(t, backend.records)
	assert.Empty(t, backend.savedVehicles)
}

func TestLog_SecondWriteFailureIsPartial(t *testing.T) {
	svc, backend := serviceWithBackend(t)
	backend.failSave = true

	updated, err := svc.Log(context.Background(), serviceVehicle(), forms.ServiceForm{
		Type:        models.TypePreventive,
		Cost:        "180",
		Description: "Oil change",
	})

	var partial *PartialError
	require.ErrorAs(t, err, &partial)
	assert.NotNil(t, partial.Unwrap())

	// The history write already happened; the returned vehicle shows the
	// state the update was meant to persist.
	assert.Len(t, backend.records, 1)
	assert.Equal(t, 48200.0, updated.LastMaintenanceKm)
	assert.Equal(t, models.StatusAvailable, updated.Status)
}
