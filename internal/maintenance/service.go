// Package maintenance implements the service-log action: append a record
// to a vehicle's history, then update the vehicle itself. The two writes
// are one logical transaction to the user but are not atomic on the wire,
// so a failure of the second write is surfaced as a distinct partial state.
package maintenance

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/fleetops/fleet-maintenance/internal/api"
	"github.com/fleetops/fleet-maintenance/internal/forms"
	"github.com/fleetops/fleet-maintenance/internal/models"
)

// PartialError reports that the maintenance record was written but the
// follow-up vehicle update failed. The user must re-trigger the update;
// there is no automatic retry.
type PartialError struct {
	Err error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("maintenance recorded but vehicle status not updated: %v", e.Err)
}

func (e *PartialError) Unwrap() error {
	return e.Err
}

// Service performs service-log actions against the backend.
type Service struct {
	client *api.Client
	now    func() time.Time
}

// NewService creates a service-log service.
func NewService(client *api.Client) *Service {
	return &Service{client: client, now: time.Now}
}

// Log validates the entry and performs the two-step write. A preventive
// service resets the cycle baseline to the current mileage; a corrective
// one leaves it untouched. Both return the vehicle to Available.
//
// The returned vehicle reflects the state after a fully successful
// sequence. On *PartialError the history write already happened and the
// caller must inform the user that the process is inconsistent.
func (s *Service) Log(ctx context.Context, vehicle models.Vehicle, entry forms.ServiceForm) (models.Vehicle, error) {
	cost, ferr := forms.ValidateService(entry)
	if ferr != nil {
		return models.Vehicle{}, ferr
	}

	record := models.MaintenanceRecord{
		Date:                 s.now().Format("2006-01-02"),
		Type:                 entry.Type,
		Cost:                 cost,
		Description:          strings.TrimSpace(entry.Description),
		MileageAtMaintenance: vehicle.Mileage,
		Vehicle:              &models.VehicleRef{ID: vehicle.ID},
	}

	if err := s.client.LogMaintenance(ctx, record); err != nil {
		return models.Vehicle{}, err
	}

	updated := vehicle
	if entry.Type == models.TypePreventive {
		updated.LastMaintenanceKm = vehicle.Mileage
	}
	updated.Status = models.StatusAvailable

	saved, err := s.client.SaveVehicle(ctx, updated)
	if err != nil {
		log.WithError(err).WithField("vehicle", vehicle.LicensePlate).
			Error("vehicle update failed after history write")
		return updated, &PartialError{Err: err}
	}

	log.WithFields(log.Fields{
		"vehicle": saved.LicensePlate,
		"type":    entry.Type,
		"cost":    cost,
	}).Info("maintenance logged")
	return saved, nil
}
