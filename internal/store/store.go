// Package store caches the last-fetched vehicle list. Reload replaces the
// list wholesale; between reloads every reader sees the same snapshot.
// This cache plus the current session is the only shared state the client
// keeps.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/fleetops/fleet-maintenance/internal/api"
	"github.com/fleetops/fleet-maintenance/internal/metrics"
	"github.com/fleetops/fleet-maintenance/internal/models"
)

// Annotated pairs a vehicle with its derived cycle metrics.
type Annotated struct {
	models.Vehicle
	Metrics metrics.Metrics
}

// VehicleStore holds the client-side copy of the fleet.
type VehicleStore struct {
	client *api.Client

	mu       sync.RWMutex
	vehicles []models.Vehicle
	loadedAt time.Time
}

// New creates an empty store backed by the given API client.
func New(client *api.Client) *VehicleStore {
	return &VehicleStore{client: client}
}

// Reload re-fetches the fleet and replaces the cached list. There is no
// incremental merge; a failed reload leaves the previous snapshot intact.
// Reloads are idempotent and safe to re-issue on every navigation.
func (s *VehicleStore) Reload(ctx context.Context) error {
	vehicles, err := s.client.ListVehicles(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.vehicles = vehicles
	s.loadedAt = time.Now()
	s.mu.Unlock()

	log.WithField("count", len(vehicles)).Debug("fleet reloaded")
	return nil
}

// Vehicles returns a copy of the current snapshot.
func (s *VehicleStore) Vehicles() []models.Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Vehicle, len(s.vehicles))
	copy(out, s.vehicles)
	return out
}

// Get looks a vehicle up by id in the current snapshot.
func (s *VehicleStore) Get(id int64) (models.Vehicle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return models.Vehicle{}, false
}

// Annotated returns the snapshot with cycle metrics attached, in list order.
func (s *VehicleStore) Annotated() []Annotated {
	vehicles := s.Vehicles()
	out := make([]Annotated, len(vehicles))
	for i, v := range vehicles {
		out[i] = Annotated{Vehicle: v, Metrics: metrics.Compute(v)}
	}
	return out
}

// Alerts returns the vehicles whose cycle is RED or YELLOW, most overdue
// first (ascending by remaining km).
func (s *VehicleStore) Alerts() []Annotated {
	var alerts []Annotated
	for _, a := range s.Annotated() {
		if a.Metrics.StatusLevel != metrics.LevelGreen {
			alerts = append(alerts, a)
		}
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Metrics.Remaining < alerts[j].Metrics.Remaining
	})
	return alerts
}

// AlertCounts returns the per-level badge counts for the alert panel.
func (s *VehicleStore) AlertCounts() (red, yellow int) {
	for _, a := range s.Alerts() {
		switch a.Metrics.StatusLevel {
		case metrics.LevelRed:
			red++
		case metrics.LevelYellow:
			yellow++
		}
	}
	return red, yellow
}
