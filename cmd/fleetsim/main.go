// fleetsim is an in-memory stand-in for the fleet backend, exposing the
// REST surface fleetdash consumes. It exists for local development and
// demos; nothing is persisted.
package main

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/fleetops/fleet-maintenance/internal/models"
)

type simulator struct {
	mu       sync.Mutex
	nextID   int64
	vehicles map[int64]models.Vehicle
	history  []models.MaintenanceRecord
	users    map[string]simUser
}

type simUser struct {
	password string
	role     models.Role
}

func newSimulator() *simulator {
	s := &simulator{
		nextID:   1,
		vehicles: make(map[int64]models.Vehicle),
		users: map[string]simUser{
			"admin":    {password: "admin123", role: models.RoleAdmin},
			"consulta": {password: "consulta1", role: "USER"},
		},
	}
	s.seed()
	return s
}

func (s *simulator) seed() {
	seedVehicles := []models.Vehicle{
		{LicensePlate: "PBA-1234", Brand: "HINO", Model: "FC9JL7Z", Year: 2019, Mileage: 48200, Status: models.StatusAvailable, LastMaintenanceKm: 45000, MaintenanceIntervalKm: 5000},
		{LicensePlate: "PCD-5678", Brand: "MERCEDES", Model: "O500", Year: 2021, Mileage: 61500, Status: models.StatusAvailable, LastMaintenanceKm: 55000, MaintenanceIntervalKm: 6000},
		{LicensePlate: "PEF-9012", Brand: "VOLVO", Model: "B8R", Year: 2017, Mileage: 103000, Status: models.StatusMaintenance, LastMaintenanceKm: 95000, MaintenanceIntervalKm: 8000},
	}
	for _, v := range seedVehicles {
		v.ID = s.nextID
		s.nextID++
		s.vehicles[v.ID] = v
	}
	s.history = []models.MaintenanceRecord{
		{ID: 1, Date: "2026-06-10", Type: models.TypePreventive, Cost: 180, Description: "Oil and filter change", MileageAtMaintenance: 45000, Vehicle: &models.VehicleRef{ID: 1, LicensePlate: "PBA-1234"}},
		{ID: 2, Date: "2026-07-02", Type: models.TypeCorrective, Cost: 420, Description: "Brake pad replacement", MileageAtMaintenance: 58300, Vehicle: &models.VehicleRef{ID: 2, LicensePlate: "PCD-5678"}},
		{ID: 3, Date: "2026-07-21", Type: models.TypePreventive, Cost: 260, Description: "Full service", MileageAtMaintenance: 95000, Vehicle: &models.VehicleRef{ID: 3, LicensePlate: "PEF-9012"}},
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func (s *simulator) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	user, ok := s.users[creds.Username]
	if !ok || user.password != creds.Password {
		writeJSON(w, http.StatusOK, models.LoginResult{Status: "error", Message: "invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, models.LoginResult{Status: "ok", Role: user.role, Message: "Welcome, " + creds.Username})
}

func (s *simulator) handleVehicles(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.mu.Lock()
		out := make([]models.Vehicle, 0, len(s.vehicles))
		for id := int64(1); id < s.nextID; id++ {
			if v, ok := s.vehicles[id]; ok {
				out = append(out, v)
			}
		}
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, out)

	case http.MethodPost:
		var v models.Vehicle
		if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()

		// Duplicate plates are rejected the way the real backend words it,
		// so the client's keyword mapping has something to chew on.
		for id, existing := range s.vehicles {
			if existing.LicensePlate == v.LicensePlate && id != v.ID {
				writeMessage(w, http.StatusConflict, "Ya existe un vehículo con esa placa")
				return
			}
		}
		if v.ID == 0 {
			v.ID = s.nextID
			s.nextID++
		}
		s.vehicles[v.ID] = v
		writeJSON(w, http.StatusOK, v)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleVehicleSubtree routes /vehicles/{id}, /vehicles/{id}/history,
// /vehicles/search/{plate}, /vehicles/maintenances and
// /vehicles/maintenances/all.
func (s *simulator) handleVehicleSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/vehicles/"), "/")
	parts := strings.Split(rest, "/")

	switch {
	case parts[0] == "search" && len(parts) == 2:
		s.handleSearch(w, r, parts[1])
	case parts[0] == "maintenances" && len(parts) == 2 && parts[1] == "all":
		s.handleAllMaintenances(w, r)
	case parts[0] == "maintenances" && len(parts) == 1:
		s.handleLogMaintenance(w, r)
	case len(parts) == 2 && parts[1] == "history":
		s.handleHistory(w, r, parts[0])
	case len(parts) == 1 && r.Method == http.MethodDelete:
		s.handleDelete(w, r, parts[0])
	default:
		http.NotFound(w, r)
	}
}

func (s *simulator) handleSearch(w http.ResponseWriter, r *http.Request, plate string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.vehicles {
		if strings.EqualFold(v.LicensePlate, plate) {
			writeJSON(w, http.StatusOK, v)
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "vehicle not found")
}

func (s *simulator) handleHistory(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		http.Error(w, "Invalid vehicle id", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.MaintenanceRecord{}
	for _, rec := range s.history {
		if rec.Vehicle != nil && rec.Vehicle.ID == id {
			out = append(out, rec)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *simulator) handleDelete(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		http.Error(w, "Invalid vehicle id", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vehicles[id]; !ok {
		writeMessage(w, http.StatusNotFound, "vehicle not found")
		return
	}
	delete(s.vehicles, id)

	// The real backend cascades the history with the vehicle.
	kept := s.history[:0]
	for _, rec := range s.history {
		if rec.Vehicle == nil || rec.Vehicle.ID != id {
			kept = append(kept, rec)
		}
	}
	s.history = kept
	w.WriteHeader(http.StatusNoContent)
}

func (s *simulator) handleLogMaintenance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var rec models.MaintenanceRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = int64(len(s.history) + 1)
	if rec.Vehicle != nil {
		if v, ok := s.vehicles[rec.Vehicle.ID]; ok {
			rec.Vehicle.LicensePlate = v.LicensePlate
		}
	}
	s.history = append(s.history, rec)
	writeJSON(w, http.StatusCreated, rec)
}

func (s *simulator) handleAllMaintenances(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.history)
}

func main() {
	_ = godotenv.Load()

	sim := newSimulator()
	http.HandleFunc("/api/auth/login", sim.handleLogin)
	http.HandleFunc("/api/vehicles", sim.handleVehicles)
	http.HandleFunc("/api/vehicles/", sim.handleVehicleSubtree)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("fleetsim listening")
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
