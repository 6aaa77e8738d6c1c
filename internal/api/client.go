// Package api is the REST client for the fleet backend. The backend is an
// opaque collaborator: this package only shapes requests, decodes responses
// into the canonical models and translates failures into typed errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/fleetops/fleet-maintenance/internal/models"
)

// Config is the explicit configuration of the client. There is no hidden
// module-level state: whoever constructs the client decides the base URL
// and the headers attached to every request.
type Config struct {
	BaseURL        string
	DefaultHeaders map[string]string
}

// ConfigFromEnv builds a Config from the environment, with local defaults.
func ConfigFromEnv() Config {
	base := os.Getenv("FLEET_API_URL")
	if base == "" {
		base = "http://localhost:8080/api"
	}
	return Config{
		BaseURL: base,
		DefaultHeaders: map[string]string{
			"Content-Type": "application/json",
		},
	}
}

// Client talks to the fleet backend.
type Client struct {
	cfg  Config
	http *http.Client
}

// New creates a client for the given configuration.
func New(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// Login submits credentials and returns the backend's verdict. A rejected
// credential pair can arrive either as a non-2xx status or as an HTTP 200
// carrying status "error"; callers must check LoginResult.OK.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (models.LoginResult, error) {
	var result models.LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", creds, &result); err != nil {
		return models.LoginResult{}, err
	}
	return result, nil
}

// ListVehicles fetches the whole fleet.
func (c *Client) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := c.do(ctx, http.MethodGet, "/vehicles", nil, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// SaveVehicle creates or fully updates a vehicle; the backend disambiguates
// by the presence of the id.
func (c *Client) SaveVehicle(ctx context.Context, v models.Vehicle) (models.Vehicle, error) {
	var saved models.Vehicle
	if err := c.do(ctx, http.MethodPost, "/vehicles", v, &saved); err != nil {
		return models.Vehicle{}, err
	}
	return saved, nil
}

// DeleteVehicle removes a vehicle; the backend cascades its history.
func (c *Client) DeleteVehicle(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/vehicles/%d", id), nil, nil)
}

// VehicleHistory fetches the maintenance history of one vehicle.
func (c *Client) VehicleHistory(ctx context.Context, id int64) ([]models.MaintenanceRecord, error) {
	var records []models.MaintenanceRecord
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/vehicles/%d/history", id), nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SearchByPlate looks a vehicle up by its license plate. A miss is
// ErrNotFound, rendered by callers as an empty state.
func (c *Client) SearchByPlate(ctx context.Context, plate string) (models.Vehicle, error) {
	var v models.Vehicle
	if err := c.do(ctx, http.MethodGet, "/vehicles/search/"+plate, nil, &v); err != nil {
		return models.Vehicle{}, err
	}
	return v, nil
}

// LogMaintenance appends a maintenance record to a vehicle's history.
func (c *Client) LogMaintenance(ctx context.Context, rec models.MaintenanceRecord) error {
	return c.do(ctx, http.MethodPost, "/vehicles/maintenances", rec, nil)
}

// AllMaintenances fetches the maintenance history of the whole fleet.
func (c *Client) AllMaintenances(ctx context.Context) ([]models.MaintenanceRecord, error) {
	var records []models.MaintenanceRecord
	if err := c.do(ctx, http.MethodGet, "/vehicles/maintenances/all", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// do performs one request against the backend. Network failures become
// TransportError, a 404 becomes ErrNotFound and other rejections become
// ConflictError carrying the backend message, mapped to a field when a
// keyword is recognized.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	for key, value := range c.cfg.DefaultHeaders {
		req.Header.Set(key, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).WithField("op", op).Warn("backend unreachable")
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.decodeFailure(op, resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}

// decodeFailure translates a non-2xx response into a typed error.
func (c *Client) decodeFailure(op string, resp *http.Response) error {
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	raw, _ := io.ReadAll(resp.Body)
	message := ""
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		message = envelope.Message
	} else if len(raw) > 0 {
		message = string(raw)
	}
	if message == "" {
		message = fmt.Sprintf("backend returned status %d", resp.StatusCode)
	}

	log.WithFields(log.Fields{"op": op, "status": resp.StatusCode}).Debug("backend rejected request")
	return &ConflictError{Field: conflictField(message), Message: message}
}
