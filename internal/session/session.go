// Package session is the gate between the login screen and the rest of the
// client. Credentials are checked locally first, then delegated to the
// backend; the resulting session is process-local and never persisted.
package session

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/fleetops/fleet-maintenance/internal/api"
	"github.com/fleetops/fleet-maintenance/internal/forms"
	"github.com/fleetops/fleet-maintenance/internal/models"
)

// ErrInvalidCredentials signals a backend-rejected credential pair.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Session is an authenticated user. The role is fixed at login and never
// re-derived mid-session.
type Session struct {
	Username string
	Role     models.Role
}

// Gate performs logins and holds the current session.
type Gate struct {
	client *api.Client

	mu      sync.RWMutex
	current *Session
}

// NewGate creates a gate backed by the given API client.
func NewGate(client *api.Client) *Gate {
	return &Gate{client: client}
}

// Login validates the credentials locally, then against the backend. Local
// failures block the network call and come back as *forms.FieldError so the
// UI can attach them to the offending field.
func (g *Gate) Login(ctx context.Context, creds models.Credentials) (Session, error) {
	if errs, first := forms.ValidateLogin(creds); first != "" {
		return Session{}, &forms.FieldError{Field: first, Message: errs[first]}
	}

	result, err := g.client.Login(ctx, creds)
	if err != nil {
		return Session{}, err
	}
	if !result.OK() {
		return Session{}, ErrInvalidCredentials
	}

	s := Session{Username: creds.Username, Role: result.Role}
	g.mu.Lock()
	g.current = &s
	g.mu.Unlock()

	log.WithFields(log.Fields{"user": s.Username, "role": s.Role}).Info("session opened")
	return s, nil
}

// Current returns the active session, if any.
func (g *Gate) Current() (Session, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.current == nil {
		return Session{}, false
	}
	return *g.current, true
}

// Logout clears the session and returns the client to the login screen.
func (g *Gate) Logout() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current != nil {
		log.WithField("user", g.current.Username).Info("session closed")
	}
	g.current = nil
}
