// Package notify holds the transient user notification. At most one
// notification is visible; displaying it arms a dismiss task, and a newer
// notification supersedes the current one and re-arms the timer.
package notify

import (
	"sync"
	"time"
)

// Severity tags a notification for rendering.
type Severity string

const (
	Success Severity = "success"
	Warning Severity = "warning"
	Error   Severity = "error"
	Info    Severity = "info"
)

// DefaultTTL is how long a notification stays visible unless superseded.
const DefaultTTL = 4 * time.Second

// Notification is one transient message.
type Notification struct {
	Message  string
	Severity Severity
}

// Center manages the visible notification and its scheduled dismissal.
type Center struct {
	ttl time.Duration

	mu      sync.Mutex
	current *Notification
	timer   *time.Timer
}

// NewCenter creates a center. A non-positive ttl selects DefaultTTL.
func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{ttl: ttl}
}

// Push displays a notification, superseding the current one and re-arming
// the dismiss task.
func (c *Center) Push(message string, severity Severity) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := &Notification{Message: message, Severity: severity}
	c.current = n
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.ttl, func() { c.dismiss(n) })
}

// dismiss clears the notification only if it is still the visible one; a
// superseding Push wins over a stale timer.
func (c *Center) dismiss(n *Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == n {
		c.current = nil
	}
}

// Current returns the visible notification, if any.
func (c *Center) Current() (Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return Notification{}, false
	}
	return *c.current, true
}

// Clear removes the visible notification immediately.
func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
	}
	c.current = nil
}
