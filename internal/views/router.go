// Package views selects the view composition for a role and renders the
// terminal tables of the dashboard.
package views

import "github.com/fleetops/fleet-maintenance/internal/models"

// View identifies one screen of the client.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewInventory View = "inventory"
	ViewReports   View = "reports"
	ViewRegister  View = "register"
	ViewSearch    View = "search"
)

// Layout is the composition selected once per session from the
// authenticated role. The two layouts are mutually exclusive: admins get
// the full dashboard with the alert panel, everyone else gets the public
// plate-lookup view with no mutation capability.
type Layout struct {
	Role       models.Role
	Views      []View
	AlertPanel bool
	CanMutate  bool
}

// Has reports whether the layout includes a view.
func (l Layout) Has(v View) bool {
	for _, view := range l.Views {
		if view == v {
			return true
		}
	}
	return false
}

// ForRole picks the layout for a role. The choice is made once per session;
// a logout discards the layout along with the session.
func ForRole(role models.Role) Layout {
	if role.IsAdmin() {
		return Layout{
			Role:       role,
			Views:      []View{ViewDashboard, ViewInventory, ViewReports, ViewRegister},
			AlertPanel: true,
			CanMutate:  true,
		}
	}
	return Layout{
		Role:  role,
		Views: []View{ViewSearch},
	}
}
