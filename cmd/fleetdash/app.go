package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fleetops/fleet-maintenance/internal/api"
	"github.com/fleetops/fleet-maintenance/internal/forms"
	"github.com/fleetops/fleet-maintenance/internal/maintenance"
	"github.com/fleetops/fleet-maintenance/internal/metrics"
	"github.com/fleetops/fleet-maintenance/internal/models"
	"github.com/fleetops/fleet-maintenance/internal/notify"
	"github.com/fleetops/fleet-maintenance/internal/reports"
	"github.com/fleetops/fleet-maintenance/internal/session"
	"github.com/fleetops/fleet-maintenance/internal/store"
	"github.com/fleetops/fleet-maintenance/internal/views"
)

// app wires the components together and drives them from a synchronous
// prompt loop. The loop itself is single-threaded; the only background
// work is the notification dismiss timer.
type app struct {
	in  *bufio.Scanner
	out io.Writer

	client   *api.Client
	gate     *session.Gate
	fleet    *store.VehicleStore
	maint    *maintenance.Service
	notifier *notify.Center

	exportDir string
}

func newApp(client *api.Client) *app {
	return &app{
		in:        bufio.NewScanner(os.Stdin),
		out:       os.Stdout,
		client:    client,
		gate:      session.NewGate(client),
		fleet:     store.New(client),
		maint:     maintenance.NewService(client),
		notifier:  notify.NewCenter(0),
		exportDir: ".",
	}
}

// Run cycles login -> role layout -> logout until input ends.
func (a *app) Run() error {
	ctx := context.Background()
	for {
		sess, ok := a.login(ctx)
		if !ok {
			return nil
		}

		layout := views.ForRole(sess.Role)
		if err := a.fleet.Reload(ctx); err != nil {
			a.report(err)
		}

		if layout.AlertPanel {
			a.adminLoop(ctx)
		} else {
			a.publicLoop(ctx)
		}
		a.gate.Logout()
	}
}

// login prompts for credentials until the backend accepts them. A closed
// input stream ends the program.
func (a *app) login(ctx context.Context) (session.Session, bool) {
	fmt.Fprintln(a.out, "\n== FLEET MAINTENANCE == sign in (empty username quits)")
	for {
		username, ok := a.prompt("username: ")
		if !ok || username == "" {
			return session.Session{}, false
		}
		password, ok := a.prompt("password: ")
		if !ok {
			return session.Session{}, false
		}

		sess, err := a.gate.Login(ctx, models.Credentials{Username: username, Password: password})
		if err != nil {
			a.report(err)
			a.showNotice()
			continue
		}
		a.notifier.Push("Welcome, "+sess.Username, notify.Info)
		a.showNotice()
		return sess, true
	}
}

func (a *app) adminLoop(ctx context.Context) {
	for {
		a.showNotice()
		fmt.Fprintln(a.out, "\n[1] dashboard  [2] inventory  [3] reports  [4] register")
		fmt.Fprintln(a.out, "[5] edit vehicle  [6] log service  [7] delete vehicle")
		fmt.Fprintln(a.out, "[8] alerts  [0] logout")
		choice, ok := a.prompt("> ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			a.showDashboard(ctx)
		case "2":
			a.showInventory(ctx)
		case "3":
			a.showReports(ctx)
		case "4":
			a.registerVehicle(ctx)
		case "5":
			a.editVehicle(ctx)
		case "6":
			a.logService(ctx)
		case "7":
			a.deleteVehicle(ctx)
		case "8":
			red, yellow := a.fleet.AlertCounts()
			fmt.Fprintln(a.out, views.AlertPanel(a.fleet.Alerts(), red, yellow))
		case "0":
			return
		}
	}
}

func (a *app) publicLoop(ctx context.Context) {
	fmt.Fprintln(a.out, "\nVehicle lookup. Enter a plate (ABC-1234), empty to sign out.")
	for {
		plate, ok := a.prompt("plate: ")
		if !ok || plate == "" {
			return
		}
		a.lookupPlate(ctx, strings.ToUpper(plate))
	}
}

func (a *app) showDashboard(ctx context.Context) {
	if err := a.fleet.Reload(ctx); err != nil {
		a.report(err)
		return
	}
	fmt.Fprintln(a.out, views.DashboardSummary(a.fleet.Annotated()))

	records, err := a.client.AllMaintenances(ctx)
	if err != nil {
		a.report(err)
		return
	}
	fmt.Fprintln(a.out, views.MonthlyTable(reports.Monthly(records)))
	fmt.Fprintln(a.out, views.TypeTable(reports.TypeBreakdown(records)))
}

func (a *app) showInventory(ctx context.Context) {
	if err := a.fleet.Reload(ctx); err != nil {
		a.report(err)
		return
	}
	fmt.Fprintln(a.out, views.InventoryTable(a.fleet.Annotated()))
}

func (a *app) showReports(ctx context.Context) {
	period, ok := a.prompt(fmt.Sprintf("period YYYY-MM (empty for %s): ", reports.CurrentPeriod(time.Now())))
	if !ok {
		return
	}
	if period == "" {
		period = reports.CurrentPeriod(time.Now())
	}

	records, err := a.client.AllMaintenances(ctx)
	if err != nil {
		a.report(err)
		return
	}
	filtered := reports.FilterPeriod(records, period)
	fmt.Fprintln(a.out, views.HistoryTable(filtered, true))
	fmt.Fprintf(a.out, "Total for %s: $%.2f\n", period, reports.Total(filtered))

	if answer, _ := a.prompt("export to spreadsheet? [y/N]: "); strings.EqualFold(answer, "y") {
		path, err := reports.WriteExcel(filtered, reports.GlobalReportName(period), a.exportDir)
		if errors.Is(err, reports.ErrNoData) {
			a.notifier.Push("No data to export for this period", notify.Info)
			return
		}
		if err != nil {
			a.report(err)
			return
		}
		a.notifier.Push("Report written to "+path, notify.Success)
	}

	if plate, ok := a.prompt("export one vehicle's history? plate (empty to skip): "); ok && plate != "" {
		a.exportVehicleHistory(ctx, strings.ToUpper(plate))
	}
}

// exportVehicleHistory writes one vehicle's full maintenance history to a
// Historial_{plate} spreadsheet.
func (a *app) exportVehicleHistory(ctx context.Context, plate string) {
	vehicle, err := a.client.SearchByPlate(ctx, plate)
	if errors.Is(err, api.ErrNotFound) {
		fmt.Fprintf(a.out, "No vehicle registered with plate %s.\n", plate)
		return
	}
	if err != nil {
		a.report(err)
		return
	}

	history, err := a.client.VehicleHistory(ctx, vehicle.ID)
	if err != nil {
		a.report(err)
		return
	}

	path, err := reports.WriteExcel(history, reports.HistoryReportName(vehicle.LicensePlate), a.exportDir)
	if errors.Is(err, reports.ErrNoData) {
		a.notifier.Push("No maintenance history to export for "+vehicle.LicensePlate, notify.Info)
		return
	}
	if err != nil {
		a.report(err)
		return
	}
	a.notifier.Push("History written to "+path, notify.Success)
}

// registerVehicle walks the registration form in its fixed order. A field
// is only offered once every earlier one is valid, which is the terminal
// rendition of the sequential-focus policy.
func (a *app) registerVehicle(ctx context.Context) {
	form := forms.RegistrationForm{Status: models.StatusAvailable}
	prompts := map[string]string{
		forms.FieldLicensePlate: "plate (ABC-1234): ",
		forms.FieldBrand:        "brand: ",
		forms.FieldModel:        "model: ",
		forms.FieldYear:         "production year: ",
		forms.FieldMileage:      "initial mileage (km): ",
		forms.FieldInterval:     "service interval (km): ",
	}

	for _, field := range forms.RegistrationOrder {
		for {
			value, ok := a.prompt(prompts[field])
			if !ok {
				return
			}
			a.setField(&form, field, value)
			if msg := forms.ValidateRegistrationField(form, field); msg != "" {
				fmt.Fprintln(a.out, "  ! "+msg)
				continue
			}
			break
		}
	}

	if _, first := forms.WalkRegistration(form); first != "" {
		a.notifier.Push("Please complete the fields in order before continuing", notify.Error)
		return
	}

	saved, err := a.client.SaveVehicle(ctx, forms.RegistrationPayload(form))
	if err != nil {
		a.report(err)
		return
	}
	a.notifier.Push("Vehicle "+saved.LicensePlate+" registered", notify.Success)
	if err := a.fleet.Reload(ctx); err != nil {
		a.report(err)
	}
}

func (a *app) editVehicle(ctx context.Context) {
	vehicle, ok := a.pickVehicle(ctx)
	if !ok {
		return
	}

	form := forms.EditForm{Status: vehicle.Status}
	mileage, ok := a.promptFloat(fmt.Sprintf("mileage [%.0f]: ", vehicle.Mileage), vehicle.Mileage)
	if !ok {
		return
	}
	form.Mileage = mileage
	if raw, ok := a.prompt(fmt.Sprintf("status (Available/Maintenance) [%s]: ", vehicle.Status)); ok && raw != "" {
		form.Status = models.VehicleStatus(raw)
	}
	interval, ok := a.promptInt(fmt.Sprintf("service interval [%d]: ", vehicle.MaintenanceIntervalKm), vehicle.MaintenanceIntervalKm)
	if !ok {
		return
	}
	form.Interval = interval

	if ferr := forms.ValidateEditMileage(vehicle, form); ferr != nil {
		a.notifier.Push(ferr.Message, notify.Error)
		return
	}
	if !forms.HasChanges(vehicle, form) {
		a.notifier.Push("No changes to save", notify.Warning)
		return
	}

	if _, err := a.client.SaveVehicle(ctx, forms.ApplyEdit(vehicle, form)); err != nil {
		a.report(err)
		return
	}
	a.notifier.Push("Vehicle updated", notify.Success)
	if err := a.fleet.Reload(ctx); err != nil {
		a.report(err)
	}
}

func (a *app) logService(ctx context.Context) {
	vehicle, ok := a.pickVehicle(ctx)
	if !ok {
		return
	}

	entry := forms.ServiceForm{Type: models.TypePreventive}
	if raw, ok := a.prompt("type (P)reventivo / (C)orrectivo [P]: "); ok && strings.EqualFold(raw, "c") {
		entry.Type = models.TypeCorrective
	}
	entry.Cost, _ = a.prompt("cost: ")
	entry.Description, _ = a.prompt("description: ")

	if _, ferr := forms.ValidateService(entry); ferr != nil {
		a.notifier.Push(ferr.Message, notify.Warning)
		return
	}
	if answer, _ := a.prompt("confirm save? [y/N]: "); !strings.EqualFold(answer, "y") {
		return
	}

	if _, err := a.maint.Log(ctx, vehicle, entry); err != nil {
		a.report(err)
		return
	}
	a.notifier.Push("Maintenance recorded", notify.Success)
	if err := a.fleet.Reload(ctx); err != nil {
		a.report(err)
	}
}

// deleteVehicle removes a vehicle for good; the backend cascades its
// maintenance history with it, so the action needs an explicit confirmation.
func (a *app) deleteVehicle(ctx context.Context) {
	vehicle, ok := a.pickVehicle(ctx)
	if !ok {
		return
	}

	fmt.Fprintf(a.out, "This permanently removes %s and its maintenance history.\n", vehicle.LicensePlate)
	if answer, _ := a.prompt("delete? [y/N]: "); !strings.EqualFold(answer, "y") {
		return
	}

	if err := a.client.DeleteVehicle(ctx, vehicle.ID); err != nil {
		a.report(err)
		return
	}
	a.notifier.Push("Vehicle "+vehicle.LicensePlate+" deleted", notify.Success)
	if err := a.fleet.Reload(ctx); err != nil {
		a.report(err)
	}
}

func (a *app) lookupPlate(ctx context.Context, plate string) {
	vehicle, err := a.client.SearchByPlate(ctx, plate)
	if errors.Is(err, api.ErrNotFound) {
		fmt.Fprintf(a.out, "No vehicle registered with plate %s.\n", plate)
		return
	}
	if err != nil {
		a.report(err)
		return
	}

	fmt.Fprintln(a.out, views.VehicleCard(vehicle, metrics.Compute(vehicle)))

	history, err := a.client.VehicleHistory(ctx, vehicle.ID)
	if err != nil {
		a.report(err)
		return
	}
	if len(history) == 0 {
		fmt.Fprintln(a.out, "The vehicle exists but has no maintenance on record yet.")
		return
	}
	fmt.Fprintln(a.out, views.HistoryTable(history, false))
}

// pickVehicle resolves a plate to a cached vehicle.
func (a *app) pickVehicle(ctx context.Context) (models.Vehicle, bool) {
	if err := a.fleet.Reload(ctx); err != nil {
		a.report(err)
		return models.Vehicle{}, false
	}
	plate, ok := a.prompt("plate: ")
	if !ok || plate == "" {
		return models.Vehicle{}, false
	}
	plate = strings.ToUpper(plate)
	for _, v := range a.fleet.Vehicles() {
		if v.LicensePlate == plate {
			return v, true
		}
	}
	fmt.Fprintf(a.out, "No vehicle with plate %s in the inventory.\n", plate)
	return models.Vehicle{}, false
}

// report translates an error into a user-facing notification. Nothing here
// is fatal; every failure returns the loop to a re-triable state.
func (a *app) report(err error) {
	var fieldErr *forms.FieldError
	var conflict *api.ConflictError
	var partial *maintenance.PartialError
	var transport *api.TransportError

	switch {
	case errors.As(err, &partial):
		a.notifier.Push("Maintenance recorded, but the vehicle update failed. Save the vehicle again to finish.", notify.Warning)
	case errors.As(err, &fieldErr):
		a.notifier.Push(fieldErr.Message, notify.Error)
	case errors.As(err, &conflict):
		a.notifier.Push(conflict.Message, notify.Error)
	case errors.As(err, &transport):
		a.notifier.Push("Backend unreachable. Check the connection and try again.", notify.Error)
	case errors.Is(err, session.ErrInvalidCredentials):
		a.notifier.Push("Invalid username or password", notify.Error)
	case errors.Is(err, api.ErrNotFound):
		a.notifier.Push("Not found", notify.Info)
	default:
		a.notifier.Push(err.Error(), notify.Error)
	}
}

// showNotice prints the visible notification, if any.
func (a *app) showNotice() {
	if n, ok := a.notifier.Current(); ok {
		fmt.Fprintf(a.out, "[%s] %s\n", n.Severity, n.Message)
	}
}

func (a *app) prompt(label string) (string, bool) {
	fmt.Fprint(a.out, label)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

// promptFloat reads an optional numeric input, re-prompting until it parses.
// An empty input keeps the fallback.
func (a *app) promptFloat(label string, fallback float64) (float64, bool) {
	for {
		raw, ok := a.prompt(label)
		if !ok {
			return 0, false
		}
		if raw == "" {
			return fallback, true
		}
		value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil {
			fmt.Fprintln(a.out, "  ! must be a number")
			continue
		}
		return value, true
	}
}

// promptInt reads an optional whole-number input, re-prompting until it
// parses. An empty input keeps the fallback.
func (a *app) promptInt(label string, fallback int) (int, bool) {
	for {
		raw, ok := a.prompt(label)
		if !ok {
			return 0, false
		}
		if raw == "" {
			return fallback, true
		}
		value, err := strconv.Atoi(strings.ReplaceAll(raw, ",", ""))
		if err != nil {
			fmt.Fprintln(a.out, "  ! must be a whole number")
			continue
		}
		return value, true
	}
}

func (a *app) setField(form *forms.RegistrationForm, field, value string) {
	switch field {
	case forms.FieldLicensePlate:
		form.LicensePlate = strings.ToUpper(value)
	case forms.FieldBrand:
		form.Brand = value
	case forms.FieldModel:
		form.Model = value
	case forms.FieldYear:
		form.Year = value
	case forms.FieldMileage:
		form.Mileage = value
	case forms.FieldInterval:
		form.Interval = value
	}
}
