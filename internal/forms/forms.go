// Package forms holds the validation rules of the client: the vehicle
// registration form with its sequential-focus policy, the edit-mode
// mileage guard, the service-log entry and the login credentials.
//
// Validation failures never leave the form layer; they are reported next to
// the offending field and block submission before anything reaches the
// backend.
package forms

import "strings"

// Field names shared between the rule tables and the UI.
const (
	FieldLicensePlate = "licensePlate"
	FieldBrand        = "brand"
	FieldModel        = "model"
	FieldYear         = "year"
	FieldMileage      = "mileage"
	FieldInterval     = "maintenanceIntervalKm"
	FieldCost         = "cost"
	FieldDescription  = "description"
	FieldUsername     = "username"
	FieldPassword     = "password"
)

// FieldError is a validation failure tied to a single field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// missing reports whether a raw input counts as not provided. A bare zero
// is treated as missing for required numeric fields, matching the behavior
// of the entry form.
func missing(value string) bool {
	v := strings.TrimSpace(value)
	return v == "" || v == "0"
}
