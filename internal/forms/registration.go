package forms

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fleetops/fleet-maintenance/internal/models"
)

// Registration bounds.
const (
	MinYear     = 1900
	MaxYear     = 2026
	MinInterval = 1000
	MaxInterval = 50000
)

var plateFormat = regexp.MustCompile(`^[A-Z]{3}-[0-9]{4}$`)

// RegistrationForm holds the raw field input of the vehicle registration
// form, as typed. Parsing happens inside the validators so that an empty
// field and a zero can be told apart.
type RegistrationForm struct {
	LicensePlate string
	Brand        string
	Model        string
	Year         string
	Mileage      string
	Interval     string
	Status       models.VehicleStatus
}

// RegistrationOrder is the fixed sequential order of the form. A field may
// only be edited once every earlier field in this order is valid.
var RegistrationOrder = []string{
	FieldLicensePlate,
	FieldBrand,
	FieldModel,
	FieldYear,
	FieldMileage,
	FieldInterval,
}

// value returns the raw input for a named field.
func (f RegistrationForm) value(field string) string {
	switch field {
	case FieldLicensePlate:
		return f.LicensePlate
	case FieldBrand:
		return f.Brand
	case FieldModel:
		return f.Model
	case FieldYear:
		return f.Year
	case FieldMileage:
		return f.Mileage
	case FieldInterval:
		return f.Interval
	}
	return ""
}

// mileageOptional reports whether the mileage field may be left empty.
// Future or not-yet-registered vehicles (year at the upper bound or beyond)
// have no meaningful odometer reading yet.
func (f RegistrationForm) mileageOptional() bool {
	year, err := parseInt(f.Year)
	return err == nil && year >= MaxYear
}

// registrationRule validates one raw input in the context of the whole
// form and returns an error message, or "" when the value is acceptable.
type registrationRule func(form RegistrationForm, value string) string

var registrationRules = map[string]registrationRule{
	FieldLicensePlate: func(_ RegistrationForm, value string) string {
		if strings.TrimSpace(value) == "" {
			return "license plate is required"
		}
		if !plateFormat.MatchString(value) {
			return "invalid format, must be ABC-1234"
		}
		return ""
	},
	FieldBrand: func(_ RegistrationForm, value string) string {
		if strings.TrimSpace(value) == "" {
			return "brand is required"
		}
		return ""
	},
	FieldModel: func(_ RegistrationForm, value string) string {
		if strings.TrimSpace(value) == "" {
			return "model is required"
		}
		return ""
	},
	FieldYear: func(_ RegistrationForm, value string) string {
		if missing(value) {
			return "production year is required"
		}
		year, err := parseInt(value)
		if err != nil {
			return "year must be a number"
		}
		if year < MinYear {
			return "year cannot be earlier than 1900"
		}
		if year > MaxYear {
			return "year cannot be later than 2026"
		}
		return ""
	},
	FieldMileage: func(form RegistrationForm, value string) string {
		if form.mileageOptional() {
			if strings.TrimSpace(value) == "" {
				return ""
			}
			km, err := parseFloat(value)
			if err != nil {
				return "mileage must be a number"
			}
			if km < 0 {
				return "mileage cannot be negative"
			}
			return ""
		}
		if missing(value) {
			return "initial mileage is required"
		}
		km, err := parseFloat(value)
		if err != nil {
			return "mileage must be a number"
		}
		if km < 0 {
			return "mileage cannot be negative"
		}
		return ""
	},
	FieldInterval: func(_ RegistrationForm, value string) string {
		if missing(value) {
			return "service interval is required"
		}
		interval, err := parseInt(value)
		if err != nil {
			return "service interval must be a number"
		}
		if interval < MinInterval {
			return "interval must be at least 1,000 km"
		}
		if interval > MaxInterval {
			return "interval cannot exceed 50,000 km"
		}
		return ""
	},
}

// ValidateRegistrationField checks one field in the context of the form and
// returns the error message to show next to it, or "".
func ValidateRegistrationField(form RegistrationForm, field string) string {
	rule, ok := registrationRules[field]
	if !ok {
		return ""
	}
	return rule(form, form.value(field))
}

// WalkRegistration validates the whole form in sequential order. It returns
// the per-field error messages and the name of the first invalid field,
// which is both the error to surface and the focus target. An empty first
// field means the form may be submitted.
func WalkRegistration(form RegistrationForm) (map[string]string, string) {
	errs := make(map[string]string)
	first := ""
	for _, field := range RegistrationOrder {
		if msg := ValidateRegistrationField(form, field); msg != "" {
			errs[field] = msg
			if first == "" {
				first = field
			}
		}
	}
	return errs, first
}

// FocusTarget applies the blocking sequential policy: before the cursor may
// move to the named field, every earlier field is re-validated and focus is
// redirected to the first invalid one. It returns the field that should
// receive focus and the error of the blocking field, if any.
func FocusTarget(form RegistrationForm, field string) (string, string) {
	for _, earlier := range RegistrationOrder {
		if earlier == field {
			break
		}
		if msg := ValidateRegistrationField(form, earlier); msg != "" {
			return earlier, msg
		}
	}
	return field, ""
}

// RegistrationPayload builds the vehicle to submit from a fully valid form.
// The plate is canonicalized to uppercase and the cycle baseline is seeded
// from the initial odometer reading.
func RegistrationPayload(form RegistrationForm) models.Vehicle {
	year, _ := parseInt(form.Year)
	mileage, _ := parseFloat(form.Mileage)
	interval, _ := parseInt(form.Interval)

	status := form.Status
	if status == "" {
		status = models.StatusAvailable
	}

	return models.Vehicle{
		LicensePlate:          strings.ToUpper(strings.TrimSpace(form.LicensePlate)),
		Brand:                 strings.TrimSpace(form.Brand),
		Model:                 strings.TrimSpace(form.Model),
		Year:                  year,
		Mileage:               mileage,
		Status:                status,
		LastMaintenanceKm:     mileage,
		MaintenanceIntervalKm: interval,
	}
}

// parseInt parses a numeric input, tolerating the thousands separators the
// entry form displays.
func parseInt(value string) (int, error) {
	return strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(value), ",", ""))
}

func parseFloat(value string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(value), ",", ""), 64)
}
