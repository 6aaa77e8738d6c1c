package forms

import (
	"strings"

	"github.com/fleetops/fleet-maintenance/internal/models"
)

// ServiceForm is a service-log entry before submission.
type ServiceForm struct {
	Type        models.MaintenanceType
	Cost        string
	Description string
}

// ValidateService checks a service entry and returns the parsed cost. Cost
// and description are both required before the confirmation step is offered.
func ValidateService(form ServiceForm) (float64, *FieldError) {
	if strings.TrimSpace(form.Cost) == "" {
		return 0, &FieldError{Field: FieldCost, Message: "cost is required"}
	}
	cost, err := parseFloat(form.Cost)
	if err != nil {
		return 0, &FieldError{Field: FieldCost, Message: "cost must be a number"}
	}
	if cost < 0 {
		return 0, &FieldError{Field: FieldCost, Message: "cost cannot be negative"}
	}
	if strings.TrimSpace(form.Description) == "" {
		return 0, &FieldError{Field: FieldDescription, Message: "description is required"}
	}
	if form.Type != models.TypePreventive && form.Type != models.TypeCorrective {
		return 0, &FieldError{Field: "type", Message: "unknown maintenance type"}
	}
	return cost, nil
}
