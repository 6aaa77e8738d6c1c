package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fleetops/fleet-maintenance/internal/models"
)

func TestValidateService_Valid(t *testing.T) {
	cost, err := ValidateService(ServiceForm{
		Type:        models.TypePreventive,
		Cost:        "180.50",
		Description: "Oil and filter change",
	})

	assert.Nil(t, err)
	assert.Equal(t, 180.50, cost)
}

func TestValidateService_CostRules(t *testing.T) {
	cases := []struct {
		name string
		cost string
		msg  string
	}{
		{"empty", "", "cost is required"},
		{"not a number", "expensive", "cost must be a number"},
		{"negative", "-10", "cost cannot be negative"},
		{"zero is allowed", "0", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateService(ServiceForm{
				Type:        models.TypeCorrective,
				Cost:        tc.cost,
				Description: "Brake pads",
			})
			if tc.msg == "" {
				assert.Nil(t, err)
				return
			}
			assert.NotNil(t, err)
			assert.Equal(t, FieldCost, err.Field)
			assert.Equal(t, tc.msg, err.Message)
		})
	}
}

func TestValidateService_DescriptionRequired(t *testing.T) {
	_, err := ValidateService(ServiceForm{Type: models.TypePreventive, Cost: "50", Description: "  "})

	assert.NotNil(t, err)
	assert.Equal(t, FieldDescription, err.Field)
}

func TestValidateService_UnknownType(t *testing.T) {
	_, err := ValidateService(ServiceForm{Type: "Inspection", Cost: "50", Description: "x"})

	assert.NotNil(t, err)
	assert.Equal(t, "type", err.Field)
}
