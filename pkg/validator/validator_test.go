package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hoursInput struct {
	Day         string `json:"day" validate:"required,weekday"`
	OpeningTime string `json:"opening_time" validate:"required,clock"`
	LunchStart  string `json:"lunch_start_time" validate:"omitempty,clock"`
}

func TestCustomValidator_ClinicTags(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name       string
		input      hoursInput
		wantFields []string
	}{
		{name: "valid", input: hoursInput{Day: "monday", OpeningTime: "09:00"}},
		{name: "valid with seconds and lunch", input: hoursInput{Day: "Fri", OpeningTime: "09:00:30", LunchStart: "12:00"}},
		{name: "bad day", input: hoursInput{Day: "someday", OpeningTime: "09:00"}, wantFields: []string{"day"}},
		{name: "bad clock", input: hoursInput{Day: "monday", OpeningTime: "9am", LunchStart: "24:10"}, wantFields: []string{"opening_time", "lunch_start_time"}},
		{name: "missing", input: hoursInput{}, wantFields: []string{"day", "opening_time"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)

			formatted := v.FormatValidationErrors(err)
			assert.Len(t, formatted, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, formatted, f)
			}
		})
	}
}

func TestCustomValidator_FormatMessages(t *testing.T) {
	v := NewValidator()

	formatted := v.FormatValidationErrors(v.Validate(hoursInput{Day: "monday", OpeningTime: "noon"}))
	assert.Equal(t, "opening_time must be a time of day as HH:MM", formatted["opening_time"])
}
