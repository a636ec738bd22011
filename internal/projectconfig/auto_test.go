package projectconfig

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/adreport-backend/internal/errors"
)

func requireValidationError(t *testing.T, err error) *appErrors.ValidationError {
	t.Helper()
	var verr *appErrors.ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	return verr
}

func TestParseAutoDefaults(t *testing.T) {
	for name, input := range map[string]any{
		"nil":          nil,
		"empty object": map[string]any{},
		"empty raw":    json.RawMessage(""),
		"raw null":     json.RawMessage("null"),
	} {
		t.Run(name, func(t *testing.T) {
			a, err := ParseAuto(input)
			require.NoError(t, err)

			assert.Equal(t, TargetWeekly, a.UsingTarget)
			assert.Equal(t, 1, a.Weekly.SelectedDay)
			assert.NotNil(t, a.Monthly.Schedules)
			assert.Empty(t, a.Monthly.Schedules)
			assert.False(t, a.IsFilter)
			assert.Equal(t, 0.0, a.ImpressionThreshold)
			assert.NotNil(t, a.ReportEmailList)
			assert.Empty(t, a.ReportEmailList)
			assert.Equal(t, DefaultAuto(), a)
		})
	}
}

// A weekly object without selectedDay resolves to 0 while a missing weekly
// object resolves to 1. Pinned until product decides which one is intended.
func TestParseAutoWeeklyDefaultAsymmetry(t *testing.T) {
	a, err := ParseAuto(map[string]any{"weekly": map[string]any{}})
	require.NoError(t, err)
	assert.Equal(t, 0, a.Weekly.SelectedDay)

	a, err = ParseAuto(map[string]any{"isFilter": true})
	require.NoError(t, err)
	assert.Equal(t, 1, a.Weekly.SelectedDay)
}

func TestParseAutoScheduleEntryDefaults(t *testing.T) {
	a, err := ParseAuto(json.RawMessage(`{"usingTarget":"monthly","monthly":{"schedules":[{},{"day":15,"hr":9}]}}`))
	require.NoError(t, err)

	assert.True(t, a.IsMonthly())
	assert.Equal(t, []Schedule{{Day: 1, Hr: 0, Min: 0}, {Day: 15, Hr: 9, Min: 0}}, a.Monthly.Schedules)
	assert.Equal(t, 1, a.Weekly.SelectedDay, "inactive weekly branch is still populated")
}

func TestParseAutoKeepsInactiveBranch(t *testing.T) {
	input := `{"usingTarget":"weekly","weekly":{"selectedDay":3},"monthly":{"schedules":[{"day":28,"hr":23,"min":59}]}}`
	a, err := ParseAuto(json.RawMessage(input))
	require.NoError(t, err)

	assert.True(t, a.IsWeekly())
	assert.Equal(t, 3, a.Weekly.SelectedDay)
	assert.Equal(t, []Schedule{{Day: 28, Hr: 23, Min: 59}}, a.Monthly.Schedules)
}

func TestParseAutoValidation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{"selected day above range", `{"weekly":{"selectedDay":7}}`, "weekly.selectedDay"},
		{"selected day below range", `{"weekly":{"selectedDay":-1}}`, "weekly.selectedDay"},
		{"schedule day", `{"monthly":{"schedules":[{"day":29,"hr":0,"min":0}]}}`, "monthly.schedules[0].day"},
		{"schedule day zero", `{"monthly":{"schedules":[{"day":0}]}}`, "monthly.schedules[0].day"},
		{"schedule hour", `{"monthly":{"schedules":[{"day":1},{"day":2,"hr":24}]}}`, "monthly.schedules[1].hr"},
		{"schedule minute", `{"monthly":{"schedules":[{"day":1,"min":60}]}}`, "monthly.schedules[0].min"},
		{"negative threshold", `{"impressionThreshold":-1}`, "impressionThreshold"},
		{"bad email", `{"reportEmailList":["not-an-email"]}`, "reportEmailList[0]"},
		{"bad second email", `{"reportEmailList":["ok@example.com","nope"]}`, "reportEmailList[1]"},
		{"unknown target", `{"usingTarget":"daily"}`, "usingTarget"},
		{"empty target", `{"usingTarget":""}`, "usingTarget"},
		{"wrong type", `{"weekly":{"selectedDay":"monday"}}`, "weekly.selectedDay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAuto(json.RawMessage(tt.input))
			verr := requireValidationError(t, err)
			assert.True(t, verr.Has(tt.field), "expected error on %s, got %v", tt.field, verr.Fields)
		})
	}
}

func TestParseAutoCollectsAllErrors(t *testing.T) {
	input := `{
		"usingTarget": "yearly",
		"weekly": {"selectedDay": 9},
		"monthly": {"schedules": [{"day": 31, "hr": -1, "min": 61}]},
		"impressionThreshold": -5,
		"reportEmailList": ["a@b.co", "broken"]
	}`

	_, err := ParseAuto(json.RawMessage(input))
	verr := requireValidationError(t, err)

	for _, field := range []string{
		"usingTarget",
		"weekly.selectedDay",
		"monthly.schedules[0].day",
		"monthly.schedules[0].hr",
		"monthly.schedules[0].min",
		"impressionThreshold",
		"reportEmailList[1]",
	} {
		assert.True(t, verr.Has(field), "missing error for %s", field)
	}
	assert.Len(t, verr.Fields, 7)
}

func TestParseAutoThresholdBoundary(t *testing.T) {
	a, err := ParseAuto(map[string]any{"impressionThreshold": 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, a.ImpressionThreshold)

	a, err = ParseAuto(map[string]any{"impressionThreshold": 1500.5})
	require.NoError(t, err)
	assert.Equal(t, 1500.5, a.ImpressionThreshold)
}

func TestParseAutoRejectsNonObject(t *testing.T) {
	_, err := ParseAuto("weekly")
	requireValidationError(t, err)

	_, err = ParseAuto(json.RawMessage(`{"weekly":`))
	requireValidationError(t, err)
}

func TestParseAutoReportsEveryTypeMismatch(t *testing.T) {
	input := `{
		"weekly": {"selectedDay": "x"},
		"impressionThreshold": "y",
		"isFilter": "z",
		"monthly": {"schedules": [{"day": 1}, {"day": "x", "hr": 25}]},
		"reportEmailList": ["a@b.co", 5]
	}`

	_, err := ParseAuto(json.RawMessage(input))
	verr := requireValidationError(t, err)

	assert.Equal(t, []appErrors.FieldError{
		{Field: "weekly.selectedDay", Message: "must be an integer"},
		{Field: "monthly.schedules[1].day", Message: "must be an integer"},
		{Field: "isFilter", Message: "must be a boolean"},
		{Field: "impressionThreshold", Message: "must be a number"},
		{Field: "reportEmailList[1]", Message: "must be a string"},
		{Field: "monthly.schedules[1].hr", Message: "must be less than or equal to 23"},
	}, verr.Fields)
}

func TestParseAutoRejectsNullScheduleEntry(t *testing.T) {
	_, err := ParseAuto(json.RawMessage(`{"monthly":{"schedules":[{"day":3},null,"daily"]}}`))
	verr := requireValidationError(t, err)

	assert.Equal(t, []appErrors.FieldError{
		{Field: "monthly.schedules[1]", Message: "must be an object"},
		{Field: "monthly.schedules[2]", Message: "must be an object"},
	}, verr.Fields)
}

func TestParseAutoRejectsNullEmail(t *testing.T) {
	_, err := ParseAuto(json.RawMessage(`{"reportEmailList":[null]}`))
	verr := requireValidationError(t, err)
	assert.Equal(t, []appErrors.FieldError{{Field: "reportEmailList[0]", Message: "must be a string"}}, verr.Fields)
}
