package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(errs []ValidationError) map[string]string {
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		out[e.Field] = e.Code
	}
	return out
}

func TestValidate_Default(t *testing.T) {
	assert.Empty(t, Validate(Default()))
}

func TestValidate_SchemaViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Plan)
		field  string
	}{
		{"zero_precision", func(p *Plan) { p.Precision = 0 }, "precision"},
		{"confidence_one", func(p *Plan) { p.Confidence = 1 }, "confidence"},
		{"i_squared_one", func(p *Plan) { p.ISquared = 1 }, "i_squared"},
		{"i_squared_negative", func(p *Plan) { p.ISquared = -0.2 }, "i_squared"},
		{"zero_trial_size", func(p *Plan) { p.AvgTrialSize = 0 }, "avg_trial_size"},
		{"key_proportion", func(p *Plan) { p.KeyGroup.Proportion = 1.2 }, "key_group.proportion"},
		{"group_proportion", func(p *Plan) { p.Groups[1].Proportion = -0.1 }, "groups.1.proportion"},
		{"blank_label", func(p *Plan) { p.Groups[2].Label = "  " }, "groups.2.label"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(p)

			errs := Validate(p)
			require.NotEmpty(t, errs)
			assert.Equal(t, ErrSchemaViolation, fields(errs)[tt.field], "errors: %v", errs)
		})
	}
}

func TestValidate_ReportsAllViolations(t *testing.T) {
	p := Default()
	p.Precision = 0
	p.ISquared = 1

	got := fields(Validate(p))
	assert.Contains(t, got, "precision")
	assert.Contains(t, got, "i_squared")
}

func TestValidate_NoGroups(t *testing.T) {
	p := Default()
	p.Groups = nil

	errs := Validate(p)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrNoGroups, errs[0].Code)
	assert.Equal(t, "groups", errs[0].Field)
}

func TestValidate_DuplicateLabel(t *testing.T) {
	p := Default()
	p.Groups = append(p.Groups, Group{Label: "Rural residents", Proportion: 0.3})

	errs := Validate(p)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrDuplicateLabel, errs[0].Code)
	assert.Equal(t, "groups.4.label", errs[0].Field)
	assert.Contains(t, errs[0].Message, "groups.1")
}

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{Field: "i_squared", Message: "out of bound", Code: ErrSchemaViolation}
	assert.Equal(t, "[E120] i_squared: out of bound", err.Error())
}

func TestFieldPath(t *testing.T) {
	assert.Equal(t, "groups.1.label", fieldPath([]string{"#Plan", "groups", "1", "label"}))
	assert.Equal(t, "precision", fieldPath([]string{"precision"}))
	assert.Equal(t, "", fieldPath(nil))
}
