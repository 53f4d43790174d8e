package plan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPlanYAML = `
key_group:
  label: Indigenous
  proportion: 0.05
precision: 0.02
confidence: 0.95
i_squared: 0.5
avg_trial_size: 100
groups:
  - label: Indigenous
    proportion: 0.05
  - label: Rural residents
    proportion: 0.15
`

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	p := Default()

	assert.Equal(t, "Indigenous", p.KeyGroup.Label)
	assert.Equal(t, 0.05, p.KeyGroup.Proportion)
	assert.Equal(t, 0.02, p.Precision)
	assert.Equal(t, 0.95, p.Confidence)
	assert.Equal(t, 0.5, p.ISquared)
	assert.Equal(t, 100.0, p.AvgTrialSize)

	labels := make([]string, len(p.Groups))
	for i, g := range p.Groups {
		labels[i] = g.Label
	}
	assert.Equal(t, []string{
		"Indigenous",
		"Rural residents",
		"Preferred language other than English",
		"Low socioeconomic status",
	}, labels)
}

func TestDefault_ReturnsFreshCopy(t *testing.T) {
	a := Default()
	a.Groups[0].Label = "changed"
	assert.Equal(t, "Indigenous", Default().Groups[0].Label)
}

func TestLoad_Valid(t *testing.T) {
	p, err := Load(writePlan(t, validPlanYAML))
	require.NoError(t, err)

	assert.Equal(t, "Indigenous", p.KeyGroup.Label)
	assert.Equal(t, 0.5, p.ISquared)
	require.Len(t, p.Groups, 2)
	assert.Equal(t, Group{Label: "Rural residents", Proportion: 0.15}, p.Groups[1])
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/plan.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read plan file")
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("precision: 0.02\ni_square: 0.5\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
	assert.Contains(t, err.Error(), "i_square")
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("groups: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParse_DefaultConfidence(t *testing.T) {
	p, err := Parse([]byte("precision: 0.03\ni_squared: 0.25\navg_trial_size: 50\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.95, p.Confidence)
}

func TestParse_ExplicitZeroConfidence(t *testing.T) {
	p, err := Parse([]byte("precision: 0.03\nconfidence: 0\ni_squared: 0.25\navg_trial_size: 50\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.Confidence)

	assert.Equal(t, ErrSchemaViolation, fields(Validate(p))["confidence"])
}

func TestNormalize_LabelsNFC(t *testing.T) {
	decomposed := "Me\u0301tis"
	p := &Plan{
		KeyGroup: Group{Label: decomposed},
		Groups:   []Group{{Label: decomposed}},
	}
	p.Normalize()

	assert.Equal(t, "M\u00e9tis", p.KeyGroup.Label)
	assert.Equal(t, "M\u00e9tis", p.Groups[0].Label)
}

func TestParams(t *testing.T) {
	params := Default().Params()
	assert.Equal(t, 0.02, params.Precision)
	assert.Equal(t, 0.95, params.Confidence)
	assert.Equal(t, 0.5, params.ISquared)
	assert.Equal(t, 100.0, params.AvgTrialSize)
}

func TestMarshal_ParsesBack(t *testing.T) {
	data, err := Default().Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "key_group:")
	assert.Contains(t, string(data), "avg_trial_size: 100")

	p, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}
