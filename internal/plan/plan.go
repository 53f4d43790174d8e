// Package plan defines the inputs of a trial-size calculation: the key
// group reported in the summary paragraph, the shared statistical
// parameters, and the ordered list of groups tabulated below it.
//
// A plan is either the built-in Default or a YAML file read with Load.
// Load rejects unknown fields and Validate checks every value against an
// embedded CUE schema, reporting all violations together.
package plan

import (
	"bytes"
	"fmt"
	"os"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/roach88/trialsize/internal/samplesize"
)

// Group is a named population subgroup with its expected proportion.
type Group struct {
	// Label names the group in the report (e.g. "Rural residents").
	Label string `yaml:"label" json:"label"`

	// Proportion is the expected share of participants in [0, 1].
	Proportion float64 `yaml:"proportion" json:"proportion"`
}

// Plan holds every input of a calculation.
type Plan struct {
	// KeyGroup is the group described in the summary paragraph.
	KeyGroup Group `yaml:"key_group" json:"key_group"`

	// Precision is the absolute half-width of the confidence interval.
	Precision float64 `yaml:"precision" json:"precision"`

	// Confidence is the confidence level. Parse fills in 0.95 when the
	// field is absent; an explicit value, zero included, is kept.
	Confidence float64 `yaml:"confidence" json:"confidence"`

	// ISquared is the expected between-study heterogeneity in [0, 1).
	ISquared float64 `yaml:"i_squared" json:"i_squared"`

	// AvgTrialSize is the average number of participants per trial.
	AvgTrialSize float64 `yaml:"avg_trial_size" json:"avg_trial_size"`

	// Groups are tabulated in the order given.
	Groups []Group `yaml:"groups" json:"groups"`
}

// Default returns the built-in plan: Indigenous participants at 5%, ±2%
// precision, 95% confidence, I² of 0.5 and 100 participants per trial.
func Default() *Plan {
	return &Plan{
		KeyGroup:     Group{Label: "Indigenous", Proportion: 0.05},
		Precision:    0.02,
		Confidence:   samplesize.DefaultConfidence,
		ISquared:     0.5,
		AvgTrialSize: 100,
		Groups: []Group{
			{Label: "Indigenous", Proportion: 0.05},
			{Label: "Rural residents", Proportion: 0.15},
			{Label: "Preferred language other than English", Proportion: 0.20},
			{Label: "Low socioeconomic status", Proportion: 0.25},
		},
	}
}

// Load reads and parses a plan YAML file.
// Returns an error if the file doesn't exist, is malformed, or contains
// unknown fields. The returned plan is normalized but not validated.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a plan from YAML bytes. A missing confidence field means
// DefaultConfidence.
func Parse(data []byte) (*Plan, error) {
	// Decode leaves absent fields untouched.
	p := Plan{Confidence: samplesize.DefaultConfidence}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject typos like "i_square:"
	if err := decoder.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	p.Normalize()
	return &p, nil
}

// Normalize puts labels in Unicode NFC, so visually identical labels
// compare equal.
func (p *Plan) Normalize() {
	p.KeyGroup.Label = norm.NFC.String(p.KeyGroup.Label)
	for i := range p.Groups {
		p.Groups[i].Label = norm.NFC.String(p.Groups[i].Label)
	}
}

// Params returns the parameters shared by every group.
func (p *Plan) Params() samplesize.Params {
	return samplesize.Params{
		Precision:    p.Precision,
		Confidence:   p.Confidence,
		ISquared:     p.ISquared,
		AvgTrialSize: p.AvgTrialSize,
	}
}

// Marshal encodes the plan as YAML.
func (p *Plan) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("failed to encode plan: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode plan: %w", err)
	}
	return buf.Bytes(), nil
}
