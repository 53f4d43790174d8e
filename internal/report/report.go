// Package report computes a plan and renders the result as the summary
// paragraph and per-group table.
package report

import (
	"fmt"

	"github.com/roach88/trialsize/internal/plan"
	"github.com/roach88/trialsize/internal/samplesize"
)

// Row is the computed requirement for one labelled group.
type Row struct {
	Label string `json:"label"`
	samplesize.Requirement
}

// Report is the complete result of computing a plan.
type Report struct {
	Params   samplesize.Params `json:"params"`
	ZScore   float64           `json:"z_score"`
	KeyGroup Row               `json:"key_group"`
	Groups   []Row             `json:"groups"`
}

// Build computes the key group and every group of p, in order.
// Errors are wrapped with the label of the group that failed.
func Build(p *plan.Plan) (*Report, error) {
	params := p.Params()
	z, err := samplesize.ZScore(params.Confidence)
	if err != nil {
		return nil, err
	}

	key, err := buildRow(params, p.KeyGroup)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(p.Groups))
	for _, g := range p.Groups {
		row, err := buildRow(params, g)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return &Report{
		Params:   params,
		ZScore:   z,
		KeyGroup: key,
		Groups:   rows,
	}, nil
}

func buildRow(params samplesize.Params, g plan.Group) (Row, error) {
	req, err := samplesize.Compute(params, g.Proportion)
	if err != nil {
		return Row{}, fmt.Errorf("group %q: %w", g.Label, err)
	}
	return Row{Label: g.Label, Requirement: req}, nil
}
