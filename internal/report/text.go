package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// GroupsHeading introduces the per-group table.
const GroupsHeading = "Sample size requirements for other key groups:"

// WriteText writes the summary paragraph, a blank line, and the group table.
func WriteText(w io.Writer, r *Report) error {
	var b strings.Builder
	b.WriteString(Paragraph(r))
	b.WriteString("\n\n")
	b.WriteString(GroupsHeading)
	b.WriteString("\n")
	for _, row := range r.Groups {
		b.WriteString(TableLine(row))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Paragraph returns the summary sentence for the key group. The confidence
// level printed is the one used in the calculation.
func Paragraph(r *Report) string {
	return fmt.Sprintf("We determined that a minimum of %d trials with a total of approximately %d participants "+
		"would be required to estimate the proportion of %s participants with a precision of ±%s%% "+
		"at a %s%% confidence level, accounting for anticipated between-study heterogeneity (I² = %s). "+
		"This sample size will allow meaningful inferences about underrepresentation across the "+
		"PROGRESS-PLUS characteristics.",
		r.KeyGroup.Trials,
		r.KeyGroup.AdjustedSampleSize,
		r.KeyGroup.Label,
		shortFloat(r.Params.Precision*100),
		shortFloat(r.Params.Confidence*100),
		decimalFloat(r.Params.ISquared),
	)
}

// TableLine returns one line of the group table.
func TableLine(row Row) string {
	return fmt.Sprintf("%s (expected proportion %s%%): %d trials, %d participants",
		row.Label,
		decimalFloat(row.Proportion*100),
		row.Trials,
		row.AdjustedSampleSize,
	)
}

// shortFloat formats v with no trailing zeros: 2, 95, 2.5.
// Float noise below 1e-9 is rounded away so 0.29*100 prints as 29.
func shortFloat(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e9)/1e9, 'f', -1, 64)
}

// decimalFloat is shortFloat with at least one decimal: 5.0, 12.5.
func decimalFloat(v float64) string {
	s := shortFloat(v)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
