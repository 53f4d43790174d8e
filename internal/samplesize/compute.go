package samplesize

// Params holds the inputs shared by every group of a calculation.
type Params struct {
	Precision    float64 `json:"precision"`
	Confidence   float64 `json:"confidence"`
	ISquared     float64 `json:"i_squared"`
	AvgTrialSize float64 `json:"avg_trial_size"`
}

// Requirement is the computed result for a single expected proportion.
type Requirement struct {
	Proportion         float64 `json:"proportion"`
	SampleSize         int     `json:"sample_size"`
	AdjustedSampleSize int     `json:"adjusted_sample_size"`
	Trials             int     `json:"trials"`
}

// Compute runs the full pipeline for one proportion.
func Compute(params Params, proportion float64) (Requirement, error) {
	n, err := ProportionSampleSize(proportion, params.Precision, params.Confidence)
	if err != nil {
		return Requirement{}, err
	}
	adjusted, err := HeterogeneityAdjustment(n, params.ISquared)
	if err != nil {
		return Requirement{}, err
	}
	trials, err := TrialCount(adjusted, params.AvgTrialSize)
	if err != nil {
		return Requirement{}, err
	}

	return Requirement{
		Proportion:         proportion,
		SampleSize:         n,
		AdjustedSampleSize: adjusted,
		Trials:             trials,
	}, nil
}
