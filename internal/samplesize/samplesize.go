package samplesize

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultConfidence is the confidence level used when none is given.
const DefaultConfidence = 0.95

// ceilTolerance absorbs floating point noise just above an integer, so
// 100/(1-0.2) is 125 and not 126.
const ceilTolerance = 1e-9

// ZScore returns the two-sided critical value of the standard normal
// distribution for the given confidence level.
func ZScore(confidence float64) (float64, error) {
	if math.IsNaN(confidence) || confidence <= 0 || confidence >= 1 {
		return 0, invalidParam("confidence", confidence, "must be in (0, 1)")
	}
	return distuv.UnitNormal.Quantile(1 - (1-confidence)/2), nil
}

// ProportionSampleSize returns the minimum sample size that estimates a
// population proportion within ±precision at the given confidence level:
//
//	n = ⌈z² · p · (1-p) / precision²⌉
func ProportionSampleSize(proportion, precision, confidence float64) (int, error) {
	if math.IsNaN(proportion) || proportion < 0 || proportion > 1 {
		return 0, invalidParam("proportion", proportion, "must be in [0, 1]")
	}
	if math.IsNaN(precision) || math.IsInf(precision, 0) || precision <= 0 {
		return 0, invalidParam("precision", precision, "must be a finite number > 0")
	}
	z, err := ZScore(confidence)
	if err != nil {
		return 0, err
	}

	n := z * z * proportion * (1 - proportion) / (precision * precision)
	return ceilInt("precision", precision, n)
}

// HeterogeneityAdjustment inflates a sample size by 1/(1-I²) to cover
// between-study variance. The result is never smaller than sampleSize.
func HeterogeneityAdjustment(sampleSize int, iSquared float64) (int, error) {
	if sampleSize < 0 {
		return 0, invalidParam("sample_size", float64(sampleSize), "must be >= 0")
	}
	if math.IsNaN(iSquared) || iSquared < 0 || iSquared >= 1 {
		return 0, invalidParam("i_squared", iSquared, "must be in [0, 1)")
	}
	return ceilInt("sample_size", float64(sampleSize), float64(sampleSize)/(1-iSquared))
}

// TrialCount returns how many trials of avgTrialSize participants are needed
// to accumulate adjustedSampleSize participants.
func TrialCount(adjustedSampleSize int, avgTrialSize float64) (int, error) {
	if adjustedSampleSize < 0 {
		return 0, invalidParam("sample_size", float64(adjustedSampleSize), "must be >= 0")
	}
	if math.IsNaN(avgTrialSize) || math.IsInf(avgTrialSize, 0) || avgTrialSize <= 0 {
		return 0, invalidParam("avg_trial_size", avgTrialSize, "must be a finite number > 0")
	}
	return ceilInt("avg_trial_size", avgTrialSize, float64(adjustedSampleSize)/avgTrialSize)
}

// ceilInt rounds v up. A result that does not fit in an int is reported
// against the parameter that drove it.
func ceilInt(param string, value, v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v >= math.MaxInt {
		return 0, invalidParam(param, value, "result overflows int")
	}
	return int(math.Ceil(v - ceilTolerance)), nil
}
