// Package samplesize computes participant and trial requirements for a
// meta-analysis that estimates a proportion.
//
// The calculation is a linear pipeline of three pure functions:
//
//	ProportionSampleSize    (p, precision, confidence) -> n
//	HeterogeneityAdjustment (n, I²)                    -> adjusted n
//	TrialCount              (adjusted n, trial size)   -> trials
//
// Every result is rounded up. Sample sizes use the normal approximation to
// the binomial distribution, and the heterogeneity adjustment is the usual
// variance inflation factor 1/(1-I²).
//
// Degenerate parameters (zero precision, I² of one, empty trials) return a
// *ParamError instead of NaN or Inf. Use IsInvalidParameter or
// errors.Is(err, ErrInvalidParameter) to detect them.
package samplesize
