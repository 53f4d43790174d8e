package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/trialsize/internal/plan"
	"github.com/roach88/trialsize/internal/report"
	"github.com/roach88/trialsize/internal/samplesize"
)

// EstimateOptions holds flags for the estimate command.
// Numeric overrides only apply when the flag was set explicitly.
type EstimateOptions struct {
	ConfigPath string
	Precision  float64
	Confidence float64
	ISquared   float64
	TrialSize  float64
	Group      string
	Proportion float64
}

// NewEstimateCommand creates the estimate command.
func NewEstimateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EstimateOptions{}

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Compute required participants and trials",
		Long: `Compute the participants and trials needed to estimate each group's
proportion with the requested precision and confidence, inflated for
between-study heterogeneity.

Without --config the built-in plan is used. Flags override plan values.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEstimate(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "plan YAML file")
	cmd.Flags().Float64Var(&opts.Precision, "precision", 0, "half-width of the confidence interval (e.g. 0.02)")
	cmd.Flags().Float64Var(&opts.Confidence, "confidence", 0, "confidence level in (0, 1)")
	cmd.Flags().Float64Var(&opts.ISquared, "i-squared", 0, "expected heterogeneity I² in [0, 1)")
	cmd.Flags().Float64Var(&opts.TrialSize, "trial-size", 0, "average participants per trial")
	cmd.Flags().StringVar(&opts.Group, "group", "", "key group label for the summary paragraph")
	cmd.Flags().Float64Var(&opts.Proportion, "proportion", 0, "expected proportion of the key group")

	return cmd
}

func runEstimate(rootOpts *RootOptions, opts *EstimateOptions, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)
	log := formatter.Logger()
	defer func() { _ = log.Sync() }()

	p, err := loadPlan(opts.ConfigPath, formatter)
	if err != nil {
		return err
	}

	if err := applyOverrides(p, opts, cmd); err != nil {
		_ = formatter.Error(ErrCodeInvalidFlag, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeInvalidFlag, err)
	}

	r, err := report.Build(p)
	if err != nil {
		if samplesize.IsInvalidParameter(err) {
			_ = formatter.Error(ErrCodeInvalidParameter, err.Error(), nil)
			return WrapExitError(ExitFailure, ErrCodeInvalidParameter, err)
		}
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitFailure, ErrCodeGeneric, err)
	}

	log.Debug("key group",
		zap.String("label", r.KeyGroup.Label),
		zap.Float64("z", r.ZScore),
		zap.Int("sample_size", r.KeyGroup.SampleSize),
		zap.Int("adjusted_sample_size", r.KeyGroup.AdjustedSampleSize),
		zap.Int("trials", r.KeyGroup.Trials))
	for _, row := range r.Groups {
		log.Debug("group",
			zap.String("label", row.Label),
			zap.Int("sample_size", row.SampleSize),
			zap.Int("adjusted_sample_size", row.AdjustedSampleSize),
			zap.Int("trials", row.Trials))
	}

	if formatter.Format == "json" {
		return formatter.Success(r)
	}
	return report.WriteText(formatter.Writer, r)
}

// loadPlan returns the built-in plan when path is empty.
func loadPlan(path string, formatter *OutputFormatter) (*plan.Plan, error) {
	if path == "" {
		formatter.VerboseLog("Using built-in plan")
		return plan.Default(), nil
	}

	formatter.VerboseLog("Loading plan from %s", path)
	p, err := plan.Load(path)
	if err != nil {
		code := ErrCodeLoadFailed
		if errors.Is(err, fs.ErrNotExist) {
			code = ErrCodeNotFound
		}
		_ = formatter.Error(code, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, code, err)
	}
	return p, nil
}

// applyOverrides copies explicitly set flags onto the plan.
func applyOverrides(p *plan.Plan, opts *EstimateOptions, cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("precision") {
		p.Precision = opts.Precision
	}
	if flags.Changed("confidence") {
		p.Confidence = opts.Confidence
	}
	if flags.Changed("i-squared") {
		p.ISquared = opts.ISquared
	}
	if flags.Changed("trial-size") {
		p.AvgTrialSize = opts.TrialSize
	}

	if !flags.Changed("group") {
		if flags.Changed("proportion") {
			p.KeyGroup.Proportion = opts.Proportion
		}
		return nil
	}

	key := plan.Group{Label: norm.NFC.String(opts.Group)}
	switch {
	case flags.Changed("proportion"):
		key.Proportion = opts.Proportion
	default:
		g, ok := findGroup(p, key.Label)
		if !ok {
			return fmt.Errorf("group %q is not in the plan: set --proportion", opts.Group)
		}
		key.Proportion = g.Proportion
	}
	p.KeyGroup = key
	return nil
}

func findGroup(p *plan.Plan, label string) (plan.Group, bool) {
	for _, g := range p.Groups {
		if g.Label == label {
			return g, true
		}
	}
	return plan.Group{}, false
}
