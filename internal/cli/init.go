package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/trialsize/internal/plan"
)

// NewInitCommand creates the init command, which writes the built-in plan
// as YAML to use as a starting point for --config.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:           "init",
		Short:         "Write the built-in plan as YAML",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(rootOpts, output, cmd)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default stdout)")

	return cmd
}

func runInit(opts *RootOptions, output string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	data, err := plan.Default().Marshal()
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitFailure, ErrCodeGeneric, err)
	}

	if output == "" {
		_, err := formatter.Writer.Write(data)
		return err
	}

	// O_EXCL: never overwrite an existing plan.
	f, err := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeWriteFailed, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeWriteFailed, err)
	}
	if err := f.Close(); err != nil {
		return WrapExitError(ExitCommandError, ErrCodeWriteFailed, err)
	}

	formatter.VerboseLog("Wrote plan to %s", output)
	if formatter.Format == "json" {
		return formatter.Success(map[string]string{"path": output})
	}
	return formatter.Success(fmt.Sprintf("✓ Wrote %s", output))
}
