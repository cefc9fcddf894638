package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"radiotimeline/internal/pipeline"
	"radiotimeline/internal/preflight"
)

func newRangeCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "range <from YYYYMMDD> <to YYYYMMDD>",
		Short: "Classify every broadcast day in an inclusive date range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := preflight.Failed(preflight.RunAll(cfg)); err != nil {
				return fmt.Errorf("preflight: %w", err)
			}
			return ctx.withRunner(func(runner *pipeline.Runner) error {
				summary, runErr := runner.RunRange(cmd.Context(), args[0], args[1])
				if jsonOutput {
					if err := writeJSON(cmd, summary); err != nil {
						return err
					}
					return runErr
				}
				out := cmd.OutOrStdout()
				if len(summary.Days) > 0 {
					fmt.Fprintln(out, rangeView(summary).render())
				}
				fmt.Fprintf(out, "Processed %d, failed %d, skipped %d", summary.Processed, summary.Failed, summary.Skipped)
				if summary.MalformedRows > 0 {
					fmt.Fprintf(out, " (%d malformed rows skipped)", summary.MalformedRows)
				}
				fmt.Fprintln(out)
				return runErr
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the summary as JSON")
	return cmd
}
