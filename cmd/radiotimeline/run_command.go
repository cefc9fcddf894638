package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"radiotimeline/internal/pipeline"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "run <YYYYMMDD>",
		Short: "Classify one broadcast day and write its result tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRunner(func(runner *pipeline.Runner) error {
				res, err := runner.RunDay(cmd.Context(), strings.TrimSpace(args[0]))
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if jsonOutput {
					return writeJSON(cmd, res)
				}
				colorize := shouldColorize(out)
				lines := dayResultLines(res, colorize)
				fmt.Fprintln(out, strings.Join(lines, "\n"))
				fmt.Fprintln(out)
				fmt.Fprintln(out, rolesView(res.Roles).render())
				fmt.Fprintln(out)
				fmt.Fprintln(out, blocksView(res.Blocks).render())
				fmt.Fprintln(out)
				outputs := []string{
					renderStatusLine("Enriched table", statusOK, res.Outputs.Enriched, colorize),
					renderStatusLine("Speaker roles", statusOK, res.Outputs.Roles, colorize),
					renderStatusLine("Labeled table", statusOK, res.Outputs.Labeled, colorize),
					renderStatusLine("Blocks table", statusOK, res.Outputs.Blocks, colorize),
				}
				if res.Stored {
					outputs = append(outputs, renderStatusLine("Run store", statusOK, "saved", colorize))
				}
				fmt.Fprintln(out, strings.Join(outputs, "\n"))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
	return cmd
}
