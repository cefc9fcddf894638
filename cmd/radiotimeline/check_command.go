package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"radiotimeline/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify directories and free space before processing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			results := preflight.RunAll(cfg)
			lines := renderSectionHeader("Preflight", colorize)
			if ctx.configPath != "" {
				lines = append(lines, renderStatusLine("Config", statusInfo, ctx.configPath, colorize))
			}
			for _, r := range results {
				lines = append(lines, renderStatusLine(r.Name, passFail(r.Passed), r.Detail, colorize))
			}
			fmt.Fprintln(out, strings.Join(lines, "\n"))
			return preflight.Failed(results)
		},
	}
}
