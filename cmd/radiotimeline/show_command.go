package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"radiotimeline/internal/pipeline"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show [YYYYMMDD]",
		Short: "Show the stored result of a broadcast day, or list stored runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			if st == nil {
				return errors.New("run store is disabled; set store.enabled = true")
			}
			defer st.Close()

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				runs, err := st.ListRuns(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, runs)
				}
				fmt.Fprintln(out, runsView(runs).render())
				return nil
			}

			date := strings.TrimSpace(args[0])
			if _, err := pipeline.ParseDate(date); err != nil {
				return err
			}
			run, err := st.LatestRun(cmd.Context(), date)
			if err != nil {
				return err
			}
			if run == nil {
				return fmt.Errorf("no stored run for %s", date)
			}
			if jsonOutput {
				return writeJSON(cmd, run)
			}

			colorize := shouldColorize(out)
			lines := renderSectionHeader("Broadcast "+run.Date, colorize)
			lines = append(lines,
				renderStatusLine("Run", statusInfo, run.ID, colorize),
				renderStatusLine("Finished", statusInfo, run.FinishedAt.Local().Format("2006-01-02 15:04:05"), colorize),
				renderStatusLine("Segments", statusInfo, fmt.Sprintf("%d segments, %d diarization turns", run.SegmentCount, run.TurnCount), colorize),
			)
			lines = append(lines, speakerLines(run.DJ, run.Guest, colorize)...)
			fmt.Fprintln(out, strings.Join(lines, "\n"))
			fmt.Fprintln(out)
			fmt.Fprintln(out, rolesView(run.Roles).render())
			fmt.Fprintln(out)
			fmt.Fprintln(out, blocksView(run.Blocks).render())
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print as JSON")
	return cmd
}
