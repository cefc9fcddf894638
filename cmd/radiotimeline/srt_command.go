package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"radiotimeline/internal/fileutil"
	"radiotimeline/internal/ingest"
)

func newSRTCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "srt2csv <input.srt> [output.csv]",
		Short: "Convert an SRT transcript into a segment table",
		Long: "Convert an SRT transcript into a segment table. Long cues and long gaps\n" +
			"between cues become music segments; the rest become speech.\n" +
			"The output defaults to the input path with a .csv extension.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			input := args[0]
			output := strings.TrimSuffix(input, filepath.Ext(input)) + ".csv"
			if len(args) == 2 {
				output = args[1]
			}
			if filepath.Clean(output) == filepath.Clean(input) {
				return fmt.Errorf("output path %s would overwrite the input", output)
			}

			f, err := os.Open(input)
			if err != nil {
				return fmt.Errorf("open srt: %w", err)
			}
			defer f.Close()

			segments, issues, err := ingest.ConvertSRT(f, ingest.SRTOptions{
				MusicMinSeconds:    cfg.SRT.MusicMinSeconds,
				GapMusicMinSeconds: cfg.SRT.GapMusicMinSeconds,
			})
			if err != nil {
				return err
			}
			if err := fileutil.WriteAtomic(output, 0o644, func(w io.Writer) error {
				return ingest.WriteSegments(w, segments)
			}); err != nil {
				return fmt.Errorf("write segment table: %w", err)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintln(out, renderStatusLine("Segment table", statusOK, fmt.Sprintf("%s (%d segments)", output, len(segments)), colorize))
			if issues.Len() > 0 {
				fmt.Fprintln(out, renderStatusLine("Skipped cues", statusWarn, fmt.Sprintf("%d", issues.Len()), colorize))
				for _, issue := range issues {
					fmt.Fprintf(out, "%s%s\n", statusIndent+statusIndent, issue.Error())
				}
			}
			return nil
		},
	}
}
