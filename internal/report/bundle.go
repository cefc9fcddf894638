package report

import (
	"fmt"
	"io"
	"path/filepath"

	"radiotimeline/internal/fileutil"
	"radiotimeline/internal/roles"
	"radiotimeline/internal/timeline"
)

// Paths names the output files of one broadcast day.
type Paths struct {
	Enriched string
	Roles    string
	Labeled  string
	Blocks   string
}

// PathsFor returns the output file names for date inside dir.
func PathsFor(dir, date string) Paths {
	return Paths{
		Enriched: filepath.Join(dir, date+"_with_speaker_ratio.csv"),
		Roles:    filepath.Join(dir, date+"-dj_stats.csv"),
		Labeled:  filepath.Join(dir, date+"-inference_result_ratio.csv"),
		Blocks:   filepath.Join(dir, date+"-blocks.csv"),
	}
}

// Bundle holds every output table of one broadcast day.
type Bundle struct {
	Segments []timeline.Segment
	Roles    []roles.SpeakerStats
	Labeled  []timeline.LabeledSegment
	Blocks   []timeline.Block
}

// WriteAll renders every table before touching the filesystem, then writes
// each file atomically.
func WriteAll(paths Paths, b Bundle) error {
	type output struct {
		path  string
		write func(io.Writer) error
	}
	outputs := []output{
		{paths.Enriched, func(w io.Writer) error { return WriteEnriched(w, b.Segments) }},
		{paths.Roles, func(w io.Writer) error { return WriteRoles(w, b.Roles) }},
		{paths.Labeled, func(w io.Writer) error { return WriteLabeled(w, b.Labeled) }},
		{paths.Blocks, func(w io.Writer) error { return WriteBlocks(w, b.Blocks) }},
	}

	rendered := make([][]byte, len(outputs))
	for i, out := range outputs {
		data, err := render(out.write)
		if err != nil {
			return fmt.Errorf("render %s: %w", filepath.Base(out.path), err)
		}
		rendered[i] = data
	}
	for i, out := range outputs {
		if err := fileutil.WriteFileAtomic(out.path, rendered[i], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", filepath.Base(out.path), err)
		}
	}
	return nil
}
