// Package pipeline runs the classification stages for broadcast days.
//
// A day run holds an exclusive file lock on the day directory, loads the
// segment table (converting the SRT transcript first when only that exists)
// and the diarization turns, runs overlap resolution, role inference,
// segment labeling and block assembly in memory, and only then writes the
// four output tables and the stored run. A failed day leaves no new output.
//
// RunRange drives RunDay over an inclusive date range, skipping dates with
// no broadcast directory and continuing past failed days.
package pipeline
