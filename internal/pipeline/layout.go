package pipeline

import (
	"fmt"
	"path/filepath"
	"time"

	"radiotimeline/internal/config"
	"radiotimeline/internal/report"
)

// DateLayout is the broadcast date format used for directory and file names.
const DateLayout = "20060102"

const lockFileName = ".radiotimeline.lock"

// Inputs names the input artifacts of one broadcast day.
type Inputs struct {
	Dir         string
	Segments    string
	Diarization string
	SRT         string
}

// InputsFor returns the input artifact paths for date.
func InputsFor(cfg *config.Config, date string) Inputs {
	dir := cfg.DayDir(date)
	return Inputs{
		Dir:         dir,
		Segments:    filepath.Join(dir, date+".csv"),
		Diarization: filepath.Join(dir, date+"_diarization.txt"),
		SRT:         filepath.Join(dir, date+".srt"),
	}
}

// OutputsFor returns the output table paths for date.
func OutputsFor(cfg *config.Config, date string) report.Paths {
	return report.PathsFor(cfg.DayDir(date), date)
}

// ParseDate validates a YYYYMMDD broadcast date.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid broadcast date %q (want YYYYMMDD)", value)
	}
	return t, nil
}
