package preflight

import (
	"errors"
	"fmt"

	"radiotimeline/internal/config"
)

// MinFreeBytes is the free space required where outputs and state are written.
const MinFreeBytes = 64 << 20

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryReadable("Broadcast directory", cfg.Paths.BaseDir),
		CheckFreeSpace("Broadcast disk space", cfg.Paths.BaseDir, MinFreeBytes),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}
	if cfg.Store.Enabled {
		results = append(results,
			CheckDirectoryAccess("State directory", cfg.Paths.StateDir),
			CheckFreeSpace("State disk space", cfg.Paths.StateDir, MinFreeBytes),
		)
	}
	return results
}

// Failed joins the details of every failed result, or returns nil.
func Failed(results []Result) error {
	var errs []error
	for _, r := range results {
		if !r.Passed {
			errs = append(errs, fmt.Errorf("%s: %s", r.Name, r.Detail))
		}
	}
	return errors.Join(errs...)
}
