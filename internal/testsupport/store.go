package testsupport

import (
	"testing"

	"radiotimeline/internal/config"
	"radiotimeline/internal/store"
)

// MustOpenStore opens the run store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	s, err := store.Open(cfg.DatabasePath())
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})
	return s
}
