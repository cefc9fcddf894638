package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"radiotimeline/internal/config"
	"radiotimeline/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	t.Setenv(config.BaseDirEnv, "")
	cfg := testsupport.NewConfig(t)
	if err := os.MkdirAll(cfg.Paths.BaseDir, 0o755); err != nil {
		t.Fatalf("mkdir base dir: %v", err)
	}
	configPath := filepath.Join(t.TempDir(), "radiotimeline.toml")
	writeTestConfig(t, configPath, cfg)
	return &cliTestEnv{cfg: cfg, configPath: configPath}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\nbase_dir = %q\nlog_dir = %q\nstate_dir = %q\n\n[store]\nenabled = %t\n\n[logging]\nlevel = \"error\"\n",
		cfg.Paths.BaseDir,
		cfg.Paths.LogDir,
		cfg.Paths.StateDir,
		cfg.Store.Enabled,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
