package config_test

import (
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/louisbranch/bignumbers/internal/platform/config"
)

// Exitf calls os.Exit, so the assertion runs in a child test process.
func TestExitfExitsWithCode1(t *testing.T) {
	if os.Getenv("BIGNUMBERS_EXITF_CHILD") == "1" {
		config.Exitf("calc: %s", "listen failed")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestExitfExitsWithCode1$")
	cmd.Env = append(os.Environ(), "BIGNUMBERS_EXITF_CHILD=1")
	out, err := cmd.CombinedOutput()

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *exec.ExitError, got %T: %v", err, err)
	}
	if exitErr.ExitCode() != 1 {
		t.Fatalf("exit code = %d, want 1", exitErr.ExitCode())
	}
	if !strings.Contains(string(out), "calc: listen failed") {
		t.Fatalf("stderr = %q", out)
	}
}
