package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("entry not found"),
			expected: "Error: entry not found",
		},
		{
			name:     "hinted error",
			err:      WithHint(errors.New("storage not initialized"), "run 'diary init' first"),
			expected: "Error: storage not initialized\n       run 'diary init' first",
		},
		{
			name:     "hint survives wrapping",
			err:      fmt.Errorf("loading store: %w", WithHint(errors.New("missing"), "check --db")),
			expected: "Error: loading store: missing\n       check --db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestWithHint(t *testing.T) {
	if WithHint(nil, "ignored") != nil {
		t.Error("WithHint(nil) should return nil")
	}

	base := errors.New("base")
	err := WithHint(base, "try again")
	if !errors.Is(err, base) {
		t.Error("hinted error should unwrap to the original error")
	}
	if Hint(err) != "try again" {
		t.Errorf("Hint() = %q, want %q", Hint(err), "try again")
	}
	if Hint(base) != "" {
		t.Errorf("Hint() on plain error = %q, want empty", Hint(base))
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("folder %q not found", "Travel")
	want := `Error: folder "Travel" not found`
	if got != want {
		t.Errorf("Formatf() = %q, want %q", got, want)
	}
}

// TestFatal runs Fatal in a helper process and checks the exit code and stderr.
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(WithHint(errors.New("test error"), "a hint"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	e, ok := err.(*exec.ExitError)
	if !ok || e.Success() {
		t.Fatalf("Fatal() did not exit with error: %v", err)
	}
	if e.ExitCode() != 1 {
		t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
	}
	if !strings.Contains(stderr.String(), "Error: test error") || !strings.Contains(stderr.String(), "a hint") {
		t.Errorf("Fatal() stderr = %q, want error and hint", stderr.String())
	}
}
