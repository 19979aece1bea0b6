// Package lockfile keeps a single diary serve process per config directory.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/constants"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid

	ErrAlreadyRunning = errors.New("another diary server is already running")
	ErrMalformed      = errors.New("lockfile is malformed")
)

// Info is the content of a lockfile: the address being served and the owner PID.
type Info struct {
	Addr string
	PID  int
}

// Lock is a held lockfile.
type Lock struct {
	path string
	info Info
}

// Path returns the lockfile location inside configDir.
func Path(configDir string) string {
	return filepath.Join(configDir, constants.ServeLockfileName)
}

// Read parses the lockfile at path.
func Read(path string) (Info, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Info{}, err
	}
	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
		return Info{}, ErrMalformed
	}
	pid, err := strconv.Atoi(parts[1])
	if err != nil || pid <= 0 {
		return Info{}, fmt.Errorf("%w: invalid process ID", ErrMalformed)
	}
	return Info{Addr: parts[0], PID: pid}, nil
}

// Alive reports whether info's PID belongs to a running diary executable.
func Alive(info Info) bool {
	process, err := findProcessFunc(info.PID)
	if err != nil || process == nil {
		return false
	}
	return strings.HasPrefix(process.Executable(), constants.AppName)
}

// Acquire claims path for this process serving addr. A stale or malformed
// lockfile is replaced; a live owner yields ErrAlreadyRunning.
func Acquire(path, addr string) (*Lock, error) {
	if existing, err := Read(path); err == nil {
		if existing.PID != getpidFunc() && Alive(existing) {
			return nil, fmt.Errorf("%w (pid %d on %s)", ErrAlreadyRunning, existing.PID, existing.Addr)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create lockfile directory: %w", err)
	}
	info := Info{Addr: addr, PID: getpidFunc()}
	content := fmt.Sprintf("%s|%d", info.Addr, info.PID)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return &Lock{path: path, info: info}, nil
}

// Release removes the lockfile if it still names this process.
func (l *Lock) Release() error {
	current, err := Read(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err == nil && current.PID != l.info.PID {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}
