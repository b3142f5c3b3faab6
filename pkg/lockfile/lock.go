// Package lockfile guards an install root against concurrent orchestrations.
// None of the check-then-create steps in an install are atomic, so a second
// mrig process running at the same time could interleave with them; the lock
// file makes the whole orchestration single-actor.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// Acquire locks path by creating it exclusively with this process's PID.
// If the lock exists and its owner is still alive, Acquire waits. A lock
// owned by a dead process is treated as stale, cleaned up, and re-acquired.
// Returns an unlock function.
func Acquire(path string) (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create parent dir for lock: %w", err)
	}

	for {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			pid := os.Getpid()
			ts := time.Now().Format(time.RFC3339)
			if _, err := fmt.Fprintf(f, "%s %d", ts, pid); err != nil {
				f.Close()
				os.Remove(path)
				return nil, fmt.Errorf("failed to write lock file: %w", err)
			}
			f.Close()

			return func() error {
				return os.Remove(path)
			}, nil
		}

		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}

		// Lock file exists. Check if stale.
		content, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			time.Sleep(100 * time.Millisecond)
			continue
		}

		parts := strings.Split(strings.TrimSpace(string(content)), " ")
		if len(parts) < 2 {
			// Corrupt lock file, treat as stale.
			os.Remove(path)
			continue
		}

		pid, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil {
			os.Remove(path)
			continue
		}

		if isPidAlive(pid) {
			time.Sleep(200 * time.Millisecond)
			continue
		}

		// Owner is dead. Remove may race with another waiter, that's fine.
		os.Remove(path)
	}
}

func isPidAlive(pid int) bool {
	if pid <= 0 {
		return false
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	err = proc.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}

	if errors.Is(err, syscall.ESRCH) || errors.Is(err, os.ErrProcessDone) {
		return false
	}

	// EPERM or similar: process exists but is not ours. Assume alive.
	return true
}
