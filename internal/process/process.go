// Package process finds running roundboard watchers.
package process

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/gops/goprocess"
)

// PIDFileName is written into the data directory by a running watcher.
const PIDFileName = "roundboard.pid"

type Process struct {
	PID          int
	PPID         int
	Exec         string
	Path         string
	BuildVersion string
}

// Finder lists the Go processes of the machine.
type Finder struct {
	procList []Process
	findAll  func() []goprocess.P
}

func NewFinder() *Finder {
	return &Finder{findAll: goprocess.FindAll}
}

// ListProcesses refreshes the process list.
func (f *Finder) ListProcesses() error {
	f.procList = f.procList[:0]

	for _, proc := range f.findAll() {
		f.procList = append(f.procList, Process{
			PID:          proc.PID,
			PPID:         proc.PPID,
			Exec:         proc.Exec,
			Path:         proc.Path,
			BuildVersion: proc.BuildVersion,
		})
	}

	return nil
}

func (f *Finder) IsProcessRunning(pid int) bool {
	for _, proc := range f.procList {
		if proc.PID == pid {
			return true
		}
	}

	return false
}

// Matching returns the processes whose executable name or path contains name.
func (f *Finder) Matching(name string) []Process {
	name = strings.ToLower(name)

	var out []Process

	for _, proc := range f.procList {
		if strings.Contains(strings.ToLower(proc.Exec), name) || strings.Contains(strings.ToLower(proc.Path), name) {
			out = append(out, proc)
		}
	}

	return out
}

// WritePIDFile records the current process in dir and returns a func that
// removes the file again.
func WritePIDFile(dir string) (func() error, error) {
	path := filepath.Join(dir, PIDFileName)

	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o600); err != nil {
		return nil, fmt.Errorf("write pid file: %w", err)
	}

	return func() error {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		return nil
	}, nil
}

// ReadPIDFile returns the PID recorded in dir, 0 when there is none.
func ReadPIDFile(dir string) (int, error) {
	data, err := os.ReadFile(filepath.Join(dir, PIDFileName))
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}

	if err != nil {
		return 0, err
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("corrupt pid file: %w", err)
	}

	return pid, nil
}
