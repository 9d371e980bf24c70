package params

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/inovacc/roundboard/internal/application"
)

const (
	// ConfigFileName is the ini file holding model.Config
	ConfigFileName = "roundboard.ini"

	// LogFileName is the optional append-only log file
	LogFileName = "roundboard.log"
)

var (
	mu         sync.Mutex
	AppdataDir string
)

// Resolve sets AppdataDir, creating it when missing. An empty override
// falls back to the application directory.
func Resolve(override string) (string, error) {
	mu.Lock()
	defer mu.Unlock()

	dir := override
	if dir == "" {
		appDir, err := application.GetApplicationDirectory()
		if err != nil {
			return "", err
		}

		dir = appDir
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}

	AppdataDir = dir

	return dir, nil
}

// ConfigPath returns the default config file location inside AppdataDir.
func ConfigPath() string {
	return filepath.Join(AppdataDir, ConfigFileName)
}

// LogPath returns the log file location inside AppdataDir.
func LogPath() string {
	return filepath.Join(AppdataDir, LogFileName)
}
