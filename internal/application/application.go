package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "roundboard"

	// AppExeName is the executable name (without extension)
	AppExeName = "roundboard"

	// AppExeNameWindows is the executable name on Windows
	AppExeNameWindows = "roundboard.exe"

	// HomeEnv overrides the application directory when set
	HomeEnv = "ROUNDBOARD_HOME"
)

var (
	once   sync.Once
	appDir string
	errDir error
)

// GetApplicationDirectory returns the roundboard data directory path.
// ROUNDBOARD_HOME wins when set.
// Linux: ~/.config/roundboard (via os.UserConfigDir)
// Windows: C:\Users\{username}\AppData\Local\roundboard (via os.UserCacheDir)
func GetApplicationDirectory() (string, error) {
	once.Do(lazyLoad)

	if errDir != nil {
		return "", errDir
	}

	return appDir, errDir
}

// ExecutableName returns the platform specific executable name.
func ExecutableName() string {
	if runtime.GOOS == "windows" {
		return AppExeNameWindows
	}

	return AppExeName
}

func lazyLoad() {
	if dir := os.Getenv(HomeEnv); dir != "" {
		appDir = dir
		return
	}

	var (
		baseDir string
		err     error
	)

	switch runtime.GOOS {
	case "windows":
		// Windows: use AppData\Local (via UserCacheDir)
		baseDir, err = os.UserCacheDir()
	default:
		// Linux/others: use ~/.config (via UserConfigDir)
		baseDir, err = os.UserConfigDir()
	}

	if err != nil {
		errDir = fmt.Errorf("failed to get config directory: %w", err)
	}

	appDir = filepath.Join(baseDir, AppName)
}
