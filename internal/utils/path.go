package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// AppDir is the directory name used under the platform config root.
const AppDir = "hprompt"

// ConfigDir returns the platform config directory for hprompt
func ConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, AppDir)
		}
		return filepath.Join(homeDir, ".config", AppDir)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppDir)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", AppDir)
	default:
		return filepath.Join(homeDir, ".config", AppDir)
	}
}

// ResolveConfigDir returns the first directory whose config file can be written, with fallback priority:
// 1. platform config dir
// 2. ~/Library/Application Support/ (macOS)
// 3. current executable dir
func ResolveConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return GetExecutableDir()
	}
	primaryPath := ConfigDir(homeDir)
	if st := CheckFile(filepath.Join(primaryPath, ConfigFileName)); st.Writable {
		return primaryPath, nil
	}
	// Not conventional, fallback if ~/.config is not writable
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", AppDir)
	if st := CheckFile(filepath.Join(macOSPath, ConfigFileName)); st.Writable {
		return macOSPath, nil
	}
	execDir, err := GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}
