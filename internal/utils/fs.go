package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Files hprompt keeps in its config dir.
const (
	ConfigFileName  = "config.toml"
	HistoryFileName = "history"
)

// FileStatus tells whether a file can be written at Path.
type FileStatus struct {
	Path     string
	Exists   bool
	Writable bool
	Err      error
}

// FileExists reports whether path names a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// EnsureParentDir creates the directory holding path.
func EnsureParentDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// CheckFile creates the parent dir of path when missing, then tests that
// the file itself can be opened for writing and that a replacement can be
// created next to it.
func CheckFile(path string) FileStatus {
	st := FileStatus{Path: path}
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			st.Err = fmt.Errorf("%s is a directory", path)
			return st
		}
		st.Exists = true
	}
	if err := EnsureParentDir(path); err != nil {
		st.Err = err
		log.Warnf("Cannot create directory for %s: %v", path, err)
		return st
	}
	if st.Exists {
		f, err := os.OpenFile(path, os.O_WRONLY, 0)
		if err != nil {
			st.Err = err
			log.Debugf("Cannot write %s: %v", path, err)
			return st
		}
		f.Close()
	}
	tmp, err := createSibling(path)
	if err != nil {
		st.Err = err
		log.Debugf("Cannot write next to %s: %v", path, err)
		return st
	}
	tmp.Close()
	os.Remove(tmp.Name())
	st.Writable = true
	return st
}

func createSibling(path string) (*os.File, error) {
	return os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
}

// WriteFile replaces path with what write produces. The data lands in a
// temp file first; path is only swapped once it is complete.
func WriteFile(path string, write func(io.Writer) error) error {
	if err := EnsureParentDir(path); err != nil {
		return err
	}
	tmp, err := createSibling(path)
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// SaveTOMLFile encodes data as TOML into filePath.
func SaveTOMLFile(data any, filePath string) error {
	err := WriteFile(filePath, func(w io.Writer) error {
		return toml.NewEncoder(w).Encode(data)
	})
	if err != nil {
		log.Errorf("Failed to write %s: %v", filePath, err)
	}
	return err
}

// WriteLines writes one line per entry into path.
func WriteLines(path string, lines []string) error {
	return WriteFile(path, func(w io.Writer) error {
		bw := bufio.NewWriter(w)
		for _, line := range lines {
			bw.WriteString(line)
			bw.WriteByte('\n')
		}
		return bw.Flush()
	})
}

// GetAbsolutePath returns the absolute path of a file
func GetAbsolutePath(configPath string) string {
	if configPath == "" {
		return "unknown"
	}

	if !filepath.IsAbs(configPath) {
		if absPath, err := filepath.Abs(configPath); err == nil {
			return absPath
		}
	}
	return configPath
}

// HistoryPath is the history file kept beside configPath.
func HistoryPath(configPath string) string {
	if configPath == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(configPath), HistoryFileName)
}

// GetExecutableDir returns the directory of the current executable.
// Used as the last fallback for the config dir.
func GetExecutableDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(execPath), nil
}
