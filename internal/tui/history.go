package tui

import (
	"bufio"
	"os"

	"github.com/bastiangx/hprompt/internal/utils"
	"github.com/charmbracelet/log"
)

const maxHistory = 500

func loadHistory(path string) []string {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := sc.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > maxHistory {
		lines = lines[len(lines)-maxHistory:]
	}
	return lines
}

// historyFile returns path when history can be persisted there, or "" to
// keep it in memory only.
func historyFile(path string) string {
	if path == "" {
		return ""
	}
	if st := utils.CheckFile(path); !st.Writable {
		log.Warnf("History will not be saved to %s: %v", path, st.Err)
		return ""
	}
	return path
}

func saveHistory(path string, lines []string) {
	if path == "" {
		return
	}
	if len(lines) > maxHistory {
		lines = lines[len(lines)-maxHistory:]
	}
	if err := utils.WriteLines(path, lines); err != nil {
		log.Warnf("Could not save history: %v", err)
	}
}
