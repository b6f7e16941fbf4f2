package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	chunkLines        = 500_000
	maxOpenChunks     = 0
	maxConcurrentJobs = 2
	falsePositiveRate = 0.001
	historyDisabled   = false
)

var tempDir = os.TempDir()

// historyPath and logPath resolve lazily so tests can redirect the XDG roots.
func historyPath() string {
	return filepath.Join(xdg.DataHome, configFileName, "history.db")
}

func logPath() string {
	return filepath.Join(xdg.StateHome, configFileName, "fman.log")
}
