package config

import (
	"os"
	"path/filepath"
	"reflect"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const configFileName = "fman"

// Config holds the configuration options for the application.
type Config struct {
	Sort    *SortConfig    `yaml:"sort,omitempty"`
	Batch   *BatchConfig   `yaml:"batch,omitempty"`
	Dedup   *DedupConfig   `yaml:"dedup,omitempty"`
	History *HistoryConfig `yaml:"history,omitempty"`
	Log     *LogConfig     `yaml:"log,omitempty"`
}

// SortConfig holds the defaults applied to every sort job.
type SortConfig struct {
	ChunkLines    int    `yaml:"chunkLines,omitempty"`
	TempDir       string `yaml:"tempDir,omitempty"`
	MaxOpenChunks int    `yaml:"maxOpenChunks,omitempty"`
}

// BatchConfig holds configuration options for manifest runs.
type BatchConfig struct {
	MaxConcurrentJobs int `yaml:"maxConcurrentJobs,omitempty"`
}

// DedupConfig holds configuration options for approximate deduplication.
type DedupConfig struct {
	FalsePositiveRate float64 `yaml:"falsePositiveRate,omitempty"`
}

// HistoryConfig controls the job history database.
type HistoryConfig struct {
	Path     string `yaml:"path,omitempty"`
	Disabled bool   `yaml:"disabled,omitempty"`
}

// LogConfig controls the debug log file.
type LogConfig struct {
	Path string `yaml:"path,omitempty"`
}

// Path returns the location of the configuration file.
func Path() string {
	return filepath.Join(xdg.ConfigHome, configFileName)
}

// GetConfig reads the configuration file and returns a Config struct.
// If the configuration file does not exist, it returns the default configuration.
func GetConfig() (*Config, error) {
	defaults := DefaultConfig()

	b, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return &defaults, nil
		}

		return nil, err
	}

	if len(b) == 0 {
		return &defaults, nil
	}

	var cfg Config

	err = yaml.Unmarshal(b, &cfg)
	if err != nil {
		return nil, err
	}

	sortCfg := zeroOr(cfg.Sort, defaults.Sort)
	batchCfg := zeroOr(cfg.Batch, defaults.Batch)
	dedupCfg := zeroOr(cfg.Dedup, defaults.Dedup)
	historyCfg := zeroOr(cfg.History, defaults.History)
	logCfg := zeroOr(cfg.Log, defaults.Log)

	return &Config{
		Sort: &SortConfig{
			ChunkLines:    zeroOr(sortCfg.ChunkLines, defaults.Sort.ChunkLines),
			TempDir:       zeroOr(sortCfg.TempDir, defaults.Sort.TempDir),
			MaxOpenChunks: zeroOr(sortCfg.MaxOpenChunks, defaults.Sort.MaxOpenChunks),
		},
		Batch: &BatchConfig{
			MaxConcurrentJobs: zeroOr(batchCfg.MaxConcurrentJobs, defaults.Batch.MaxConcurrentJobs),
		},
		Dedup: &DedupConfig{
			FalsePositiveRate: zeroOr(dedupCfg.FalsePositiveRate, defaults.Dedup.FalsePositiveRate),
		},
		History: &HistoryConfig{
			Path:     zeroOr(historyCfg.Path, defaults.History.Path),
			Disabled: zeroOr(historyCfg.Disabled, defaults.History.Disabled),
		},
		Log: &LogConfig{
			Path: zeroOr(logCfg.Path, defaults.Log.Path),
		},
	}, nil
}

func DefaultConfig() Config {
	return Config{
		Sort: &SortConfig{
			ChunkLines:    chunkLines,
			TempDir:       tempDir,
			MaxOpenChunks: maxOpenChunks,
		},
		Batch: &BatchConfig{
			MaxConcurrentJobs: maxConcurrentJobs,
		},
		Dedup: &DedupConfig{
			FalsePositiveRate: falsePositiveRate,
		},
		History: &HistoryConfig{
			Path:     historyPath(),
			Disabled: historyDisabled,
		},
		Log: &LogConfig{
			Path: logPath(),
		},
	}
}

// zeroOr returns def if v is the zero value for its type.
func zeroOr[T any](v, def T) T {
	if reflect.ValueOf(v).IsZero() {
		return def
	}

	return v
}
