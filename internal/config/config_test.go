package config_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/adrg/xdg"

	cfg "github.com/NamanBalaji/fman/internal/config"
)

func withTempXDG(t *testing.T) (restore func(), dir string, file string) {
	t.Helper()
	origConfig, origData, origState := xdg.ConfigHome, xdg.DataHome, xdg.StateHome
	dir = t.TempDir()
	xdg.ConfigHome = filepath.Join(dir, "config")
	xdg.DataHome = filepath.Join(dir, "data")
	xdg.StateHome = filepath.Join(dir, "state")
	if err := os.MkdirAll(xdg.ConfigHome, 0o755); err != nil {
		t.Fatalf("mkdir config home: %v", err)
	}
	restore = func() {
		xdg.ConfigHome, xdg.DataHome, xdg.StateHome = origConfig, origData, origState
	}
	file = filepath.Join(xdg.ConfigHome, "fman")
	return
}

func TestGetConfig_Table(t *testing.T) {
	restore, dir, cfgFile := withTempXDG(t)
	defer restore()

	def := cfg.DefaultConfig()

	tests := []struct {
		name      string
		preWrite  bool
		contents  string
		expectErr bool
		check     func(t *testing.T, got *cfg.Config, def cfg.Config)
	}{
		{
			name:     "missing_file_returns_defaults",
			preWrite: false,
			check: func(t *testing.T, got *cfg.Config, def cfg.Config) {
				if !reflect.DeepEqual(*got, def) {
					t.Fatalf("expected defaults\nwant: %#v\ngot:  %#v", def, *got)
				}
			},
		},
		{
			name:     "empty_file_returns_defaults",
			preWrite: true,
			contents: "",
			check: func(t *testing.T, got *cfg.Config, def cfg.Config) {
				if !reflect.DeepEqual(*got, def) {
					t.Fatalf("expected defaults\nwant: %#v\ngot:  %#v", def, *got)
				}
			},
		},
		{
			name:      "invalid_yaml_returns_error",
			preWrite:  true,
			contents:  ": not yaml",
			expectErr: true,
			check:     func(t *testing.T, _ *cfg.Config, _ cfg.Config) {},
		},
		{
			name:     "missing_sections_use_defaults",
			preWrite: true,
			contents: "batch:\n  maxConcurrentJobs: 8\n",
			check: func(t *testing.T, got *cfg.Config, def cfg.Config) {
				if got.Batch.MaxConcurrentJobs != 8 {
					t.Fatalf("maxConcurrentJobs not applied, got %d", got.Batch.MaxConcurrentJobs)
				}
				if !reflect.DeepEqual(*got.Sort, *def.Sort) {
					t.Fatalf("sort defaults not applied\nwant: %#v\ngot:  %#v", *def.Sort, *got.Sort)
				}
				if !reflect.DeepEqual(*got.History, *def.History) {
					t.Fatalf("history defaults not applied\nwant: %#v\ngot:  %#v", *def.History, *got.History)
				}
			},
		},
		{
			name:     "partial_override_and_fallback",
			preWrite: true,
			contents: `
sort:
  chunkLines: 1000
  maxOpenChunks: 64
dedup:
  falsePositiveRate: 0.05
history:
  disabled: true
log:
  path: /var/log/fman.log
`,
			check: func(t *testing.T, got *cfg.Config, def cfg.Config) {
				if got.Sort.ChunkLines != 1000 {
					t.Fatalf("want sort.chunkLines=1000 got %d", got.Sort.ChunkLines)
				}
				if got.Sort.MaxOpenChunks != 64 {
					t.Fatalf("want sort.maxOpenChunks=64 got %d", got.Sort.MaxOpenChunks)
				}
				if got.Sort.TempDir != def.Sort.TempDir {
					t.Fatalf("want sort.tempDir default %q got %q", def.Sort.TempDir, got.Sort.TempDir)
				}
				if got.Dedup.FalsePositiveRate != 0.05 {
					t.Fatalf("want dedup.falsePositiveRate=0.05 got %v", got.Dedup.FalsePositiveRate)
				}
				if !got.History.Disabled {
					t.Fatalf("want history.disabled=true")
				}
				if got.History.Path != def.History.Path {
					t.Fatalf("want history.path default %q got %q", def.History.Path, got.History.Path)
				}
				if got.Log.Path != "/var/log/fman.log" {
					t.Fatalf("want log.path override got %q", got.Log.Path)
				}
				if got.Batch.MaxConcurrentJobs != def.Batch.MaxConcurrentJobs {
					t.Fatalf("want batch default %d got %d", def.Batch.MaxConcurrentJobs, got.Batch.MaxConcurrentJobs)
				}
			},
		},
		{
			name:     "explicit_zero_values_fall_back_to_defaults",
			preWrite: true,
			contents: `
sort:
  chunkLines: 0
  tempDir: ""
batch:
  maxConcurrentJobs: 0
dedup:
  falsePositiveRate: 0
`,
			check: func(t *testing.T, got *cfg.Config, def cfg.Config) {
				if got.Sort.ChunkLines != def.Sort.ChunkLines {
					t.Fatalf("sort.chunkLines zero should fallback. want %d got %d", def.Sort.ChunkLines, got.Sort.ChunkLines)
				}
				if got.Sort.TempDir != def.Sort.TempDir {
					t.Fatalf("sort.tempDir zero should fallback. want %q got %q", def.Sort.TempDir, got.Sort.TempDir)
				}
				if got.Batch.MaxConcurrentJobs != def.Batch.MaxConcurrentJobs {
					t.Fatalf("batch.maxConcurrentJobs zero should fallback. want %d got %d",
						def.Batch.MaxConcurrentJobs, got.Batch.MaxConcurrentJobs)
				}
				if got.Dedup.FalsePositiveRate != def.Dedup.FalsePositiveRate {
					t.Fatalf("dedup.falsePositiveRate zero should fallback. want %v got %v",
						def.Dedup.FalsePositiveRate, got.Dedup.FalsePositiveRate)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_ = os.Remove(cfgFile)
			if tc.preWrite {
				if err := os.WriteFile(cfgFile, []byte(tc.contents), 0o600); err != nil {
					t.Fatalf("write test config: %v", err)
				}
			}
			got, err := cfg.GetConfig()
			if tc.expectErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("GetConfig error: %v", err)
			}
			tc.check(t, got, def)
		})
	}

	if got := cfg.DefaultConfig().History.Path; got != filepath.Join(dir, "data", "fman", "history.db") {
		t.Fatalf("history path should follow XDG_DATA_HOME, got %q", got)
	}
}

func TestDefaultConfig_Values(t *testing.T) {
	d := cfg.DefaultConfig()
	if d.Sort == nil || d.Batch == nil || d.Dedup == nil || d.History == nil || d.Log == nil {
		t.Fatalf("DefaultConfig has nil sections: %#v", d)
	}
	if d.Sort.ChunkLines != 500_000 {
		t.Fatalf("want default chunkLines 500000 got %d", d.Sort.ChunkLines)
	}
	if d.Sort.MaxOpenChunks != 0 {
		t.Fatalf("want maxOpenChunks 0 (derived) got %d", d.Sort.MaxOpenChunks)
	}
	if d.Sort.TempDir != os.TempDir() {
		t.Fatalf("want tempDir %q got %q", os.TempDir(), d.Sort.TempDir)
	}
	if d.Batch.MaxConcurrentJobs != 2 {
		t.Fatalf("want maxConcurrentJobs 2 got %d", d.Batch.MaxConcurrentJobs)
	}
}
