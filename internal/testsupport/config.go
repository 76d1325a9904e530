package testsupport

import (
	"path/filepath"
	"testing"

	"dialogedit/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Colour is off and locking is disabled so output and temp dirs stay predictable.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Display.Color = config.ColorNever
	cfgVal.Editor.LockFiles = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithExportDir points exports at a directory under the test's temp dir.
func WithExportDir(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.ExportDir = filepath.Join(b.baseDir, name)
	}
}

// WithTable enables table rendering with the given style.
func WithTable(style string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Display.Table = true
		b.cfg.Display.TableStyle = style
	}
}

// WithLocking enables document locks, optionally making them mandatory.
func WithLocking(required bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Editor.LockFiles = true
		b.cfg.Editor.RequireLock = required
	}
}
