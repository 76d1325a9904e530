package config

const (
	defaultConfigPath    = "~/.config/dialogedit/config.toml"
	defaultLogDir        = "~/.local/share/dialogedit/logs"
	defaultLogFormat     = "console"
	defaultLogLevel      = "warn"
	defaultColorMode     = ColorAuto
	defaultTableStyle    = "rounded"
	defaultScaleFactor   = 1.0
	defaultBackupOnSave  = true
	defaultLockFiles     = true
	envLogLevelOverride  = "DIALOGEDIT_LOG_LEVEL"
	envExportDirOverride = "DIALOGEDIT_EXPORT_DIR"
)

// Colour modes accepted by display.color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Editor: Editor{
			BackupOnSave:  defaultBackupOnSave,
			LockFiles:     defaultLockFiles,
			DefaultScaleX: defaultScaleFactor,
			DefaultScaleY: defaultScaleFactor,
		},
		Display: Display{
			Color:      defaultColorMode,
			TableStyle: defaultTableStyle,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
